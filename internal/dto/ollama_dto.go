package dto

import "time"

type OllamaHealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	BaseURL string `json:"base_url"`
}

type OllamaModelResponse struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	Installed  bool      `json:"installed"`
	Default    bool      `json:"default"`
}

type PullModelRequest struct {
	Name string `json:"name" validate:"required"`
}
