package service

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAgentNotFound   = errors.New("agent not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrAgentNameTaken  = errors.New("agent with this name already exists")
	ErrBadCredentials  = errors.New("incorrect email or password")
)
