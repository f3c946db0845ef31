package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ollama   OllamaConfig
	Dataset  DatasetConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret          string
	TokenExpireMinutes int
}

type OllamaConfig struct {
	BaseURL        string
	DefaultModel   string
	Temperature    float64
	TopP           float64
	TopK           int
	RepeatPenalty  float64
	MaxTokens      int
	TimeoutSeconds int
}

type DatasetConfig struct {
	CSVPath        string
	Enabled        bool
	MaxResults     int
	ContextCharLim int
}

type CacheConfig struct {
	TTLSeconds  int
	RecentLimit int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpireMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		},
		Ollama: OllamaConfig{
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DefaultModel:   getEnv("OLLAMA_DEFAULT_MODEL", "llama3.2:3b"),
			Temperature:    getEnvAsFloat("OLLAMA_TEMPERATURE", 0.7),
			TopP:           getEnvAsFloat("OLLAMA_TOP_P", 0.9),
			TopK:           getEnvAsInt("OLLAMA_TOP_K", 40),
			RepeatPenalty:  getEnvAsFloat("OLLAMA_REPEAT_PENALTY", 1.1),
			MaxTokens:      getEnvAsInt("OLLAMA_MAX_TOKENS", 2048),
			TimeoutSeconds: getEnvAsInt("OLLAMA_TIMEOUT", 120),
		},
		Dataset: DatasetConfig{
			CSVPath:        getEnv("DATASET_CSV_PATH", ""),
			Enabled:        getEnvAsBool("DATASET_ENABLED", true),
			MaxResults:     getEnvAsInt("DATASET_MAX_RESULTS", 12),
			ContextCharLim: getEnvAsInt("DATASET_CONTEXT_CHAR_LIMIT", 1500),
		},
		Cache: CacheConfig{
			TTLSeconds:  getEnvAsInt("MESSAGE_CACHE_TTL_SECONDS", 3600),
			RecentLimit: getEnvAsInt("MESSAGE_CACHE_RECENT_LIMIT", 100),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
