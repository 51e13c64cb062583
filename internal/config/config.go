package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Backend transport
	BackendURL  string
	BackendUser string
	BackendPass string
	HTTPTimeout time.Duration
	// Share links
	SecretPass   string
	ShareBaseURL string
	// Redis page cache - in-process cache is used when empty
	RedisURL string
}

func Load() Config {
	return Config{
		BackendURL:   getenv("EASYREVIEW_BACKEND_URL", "http://localhost:8000"),
		BackendUser:  getenv("EASYREVIEW_BACKEND_USER", "easyreview"),
		BackendPass:  getenv("EASYREVIEW_BACKEND_PASS", "easyreview"),
		HTTPTimeout:  time.Duration(getenvInt("EASYREVIEW_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		SecretPass:   getenv("EASYREVIEW_SECRET_PASS", "easyreview-dev-pass"),
		ShareBaseURL: getenv("EASYREVIEW_SHARE_BASE_URL", "http://localhost:3000/review"),
		RedisURL:     getenv("REDIS_URL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
