// Package config centralises configuration parsing for the dashboard
// service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration values for the dashboard
// service.
type Config struct {
	HTTPAddress    string
	JWTSecret      string
	JWTIssuer      string
	MaxUploadBytes int64 // Upper bound on an uploaded archive.
	StoreCapacity  int   // Number of uploads retained in memory.

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads environment variables into Config, applying sensible
// defaults for local dev.
func Load() Config {
	return Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8080"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:      getEnv("JWT_ISSUER", "garmin-dashboard.local"),
		MaxUploadBytes: getInt64Env("MAX_UPLOAD_BYTES", 64<<20),
		StoreCapacity:  getIntEnv("STORE_CAPACITY", 16),
		ReadTimeout:    getDurationEnv("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDurationEnv("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:    getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
