package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	AllowedOrigins  []string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8082"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:5000/api"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
