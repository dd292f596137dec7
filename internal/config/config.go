package config

import (
	"os"
)

// Config holds process configuration, sourced from the environment.
type Config struct {
	Port         string
	DBDriver     string
	DBConn       string
	APIToken     string
	APITokenHash string
}

// FromEnv reads configuration with development defaults.
func FromEnv() *Config {
	return &Config{
		Port:         envOr("PORT", "8000"),
		DBDriver:     envOr("DB_DRIVER", "sqlite3"),
		DBConn:       envOr("DB_CONN", "./graze.db"),
		APIToken:     os.Getenv("API_TOKEN"),
		APITokenHash: os.Getenv("API_TOKEN_HASH"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
