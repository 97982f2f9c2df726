package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	envAPIBaseURL = "RECEIPTS_API_BASE_URL"
	envDataDir    = "RECEIPTS_DATA_DIR"
	envLogLevel   = "RECEIPTS_LOG_LEVEL"
)

// parseEnv overlays cfg with RECEIPTS_* variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(envAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
