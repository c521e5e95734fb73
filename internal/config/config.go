package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	ListenAddr string // HTTP listen address
	DBDriver   string // sqlite | mysql | postgres
	DBDSN      string // file path for sqlite, full DSN otherwise
	JWTSecret  string
	RunnerURL  string // code-execution service base URL
	ImageURL   string // image host upload endpoint
	ImageKey   string // image host API key
	LogLevel   string
}

// Load reads .env (if present) and the environment. A missing .env file is
// not an error; a missing JWT secret is.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		DBDriver:   getenv("DB_DRIVER", "sqlite"),
		DBDSN:      getenv("DB_DSN", "data/notes.db"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RunnerURL:  getenv("RUNNER_URL", "https://emkc.org/api/v2/piston"),
		ImageURL:   os.Getenv("IMAGE_HOST_URL"),
		ImageKey:   os.Getenv("IMAGE_HOST_KEY"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
