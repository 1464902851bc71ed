package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr     = ":8080"
	defaultDSN      = "machinepark.db"
	defaultDraftTTL = "2h"
)

// Config is the runtime configuration for the API server, sourced from the
// environment with development defaults.
type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string
	DraftTTL    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("ADDR", defaultAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDSN))

	var err error
	cfg.DraftTTL, err = parseDurationEnv("DRAFT_TTL", defaultDraftTTL)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
	}
	return d, nil
}
