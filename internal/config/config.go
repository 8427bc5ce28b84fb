package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner service.
type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	PlanGenerationTime string // HH:MM local time, empty disables the daily job
	Location           *time.Location
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:           strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		PlanGenerationTime: strings.TrimSpace(os.Getenv("PLAN_GENERATION_TIME")),
		Location:           time.Local,
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "everyday_planner.db"
	}

	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, fmt.Errorf("TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}
