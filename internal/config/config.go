// Package config loads runtime settings for the AcademicFlow client.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the client.
type Config struct {
	// APIURL is the backend root, e.g. https://academicflow.example.com/api.
	APIURL string
	// StateDir overrides the default per-user session directory.
	StateDir string
	// RequestTimeout bounds every single HTTP call.
	RequestTimeout time.Duration
	// ClockInterval drives the elapsed-time/clock refresh tick.
	ClockInterval time.Duration
	// ReloadInterval drives the full dashboard reload tick.
	ReloadInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		APIURL:         strings.TrimSpace(os.Getenv("ACADEMICFLOW_API_URL")),
		StateDir:       strings.TrimSpace(os.Getenv("ACADEMICFLOW_STATE_DIR")),
		RequestTimeout: parseDuration(os.Getenv("ACADEMICFLOW_TIMEOUT"), 30*time.Second),
		ClockInterval:  time.Second,
		ReloadInterval: parseDuration(os.Getenv("ACADEMICFLOW_RELOAD_INTERVAL"), 2*time.Minute),
	}

	if cfg.APIURL == "" {
		return cfg, fmt.Errorf("ACADEMICFLOW_API_URL is required")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
