// Package config loads and validates environment variables at startup.
// Configuration is always passed into constructors explicitly; nothing reads
// the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the HH.ru source client.
const (
	DefaultPerPage      = 20
	DefaultMaxPages     = 5
	DefaultFetchTimeout = 30 * time.Second
)

// Config holds all runtime configuration for hh-scout.
type Config struct {
	DatabaseURL  string
	HHBaseURL    string // empty selects the production endpoint
	PerPage      int
	MaxPages     int
	FetchTimeout time.Duration
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	perPage, err := positiveIntEnv("HH_PER_PAGE", DefaultPerPage)
	if err != nil {
		return nil, err
	}
	maxPages, err := positiveIntEnv("HH_MAX_PAGES", DefaultMaxPages)
	if err != nil {
		return nil, err
	}

	timeout := DefaultFetchTimeout
	if s := os.Getenv("HH_FETCH_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("HH_FETCH_TIMEOUT must be a positive duration, got %q", s)
		}
		timeout = d
	}

	return &Config{
		DatabaseURL:  dbURL,
		HHBaseURL:    os.Getenv("HH_BASE_URL"),
		PerPage:      perPage,
		MaxPages:     maxPages,
		FetchTimeout: timeout,
	}, nil
}

func positiveIntEnv(name string, fallback int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
