package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hh_scout")
	t.Setenv("HH_BASE_URL", "")
	t.Setenv("HH_PER_PAGE", "")
	t.Setenv("HH_MAX_PAGES", "")
	t.Setenv("HH_FETCH_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/hh_scout", cfg.DatabaseURL)
	assert.Empty(t, cfg.HHBaseURL)
	assert.Equal(t, DefaultPerPage, cfg.PerPage)
	assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/hh_scout")
	t.Setenv("HH_BASE_URL", "http://localhost:8080/vacancies")
	t.Setenv("HH_PER_PAGE", "50")
	t.Setenv("HH_MAX_PAGES", "2")
	t.Setenv("HH_FETCH_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/vacancies", cfg.HHBaseURL)
	assert.Equal(t, 50, cfg.PerPage)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"per page not a number", "HH_PER_PAGE", "lots"},
		{"per page zero", "HH_PER_PAGE", "0"},
		{"max pages negative", "HH_MAX_PAGES", "-3"},
		{"timeout not a duration", "HH_FETCH_TIMEOUT", "30"},
		{"timeout negative", "HH_FETCH_TIMEOUT", "-5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost:5432/hh_scout")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
