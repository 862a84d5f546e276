package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDuration(t *testing.T) {
	t.Run("Unset uses default", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "")
		assert.Equal(t, 5*time.Minute, getEnvDuration("TEST_DURATION", 5*time.Minute))
	})

	t.Run("Valid duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "90s")
		assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION", 5*time.Minute))
	})

	t.Run("Invalid duration falls back", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "five minutes")
		assert.Equal(t, 5*time.Minute, getEnvDuration("TEST_DURATION", 5*time.Minute))
	})

	t.Run("Negative duration falls back", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "-1m")
		assert.Equal(t, 5*time.Minute, getEnvDuration("TEST_DURATION", 5*time.Minute))
	})
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		def      bool
		expected bool
	}{
		{"", true, true},
		{"yes", false, true},
		{"ON", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, getEnvBool("TEST_BOOL", tt.def))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.toorrii.com/")
	t.Setenv("APP_URL", "https://www.toorrii.com/")
	t.Setenv("CONTENT_STALE_TIME", "2m")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()

	assert.Equal(t, "https://api.toorrii.com", cfg.APIBaseURL)
	assert.Equal(t, "https://www.toorrii.com", cfg.AppURL)
	assert.Equal(t, 2*time.Minute, cfg.ContentStaleTime)
	assert.Equal(t, DefaultAPITimeout, cfg.APITimeout)
	assert.True(t, cfg.IsProduction())
}
