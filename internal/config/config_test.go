package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SLOT_STEP_MINUTES", "")
	t.Setenv("AVAILABILITY_TIMEOUT", "")
	t.Setenv("DEFAULT_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, 30, cfg.SlotStepMinutes)
	assert.Equal(t, 5*time.Second, cfg.AvailabilityTimeout)
	assert.Equal(t, "Europe/Istanbul", cfg.DefaultTimezone)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "MEMORY")
	t.Setenv("SLOT_STEP_MINUTES", "15")
	t.Setenv("AVAILABILITY_TIMEOUT", "750ms")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, 15, cfg.SlotStepMinutes)
	assert.Equal(t, 750*time.Millisecond, cfg.AvailabilityTimeout)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SLOT_STEP_MINUTES", "abc")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SLOT_STEP_MINUTES", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SLOT_STEP_MINUTES", "30")
	t.Setenv("DEFAULT_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}
