package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agripoultry/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "DB_DSN", "PEBBLE_DIR", "LOG_FILE", "NOTIFY_TTL"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, config.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "agripoultry.db", cfg.DBDSN)
	assert.Equal(t, 3*time.Second, cfg.NotifyTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "pebble")
	t.Setenv("PEBBLE_DIR", "/tmp/state")
	t.Setenv("NOTIFY_TTL", "500ms")
	cfg := config.Load()
	assert.Equal(t, config.BackendPebble, cfg.StoreBackend)
	assert.Equal(t, "/tmp/state", cfg.PebbleDir)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifyTTL)

	t.Setenv("NOTIFY_TTL", "soon")
	assert.Equal(t, 3*time.Second, config.Load().NotifyTTL)
}
