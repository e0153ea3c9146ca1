package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TRACK_TICK", "")
	t.Setenv("STORE_ID", "")
	t.Setenv("PUBLIC_URL", "")
	t.Setenv("EVENT_BUFFER", "")
	t.Setenv("CART_IDLE_TTL", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, time.Second, cfg.TrackTick)
	assert.Equal(t, "DS-421", cfg.Store.ID)
	assert.Equal(t, 92, cfg.Store.InventoryHealth)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, 256, cfg.EventBuffer)
	assert.Equal(t, 2*time.Hour, cfg.CartIdleTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TRACK_TICK", "250ms")
	t.Setenv("STORE_IDLE_RIDERS", "3")
	t.Setenv("STORE_ACTIVE_RIDERS", "lots")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.TrackTick)
	assert.Equal(t, 3, cfg.Store.IdleRiders)
	assert.Equal(t, 14, cfg.Store.ActiveRiders)
}
