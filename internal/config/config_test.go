package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "ADMIN_AUTH_ENABLED", "BIDDING_WINDOW", "TOKEN_EXPIRE_TIME", "STRICT_PHASE_TRANSITIONS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.True(t, cfg.AdminAuthEnabled)
	assert.Equal(t, 30*time.Second, cfg.BiddingWindow)
	assert.Equal(t, 12*time.Hour, cfg.TokenExpire)
	assert.False(t, cfg.StrictPhaseTransitions)
	assert.Equal(t, DefaultEventQueueName, cfg.EventQueueName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ADMIN_AUTH_ENABLED", "false")
	t.Setenv("BIDDING_WINDOW", "45s")
	t.Setenv("TOKEN_EXPIRE_TIME", "never")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("HISTORIAN_FLUSH_MS", "250")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.AdminAuthEnabled)
	assert.Equal(t, 45*time.Second, cfg.BiddingWindow)
	assert.Equal(t, time.Duration(0), cfg.TokenExpire)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 250*time.Millisecond, cfg.HistorianFlush)
}
