// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting read from the environment (or a .env file loaded by godotenv).
type Config struct {
	Port        string
	DatabaseURL string // empty => in-memory store

	RedisAddr      string // empty => events are logged but not queued
	RedisDB        int
	EventQueueName string

	// AdminAuthEnabled gates admin-mutating operations behind AdminSecret.
	AdminAuthEnabled bool
	AdminSecret      string
	TokenExpire      time.Duration // 0 => admin tokens never expire

	BiddingWindow          time.Duration
	StrictPhaseTransitions bool
	SeedOnStartup          bool

	HistorianBatchSize int
	HistorianFlush     time.Duration

	LogLevel string
}

// DefaultEventQueueName is the Redis list game events are pushed onto.
const DefaultEventQueueName = "bidquiz_events"

// Load builds a Config from environment variables, falling back to defaults.
func Load() Config {
	return Config{
		Port:                   getEnv("PORT", "8080"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		EventQueueName:         getEnv("EVENT_QUEUE_NAME", DefaultEventQueueName),
		AdminAuthEnabled:       getEnvBool("ADMIN_AUTH_ENABLED", true),
		AdminSecret:            getEnv("ADMIN_SECRET", "admin123"),
		TokenExpire:            getEnvDuration("TOKEN_EXPIRE_TIME", 12*time.Hour),
		BiddingWindow:          getEnvDuration("BIDDING_WINDOW", 30*time.Second),
		StrictPhaseTransitions: getEnvBool("STRICT_PHASE_TRANSITIONS", false),
		SeedOnStartup:          getEnvBool("SEED_ON_STARTUP", true),
		HistorianBatchSize:     getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistorianFlush:         time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as integer, else returns a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration accepts Go durations ("30s", "12h"); "never" and "0" map to zero.
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := strings.TrimSpace(os.Getenv(key))
	switch s {
	case "":
		return def
	case "never", "0":
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
