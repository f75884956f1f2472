package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DB_BACKEND", "SCHEDULE_STORE", "DEFAULT_POLICY", "TURNAROUND_MINUTES", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.DBBackend)
	assert.Equal(t, StorePostgres, cfg.ScheduleStore)
	assert.Equal(t, "ranked", cfg.DefaultPolicy)
	assert.Equal(t, time.Hour, cfg.Turnaround)
	assert.Equal(t, 24*time.Hour, cfg.ClosingWindow)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_BACKEND", "SQLite")
	t.Setenv("DB_DSN", "file:career.db")
	t.Setenv("SCHEDULE_STORE", "mongo")
	t.Setenv("DEFAULT_POLICY", "weighted")
	t.Setenv("TURNAROUND_MINUTES", "45")
	t.Setenv("ROUTE_CACHE_TTL", "30")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.DBBackend)
	assert.Equal(t, "file:career.db", cfg.DBDSN)
	assert.Equal(t, StoreMongo, cfg.ScheduleStore)
	assert.Equal(t, "weighted", cfg.DefaultPolicy)
	assert.Equal(t, 45*time.Minute, cfg.Turnaround)
	assert.Equal(t, 30*time.Second, cfg.RouteCacheTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfigRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_BACKEND", "mysql"},
		{"SCHEDULE_STORE", "redis"},
		{"DEFAULT_POLICY", "greedy"},
		{"TURNAROUND_MINUTES", "-5"},
		{"CLOSING_WINDOW_HOURS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
