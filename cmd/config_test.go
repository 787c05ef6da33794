package cmd_test

import (
	"testing"
	"time"

	"production/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func requiredEnv() map[string]string {
	return map[string]string{
		"DB_HOST": "localhost",
		"DB_USER": "production",
		"DB_NAME": "production",
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(requiredEnv()))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSslMode)
	assert.Equal(t, "production-orders", cfg.IngestQueue)
	assert.Equal(t, "production-events", cfg.EventsExchange)
	assert.Equal(t, 10, cfg.IngestMaxMessages)
	assert.Equal(t, 20*time.Second, cfg.IngestWait())
	assert.Equal(t, 5*time.Second, cfg.IngestBackoff())
	assert.Equal(t, 24*time.Hour, cfg.LedgerTTL())
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "0 * * * * *", cfg.QueueReportSchedule)
}

func TestLoadConfig_Overrides(t *testing.T) {
	env := requiredEnv()
	env["HTTP_PORT"] = "9090"
	env["INGEST_MAX_MESSAGES"] = "5"
	env["INGEST_WAIT_SECONDS"] = "1"
	env["EVENTS_EXCHANGE"] = "kitchen"
	env["REDIS_ADDR"] = "redis:6379"
	env["DB_PASSWORD"] = "secret"

	cfg, err := cmd.LoadConfig(envOf(env))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 5, cfg.IngestMaxMessages)
	assert.Equal(t, time.Second, cfg.IngestWait())
	assert.Equal(t, "kitchen", cfg.EventsExchange)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t,
		"host=localhost port=5432 user=production password=secret dbname=production sslmode=disable",
		cfg.DSN())
}

func TestLoadConfig_Errors(t *testing.T) {
	env := map[string]string{
		"INGEST_MAX_MESSAGES": "many",
		"LEDGER_TTL_HOURS":    "-1",
	}

	_, err := cmd.LoadConfig(envOf(env))
	require.Error(t, err)

	for _, want := range []string{"INGEST_MAX_MESSAGES", "LEDGER_TTL_HOURS", "DB_HOST", "DB_USER", "DB_NAME"} {
		assert.Contains(t, err.Error(), want)
	}
}
