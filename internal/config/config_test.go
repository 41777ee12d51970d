package config_test

import (
	"testing"

	"go-staffhub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/does-not-exist.yaml")
	require.NotNil(t, cfg)

	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.HTTP.ShutdownTimeoutSec)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Kafka.PollIntervalSec)
	assert.Equal(t, 50, cfg.Kafka.BatchSize)
	assert.Equal(t, 30, cfg.Kafka.RetryBackoffSec)
	assert.Equal(t, "staffhub_session", cfg.Session.CookieName)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_KAFKA_BATCHSIZE", "10")
	t.Setenv("APP_HTTP_SHUTDOWNTIMEOUTSEC", "5")

	cfg := config.Load("testdata/does-not-exist.yaml")

	assert.Equal(t, 10, cfg.Kafka.BatchSize)
	assert.Equal(t, 5, cfg.HTTP.ShutdownTimeoutSec)
}
