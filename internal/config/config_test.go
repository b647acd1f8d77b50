package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Service.APIPort)
	assert.Equal(t, SourceClickHouse, cfg.Explorer.Source)
	assert.Equal(t, 10000, cfg.Explorer.DefaultLimit)
	assert.Equal(t, 2000, cfg.Consumer.BatchSizeMax)
}

func TestLoad_NestedEnvironmentVariables(t *testing.T) {
	t.Setenv("SERVICE_ENVIRONMENT", "production")
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")
	t.Setenv("CLICKHOUSE_MAX_OPEN_CONNS", "12")
	t.Setenv("SQS_QUEUE_URL", "http://localhost:9324/queue/raw-events")
	t.Setenv("EXPLORER_SOURCE", "sample")
	t.Setenv("EXPLORER_SAMPLE_SIZE", "100")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Service.Environment)
	assert.Equal(t, "ch.internal", cfg.ClickHouse.Host)
	assert.Equal(t, 12, cfg.ClickHouse.MaxOpenConns)
	assert.Equal(t, "http://localhost:9324/queue/raw-events", cfg.SQS.QueueURL)
	assert.Equal(t, SourceSample, cfg.Explorer.Source)
	assert.Equal(t, 100, cfg.Explorer.SampleSize)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("EXPLORER_SOURCE", "postgres")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "EXPLORER_SOURCE")
}

func TestLoad_InvalidLimits(t *testing.T) {
	t.Setenv("EXPLORER_DEFAULT_LIMIT", "500")
	t.Setenv("EXPLORER_MAX_LIMIT", "100")

	_, err := Load()

	assert.Error(t, err)
}
