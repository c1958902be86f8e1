package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
server:
  port: 9090
provider:
  api_key: from-file
kafka:
  brokers: [localhost:9092]
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "from-file", c.Provider.APIKey)
	assert.Equal(t, "https://financialmodelingprep.com/api/v3", c.Provider.BaseURL)
	assert.Equal(t, []string{"localhost:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "fincompare.comparisons", c.Kafka.EventsTopic)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
environment: test
kafka:
  enabled: true
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FMP_API_KEY", "secret")
	t.Setenv("FMP_BASE_URL", "http://localhost:1234")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SERVER_PORT", "7000")

	c := Default()
	c.ApplyEnv()

	assert.Equal(t, "secret", c.Provider.APIKey)
	assert.Equal(t, "http://localhost:1234", c.Provider.BaseURL)
	assert.Equal(t, "redis:6379", c.Cache.Redis.Addr)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "debug", c.Logger.Level)
	assert.Equal(t, 7000, c.Server.Port)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.Logger.Format = "xml"
	assert.Error(t, c.Validate())

	c = Default()
	c.Server.Port = 0
	assert.Error(t, c.Validate())
}
