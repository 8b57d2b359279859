package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks the overrides so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "BACKEND_URL", "STORAGE_DRIVER", "SQLITE_PATH", "REDIS_ADDR", "REDIS_PASSWORD",
		"MONGO_URI", "MONGO_DB_NAME", "CACHE_REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "http://localhost:3000", cfg.Backend.URL)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "storefront.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "storefront-orders", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
http:
  port: "9090"
  request_timeout: 5s
backend:
  url: https://api.example.com
  timeout: 2s
storage:
  driver: redis
  redis_addr: redis:6379
cache:
  redis_addr: cache:6379
kafka:
  brokers: [k1:9092, k2:9092]
log:
  level: debug
`)
	clearEnv(t)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "https://api.example.com", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "storefront-orders", cfg.Kafka.Topic)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend:\n  url: https://from-file\n")
	clearEnv(t)
	t.Setenv("BACKEND_URL", "https://from-env")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.Backend.URL)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "7070", cfg.HTTP.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "http: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }, `unknown storage driver "postgres"`},
		{"sqlite without path", func(c *Config) { c.Storage.SQLitePath = "" }, "storage.sqlite_path"},
		{"mongo without db", func(c *Config) { c.Storage.Driver = "mongo"; c.Storage.MongoDBName = "" }, "storage.mongo_db_name"},
		{"redis without addr", func(c *Config) { c.Storage.Driver = "redis"; c.Storage.RedisAddr = "" }, "storage.redis_addr"},
		{"no backend", func(c *Config) { c.Backend.URL = "" }, "backend.url"},
		{"no timeout", func(c *Config) { c.HTTP.RequestTimeout = 0 }, "http.request_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestStorageOptions(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "mongo"

	opts := cfg.StorageOptions()
	assert.Equal(t, "mongo", opts.Driver)
	assert.Equal(t, "mongodb://localhost:27017", opts.MongoURI)
	assert.Equal(t, "storefront", opts.MongoDBName)
}
