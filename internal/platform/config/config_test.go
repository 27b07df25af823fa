package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, StoreMemory, cfg.Store.Backend)
		assert.Equal(t, 10*time.Second, cfg.Hub.Timeout)
		assert.Equal(t, "X-Session-User", cfg.Server.SessionHeader)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("BASE_URI", "https://pushgraph.example/")
		t.Setenv("GRAPH_STORE", StorePostgres)
		t.Setenv("DATABASE_URL", "postgres://u:p@db/pushgraph")
		t.Setenv("HUB_TIMEOUT", "2s")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,k1:9092")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "https://pushgraph.example/", cfg.App.BaseURI)
		assert.Equal(t, StorePostgres, cfg.Store.Backend)
		assert.Equal(t, 2*time.Second, cfg.Hub.Timeout)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("postgres without database url", func(t *testing.T) {
		t.Setenv("GRAPH_STORE", StorePostgres)
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("GRAPH_STORE", "oracle")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("redis lock must outlive the hub call", func(t *testing.T) {
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("HUB_TIMEOUT", "10s")

		t.Setenv("REDIS_LOCK_TTL", "5s")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_LOCK_TTL")

		t.Setenv("REDIS_LOCK_TTL", "0s")
		_, err = FromEnv()
		require.Error(t, err)

		t.Setenv("REDIS_LOCK_TTL", "12s")
		_, err = FromEnv()
		require.Error(t, err, "margin for the store write is required")

		t.Setenv("REDIS_LOCK_TTL", "15s")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, cfg.Redis.LockTTL)
	})

	t.Run("lock ttl is not checked without redis", func(t *testing.T) {
		t.Setenv("REDIS_LOCK_TTL", "1s")
		_, err := FromEnv()
		require.NoError(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("HUB_TIMEOUT", "soon")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HUB_TIMEOUT")
	})
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pushgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  base_uri: https://file.example/
store:
  backend: sqlite
  sqlite_path: /var/lib/pushgraph.db
hub:
  default_hub: https://hub.example/
  timeout: 3s
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HUB_TIMEOUT", "4s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example/", cfg.App.BaseURI)
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/pushgraph.db", cfg.Store.SQLitePath)
	assert.Equal(t, "https://hub.example/", cfg.Hub.DefaultHub)
	assert.Equal(t, 4*time.Second, cfg.Hub.Timeout, "environment wins over the file")
	assert.Equal(t, "http://localhost:8080/", cfg.App.GraphURI, "unset keys keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.Error(t, err)
}
