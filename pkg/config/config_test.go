package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[log]
level = "debug"

[cache]
driver = "redis"
redis_addr = "localhost:6379"
entity_ttl = "5m"

[upstream]
timeout = "3s"
curseforge_api_key = "cf-key"

[upstream.base_urls]
modrinth = "http://localhost:9000/v2"
`)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.EntityTTL)
	assert.Equal(t, time.Minute, cfg.Cache.ServerTTL, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "cf-key", cfg.Upstream.CurseForgeAPIKey)
	assert.Equal(t, "http://localhost:9000/v2", cfg.Upstream.BaseURLs["modrinth"])
}

func TestValidateReportsFields(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "chatty"
	cfg.Cache.Driver = "redis"
	cfg.Store.Driver = "mongo"
	cfg.Upstream.Attempts = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"log.level: must be one of debug info warn error",
		"cache.redis_addr: is required",
		"store.mongo_uri: is required",
		"upstream.attempts: must be at least 1",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateFileCacheNeedsDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Driver = "file"
	assert.ErrorContains(t, cfg.Validate(), "cache.dir")

	cfg.Cache.Dir = t.TempDir()
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"BANNERS_ADDR":                 ":9090",
		"BANNERS_CACHE_DRIVER":         "none",
		"BANNERS_UPSTREAM_TIMEOUT":     "2s",
		"BANNERS_REDIS_DB":             "3",
		"BANNERS_MCAPI_URL":            "http://ping.local/server",
		"BANNERS_CACHE_SWEEP_INTERVAL": "30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "none", cfg.Cache.Driver)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, "http://ping.local/server", cfg.Upstream.BaseURLs["mcapi"])
	assert.Equal(t, 30*time.Second, cfg.Cache.SweepInterval)
}

func TestApplyEnvErrors(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"BANNERS_UPSTREAM_TIMEOUT": "soon",
		"BANNERS_REDIS_DB":         "zero",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BANNERS_UPSTREAM_TIMEOUT")
	assert.Contains(t, err.Error(), "BANNERS_REDIS_DB")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banners.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":7070\"\n"), 0o644))

	t.Setenv("BANNERS_LOG_LEVEL", "warn")
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = Load(filepath.Join(dir, "missing.toml"), false)
	assert.NoError(t, err)
	_, err = Load(filepath.Join(dir, "missing.toml"), true)
	assert.Error(t, err)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	_, err := Parse("[server\naddr = 1")
	assert.Error(t, err)
}
