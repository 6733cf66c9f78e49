package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcbanners/banners/pkg/cache"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name   string
		env    string
		value  string
		lookup func() (string, error)
		want   string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", "banners")},
		{"cache xdg", "XDG_CACHE_HOME", "/var/cache/mc", cacheDir, "/var/cache/mc/banners"},
		{"config default", "XDG_CONFIG_HOME", "", configDir, filepath.Join(home, ".config", "banners")},
		{"config xdg", "XDG_CONFIG_HOME", "/etc/xdg", configDir, "/etc/xdg/banners"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			got, err := tt.lookup()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClearEntities(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	require.NoError(t, err)

	ctx := t.Context()
	require.NoError(t, fc.Set(ctx, "entity:author_by_id:spigot:1", []byte(`{"name":"steve"}`), time.Hour))
	require.NoError(t, fc.Set(ctx, "entity:server:mcapi:play.example.com:25565", []byte(`{"online":true}`), time.Minute))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banners.toml"), []byte("[log]\n"), 0o644))

	n, size, err := clearEntities(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Positive(t, size)

	_, hit, err := fc.Get(ctx, "entity:author_by_id:spigot:1")
	require.NoError(t, err)
	assert.False(t, hit)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "shard directories should be removed")
	assert.Equal(t, "banners.toml", entries[0].Name())
}

func TestClearEntitiesMissingDir(t *testing.T) {
	n, size, err := clearEntities(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, size)
}
