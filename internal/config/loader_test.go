package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", t.TempDir())

		cfg, err := Load(NewViper(filepath.Join(t.TempDir(), "missing.yaml")))
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, 10, cfg.Engine.MinPitchLength)
		assert.Equal(t, 500, cfg.Engine.MaxPitchLength)
		assert.Equal(t, time.Duration(0), cfg.Engine.ThinkingDelay)

		assert.Equal(t, "libsql", cfg.Store.Driver)
		assert.Equal(t, filepath.Join(gfconfig.GetAppDataDir("pitchslap"), "pitchslap.db"), cfg.Store.Path)

		assert.Equal(t, BackendStore, cfg.Leaderboard.Backend)
		assert.Equal(t, 100, cfg.Leaderboard.TopN)
		assert.Equal(t, "pitchslap:leaderboard", cfg.Leaderboard.Redis.Key)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.True(t, cfg.Health.Enabled)

		assert.True(t, cfg.Domains.Cache)
		assert.Equal(t, 6*time.Hour, cfg.Domains.CacheTTL)
		assert.True(t, cfg.Domains.CacheInStore())

		assert.Same(t, cfg, GetConfig())
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("PITCHSLAP_SERVER_PORT", "9999")
		t.Setenv("PITCHSLAP_ENGINE_THINKING_DELAY", "1500ms")
		t.Setenv("PITCHSLAP_LEADERBOARD_BACKEND", "Redis")
		t.Setenv("PITCHSLAP_LEADERBOARD_REDIS_ADDR", "cache:6380")

		cfg, err := Load(NewViper(filepath.Join(t.TempDir(), "missing.yaml")))
		require.NoError(t, err)

		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, 1500*time.Millisecond, cfg.Engine.ThinkingDelay)
		assert.Equal(t, BackendRedis, cfg.Leaderboard.Backend)
		assert.Equal(t, "cache:6380", cfg.Leaderboard.Redis.Addr)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "engine:\n  min_pitch_length: 20\nleaderboard:\n  backend: memory\n  top_n: 10\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		v := NewViper(path)
		used, err := ReadFile(v)
		require.NoError(t, err)
		assert.Equal(t, path, used)

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.Engine.MinPitchLength)
		assert.Equal(t, BackendMemory, cfg.Leaderboard.Backend)
		assert.Equal(t, 10, cfg.Leaderboard.TopN)
		assert.Equal(t, 8080, cfg.Server.Port)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("engine: [unclosed"), 0o600))

		_, err := ReadFile(NewViper(path))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(NewViper(filepath.Join(t.TempDir(), "missing.yaml")))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Leaderboard.Backend = "postgres"
	require.ErrorContains(t, cfg.Validate(), "leaderboard.backend")

	cfg = base()
	cfg.Engine.MaxPitchLength = 5
	require.ErrorContains(t, cfg.Validate(), "max_pitch_length")

	cfg = base()
	cfg.Engine.MinPitchLength = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Logging.Profile = "verbose"
	require.ErrorContains(t, cfg.Validate(), "logging.profile")

	cfg = base()
	cfg.Logging.Profile = "Simple"
	require.NoError(t, cfg.Validate())
}

func TestDomainsCacheInStore(t *testing.T) {
	assert.True(t, DomainsConfig{Cache: true, CacheTTL: time.Hour}.CacheInStore())
	assert.False(t, DomainsConfig{Cache: false, CacheTTL: time.Hour}.CacheInStore())
	assert.False(t, DomainsConfig{Cache: true}.CacheInStore())
}
