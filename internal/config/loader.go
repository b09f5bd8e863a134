// Package config provides centralized configuration management for
// pitchslap. Defaults are registered on a viper instance, overridden by an
// optional YAML file and PITCHSLAP_* environment variables, then decoded
// into a typed Config with mapstructure.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// AppName names config, data and cache directories.
	AppName = "pitchslap"

	// EnvPrefix prefixes every environment override, e.g. PITCHSLAP_SERVER_PORT.
	EnvPrefix = "PITCHSLAP"
)

// Leaderboard backends.
const (
	BackendStore  = "store"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("engine.min_pitch_length", 10)
	v.SetDefault("engine.max_pitch_length", 500)
	v.SetDefault("engine.thinking_delay", "0s")
	v.SetDefault("engine.seed", 0)

	v.SetDefault("store.driver", "libsql")
	v.SetDefault("store.path", DefaultStorePath())
	v.SetDefault("store.url", "")
	v.SetDefault("store.auth_token", "")

	v.SetDefault("leaderboard.backend", BackendStore)
	v.SetDefault("leaderboard.top_n", 100)
	v.SetDefault("leaderboard.redis.addr", "localhost:6379")
	v.SetDefault("leaderboard.redis.password", "")
	v.SetDefault("leaderboard.redis.db", 0)
	v.SetDefault("leaderboard.redis.key", "pitchslap:leaderboard")

	v.SetDefault("domains.enabled", false)
	v.SetDefault("domains.timeout", "5s")
	v.SetDefault("domains.cache", true)
	v.SetDefault("domains.cache_ttl", "6h")

	v.SetDefault("meme.width", 0)
	v.SetDefault("meme.height", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("health.enabled", true)
}

// NewViper returns a viper instance with defaults and environment binding.
// When configFile is empty the XDG config dir and ./config are searched for
// config.yaml.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir := gfconfig.GetAppConfigDir(AppName); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath("./config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file if one is present. A missing file is not an
// error; a malformed one is.
func ReadFile(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config, validates it and makes it the current config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(settings(v)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Store.URL) == "" && strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = DefaultStorePath()
	}
	cfg.Leaderboard.Backend = strings.ToLower(strings.TrimSpace(cfg.Leaderboard.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// settings collects every known key through v.Get so environment overrides
// apply even for keys absent from the config file.
func settings(v *viper.Viper) map[string]any {
	out := map[string]any{}
	for _, key := range v.AllKeys() {
		parts := strings.Split(key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[p] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = v.Get(key)
	}
	return out
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Engine.MinPitchLength < 1 {
		return fmt.Errorf("engine.min_pitch_length must be positive, got %d", c.Engine.MinPitchLength)
	}
	if c.Engine.MaxPitchLength < c.Engine.MinPitchLength {
		return fmt.Errorf("engine.max_pitch_length (%d) is below min_pitch_length (%d)",
			c.Engine.MaxPitchLength, c.Engine.MinPitchLength)
	}
	if c.Engine.ThinkingDelay < 0 {
		return fmt.Errorf("engine.thinking_delay must not be negative")
	}
	switch c.Leaderboard.Backend {
	case BackendStore, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("leaderboard.backend must be one of store, redis, memory: got %q", c.Leaderboard.Backend)
	}
	if c.Leaderboard.TopN < 1 {
		return fmt.Errorf("leaderboard.top_n must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Profile)) {
	case "", "simple", "structured":
	default:
		return fmt.Errorf("logging.profile must be simple or structured: got %q", c.Logging.Profile)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	dir := gfconfig.GetAppConfigDir(AppName)
	if strings.TrimSpace(dir) == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultStorePath returns the XDG-compliant path to the database file.
func DefaultStorePath() string {
	dataDir := gfconfig.GetAppDataDir(AppName)
	if strings.TrimSpace(dataDir) == "" {
		return "./" + AppName + ".db"
	}
	return filepath.Join(dataDir, AppName+".db")
}
