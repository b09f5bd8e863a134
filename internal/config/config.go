package config

import "time"

// Config represents the complete application configuration. Values are
// resolved from defaults, an optional YAML file and PITCHSLAP_* environment
// variables, in increasing order of precedence.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Store       StoreConfig       `mapstructure:"store"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Domains     DomainsConfig     `mapstructure:"domains"`
	Meme        MemeConfig        `mapstructure:"meme"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Health      HealthConfig      `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EngineConfig tunes the pitch engine.
type EngineConfig struct {
	// MinPitchLength is the shortest trimmed pitch that gets classified.
	MinPitchLength int `mapstructure:"min_pitch_length"`

	// MaxPitchLength bounds accepted input at the CLI and HTTP edges.
	MaxPitchLength int `mapstructure:"max_pitch_length"`

	// ThinkingDelay is the cosmetic pause before a response is returned.
	ThinkingDelay time.Duration `mapstructure:"thinking_delay"`

	// Seed makes phrasing selection reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// StoreConfig contains database configuration for libsql/Turso
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// LeaderboardConfig selects where rankings are kept.
type LeaderboardConfig struct {
	// Backend is one of: store, redis, memory.
	Backend string      `mapstructure:"backend"`
	TopN    int         `mapstructure:"top_n"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the redis connection used by the redis leaderboard.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// DomainsConfig configures RDAP lookups for branding domain suggestions.
type DomainsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Cache    bool          `mapstructure:"cache"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Servers routes a TLD to fixed RDAP base URLs instead of IANA bootstrap.
	Servers map[string][]string `mapstructure:"servers"`
}

// CacheInStore reports whether RDAP results are cached in the store,
// independent of the leaderboard backend.
func (d DomainsConfig) CacheInStore() bool {
	return d.Cache && d.CacheTTL > 0
}

// MemeConfig configures rendered meme cards. Zero sizes use the template size.
type MemeConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level
	// Valid values: simple, structured
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated Prometheus endpoint port
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
