// Package config loads grime settings from a TOML file and the environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, environment
// variables. Command-line flags are applied on top by the caller.
//
// # Example file
//
//	[log]
//	level = "debug"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "1h"
//
//	[codec]
//	jpeg_quality = 90
//
//	[mosaic]
//	seed = 200
//	default_seeds = 1000
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
	"github.com/ironsheep/grime/internal/store"
)

// Environment variables that override file settings.
const (
	EnvLogLevel     = "GRIME_LOG_LEVEL"
	EnvStoreBackend = "GRIME_STORE_BACKEND"
	EnvRedisAddr    = "GRIME_REDIS_ADDR"
)

// Config is the complete application configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Store  StoreConfig  `toml:"store"`
	Codec  CodecConfig  `toml:"codec"`
	Mosaic MosaicConfig `toml:"mosaic"`
}

// LogConfig controls the logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string `toml:"level"`
}

// StoreConfig selects the named-image backend.
type StoreConfig struct {
	Backend   string   `toml:"backend"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Password  string   `toml:"password"`
	KeyPrefix string   `toml:"key_prefix"`
	TTL       Duration `toml:"ttl"`
}

// CodecConfig holds encoder settings.
type CodecConfig struct {
	JPEGQuality int `toml:"jpeg_quality"`
}

// MosaicConfig holds mosaic defaults.
type MosaicConfig struct {
	// Seed is the fixed PRNG seed.
	Seed uint64 `toml:"seed"`
	// DefaultSeeds is the seed count used when a caller gives none.
	DefaultSeeds int `toml:"default_seeds"`
}

// Duration is a time.Duration written as a string such as "90s" or "1h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Store: StoreConfig{Backend: store.BackendMemory, RedisAddr: "localhost:6379", KeyPrefix: store.DefaultKeyPrefix},
		Codec: CodecConfig{JPEGQuality: codec.DefaultJPEGQuality},
		Mosaic: MosaicConfig{
			Seed:         imaging.DefaultMosaicSeed,
			DefaultSeeds: 1000,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to read config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvStoreBackend); ok && v != "" {
		c.Store.Backend = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Store.RedisAddr = v
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	switch c.Store.Backend {
	case store.BackendMemory:
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidArgument, "store.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidArgument,
			"store.backend must be %q or %q, got %q", store.BackendMemory, store.BackendRedis, c.Store.Backend)
	}
	if c.Store.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "store.ttl must not be negative")
	}
	if c.Codec.JPEGQuality < 1 || c.Codec.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidArgument, "codec.jpeg_quality must be 1-100, got %d", c.Codec.JPEGQuality)
	}
	if c.Mosaic.DefaultSeeds <= 0 {
		return errors.New(errors.ErrCodeInvalidSeedCount,
			"mosaic.default_seeds must be positive, got %d", c.Mosaic.DefaultSeeds)
	}
	return nil
}

// ParseLevel converts Level to a logger level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid log level %q", l.Level)
	}
	return level, nil
}

// StoreOptions converts the store section for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:   c.Store.Backend,
		RedisAddr: c.Store.RedisAddr,
		RedisDB:   c.Store.RedisDB,
		Password:  c.Store.Password,
		KeyPrefix: c.Store.KeyPrefix,
		TTL:       c.Store.TTL.Duration,
	}
}

// String renders the configuration as TOML, with the password masked.
func (c *Config) String() string {
	masked := *c
	if masked.Store.Password != "" {
		masked.Store.Password = "***"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(masked); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
