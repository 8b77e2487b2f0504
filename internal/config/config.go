// Package config loads gml's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/gml/config.toml (falling back to
// ~/.config/gml/config.toml). A missing file yields [Default]; command-line
// flags override whatever the file sets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "gml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

var (
	backends  = []string{BackendFile, BackendRedis, BackendNone}
	logLevels = []string{"debug", "info", "warn", "error"}
	rankDirs  = []string{"TB", "BT", "LR", "RL"}
)

// Config is the decoded configuration file.
type Config struct {
	Log    Log    `toml:"log"`
	Cache  Cache  `toml:"cache"`
	Render Render `toml:"render"`
	Serve  Serve  `toml:"serve"`
}

type Log struct {
	Level string `toml:"level"`
}

type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

type Render struct {
	Detailed bool   `toml:"detailed"`
	RankDir  string `toml:"rankdir"`
}

type Serve struct {
	Addr    string `toml:"addr"`
	MaxBody int64  `toml:"max_body"`
}

// Duration decodes TOML strings such as "24h" or "90m".
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

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration{24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Render: Render{RankDir: "TB"},
		Serve: Serve{
			Addr:    ":8080",
			MaxBody: 10 << 20,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over [Default]. An empty path means
// [DefaultPath]. A missing file is not an error unless the path was given
// explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML into cfg, leaving unset keys untouched, and validates
// the result. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate rejects unknown enum values and nonsensical sizes.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level: %q is not one of %v", c.Log.Level, logLevels)
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend: %q is not one of %v", c.Cache.Backend, backends)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache.ttl: must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr: required for the redis backend")
	}
	if !slices.Contains(rankDirs, c.Render.RankDir) {
		return fmt.Errorf("render.rankdir: %q is not one of %v", c.Render.RankDir, rankDirs)
	}
	if c.Serve.MaxBody <= 0 {
		return fmt.Errorf("serve.max_body: must be positive")
	}
	return nil
}

// CacheDir returns the configured cache directory, or the per-user default
// ($XDG_CACHE_HOME/gml).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
