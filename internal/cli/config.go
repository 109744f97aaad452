package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// Backend names accepted by the [store] and [cache] tables.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the CLI configuration file, ~/.config/topcoll/config.toml.
//
//	[defaults]
//	structure = "week"
//	columns = 2
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
type Config struct {
	// Defaults are the settings used for a course with nothing stored.
	Defaults course.Settings `toml:"defaults"`
	Store    StoreConfig     `toml:"store"`
	Toggles  ToggleConfig    `toml:"toggles"`
	Cache    CacheConfig     `toml:"cache"`
	Server   ServerConfig    `toml:"server"`
}

// StoreConfig selects the settings backend.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ToggleConfig controls toggle-state persistence.
type ToggleConfig struct {
	Persist bool   `toml:"persist"`
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
}

// CacheConfig selects the plan cache.
type CacheConfig struct {
	Backend string `toml:"backend"`
}

// ServerConfig holds defaults for `topcoll serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: course.DefaultSettings(),
		Store:    StoreConfig{Backend: BackendFile},
		Toggles:  ToggleConfig{Persist: true, Backend: BackendFile},
		Cache:    CacheConfig{Backend: BackendFile},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend names. Layout defaults are clamped, not rejected.
func (c Config) Validate() error {
	checks := []struct {
		table, backend string
		allowed        []string
	}{
		{"store", c.Store.Backend, []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}},
		{"toggles", c.Toggles.Backend, []string{BackendMemory, BackendFile, BackendRedis}},
		{"cache", c.Cache.Backend, []string{BackendNone, BackendFile, BackendRedis}},
	}
	for _, ch := range checks {
		if !contains(ch.allowed, ch.backend) {
			return errors.New(errors.ErrCodeInvalidInput, "[%s] backend %q: must be one of %v", ch.table, ch.backend, ch.allowed)
		}
	}
	if c.Store.Backend == BackendRedis || c.Toggles.Backend == BackendRedis || c.Cache.Backend == BackendRedis {
		if c.Store.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "redis backend requires [store] redis_addr")
		}
	}
	if c.Store.Backend == BackendMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "mongo backend requires [store] mongo_uri")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// configDir returns ~/.config/topcoll, honouring XDG_CONFIG_HOME.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the config file location, or "" when the home
// directory is unknown.
func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}
