// SPDX-License-Identifier: MIT

// Package config loads the tsdist binary configuration: a YAML file, then
// TSDIST_* environment overrides, on top of Default().
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/device"
)

// Config is the root document.
type Config struct {
	Compute Compute `yaml:"compute"`
	Server  Server  `yaml:"server"`
	Cache   Cache   `yaml:"cache"`
	Log     Log     `yaml:"log"`
}

// Compute holds the defaults applied to every distance computation.
type Compute struct {
	Parallel bool   `yaml:"parallel"`
	Workers  int    `yaml:"workers"`
	Device   string `yaml:"device"`
	// Accelerator names the provider behind the "gpu" device: "emulator" or "" (none).
	Accelerator string `yaml:"accelerator"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	RateLimit    float64       `yaml:"rate_limit"` // requests per second; 0 disables
	RateBurst    int           `yaml:"rate_burst"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// Cache configures the result cache. An empty RedisAddr selects the in-memory cache.
type Cache struct {
	Enabled   bool          `yaml:"enabled"`
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db"`
	TTL       time.Duration `yaml:"ttl"`
}

// Log configures the global zerolog logger.
type Log struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// ErrInvalid indicates a configuration value outside its domain.
var ErrInvalid = fmt.Errorf("%w: config", tsdist.ErrInvalidParameter)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Compute: Compute{Parallel: true, Device: "cpu"},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
			RateLimit:    20,
			RateBurst:    40,
			MaxBodyBytes: 64 << 20,
		},
		Cache: Cache{Enabled: true, TTL: 10 * time.Minute},
		Log:   Log{Level: "info", Console: true},
	}
}

// Load reads path (skipped when empty or missing) over Default(), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}
	if err := applyEnvOverrides(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := device.Parse(c.Compute.Device); err != nil {
		return err
	}
	switch {
	case c.Compute.Workers < 0:
		return fmt.Errorf("%w: compute.workers must be >= 0", ErrInvalid)
	case c.Compute.Accelerator != "" && c.Compute.Accelerator != "emulator":
		return fmt.Errorf("%w: compute.accelerator must be \"emulator\" or empty", ErrInvalid)
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	case c.Server.RateLimit < 0 || c.Server.RateBurst < 0:
		return fmt.Errorf("%w: server rate limit must be >= 0", ErrInvalid)
	case c.Server.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: server.max_body_bytes must be > 0", ErrInvalid)
	case c.Cache.TTL < 0:
		return fmt.Errorf("%w: cache.ttl must be >= 0", ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	return nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

type lookupFunc func(key string) (string, bool)

// envOverrides applies TSDIST_* variables, keeping the first parse error.
type envOverrides struct {
	lookup lookupFunc
	err    error
}

func (e *envOverrides) value(key string) (string, bool) {
	v, ok := e.lookup(key)

	return v, ok && v != "" && e.err == nil
}

func (e *envOverrides) fail(key, v string, err error) {
	e.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
}

func (e *envOverrides) str(key string, dst *string) {
	if v, ok := e.value(key); ok {
		*dst = v
	}
}

func (e *envOverrides) boolean(key string, dst *bool) {
	if v, ok := e.value(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)

			return
		}
		*dst = b
	}
}

func (e *envOverrides) integer(key string, dst *int) {
	if v, ok := e.value(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)

			return
		}
		*dst = n
	}
}

func (e *envOverrides) float(key string, dst *float64) {
	if v, ok := e.value(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)

			return
		}
		*dst = f
	}
}

func (e *envOverrides) duration(key string, dst *time.Duration) {
	if v, ok := e.value(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)

			return
		}
		*dst = d
	}
}

// applyEnvOverrides applies TSDIST_* variables; malformed values are errors.
func applyEnvOverrides(c *Config, lookup lookupFunc) error {
	e := &envOverrides{lookup: lookup}
	e.boolean("TSDIST_PARALLEL", &c.Compute.Parallel)
	e.integer("TSDIST_WORKERS", &c.Compute.Workers)
	e.str("TSDIST_DEVICE", &c.Compute.Device)
	e.str("TSDIST_ACCELERATOR", &c.Compute.Accelerator)
	e.str("TSDIST_ADDR", &c.Server.Addr)
	e.float("TSDIST_RATE_LIMIT", &c.Server.RateLimit)
	e.boolean("TSDIST_CACHE_ENABLED", &c.Cache.Enabled)
	e.str("TSDIST_REDIS_ADDR", &c.Cache.RedisAddr)
	e.duration("TSDIST_CACHE_TTL", &c.Cache.TTL)
	e.str("TSDIST_LOG_LEVEL", &c.Log.Level)

	return e.err
}
