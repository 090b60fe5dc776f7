package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"lrucache/internal/cache"
)

// A Config represents all configuration of the tool
type Config struct {
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
	Bench BenchConfig `yaml:"bench"`
}

// A CacheConfig represents settings for cache
type CacheConfig struct {
	Capacity int    `yaml:"capacity"`
	Policy   string `yaml:"policy"`
}

// A LogConfig represents settings for logger
type LogConfig struct {
	Level string `yaml:"level"`
}

// A BenchConfig represents settings for generated workloads
type BenchConfig struct {
	Ops  int    `yaml:"ops"`
	Keys int    `yaml:"keys"`
	Seed uint64 `yaml:"seed"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Cache: CacheConfig{Capacity: 10, Policy: string(cache.PolicyLRU)},
		Log:   LogConfig{Level: "info"},
		Bench: BenchConfig{Ops: 100000, Keys: 1000, Seed: 1},
	}
}

// LoadConfig loads data into Config structure from a file.
// A missing file is not an error, defaults are used instead
func LoadConfig(configPath string) (*Config, error) {
	config := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	}
	if err := config.loadEnv("deployments/.env"); err != nil {
		return nil, err
	}
	return config, nil
}

// loadEnv loads data into Config structure from the environmental variables
func (c *Config) loadEnv(envPath string) error {
	// the .env file is optional, variables may come from the real environment
	_ = godotenv.Load(envPath)

	if v := os.Getenv("LRU_CACHE_CAPACITY"); v != "" {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LRU_CACHE_CAPACITY %q: %w", v, err)
		}
		c.Cache.Capacity = capacity
	}
	if v := os.Getenv("LRU_CACHE_POLICY"); v != "" {
		c.Cache.Policy = v
	}
	if v := os.Getenv("LRU_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// EvictionPolicy returns the parsed eviction policy
func (c *Config) EvictionPolicy() (cache.Policy, error) {
	return cache.ParsePolicy(c.Cache.Policy)
}

// Validate checks if the most important fields are properly filled.
// Cache capacity is not checked here: the cache itself replaces values below 1 with its default
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	if _, err := c.EvictionPolicy(); err != nil {
		return err
	}
	if c.Bench.Ops < 0 {
		return fmt.Errorf("invalid bench ops: %d", c.Bench.Ops)
	}
	if c.Bench.Keys <= 0 {
		return errors.New("bench keys must be positive")
	}

	return nil
}
