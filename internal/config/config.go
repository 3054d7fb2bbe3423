// Package config loads marketcrew configuration from YAML with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all marketcrew configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM configures the reasoning capability provider.
	LLM LLMConfig `yaml:"llm"`

	// Catalog configures the seller-offer store.
	Catalog CatalogConfig `yaml:"catalog"`

	// Events configures the optional run audit publisher.
	Events EventsConfig `yaml:"events"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the reasoning capability.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openrouter, anthropic, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// TimeoutDuration parses the configured timeout, defaulting to 120s.
func (c LLMConfig) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 120 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// CatalogConfig configures the catalog store backend.
type CatalogConfig struct {
	Backend   string `yaml:"backend"` // json, sqlite, redis
	Path      string `yaml:"path"`    // json file or sqlite database path
	RedisAddr string `yaml:"redis_addr"`
	Watch     bool   `yaml:"watch"` // reload the json catalog on file change
}

// EventsConfig configures the Kafka run audit publisher.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Broker  string `yaml:"broker"`
	Topic   string `yaml:"topic"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Name:    "marketcrew",
		Version: "0.3.0",
		Catalog: CatalogConfig{
			Backend: "json",
			Path:    "product_database.json",
		},
		Events: EventsConfig{
			Topic: "marketcrew.runs",
		},
	}
}

// Load reads the YAML config at path, applies defaults and env overrides.
// A missing file is not an error: defaults plus env overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides layers environment variables over the file values.
// Provider keys are checked in fixed precedence: OPENROUTER > ANTHROPIC >
// GEMINI. The first key present wins; an explicitly configured provider is
// never overridden, only its key is filled in.
func (c *Config) applyEnvOverrides() {
	providers := []struct {
		envVar   string
		provider string
	}{
		{"OPENROUTER_API_KEY", "openrouter"},
		{"ANTHROPIC_API_KEY", "anthropic"},
		{"GEMINI_API_KEY", "gemini"},
	}
	for _, p := range providers {
		key := os.Getenv(p.envVar)
		if key == "" {
			continue
		}
		c.LLM.APIKey = key
		if c.LLM.Provider == "" {
			c.LLM.Provider = p.provider
		}
		break
	}

	if v := os.Getenv("MARKETCREW_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("KAFKA_BROKER"); v != "" {
		c.Events.Broker = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Catalog.RedisAddr = v
	}
}
