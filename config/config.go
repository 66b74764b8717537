package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Environment string      `yaml:"environment"`
	API         APIConfig   `yaml:"api"`
	Store       StoreConfig `yaml:"store"`
	Cache       CacheConfig `yaml:"cache"`
	Loan        LoanConfig  `yaml:"loan"`
	Stub        StubConfig  `yaml:"stub"`
}

// APIConfig holds the inventory backend connection settings.
type APIConfig struct {
	BaseURL         string        `yaml:"base_url"`
	TimeoutSeconds  int           `yaml:"timeout_seconds"`
	Timeout         time.Duration `yaml:"-"` // Ignored by YAML parser
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
}

// StoreConfig holds the local persistent store settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig controls the reference-data lookup cache used during search
// aggregation.
type CacheConfig struct {
	TTLSeconds     int           `yaml:"ttl_seconds"`
	TTL            time.Duration `yaml:"-"`
	CleanupSeconds int           `yaml:"cleanup_seconds"`
	Cleanup        time.Duration `yaml:"-"`
}

// LoanConfig holds the loan scheduling settings.
type LoanConfig struct {
	PeriodDays int `yaml:"period_days"`
}

// StubConfig configures the local fixture API server.
type StubConfig struct {
	Port int `yaml:"port"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied, for use when
// no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with working defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5105"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 15
	}
	cfg.API.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second

	if cfg.API.RateLimitPerSec <= 0 {
		cfg.API.RateLimitPerSec = 20
	}
	if cfg.API.RateLimitBurst <= 0 {
		cfg.API.RateLimitBurst = 10
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = "lagerstyring.db"
	}

	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 300
	}
	cfg.Cache.TTL = time.Duration(cfg.Cache.TTLSeconds) * time.Second
	if cfg.Cache.CleanupSeconds <= 0 {
		cfg.Cache.CleanupSeconds = 600
	}
	cfg.Cache.Cleanup = time.Duration(cfg.Cache.CleanupSeconds) * time.Second

	if cfg.Loan.PeriodDays <= 0 {
		cfg.Loan.PeriodDays = 7
	}

	if cfg.Stub.Port <= 0 {
		cfg.Stub.Port = 5105
	}
}
