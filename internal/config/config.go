package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete layerlint configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// RootPackages are the project's top-level packages; scanning starts
	// there and containers must live under one of them.
	RootPackages []string `json:"rootPackages" mapstructure:"rootPackages"`

	// ContractFile is the path to the contract declaration file, relative
	// to the repo root.
	ContractFile string `json:"contractFile" mapstructure:"contractFile"`

	// Workers bounds concurrent layer-pair checks; 0 means one per CPU.
	Workers int `json:"workers" mapstructure:"workers"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains import scan configuration
type ScanConfig struct {
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	MaxFiles         int      `json:"maxFiles" mapstructure:"maxFiles"`
	Ignore           []string `json:"ignore" mapstructure:"ignore"`
}

// CacheConfig contains scan cache configuration
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:      1,
		RootPackages: []string{},
		ContractFile: "CONTRACTS.toml",
		Workers:      0,
		Scan: ScanConfig{
			MaxFileSizeBytes: 1000000,
			MaxFiles:         10000,
			Ignore:           []string{"node_modules", "build", "dist", "vendor", ".git", "__pycache__"},
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from .layerlint/config.json.
// Missing config files are not an error: defaults apply.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("contractFile", defaults.ContractFile)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("scan.maxFileSizeBytes", defaults.Scan.MaxFileSizeBytes)
	v.SetDefault("scan.maxFiles", defaults.Scan.MaxFiles)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".layerlint"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .layerlint/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".layerlint")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Message: "workers must not be negative"}
	}
	if c.Scan.MaxFileSizeBytes <= 0 {
		return &ConfigError{Field: "scan.maxFileSizeBytes", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
