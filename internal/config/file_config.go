// Package config loads and merges the console's TOML configuration.
package config

import (
	"fmt"
	"time"
)

// Defaults for values not present in the file.
const (
	DefaultAPIURL          = "http://localhost:3999"
	DefaultWalletURL       = "http://localhost:8787"
	DefaultRefreshInterval = 30 * time.Second
	DefaultPollInterval    = 5 * time.Second
	DefaultPollMaxAttempts = 15
)

// FileConfig represents the raw fundctl.toml contents. All fields are
// pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	NoColor *bool `toml:"no_color"`
	Verbose *bool `toml:"verbose"`
	JSON    *bool `toml:"json"`

	// Chain endpoints
	APIURL    *string `toml:"api_url"`
	WalletURL *string `toml:"wallet_url"`

	// Contract identity
	ContractAddress *string `toml:"contract_address"`
	ContractName    *string `toml:"contract_name"`

	// Timing
	RefreshInterval *string `toml:"refresh_interval"`
	PollInterval    *string `toml:"poll_interval"`
	PollMaxAttempts *int    `toml:"poll_max_attempts"`
}

// Config is the resolved configuration with defaults applied.
type Config struct {
	APIURL          string
	WalletURL       string
	ContractAddress string
	ContractName    string
	RefreshInterval time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Resolve applies defaults and parses durations.
func (f *FileConfig) Resolve() (*Config, error) {
	cfg := &Config{
		APIURL:          DefaultAPIURL,
		WalletURL:       DefaultWalletURL,
		RefreshInterval: DefaultRefreshInterval,
		PollInterval:    DefaultPollInterval,
		PollMaxAttempts: DefaultPollMaxAttempts,
	}

	if f.APIURL != nil {
		cfg.APIURL = *f.APIURL
	}
	if f.WalletURL != nil {
		cfg.WalletURL = *f.WalletURL
	}
	if f.ContractAddress != nil {
		cfg.ContractAddress = *f.ContractAddress
	}
	if f.ContractName != nil {
		cfg.ContractName = *f.ContractName
	}
	if f.RefreshInterval != nil {
		d, err := time.ParseDuration(*f.RefreshInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh_interval: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if f.PollInterval != nil {
		d, err := time.ParseDuration(*f.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if f.PollMaxAttempts != nil {
		cfg.PollMaxAttempts = *f.PollMaxAttempts
	}

	return cfg, cfg.Validate()
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.ContractAddress == "" || c.ContractName == "" {
		return fmt.Errorf("contract_address and contract_name are required")
	}
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("refresh_interval must be at least 1s")
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("poll_interval must be at least 1s")
	}
	if c.PollMaxAttempts < 1 {
		return fmt.Errorf("poll_max_attempts must be at least 1")
	}
	return nil
}
