// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Vault struct {
		Authority    string `yaml:"authority"`     // account allowed to fund rewards
		Developer    string `yaml:"developer"`     // fee recipient
		RewardFeeBps int64  `yaml:"reward_fee_bps"`
		ProfitFeeBps int64  `yaml:"profit_fee_bps"`
	} `yaml:"vault"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		ValuationCron string `yaml:"valuation_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults fill the gaps.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VAULT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("VAULT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VAULT_AUTHORITY"); v != "" {
		cfg.Vault.Authority = v
	}
	if v := os.Getenv("VAULT_DEVELOPER"); v != "" {
		cfg.Vault.Developer = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("VALUATION_CRON"); v != "" {
		cfg.Schedule.ValuationCron = v
	}

	// Defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Vault.Authority == "" {
		cfg.Vault.Authority = "owner"
	}
	if cfg.Vault.Developer == "" {
		cfg.Vault.Developer = "developer"
	}
	if cfg.Vault.RewardFeeBps == 0 {
		cfg.Vault.RewardFeeBps = 500
	}
	if cfg.Vault.ProfitFeeBps == 0 {
		cfg.Vault.ProfitFeeBps = 500
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/vault.db"
	}
	if cfg.Schedule.ValuationCron == "" {
		// Top of every hour
		cfg.Schedule.ValuationCron = "0 0 * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Vault.Authority == "" {
		return fmt.Errorf("vault.authority is required")
	}
	if c.Vault.Developer == "" {
		return fmt.Errorf("vault.developer is required")
	}
	if c.Vault.RewardFeeBps < 0 || c.Vault.RewardFeeBps > 10000 {
		return fmt.Errorf("vault.reward_fee_bps %d out of range", c.Vault.RewardFeeBps)
	}
	if c.Vault.ProfitFeeBps < 0 || c.Vault.ProfitFeeBps > 10000 {
		return fmt.Errorf("vault.profit_fee_bps %d out of range", c.Vault.ProfitFeeBps)
	}
	return nil
}
