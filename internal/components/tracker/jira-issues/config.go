package jiraissues

import (
	"fmt"
	"time"

	"flow-components/internal/common/config"
)

type Config struct {
	Enabled    bool          `mapstructure:"enabled"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxResults int           `mapstructure:"max_results"`
	SiteURL    string        `mapstructure:"site_url"`
	Username   string        `mapstructure:"username"`
	APIToken   string        `mapstructure:"api_token"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Timeout:    30 * time.Second,
		MaxResults: 50,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()

	if appConfig != nil {
		if compCfg, exists := appConfig.Components[ComponentName]; exists {
			cfg.Enabled = compCfg.Enabled
			if compCfg.Timeout > 0 {
				cfg.Timeout = config.GetDuration(compCfg.Timeout)
			}
			if compCfg.MaxItems > 0 {
				cfg.MaxResults = compCfg.MaxItems
			}
		}

		cfg.SiteURL = appConfig.Trackers.Jira.SiteURL
		cfg.Username = appConfig.Trackers.Jira.Username
		cfg.APIToken = appConfig.Trackers.Jira.APIToken
	}

	return cfg
}
