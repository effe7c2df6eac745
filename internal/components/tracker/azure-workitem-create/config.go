package azureworkitemcreate

import (
	"fmt"
	"time"

	"flow-components/internal/common/config"
)

type Config struct {
	Enabled      bool          `mapstructure:"enabled"`
	Timeout      time.Duration `mapstructure:"timeout"`
	BaseURL      string        `mapstructure:"base_url"`
	Organization string        `mapstructure:"organization"`
	Project      string        `mapstructure:"project"`
	PATToken     string        `mapstructure:"pat_token"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 30 * time.Second,
		BaseURL: "https://dev.azure.com",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
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
		}

		if appConfig.Trackers.AzureDevOps.BaseURL != "" {
			cfg.BaseURL = appConfig.Trackers.AzureDevOps.BaseURL
		}
		cfg.Organization = appConfig.Trackers.AzureDevOps.Organization
		cfg.Project = appConfig.Trackers.AzureDevOps.Project
		cfg.PATToken = appConfig.Trackers.AzureDevOps.PATToken
	}

	return cfg
}
