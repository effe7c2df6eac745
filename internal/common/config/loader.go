// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like AZURE_DEVOPS_PAT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from multiple possible locations so binaries and
// tests can run from different directories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig applies direct env fallbacks for values still empty
// after placeholder expansion.
func overrideEmptyConfig(cfg *Config) {
	// Azure DevOps
	if cfg.Trackers.AzureDevOps.Organization == "" {
		if val := os.Getenv("AZURE_DEVOPS_ORGANIZATION"); val != "" {
			cfg.Trackers.AzureDevOps.Organization = val
		}
	}
	if cfg.Trackers.AzureDevOps.Project == "" {
		if val := os.Getenv("AZURE_DEVOPS_PROJECT"); val != "" {
			cfg.Trackers.AzureDevOps.Project = val
		}
	}
	if cfg.Trackers.AzureDevOps.PATToken == "" {
		if val := os.Getenv("AZURE_DEVOPS_PAT"); val != "" {
			cfg.Trackers.AzureDevOps.PATToken = val
		}
	}

	// Jira
	if cfg.Trackers.Jira.SiteURL == "" {
		if val := os.Getenv("JIRA_SITE_URL"); val != "" {
			cfg.Trackers.Jira.SiteURL = val
		}
	}
	if cfg.Trackers.Jira.Username == "" {
		if val := os.Getenv("JIRA_USERNAME"); val != "" {
			cfg.Trackers.Jira.Username = val
		}
	}
	if cfg.Trackers.Jira.APIToken == "" {
		if val := os.Getenv("JIRA_API_TOKEN"); val != "" {
			cfg.Trackers.Jira.APIToken = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	// Registry defaults
	if cfg.Registry.ManifestPath == "" {
		cfg.Registry.ManifestPath = "configs/component-manifest.json"
	}

	// Tracker defaults
	if cfg.Trackers.AzureDevOps.BaseURL == "" {
		cfg.Trackers.AzureDevOps.BaseURL = "https://dev.azure.com"
	}
	if cfg.Trackers.AzureDevOps.Timeout == 0 {
		cfg.Trackers.AzureDevOps.Timeout = 30000
	}
	if cfg.Trackers.Jira.Timeout == 0 {
		cfg.Trackers.Jira.Timeout = 30000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Component defaults
	for key, comp := range cfg.Components {
		if comp.Timeout == 0 {
			comp.Timeout = 30000
		}
		if comp.MaxItems == 0 {
			comp.MaxItems = 50
		}
		cfg.Components[key] = comp
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	for name, comp := range cfg.Components {
		if comp.Timeout < 0 {
			return fmt.Errorf("components.%s.timeout must not be negative", name)
		}
		if comp.MaxItems < 0 {
			return fmt.Errorf("components.%s.max_items must not be negative", name)
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetComponentConfig retrieves component-specific configuration with fallback to defaults
func GetComponentConfig(cfg *Config, componentName string) ComponentConfig {
	if comp, exists := cfg.Components[componentName]; exists {
		return comp
	}

	return ComponentConfig{
		Enabled:  true,
		Timeout:  30000,
		MaxItems: 50,
	}
}

// IsComponentEnabled checks if a specific component is enabled
func IsComponentEnabled(cfg *Config, componentName string) bool {
	if comp, exists := cfg.Components[componentName]; exists {
		return comp.Enabled
	}
	return true
}
