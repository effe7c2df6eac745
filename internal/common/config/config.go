// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig                  `mapstructure:"app"`
	Server     ServerConfig               `mapstructure:"server"`
	Registry   RegistryConfig             `mapstructure:"registry"`
	Components map[string]ComponentConfig `mapstructure:"components"`
	Trackers   TrackersConfig             `mapstructure:"trackers"`
	Logging    LoggingConfig              `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the component host HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// RegistryConfig holds settings for component discovery.
type RegistryConfig struct {
	ManifestDir  string `mapstructure:"manifest_dir"`
	ManifestPath string `mapstructure:"manifest_path"`
}

// ComponentConfig holds the core settings applicable to every component.
type ComponentConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Timeout  int  `mapstructure:"timeout"` // milliseconds
	MaxItems int  `mapstructure:"max_items"`
}

// --- Tracker Integrations ---

// TrackersConfig holds default credentials and endpoints for the tracker
// integrations. Per-call inputs always take precedence over these defaults.
type TrackersConfig struct {
	AzureDevOps AzureDevOpsConfig `mapstructure:"azure_devops"`
	Jira        JiraConfig        `mapstructure:"jira"`
}

type AzureDevOpsConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Organization string `mapstructure:"organization"`
	Project      string `mapstructure:"project"`
	PATToken     string `mapstructure:"pat_token"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
}

type JiraConfig struct {
	SiteURL  string `mapstructure:"site_url"`
	Username string `mapstructure:"username"`
	APIToken string `mapstructure:"api_token"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
