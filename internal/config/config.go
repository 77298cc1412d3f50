// Package config handles configuration loading and management for Saathi.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for Saathi.
type Config struct {
	Anthropic    AnthropicConfig    `mapstructure:"anthropic" yaml:"anthropic"`
	Server       ServerConfig       `mapstructure:"server" yaml:"server"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator" yaml:"orchestrator"`
	Templates    TemplatesConfig    `mapstructure:"templates" yaml:"templates"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	// APIKey is the Anthropic API key. Empty puts the agents in demo mode.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// Model is the Claude model to use.
	Model string `mapstructure:"model" yaml:"model"`
	// UseBedrock routes requests through AWS Bedrock instead of the direct API.
	UseBedrock bool `mapstructure:"use_bedrock" yaml:"use_bedrock"`
	// AWSRegion is the AWS region for Bedrock.
	AWSRegion string `mapstructure:"aws_region" yaml:"aws_region"`
	// AWSProfile is the optional AWS profile name.
	AWSProfile string `mapstructure:"aws_profile" yaml:"aws_profile"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// OrchestratorConfig holds workflow execution settings.
type OrchestratorConfig struct {
	// TaskTimeout bounds each agent invocation. Zero disables the bound.
	TaskTimeout time.Duration `mapstructure:"task_timeout" yaml:"task_timeout"`
	// LogPath is the debug log file. Empty disables debug logging.
	LogPath string `mapstructure:"log_path" yaml:"log_path"`
	// ExportPath is where `saathi run` writes the execution history.
	ExportPath string `mapstructure:"export_path" yaml:"export_path"`
}

// TemplatesConfig holds workflow template settings.
type TemplatesConfig struct {
	// Dir is an optional directory of YAML workflow templates, loaded in
	// addition to the built-in ones.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, SAATHI_*)
// 2. Project config (.saathi.yaml in current directory or parent)
// 3. User config (~/.config/saathi/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("SAATHI")

	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("server.addr", "SAATHI_SERVER_ADDR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	dir := getUserConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("server.addr", ":8001")

	v.SetDefault("orchestrator.task_timeout", "2m")
	v.SetDefault("orchestrator.log_path", "")
	v.SetDefault("orchestrator.export_path", "workflow_results.json")

	v.SetDefault("templates.dir", "")
}

// getUserConfigDir returns the XDG config directory for Saathi.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "saathi")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "saathi")
	}
	return filepath.Join(home, ".config", "saathi")
}

// findProjectConfig searches for .saathi.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".saathi.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8001",
		},
		Orchestrator: OrchestratorConfig{
			TaskTimeout: 2 * time.Minute,
			ExportPath:  "workflow_results.json",
		},
	}
}
