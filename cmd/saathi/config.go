package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/velamalamk2016-ui/aisaathi/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify Saathi configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/saathi/config.yaml
Project-specific overrides can be placed in .saathi.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.Anthropic.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_bedrock: %t\n", cfg.Anthropic.UseBedrock)
	fmt.Printf("anthropic.aws_region: %s\n", cfg.Anthropic.AWSRegion)
	fmt.Printf("anthropic.aws_profile: %s\n", cfg.Anthropic.AWSProfile)
	fmt.Printf("server.addr: %s\n", cfg.Server.Addr)
	fmt.Printf("orchestrator.task_timeout: %s\n", cfg.Orchestrator.TaskTimeout)
	fmt.Printf("orchestrator.log_path: %s\n", cfg.Orchestrator.LogPath)
	fmt.Printf("orchestrator.export_path: %s\n", cfg.Orchestrator.ExportPath)
	fmt.Printf("templates.dir: %s\n", cfg.Templates.Dir)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if cfg.Anthropic.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "anthropic.use_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return cfg.Anthropic.AWSProfile, nil
	case "server.addr":
		return cfg.Server.Addr, nil
	case "orchestrator.task_timeout":
		return cfg.Orchestrator.TaskTimeout.String(), nil
	case "orchestrator.log_path":
		return cfg.Orchestrator.LogPath, nil
	case "orchestrator.export_path":
		return cfg.Orchestrator.ExportPath, nil
	case "templates.dir":
		return cfg.Templates.Dir, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for use_bedrock: %w", err)
		}
		cfg.Anthropic.UseBedrock = b
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "server.addr":
		cfg.Server.Addr = value
	case "orchestrator.task_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for task_timeout: %w", err)
		}
		cfg.Orchestrator.TaskTimeout = d
	case "orchestrator.log_path":
		cfg.Orchestrator.LogPath = value
	case "orchestrator.export_path":
		cfg.Orchestrator.ExportPath = value
	case "templates.dir":
		cfg.Templates.Dir = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
