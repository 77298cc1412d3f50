package main

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/velamalamk2016-ui/aisaathi/internal/agents"
	"github.com/velamalamk2016-ui/aisaathi/internal/config"
	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
	"github.com/velamalamk2016-ui/aisaathi/internal/orchestrator"
	"github.com/velamalamk2016-ui/aisaathi/internal/templates"
)

// buildRegistry creates the agent registry, backed by a real model client
// when the config provides credentials and by demo content otherwise.
func buildRegistry(cfg *config.Config) (*agents.Registry, *genai.Client) {
	if cfg.Anthropic.APIKey == "" && os.Getenv("ANTHROPIC_API_KEY") == "" && !cfg.Anthropic.UseBedrock {
		return agents.NewRegistry(nil), nil
	}

	client, err := genai.NewClient(genai.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: model client unavailable, using demo content: %v\n", err)
		return agents.NewRegistry(nil), nil
	}

	return agents.NewRegistry(client), client
}

// buildOrchestrator creates the orchestrator from config.
func buildOrchestrator(cfg *config.Config, registry *agents.Registry) (*orchestrator.Orchestrator, func()) {
	opts := []orchestrator.Option{}
	cleanup := func() {}

	if cfg.Orchestrator.TaskTimeout > 0 {
		opts = append(opts, orchestrator.WithTaskTimeout(cfg.Orchestrator.TaskTimeout))
	}
	if cfg.Orchestrator.LogPath != "" {
		logger, err := orchestrator.NewDebugLogger(cfg.Orchestrator.LogPath)
		if err == nil {
			opts = append(opts, orchestrator.WithLogger(logger))
			cleanup = func() { logger.Close() }
		}
	}

	return orchestrator.New(registry, opts...), cleanup
}

// buildTemplateStore creates the template store, loading custom templates
// from the configured directory when one is set.
func buildTemplateStore(cfg *config.Config) *templates.Store {
	store := templates.NewStore()
	if cfg.Templates.Dir != "" {
		if err := store.LoadDir(cfg.Templates.Dir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: loading templates from %s: %v\n", cfg.Templates.Dir, err)
		}
	}
	return store
}
