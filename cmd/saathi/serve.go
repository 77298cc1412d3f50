package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/velamalamk2016-ui/aisaathi/internal/config"
	"github.com/velamalamk2016-ui/aisaathi/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workflow API over HTTP",
	Long: `Start the HTTP JSON API for executing and inspecting workflows.

Endpoints:
  GET  /health
  POST /api/agentic-workflow/execute
  GET  /api/agentic-workflow/status/{id}
  GET  /api/agentic-workflow/list
  GET  /api/agentic-workflow/history
  GET  /api/agentic-workflow/templates
  POST /api/agentic-workflow/templates/execute/{name}
  GET  /api/agentic-workflow/agents`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	registry, client := buildRegistry(cfg)
	orch, cleanup := buildOrchestrator(cfg, registry)
	defer cleanup()

	store := buildTemplateStore(cfg)
	defer store.Close()

	srv := server.New(addr, orch, registry, store)

	if client != nil {
		fmt.Printf("Model: %s\n", client.ModelName())
	} else {
		fmt.Println("No API key configured, agents will produce demo content")
	}
	fmt.Printf("Listening on %s\n", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
