package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// SaveResults writes the full execution history to a JSON file.
// Creates parent directories as needed.
func (o *Orchestrator) SaveResults(path string) error {
	history := o.ExecutionHistory()

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// LoadResults reads an execution history previously written by SaveResults.
func LoadResults(path string) ([]*models.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var history []*models.Workflow
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return history, nil
}
