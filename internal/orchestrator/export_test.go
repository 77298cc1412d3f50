package orchestrator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

func TestSaveAndLoadResultsRoundTrip(t *testing.T) {
	o := New(&recordingDispatcher{})
	ctx := context.Background()

	o.CreateWorkflow(ctx, "good", []models.TaskSpec{
		{ID: "a", Agent: "ok"},
		{ID: "b", Agent: "fail", Dependencies: []string{"a"}},
	})
	o.CreateWorkflow(ctx, "stalled", []models.TaskSpec{
		{ID: "x", Agent: "ok", Dependencies: []string{"y"}},
		{ID: "y", Agent: "ok", Dependencies: []string{"x"}},
	})

	path := filepath.Join(t.TempDir(), "results", "history.json")
	if err := o.SaveResults(path); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	loaded, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}

	original := o.ExecutionHistory()
	if len(loaded) != len(original) {
		t.Fatalf("expected %d workflows, got %d", len(original), len(loaded))
	}

	for i, want := range original {
		got := loaded[i]
		if got.WorkflowID != want.WorkflowID {
			t.Errorf("workflow %d: id %q != %q", i, got.WorkflowID, want.WorkflowID)
		}
		if got.Status != want.Status {
			t.Errorf("workflow %s: status %q != %q", want.WorkflowID, got.Status, want.Status)
		}
		if got.ExecutionTime != want.ExecutionTime {
			t.Errorf("workflow %s: execution time %v != %v", want.WorkflowID, got.ExecutionTime, want.ExecutionTime)
		}
		if got.Error != want.Error {
			t.Errorf("workflow %s: error %q != %q", want.WorkflowID, got.Error, want.Error)
		}
		if len(got.Tasks) != len(want.Tasks) {
			t.Fatalf("workflow %s: task count mismatch", want.WorkflowID)
		}
		for j, wt := range want.Tasks {
			if got.Tasks[j].ID != wt.ID || got.Tasks[j].Status != wt.Status {
				t.Errorf("workflow %s task %s: state not preserved", want.WorkflowID, wt.ID)
			}
			if got.Tasks[j].Error != wt.Error {
				t.Errorf("workflow %s task %s: error not preserved", want.WorkflowID, wt.ID)
			}
		}
	}
}

func TestLoadResultsMissingFile(t *testing.T) {
	if _, err := LoadResults(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
