package orchestrator

import (
	"sort"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// depGraph tracks dependency satisfaction across scheduling rounds.
// There is no upfront cycle detection: a cycle, a reference to a missing task
// and a dependency on a failed task all surface the same way, as a round in
// which no task is ready while pending tasks remain.
type depGraph struct {
	// tasks holds the workflow's tasks in submission order.
	tasks []*models.Task
	// completed tracks which task IDs satisfy dependency checks.
	completed map[string]bool
}

// newDepGraph creates a graph over the given tasks.
func newDepGraph(tasks []*models.Task) *depGraph {
	return &depGraph{
		tasks:     tasks,
		completed: make(map[string]bool),
	}
}

// Ready returns the tasks that are pending and whose every dependency has
// completed. These can be executed in parallel.
func (g *depGraph) Ready() []*models.Task {
	var ready []*models.Task
	for _, task := range g.tasks {
		if task.Status != models.TaskStatusPending {
			continue
		}

		satisfied := true
		for _, dep := range task.Dependencies {
			if !g.completed[dep] {
				satisfied = false
				break
			}
		}
		if satisfied {
			ready = append(ready, task)
		}
	}
	return ready
}

// MarkCompleted records that a task satisfies future dependency checks.
func (g *depGraph) MarkCompleted(taskID string) {
	g.completed[taskID] = true
}

// PendingIDs returns the IDs of tasks still pending, sorted for stable
// error messages.
func (g *depGraph) PendingIDs() []string {
	var ids []string
	for _, task := range g.tasks {
		if task.Status == models.TaskStatusPending {
			ids = append(ids, task.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Drained returns true when no pending tasks remain.
func (g *depGraph) Drained() bool {
	for _, task := range g.tasks {
		if task.Status == models.TaskStatusPending {
			return false
		}
	}
	return true
}
