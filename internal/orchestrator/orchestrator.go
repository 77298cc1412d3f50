package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// Dispatcher resolves agent names to capabilities and invokes them.
// agents.Registry is the production implementation.
type Dispatcher interface {
	Invoke(ctx context.Context, name string, payload map[string]any) (map[string]any, error)
}

// Orchestrator executes workflows and keeps an in-memory record of every run.
// Each Orchestrator owns its own history; instances do not share state.
type Orchestrator struct {
	registry    Dispatcher
	taskTimeout time.Duration
	logger      *DebugLogger

	mu        sync.RWMutex
	workflows map[string]*models.Workflow
	order     []string
	history   []*models.Workflow
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTaskTimeout bounds each agent invocation. Zero disables the bound,
// in which case a hung capability stalls its round indefinitely.
func WithTaskTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.taskTimeout = d
	}
}

// WithLogger attaches a debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// New creates an Orchestrator dispatching to the given registry.
func New(registry Dispatcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:  registry,
		workflows: make(map[string]*models.Workflow),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger != nil {
		setPackageLogger(o.logger)
	}
	return o
}

// CreateWorkflow builds tasks from the specs and runs them to completion,
// respecting dependency order. The call is synchronous: the returned Workflow
// is a terminal record. Failures are reported through the workflow's Status
// and Error fields; no error crosses this boundary.
func (o *Orchestrator) CreateWorkflow(ctx context.Context, workflowID string, specs []models.TaskSpec) *models.Workflow {
	if workflowID == "" {
		workflowID = uuid.NewString()
	}

	debugLog("[workflow %s] creating with %d tasks", workflowID, len(specs))
	start := time.Now()

	tasks := make([]*models.Task, len(specs))
	for i, spec := range specs {
		tasks[i] = models.NewTask(i, spec)
	}

	wf := o.execute(ctx, workflowID, tasks)
	wf.ExecutionTime = time.Since(start).Seconds()

	o.mu.Lock()
	if _, exists := o.workflows[workflowID]; !exists {
		o.order = append(o.order, workflowID)
	}
	o.workflows[workflowID] = wf
	o.history = append(o.history, wf)
	o.mu.Unlock()

	debugLog("[workflow %s] finished status=%s in %.2fs", workflowID, wf.Status, wf.ExecutionTime)
	return wf
}

// execute runs the round-based scheduling loop. Any panic escaping the
// per-task guards concludes the workflow failed with the panic message,
// preserving whatever task states exist at that point.
func (o *Orchestrator) execute(ctx context.Context, workflowID string, tasks []*models.Task) (wf *models.Workflow) {
	wf = &models.Workflow{
		WorkflowID: workflowID,
		Tasks:      tasks,
	}

	defer func() {
		if r := recover(); r != nil {
			wf.Status = models.WorkflowStatusFailed
			wf.Error = fmt.Sprintf("workflow execution failed: %v", r)
			debugLog("[workflow %s] executor panic: %v", workflowID, r)
		}
	}()

	g := newDepGraph(tasks)

	for !g.Drained() {
		ready := g.Ready()
		if len(ready) == 0 {
			stall := &StallError{TaskIDs: g.PendingIDs()}
			debugLog("[workflow %s] stall: %v", workflowID, stall.TaskIDs)
			wf.Status = models.WorkflowStatusFailed
			wf.Error = stall.Error()
			return wf
		}

		o.runRound(ctx, workflowID, ready)

		for _, task := range ready {
			if task.Status == models.TaskStatusCompleted {
				g.MarkCompleted(task.ID)
			}
		}
	}

	wf.FinalOutput = compileFinalOutput(tasks)
	wf.Status = models.WorkflowStatusCompleted
	return wf
}

// runRound executes every ready task concurrently and waits for the whole
// round to reach terminal states before returning.
func (o *Orchestrator) runRound(ctx context.Context, workflowID string, ready []*models.Task) {
	var wg sync.WaitGroup
	for _, task := range ready {
		wg.Add(1)
		go func(task *models.Task) {
			defer wg.Done()
			o.executeTask(ctx, workflowID, task)
		}(task)
	}
	wg.Wait()
}

// executeTask runs a single task to a terminal state. Capability errors and
// panics are recorded on the task and never propagate to sibling tasks.
func (o *Orchestrator) executeTask(ctx context.Context, workflowID string, task *models.Task) {
	defer func() {
		if r := recover(); r != nil {
			o.finishTask(task, nil, fmt.Errorf("agent panic: %v", r))
		}
	}()

	debugLog("[workflow %s] task %s starting with agent %s", workflowID, task.ID, task.Agent)
	task.Status = models.TaskStatusRunning

	taskCtx := ctx
	if o.taskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, o.taskTimeout)
		defer cancel()
	}

	result, err := o.registry.Invoke(taskCtx, task.Agent, task.InputData)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("task timed out after %s: %w", o.taskTimeout, err)
	}
	o.finishTask(task, result, err)
}

// finishTask writes the task's terminal state. This is the only place task
// results are recorded.
func (o *Orchestrator) finishTask(task *models.Task, result map[string]any, err error) {
	now := time.Now()
	task.CompletedAt = &now
	if err != nil {
		task.Status = models.TaskStatusFailed
		task.Error = err.Error()
		debugLog("task %s failed: %v", task.ID, err)
		return
	}
	task.Status = models.TaskStatusCompleted
	task.Result = result
	debugLog("task %s completed", task.ID)
}

// compileFinalOutput aggregates counts and per-task results for a fully
// drained task set. Failed tasks contribute nothing to the results mapping.
func compileFinalOutput(tasks []*models.Task) *models.FinalOutput {
	out := &models.FinalOutput{
		TotalTasks: len(tasks),
		Results:    make(map[string]map[string]any),
	}

	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			out.SuccessfulTasks++
		case models.TaskStatusFailed:
			out.FailedTasks++
		}
		if task.Result != nil {
			out.Results[task.ID] = task.Result
		}
	}

	out.Summary = fmt.Sprintf("Workflow completed with %d successful tasks", out.SuccessfulTasks)
	return out
}

// GetWorkflowStatus returns the record for a workflow ID.
func (o *Orchestrator) GetWorkflowStatus(workflowID string) (*models.Workflow, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	wf, ok := o.workflows[workflowID]
	return wf, ok
}

// ListWorkflows returns all workflow IDs in first-seen order.
func (o *Orchestrator) ListWorkflows() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ids := make([]string, len(o.order))
	copy(ids, o.order)
	return ids
}

// ExecutionHistory returns the append-only run history.
func (o *Orchestrator) ExecutionHistory() []*models.Workflow {
	o.mu.RLock()
	defer o.mu.RUnlock()
	history := make([]*models.Workflow, len(o.history))
	copy(history, o.history)
	return history
}
