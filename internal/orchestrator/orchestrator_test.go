package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// recordingDispatcher executes tasks like a real registry would, while
// recording the order in which agent invocations started. Behavior per agent
// name: "fail" errors, "panic" panics, "slow" blocks until its context is
// done, anything else succeeds.
type recordingDispatcher struct {
	mu    sync.Mutex
	calls []string
	delay time.Duration
}

func (d *recordingDispatcher) Invoke(ctx context.Context, name string, payload map[string]any) (map[string]any, error) {
	d.mu.Lock()
	d.calls = append(d.calls, name)
	d.mu.Unlock()

	switch name {
	case "fail":
		return nil, fmt.Errorf("simulated agent failure")
	case "panic":
		panic("simulated agent panic")
	case "slow":
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	return map[string]any{"success": true, "agent": name}, nil
}

func (d *recordingDispatcher) invocations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func taskStatus(wf *models.Workflow, id string) models.TaskStatus {
	for _, task := range wf.Tasks {
		if task.ID == id {
			return task.Status
		}
	}
	return ""
}

func TestCreateWorkflowNoDependencies(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "wf-1", []models.TaskSpec{
		{ID: "a", Agent: "ok"},
		{ID: "b", Agent: "ok"},
		{ID: "c", Agent: "ok"},
	})

	if wf.Status != models.WorkflowStatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", wf.Status, wf.Error)
	}
	if wf.FinalOutput.TotalTasks != 3 || wf.FinalOutput.SuccessfulTasks != 3 || wf.FinalOutput.FailedTasks != 0 {
		t.Errorf("unexpected final output: %+v", wf.FinalOutput)
	}
	for _, task := range wf.Tasks {
		if task.Status != models.TaskStatusCompleted {
			t.Errorf("task %s not completed: %s", task.ID, task.Status)
		}
		if task.CompletedAt == nil {
			t.Errorf("task %s missing CompletedAt", task.ID)
		}
	}
}

func TestCreateWorkflowDefaultTaskIDs(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "wf-ids", []models.TaskSpec{
		{Agent: "ok"},
		{Agent: "ok"},
	})

	if wf.Tasks[0].ID != "task_0" || wf.Tasks[1].ID != "task_1" {
		t.Errorf("expected default IDs task_0/task_1, got %s/%s", wf.Tasks[0].ID, wf.Tasks[1].ID)
	}
}

func TestCreateWorkflowGeneratesID(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "", []models.TaskSpec{{Agent: "ok"}})
	if wf.WorkflowID == "" {
		t.Error("expected a generated workflow ID")
	}
}

// plan runs alone in round 1, then materials and quiz run concurrently
// in round 2.
func TestDependencyOrderAcrossRounds(t *testing.T) {
	d := &recordingDispatcher{}
	o := New(d)

	wf := o.CreateWorkflow(context.Background(), "lesson", []models.TaskSpec{
		{ID: "plan", Agent: "plan_agent"},
		{ID: "materials", Agent: "materials_agent", Dependencies: []string{"plan"}},
		{ID: "quiz", Agent: "quiz_agent", Dependencies: []string{"plan"}},
	})

	if wf.Status != models.WorkflowStatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", wf.Status, wf.Error)
	}
	if wf.FinalOutput.SuccessfulTasks != 3 || wf.FinalOutput.FailedTasks != 0 {
		t.Errorf("unexpected counts: %+v", wf.FinalOutput)
	}

	calls := d.invocations()
	if len(calls) != 3 {
		t.Fatalf("expected 3 invocations, got %v", calls)
	}
	if calls[0] != "plan_agent" {
		t.Errorf("plan must run first, got order %v", calls)
	}
}

func TestCycleFailsWorkflow(t *testing.T) {
	d := &recordingDispatcher{}
	o := New(d)

	wf := o.CreateWorkflow(context.Background(), "cyclic", []models.TaskSpec{
		{ID: "a", Agent: "ok", Dependencies: []string{"b"}},
		{ID: "b", Agent: "ok", Dependencies: []string{"a"}},
	})

	if wf.Status != models.WorkflowStatusFailed {
		t.Fatalf("expected failed workflow, got %s", wf.Status)
	}
	if !strings.Contains(wf.Error, "a") || !strings.Contains(wf.Error, "b") {
		t.Errorf("error should identify both stalled tasks: %q", wf.Error)
	}
	if taskStatus(wf, "a") != models.TaskStatusPending || taskStatus(wf, "b") != models.TaskStatusPending {
		t.Error("cyclic tasks must never leave pending")
	}
	if len(d.invocations()) != 0 {
		t.Errorf("no agent should run for a fully cyclic graph: %v", d.invocations())
	}
	if wf.FinalOutput != nil {
		t.Error("stalled workflow must not carry a final output")
	}
}

func TestMissingDependencyFailsWorkflow(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "missing-dep", []models.TaskSpec{
		{ID: "a", Agent: "ok", Dependencies: []string{"ghost"}},
	})

	if wf.Status != models.WorkflowStatusFailed {
		t.Fatalf("expected failed workflow, got %s", wf.Status)
	}
	if !strings.Contains(wf.Error, "a") {
		t.Errorf("error should list the stalled task: %q", wf.Error)
	}
}

// A cycle detected mid-run preserves the completed work of earlier rounds.
func TestPartialProgressBeforeStall(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "partial", []models.TaskSpec{
		{ID: "free", Agent: "ok"},
		{ID: "x", Agent: "ok", Dependencies: []string{"y"}},
		{ID: "y", Agent: "ok", Dependencies: []string{"x"}},
	})

	if wf.Status != models.WorkflowStatusFailed {
		t.Fatalf("expected failed workflow, got %s", wf.Status)
	}
	if taskStatus(wf, "free") != models.TaskStatusCompleted {
		t.Error("unblocked task should have completed before the stall")
	}
	if !strings.Contains(wf.Error, "x") || !strings.Contains(wf.Error, "y") {
		t.Errorf("error should list only the stalled tasks: %q", wf.Error)
	}
}

func TestFailedTaskDoesNotFailWorkflow(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "partial-failure", []models.TaskSpec{
		{ID: "good", Agent: "ok"},
		{ID: "bad", Agent: "fail"},
	})

	if wf.Status != models.WorkflowStatusCompleted {
		t.Fatalf("task failure alone must not fail the workflow: %s (%s)", wf.Status, wf.Error)
	}
	if wf.Error != "" {
		t.Errorf("workflow error must stay empty on per-task failure: %q", wf.Error)
	}
	if wf.FinalOutput.SuccessfulTasks != 1 || wf.FinalOutput.FailedTasks != 1 {
		t.Errorf("unexpected counts: %+v", wf.FinalOutput)
	}
	if taskStatus(wf, "bad") != models.TaskStatusFailed {
		t.Error("failing agent should fail its task")
	}
	if _, ok := wf.FinalOutput.Results["bad"]; ok {
		t.Error("failed tasks must not contribute to the results mapping")
	}
	if _, ok := wf.FinalOutput.Results["good"]; !ok {
		t.Error("completed task result missing from results mapping")
	}
}

// A task behind a failed dependency never runs, and the run concludes failed
// due to the resulting stall.
func TestDependencyOnFailedTaskStalls(t *testing.T) {
	d := &recordingDispatcher{}
	o := New(d)

	wf := o.CreateWorkflow(context.Background(), "blocked", []models.TaskSpec{
		{ID: "broken", Agent: "fail"},
		{ID: "downstream", Agent: "ok", Dependencies: []string{"broken"}},
	})

	if wf.Status != models.WorkflowStatusFailed {
		t.Fatalf("expected stall failure, got %s", wf.Status)
	}
	if taskStatus(wf, "downstream") != models.TaskStatusPending {
		t.Error("task behind failed dependency must stay pending")
	}
	if !strings.Contains(wf.Error, "downstream") {
		t.Errorf("stall error should list the blocked task: %q", wf.Error)
	}
	for _, call := range d.invocations() {
		if call == "ok" {
			t.Error("blocked task must never be invoked")
		}
	}
}

func TestAgentPanicIsContainedPerTask(t *testing.T) {
	o := New(&recordingDispatcher{})

	wf := o.CreateWorkflow(context.Background(), "panicky", []models.TaskSpec{
		{ID: "boom", Agent: "panic"},
		{ID: "calm", Agent: "ok"},
	})

	if wf.Status != models.WorkflowStatusCompleted {
		t.Fatalf("a panicking agent must not fail the workflow: %s (%s)", wf.Status, wf.Error)
	}
	if taskStatus(wf, "boom") != models.TaskStatusFailed {
		t.Error("panicking task should be failed")
	}
	if !strings.Contains(wf.Tasks[0].Error, "panic") {
		t.Errorf("task error should carry the panic message: %q", wf.Tasks[0].Error)
	}
	if taskStatus(wf, "calm") != models.TaskStatusCompleted {
		t.Error("sibling task must complete normally")
	}
}

func TestTaskTimeout(t *testing.T) {
	o := New(&recordingDispatcher{}, WithTaskTimeout(20*time.Millisecond))

	wf := o.CreateWorkflow(context.Background(), "timeouts", []models.TaskSpec{
		{ID: "hung", Agent: "slow"},
	})

	if wf.Status != models.WorkflowStatusCompleted {
		t.Fatalf("timeout is a task-level failure: %s (%s)", wf.Status, wf.Error)
	}
	if taskStatus(wf, "hung") != models.TaskStatusFailed {
		t.Error("hung task should fail on timeout")
	}
	if !strings.Contains(wf.Tasks[0].Error, "timed out") {
		t.Errorf("task error should mention the timeout: %q", wf.Tasks[0].Error)
	}
}

func TestWorkflowLookupAndHistory(t *testing.T) {
	o := New(&recordingDispatcher{})
	ctx := context.Background()

	o.CreateWorkflow(ctx, "first", []models.TaskSpec{{Agent: "ok"}})
	o.CreateWorkflow(ctx, "second", []models.TaskSpec{{Agent: "ok"}})

	if _, ok := o.GetWorkflowStatus("first"); !ok {
		t.Error("first workflow not found")
	}
	if _, ok := o.GetWorkflowStatus("nope"); ok {
		t.Error("lookup of unknown workflow should miss")
	}

	ids := o.ListWorkflows()
	if len(ids) != 2 || ids[0] != "first" || ids[1] != "second" {
		t.Errorf("unexpected listing: %v", ids)
	}

	history := o.ExecutionHistory()
	if len(history) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(history))
	}
}

func TestOrchestratorsDoNotShareHistory(t *testing.T) {
	a := New(&recordingDispatcher{})
	b := New(&recordingDispatcher{})

	a.CreateWorkflow(context.Background(), "only-in-a", []models.TaskSpec{{Agent: "ok"}})

	if len(b.ExecutionHistory()) != 0 {
		t.Error("orchestrator instances must not share history")
	}
	if _, ok := b.GetWorkflowStatus("only-in-a"); ok {
		t.Error("workflow leaked across orchestrator instances")
	}
}

func TestConcurrentWorkflowsAreIndependent(t *testing.T) {
	o := New(&recordingDispatcher{delay: time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("concurrent-%d", i)
			wf := o.CreateWorkflow(context.Background(), id, []models.TaskSpec{
				{ID: "a", Agent: "ok"},
				{ID: "b", Agent: "ok", Dependencies: []string{"a"}},
			})
			if wf.Status != models.WorkflowStatusCompleted {
				t.Errorf("workflow %s failed: %s", id, wf.Error)
			}
		}(i)
	}
	wg.Wait()

	if len(o.ListWorkflows()) != 8 {
		t.Errorf("expected 8 workflows, got %d", len(o.ListWorkflows()))
	}
}
