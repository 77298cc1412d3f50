package models

// WorkflowStatus represents the terminal outcome of a workflow run.
type WorkflowStatus string

const (
	// WorkflowStatusCompleted indicates every task reached a terminal state.
	// Individual tasks may still have failed; check FinalOutput.FailedTasks.
	WorkflowStatusCompleted WorkflowStatus = "completed"
	// WorkflowStatusFailed indicates the run stalled or the executor errored.
	WorkflowStatusFailed WorkflowStatus = "failed"
)

// FinalOutput aggregates the results of a fully drained workflow.
// Populated only when the workflow completed.
type FinalOutput struct {
	// Summary is a human-readable one-liner about the run.
	Summary string `json:"summary"`
	// TotalTasks is the number of tasks submitted.
	TotalTasks int `json:"total_tasks"`
	// SuccessfulTasks is the number of tasks that completed.
	SuccessfulTasks int `json:"successful_tasks"`
	// FailedTasks is the number of tasks that failed.
	FailedTasks int `json:"failed_tasks"`
	// Results maps task ID to that task's result for every task that produced one.
	Results map[string]map[string]any `json:"results"`
}

// Workflow is an immutable record of one execution of a task set.
type Workflow struct {
	// WorkflowID identifies this execution.
	WorkflowID string `json:"workflow_id"`
	// Status is the workflow-level outcome.
	Status WorkflowStatus `json:"status"`
	// Tasks holds the tasks in submission order.
	Tasks []*Task `json:"tasks"`
	// FinalOutput is present iff Status is completed.
	FinalOutput *FinalOutput `json:"final_output,omitempty"`
	// ExecutionTime is the wall-clock duration of the run in seconds.
	ExecutionTime float64 `json:"execution_time"`
	// Error is the workflow-level failure message, present iff Status is failed.
	// Individual task failures do not set this field.
	Error string `json:"error,omitempty"`
}
