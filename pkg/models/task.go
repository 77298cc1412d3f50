package models

import (
	"fmt"
	"time"
)

// TaskStatus represents the current state of a workflow task.
type TaskStatus string

const (
	// TaskStatusPending indicates the task has not started.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusRunning indicates the task's agent is currently executing.
	TaskStatusRunning TaskStatus = "running"
	// TaskStatusCompleted indicates the task finished successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task's agent failed.
	TaskStatusFailed TaskStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status is a terminal state.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// TaskSpec is the caller-facing shape of a task submission.
// ID and Dependencies are optional; an empty ID is assigned as task_<index>.
type TaskSpec struct {
	// ID is the unique identifier within the workflow.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// Type is a free-form category label (e.g. "education", "translation").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Agent names the capability that executes this task.
	Agent string `json:"agent" yaml:"agent"`
	// InputData is the payload passed to the agent. Validated by the agent.
	InputData map[string]any `json:"input_data" yaml:"input_data"`
	// Dependencies lists task IDs that must complete before this task runs.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Task is one unit of work within a workflow, bound to one agent invocation.
// The executor is the sole mutator of Status, Result, Error and CompletedAt;
// each is written at most once.
type Task struct {
	// ID is the unique identifier within the workflow.
	ID string `json:"id"`
	// Type is a free-form category label carried through from the spec.
	Type string `json:"type,omitempty"`
	// Agent is the key into the dispatch registry.
	Agent string `json:"agent"`
	// InputData is the opaque payload handed to the agent.
	InputData map[string]any `json:"input_data"`
	// Dependencies lists task IDs that must reach completed before this task starts.
	Dependencies []string `json:"dependencies,omitempty"`
	// Status is the current state of the task.
	Status TaskStatus `json:"status"`
	// Result is the agent's output mapping, present iff the task completed.
	Result map[string]any `json:"result,omitempty"`
	// Error is the failure message, present iff the task failed.
	Error string `json:"error,omitempty"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
	// CompletedAt is when the task reached a terminal state, if it has.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask builds a Task from a spec, applying the task_<index> default ID.
func NewTask(index int, spec TaskSpec) *Task {
	id := spec.ID
	if id == "" {
		id = DefaultTaskID(index)
	}
	return &Task{
		ID:           id,
		Type:         spec.Type,
		Agent:        spec.Agent,
		InputData:    spec.InputData,
		Dependencies: spec.Dependencies,
		Status:       TaskStatusPending,
		CreatedAt:    time.Now(),
	}
}

// DefaultTaskID returns the identifier assigned to a task submitted without one.
func DefaultTaskID(index int) string {
	return fmt.Sprintf("task_%d", index)
}
