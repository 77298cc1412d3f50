package orchestrator

import (
	"fmt"
	"strings"
)

// StallError indicates a scheduling round found no ready tasks while pending
// tasks remained. This is the workflow's universal failure trigger: it covers
// circular dependencies, references to missing task IDs, and tasks blocked
// behind a failed dependency, without distinguishing between them.
type StallError struct {
	// TaskIDs lists the stalled (still pending) task IDs, sorted.
	TaskIDs []string
}

// Error returns the stall message with the stalled task IDs.
func (e *StallError) Error() string {
	return fmt.Sprintf("circular dependency or missing dependency detected in tasks: [%s]",
		strings.Join(e.TaskIDs, ", "))
}
