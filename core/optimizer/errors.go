package optimizer

import (
	"fmt"
	"time"
)

// ValidationError reports malformed input detected before any solve attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InfeasibleError reports that the solver found no usable solution.
// Retrying with unchanged inputs cannot succeed.
type InfeasibleError struct {
	Status Status
	Err    error
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no usable schedule: solver reported %s: %v", e.Status, e.Err)
}

func (e *InfeasibleError) Unwrap() error { return e.Err }

// TimeoutError reports that the solve exceeded its wall-clock budget.
type TimeoutError struct {
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solve exceeded %s budget", e.Budget)
}
