package events

import (
	"time"

	"github.com/solbatt/solbatt/core/model"
)

// ScheduleEvent is published when a schedule run finishes, successfully or
// not. Entries is empty when the solve failed.
type ScheduleEvent struct {
	RunID         string
	Start         time.Time
	Status        string
	Objective     float64
	Entries       []model.ScheduleEntry
	SolveDuration time.Duration
}

// EvaluationEvent is published after a schedule is compared against the
// no-battery baseline.
type EvaluationEvent struct {
	RunID           string
	ScheduledCost   float64
	NoBatteryCost   float64
	Savings         float64
	StorageValue    float64
	AdjustedSavings float64
}
