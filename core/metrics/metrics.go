package metrics

import (
	"time"

	"github.com/solbatt/solbatt/core/model"
)

// ScheduleRunEvent summarizes one schedule run.
type ScheduleRunEvent struct {
	RunID         string
	Start         time.Time
	Slots         int
	Status        string
	Objective     float64
	SolveDuration time.Duration
	Time          time.Time
}

// MetricsSink records schedule runs for observability purposes.
type MetricsSink interface {
	RecordScheduleRun(ev ScheduleRunEvent) error
}

// ScheduleSlotRecorder records the per-slot plan of a schedule run.
type ScheduleSlotRecorder interface {
	RecordScheduleSlots(runID string, entries []model.ScheduleEntry) error
}

// EvaluationEvent captures a schedule versus no-battery cost comparison.
type EvaluationEvent struct {
	RunID           string
	ScheduledCost   float64
	NoBatteryCost   float64
	Savings         float64
	StorageValue    float64
	AdjustedSavings float64
	Time            time.Time
}

// EvaluationRecorder records evaluation results.
type EvaluationRecorder interface {
	RecordEvaluation(ev EvaluationEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordScheduleRun(ScheduleRunEvent) error { return nil }

func (NopSink) RecordScheduleSlots(string, []model.ScheduleEntry) error { return nil }
func (NopSink) RecordEvaluation(EvaluationEvent) error                  { return nil }
