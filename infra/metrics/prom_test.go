package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/solbatt/solbatt/core/metrics"
)

func TestPromSink_RecordScheduleRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	ev := coremetrics.ScheduleRunEvent{
		RunID:         "run1",
		Start:         time.Now(),
		Slots:         24,
		Status:        "optimal",
		Objective:     -1.5,
		SolveDuration: 150 * time.Millisecond,
		Time:          time.Now(),
	}
	if err := sink.RecordScheduleRun(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP schedule_runs_total Total number of schedule runs by solve status
# TYPE schedule_runs_total counter
schedule_runs_total{status="optimal"} 1
`
	if err := testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.duration); c == 0 {
		t.Errorf("solve duration not recorded")
	}
	if got := testutil.ToFloat64(sink.slots); got != 24 {
		t.Errorf("slots gauge = %v, want 24", got)
	}

	if err := sink.RecordEvaluation(coremetrics.EvaluationEvent{AdjustedSavings: 3.25}); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	if got := testutil.ToFloat64(sink.savings); got != 3.25 {
		t.Errorf("savings gauge = %v, want 3.25", got)
	}
}

// Registering twice on the same registry reuses the existing collectors.
func TestPromSink_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second create: %v", err)
	}
}
