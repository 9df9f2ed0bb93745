package metrics

import "github.com/solbatt/solbatt/core/model"

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleRun forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordScheduleRun(ev ScheduleRunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordScheduleSlots forwards slot records when supported by the sink.
func (m *MultiSink) RecordScheduleSlots(runID string, entries []model.ScheduleEntry) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ScheduleSlotRecorder); ok {
			if err := rec.RecordScheduleSlots(runID, entries); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordEvaluation forwards evaluation records when supported by the sink.
func (m *MultiSink) RecordEvaluation(ev EvaluationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(EvaluationRecorder); ok {
			if err := rec.RecordEvaluation(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
