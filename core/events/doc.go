// Package events defines the scheduling related events emitted on the event
// bus.
//
// Available event types:
//   - ScheduleEvent: a schedule run finished
//   - EvaluationEvent: a schedule was compared against the no-battery baseline
package events
