package metrics

import (
	"context"
	"time"

	"github.com/solbatt/solbatt/core/events"
	coremetrics "github.com/solbatt/solbatt/core/metrics"
	"github.com/solbatt/solbatt/infra/logger"
	"github.com/solbatt/solbatt/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// Sink failures are logged and the collector keeps going; it stops when the
// context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	log := logger.New("event-collector")
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.ScheduleEvent:
					err := sink.RecordScheduleRun(coremetrics.ScheduleRunEvent{
						RunID:         e.RunID,
						Start:         e.Start,
						Slots:         len(e.Entries),
						Status:        e.Status,
						Objective:     e.Objective,
						SolveDuration: e.SolveDuration,
						Time:          time.Now(),
					})
					if err != nil {
						log.Errorf("record schedule run %s: %v", e.RunID, err)
					}
					if r, ok := sink.(coremetrics.ScheduleSlotRecorder); ok && len(e.Entries) > 0 {
						if err := r.RecordScheduleSlots(e.RunID, e.Entries); err != nil {
							log.Errorf("record schedule slots %s: %v", e.RunID, err)
						}
					}
				case events.EvaluationEvent:
					if r, ok := sink.(coremetrics.EvaluationRecorder); ok {
						err := r.RecordEvaluation(coremetrics.EvaluationEvent{
							RunID:           e.RunID,
							ScheduledCost:   e.ScheduledCost,
							NoBatteryCost:   e.NoBatteryCost,
							Savings:         e.Savings,
							StorageValue:    e.StorageValue,
							AdjustedSavings: e.AdjustedSavings,
							Time:            time.Now(),
						})
						if err != nil {
							log.Errorf("record evaluation %s: %v", e.RunID, err)
						}
					}
				}
			}
		}
	}()
}
