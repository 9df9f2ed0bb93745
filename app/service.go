// Package app wires the price connector, forecast provider, optimizer and
// publishers into the scheduling service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solbatt/solbatt/config"
	"github.com/solbatt/solbatt/connectors/elpris"
	"github.com/solbatt/solbatt/core/evaluator"
	"github.com/solbatt/solbatt/core/events"
	"github.com/solbatt/solbatt/core/forecast"
	coremetrics "github.com/solbatt/solbatt/core/metrics"
	coremqtt "github.com/solbatt/solbatt/core/mqtt"
	"github.com/solbatt/solbatt/core/optimizer"
	"github.com/solbatt/solbatt/infra/logger"
	"github.com/solbatt/solbatt/infra/metrics"
	"github.com/solbatt/solbatt/infra/mqtt"
	"github.com/solbatt/solbatt/internal/eventbus"

	_ "github.com/solbatt/solbatt/infra/influx"
)

// Service orchestrates periodic schedule runs.
type Service struct {
	cfg       *config.Config
	opt       *optimizer.Optimizer
	prices    *elpris.Client
	forecast  forecast.Provider
	publisher coremqtt.Publisher
	sink      coremetrics.MetricsSink
	bus       eventbus.EventBus
	log       logger.Logger
	now       func() time.Time
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	cfg.Logging.Apply()
	log := logger.New("service")

	prices, err := elpris.NewClient(elpris.WithArea(cfg.Prices.Area))
	if err != nil {
		return nil, fmt.Errorf("price client: %w", err)
	}
	provider, err := forecast.NewProvider(cfg.Forecast)
	if err != nil {
		return nil, fmt.Errorf("forecast provider: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	var publisher coremqtt.Publisher
	if cfg.MQTT.Enabled {
		publisher, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{
		cfg:       cfg,
		opt:       optimizer.New(cfg.Optimizer, logger.New("optimizer")),
		prices:    prices,
		forecast:  provider,
		publisher: publisher,
		sink:      sink,
		bus:       eventbus.New(),
		log:       log,
		now:       time.Now,
	}, nil
}

// RunOnce executes a single schedule run: fetch prices and forecast, solve,
// publish and evaluate. The run outcome is always put on the event bus,
// failed solves included.
func (s *Service) RunOnce(ctx context.Context) (*optimizer.Result, error) {
	runID := uuid.NewString()
	slotDur := time.Duration(s.cfg.Battery.SlotMinutes) * time.Minute
	start := forecast.SnapToSlot(s.now(), slotDur)

	entries, err := s.prices.FetchDayAhead(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	slots := s.coveredSlots(entries, start, slotDur)
	if slots == 0 {
		return nil, fmt.Errorf("no published prices cover the horizon from %s", start.Format(time.RFC3339))
	}

	prices, err := elpris.AlignPrices(entries, start, slots, slotDur, s.cfg.Prices.Tariff)
	if err != nil {
		return nil, fmt.Errorf("align prices: %w", err)
	}
	points, err := s.forecast.Forecast(ctx, start, slots, slotDur)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	solveStart := time.Now()
	res, err := s.opt.Schedule(ctx, optimizer.Input{
		Start:    start,
		Battery:  s.cfg.Battery,
		EV:       s.cfg.EV,
		Forecast: points,
		Prices:   prices,
	})
	elapsed := time.Since(solveStart)
	if err != nil {
		s.bus.Publish(events.ScheduleEvent{
			RunID:         runID,
			Start:         start,
			Status:        failureStatus(err),
			SolveDuration: elapsed,
		})
		return nil, err
	}

	s.bus.Publish(events.ScheduleEvent{
		RunID:         runID,
		Start:         start,
		Status:        strings.ToLower(res.Status.String()),
		Objective:     res.Objective,
		Entries:       res.Entries,
		SolveDuration: elapsed,
	})

	if s.publisher != nil {
		doc := coremqtt.ScheduleDocument{RunID: runID, GeneratedAt: s.now(), Entries: res.Entries}
		if err := s.publisher.PublishSchedule(doc); err != nil {
			s.log.Errorf("publish schedule: %v", err)
		}
	}

	if sum, err := evaluator.Evaluate(res.Entries, points, prices, s.cfg.Battery.InitialEnergyWh); err == nil {
		s.bus.Publish(events.EvaluationEvent{
			RunID:           runID,
			ScheduledCost:   sum.ScheduledCost,
			NoBatteryCost:   sum.NoBatteryCost,
			Savings:         sum.Savings,
			StorageValue:    sum.StorageValue,
			AdjustedSavings: sum.AdjustedSavings,
		})
		s.log.Infof("run %s: %d slots, cost %.2f vs %.2f baseline", runID, len(res.Entries), sum.ScheduledCost, sum.NoBatteryCost)
	}

	return res, nil
}

// coveredSlots bounds the horizon to the slots covered by published prices.
func (s *Service) coveredSlots(entries []elpris.PriceEntry, start time.Time, slotDur time.Duration) int {
	if len(entries) == 0 {
		return 0
	}
	end := entries[len(entries)-1].TimeEnd
	available := int(end.Sub(start) / slotDur)
	if available < 0 {
		available = 0
	}
	if available > s.cfg.Schedule.HorizonSlots {
		available = s.cfg.Schedule.HorizonSlots
	}
	return available
}

// Run starts the metrics collector and executes schedule runs until the
// context is cancelled. With a zero interval a single run is performed.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.cfg.Metrics.PrometheusPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if _, err := s.RunOnce(ctx); err != nil {
		if s.cfg.Schedule.IntervalMinutes == 0 {
			return err
		}
		s.log.Errorf("schedule run failed: %v", err)
	}
	if s.cfg.Schedule.IntervalMinutes == 0 {
		return nil
	}

	ticker := time.NewTicker(time.Duration(s.cfg.Schedule.IntervalMinutes) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Errorf("schedule run failed: %v", err)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() {
	if s.publisher != nil {
		s.publisher.Close()
	}
	s.bus.Close()
}

func failureStatus(err error) string {
	var te *optimizer.TimeoutError
	if errors.As(err, &te) {
		return "timeout"
	}
	var ie *optimizer.InfeasibleError
	if errors.As(err, &ie) {
		return strings.ToLower(ie.Status.String())
	}
	return "error"
}
