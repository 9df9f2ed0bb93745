package metrics

import (
	coremetrics "github.com/solbatt/solbatt/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records schedule runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	slots    prometheus.Gauge
	savings  prometheus.Gauge
}

// NewPromSink registers schedule metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total number of schedule runs by solve status",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "Time spent solving the schedule optimization",
		Buckets: prometheus.DefBuckets,
	})
	slots := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_slots",
		Help: "Number of slots in the most recent schedule",
	})
	savings := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_adjusted_savings",
		Help: "Adjusted savings of the most recent schedule versus the no-battery baseline",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(slots); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			slots = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(savings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			savings = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, duration: duration, slots: slots, savings: savings}, nil
}

// RecordScheduleRun updates the run counter, solve histogram and slot gauge.
func (s *PromSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	s.runs.WithLabelValues(ev.Status).Inc()
	s.duration.Observe(ev.SolveDuration.Seconds())
	s.slots.Set(float64(ev.Slots))
	return nil
}

// RecordEvaluation exposes the latest adjusted savings.
func (s *PromSink) RecordEvaluation(ev coremetrics.EvaluationEvent) error {
	s.savings.Set(ev.AdjustedSavings)
	return nil
}
