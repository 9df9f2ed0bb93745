package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/solbatt/solbatt/core/metrics"
	"github.com/solbatt/solbatt/core/model"
	"github.com/solbatt/solbatt/infra/logger"
)

// InfluxSink writes schedule runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScheduleRun writes the run summary as a single point.
func (s *InfluxSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("schedule_run").
		AddTag("run_id", ev.RunID).
		AddTag("status", ev.Status).
		AddField("slots", ev.Slots).
		AddField("objective", round3(ev.Objective)).
		AddField("solve_seconds", ev.SolveDuration.Seconds()).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordScheduleSlots writes one point per slot of the plan.
func (s *InfluxSink) RecordScheduleSlots(runID string, entries []model.ScheduleEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range entries {
		p := write.NewPointWithMeasurement("schedule_slot").
			AddTag("run_id", runID).
			AddTag("activity", e.Activity.String()).
			AddField("spot_per_kwh", round3(e.SpotPerKWh)).
			AddField("grid_import_wh", round3(e.GridImportWh)).
			AddField("grid_export_wh", round3(e.GridExportWh)).
			AddField("battery_charge_wh", round3(e.BatteryChargeWh)).
			AddField("battery_discharge_wh", round3(e.BatteryDischargeWh)).
			AddField("battery_energy_wh", round3(e.BatteryEnergyWh)).
			AddField("ev_charge_wh", round3(e.EVChargeWh)).
			AddField("slot_cost", round3(e.SlotCost)).
			SetTime(e.StartTime)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvaluation writes the cost comparison for a run.
func (s *InfluxSink) RecordEvaluation(ev coremetrics.EvaluationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("schedule_evaluation").
		AddTag("run_id", ev.RunID).
		AddField("scheduled_cost", round3(ev.ScheduledCost)).
		AddField("no_battery_cost", round3(ev.NoBatteryCost)).
		AddField("savings", round3(ev.Savings)).
		AddField("storage_value", round3(ev.StorageValue)).
		AddField("adjusted_savings", round3(ev.AdjustedSavings)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
