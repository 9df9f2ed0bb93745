// Package influx implements a forecast provider backed by historical meter
// data in InfluxDB. Production and consumption are predicted as the per-slot
// mean over the same window on previous days.
package influx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/solbatt/solbatt/core/model"
	"github.com/solbatt/solbatt/infra/logger"
)

// ForecastConfig describes the InfluxDB endpoint and the series holding
// meter readings. Both series are expected in watts.
type ForecastConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`

	ConsumptionMeasurement string `json:"consumption_measurement"`
	ConsumptionField       string `json:"consumption_field"`
	ProductionMeasurement  string `json:"production_measurement"`
	ProductionField        string `json:"production_field"`

	// LookbackDays is how many previous days are averaged per slot.
	LookbackDays int `json:"lookback_days"`
}

// SetDefaults fills zero fields with defaults.
func (c *ForecastConfig) SetDefaults() {
	if c.ConsumptionField == "" {
		c.ConsumptionField = "value"
	}
	if c.ProductionField == "" {
		c.ProductionField = "value"
	}
	if c.LookbackDays <= 0 {
		c.LookbackDays = 7
	}
}

// ForecastProvider predicts production and consumption from history.
type ForecastProvider struct {
	client influxdb2.Client
	query  api.QueryAPI
	cfg    ForecastConfig
	log    logger.Logger
}

// NewForecastProvider creates a provider for the configured endpoint.
func NewForecastProvider(cfg ForecastConfig) *ForecastProvider {
	cfg.SetDefaults()
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 15 * time.Second}))
	return &ForecastProvider{
		client: client,
		query:  client.QueryAPI(cfg.Org),
		cfg:    cfg,
		log:    logger.New("influx-forecast"),
	}
}

// Forecast returns one point per slot. Each value is the mean power over the
// matching slot on the previous LookbackDays days, converted to energy for
// the slot length. Slots without any history stay zero.
func (p *ForecastProvider) Forecast(ctx context.Context, start time.Time, slots int, slotDur time.Duration) ([]model.ForecastPoint, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("slots must be positive, got %d", slots)
	}
	if slotDur <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %s", slotDur)
	}

	cons, err := p.slotMeans(ctx, start, slots, slotDur, p.cfg.ConsumptionMeasurement, p.cfg.ConsumptionField)
	if err != nil {
		return nil, fmt.Errorf("consumption history: %w", err)
	}
	prod, err := p.slotMeans(ctx, start, slots, slotDur, p.cfg.ProductionMeasurement, p.cfg.ProductionField)
	if err != nil {
		return nil, fmt.Errorf("production history: %w", err)
	}

	slotHours := slotDur.Hours()
	points := make([]model.ForecastPoint, slots)
	for i := range points {
		points[i] = model.ForecastPoint{
			ConsumptionWh: cons[i] * slotHours,
			ProductionWh:  prod[i] * slotHours,
		}
	}
	return points, nil
}

// slotMeans averages the series per slot across the lookback days and
// returns mean power in watts per slot.
func (p *ForecastProvider) slotMeans(ctx context.Context, start time.Time, slots int, slotDur time.Duration, measurement, field string) ([]float64, error) {
	sums := make([]float64, slots)
	counts := make([]int, slots)
	horizon := time.Duration(slots) * slotDur

	for day := 1; day <= p.cfg.LookbackDays; day++ {
		dayStart := start.Add(-time.Duration(day) * 24 * time.Hour)
		dayStop := dayStart.Add(horizon)
		q := fmt.Sprintf(`from(bucket: %q)
  |> range(start: %s, stop: %s)
  |> filter(fn: (r) => r._measurement == %q and r._field == %q)
  |> aggregateWindow(every: %s, fn: mean, createEmpty: false)`,
			p.cfg.Bucket,
			dayStart.UTC().Format(time.RFC3339),
			dayStop.UTC().Format(time.RFC3339),
			measurement, field, slotDur)

		res, err := p.query.Query(ctx, q)
		if err != nil {
			return nil, err
		}
		for res.Next() {
			rec := res.Record()
			v, ok := rec.Value().(float64)
			if !ok {
				continue
			}
			// aggregateWindow stamps each window at its stop time.
			idx := int((rec.Time().Sub(dayStart) - time.Nanosecond) / slotDur)
			if idx < 0 || idx >= slots {
				continue
			}
			sums[idx] += v
			counts[idx]++
		}
		if res.Err() != nil {
			return nil, res.Err()
		}
	}

	means := make([]float64, slots)
	missing := 0
	for i := range means {
		if counts[i] == 0 {
			missing++
			continue
		}
		means[i] = sums[i] / float64(counts[i])
	}
	if missing > 0 {
		p.log.Warnf("%s: %d of %d slots have no history", measurement, missing, slots)
	}
	return means, nil
}

// Close releases the underlying client.
func (p *ForecastProvider) Close() {
	p.client.Close()
}
