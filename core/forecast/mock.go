package forecast

import (
	"context"
	"math"
	"time"

	"github.com/solbatt/solbatt/core/model"
)

// MockProvider produces a deterministic household profile: a midday solar
// bell curve and a baseline consumption with morning and evening peaks.
// It is meant for demos and tests where no historical store is available.
type MockProvider struct {
	// PeakProductionW is the PV output at solar noon.
	PeakProductionW float64
	// BaseConsumptionW is the household's idle draw.
	BaseConsumptionW float64
}

// NewMockProvider returns a provider sized for a small rooftop installation.
func NewMockProvider() *MockProvider {
	return &MockProvider{PeakProductionW: 6000, BaseConsumptionW: 400}
}

// Forecast implements Provider.
func (m *MockProvider) Forecast(_ context.Context, start time.Time, slots int, slotDur time.Duration) ([]model.ForecastPoint, error) {
	points := make([]model.ForecastPoint, slots)
	for i := range points {
		ts := start.Add(time.Duration(i) * slotDur)
		hour := float64(ts.Hour()) + float64(ts.Minute())/60

		// PV bell between 06:00 and 20:00 peaking at 13:00.
		var productionW float64
		if hour > 6 && hour < 20 {
			productionW = m.PeakProductionW * math.Sin((hour-6)/14*math.Pi)
		}

		consumptionW := m.BaseConsumptionW
		if hour >= 7 && hour < 9 {
			consumptionW += 1500
		}
		if hour >= 17 && hour < 21 {
			consumptionW += 2500
		}

		hours := slotDur.Hours()
		points[i] = model.ForecastPoint{
			ProductionWh:  productionW * hours,
			ConsumptionWh: consumptionW * hours,
		}
	}
	return points, nil
}
