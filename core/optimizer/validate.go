package optimizer

import (
	"fmt"
	"math"
)

// validate checks shape and ranges of one solve request. It returns a
// *ValidationError on the first violation so the caller never reaches the
// solver with malformed input.
func validate(in Input) error {
	if err := in.Battery.Validate(); err != nil {
		return &ValidationError{Field: "battery_config", Reason: err.Error()}
	}
	if err := in.EV.Validate(); err != nil {
		return &ValidationError{Field: "ev_config", Reason: err.Error()}
	}
	if len(in.Prices) != len(in.Forecast) {
		return &ValidationError{
			Field:  "prices",
			Reason: fmt.Sprintf("length %d does not match forecast length %d", len(in.Prices), len(in.Forecast)),
		}
	}
	for t, f := range in.Forecast {
		if f.ProductionWh < 0 || !isFinite(f.ProductionWh) {
			return &ValidationError{Field: "forecast", Reason: fmt.Sprintf("slot %d: production_wh %v", t, f.ProductionWh)}
		}
		if f.ConsumptionWh < 0 || !isFinite(f.ConsumptionWh) {
			return &ValidationError{Field: "forecast", Reason: fmt.Sprintf("slot %d: consumption_wh %v", t, f.ConsumptionWh)}
		}
	}
	for t, p := range in.Prices {
		if !isFinite(p.BuyPerKWh()) || !isFinite(p.SellPerKWh()) {
			return &ValidationError{Field: "prices", Reason: fmt.Sprintf("slot %d: non-finite price", t)}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
