// Package evaluator compares a solved schedule against the hypothetical
// no-battery baseline over the same horizon. It is a pure reporting helper;
// retrieval of realized meter data belongs to external collaborators.
package evaluator

import (
	"fmt"

	"github.com/solbatt/solbatt/core/model"
)

// Summary is the cost comparison for one horizon.
type Summary struct {
	// ScheduledCost is the sum of the schedule's slot costs.
	ScheduledCost float64 `json:"scheduled_cost"`
	// NoBatteryCost is what the same forecast would cost without a
	// battery: every deficit imported, every surplus exported.
	NoBatteryCost float64 `json:"no_battery_cost"`
	// Savings is NoBatteryCost - ScheduledCost, ignoring stored energy.
	Savings float64 `json:"savings"`
	// StorageValue credits the final stored energy above the initial
	// level at the final sell price, so energy parked for tomorrow is
	// not counted as a loss.
	StorageValue float64 `json:"storage_value"`
	// AdjustedSavings is Savings + StorageValue.
	AdjustedSavings float64 `json:"adjusted_savings"`
}

// Evaluate computes the cost comparison. All three slices must share the
// same horizon length.
func Evaluate(entries []model.ScheduleEntry, forecast []model.ForecastPoint, prices []model.Price, initialEnergyWh float64) (Summary, error) {
	if len(entries) != len(forecast) || len(entries) != len(prices) {
		return Summary{}, fmt.Errorf("horizon mismatch: %d entries, %d forecast, %d prices",
			len(entries), len(forecast), len(prices))
	}

	var s Summary
	for i, e := range entries {
		s.ScheduledCost += e.SlotCost

		net := forecast[i].NetConsumptionWh()
		if net > 0 {
			s.NoBatteryCost += net * prices[i].BuyPerWh()
		} else {
			s.NoBatteryCost += net * prices[i].SellPerWh()
		}
	}
	s.Savings = s.NoBatteryCost - s.ScheduledCost

	if len(entries) > 0 {
		final := entries[len(entries)-1]
		s.StorageValue = (final.BatteryEnergyWh - initialEnergyWh) * prices[len(prices)-1].SellPerWh()
	}
	s.AdjustedSavings = s.Savings + s.StorageValue
	return s, nil
}
