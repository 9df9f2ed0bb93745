package elpris

import "time"

// PriceEntry is one slot of the day-ahead price feed. The upstream API
// publishes hourly or quarter-hour slots depending on the market coupling.
type PriceEntry struct {
	SEKPerKWh float64   `json:"SEK_per_kWh"`
	EURPerKWh float64   `json:"EUR_per_kWh"`
	EXR       float64   `json:"EXR"`
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}
