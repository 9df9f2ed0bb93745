package config

import "fmt"

// ScheduleConfig controls the planning horizon and the service cadence.
type ScheduleConfig struct {
	// HorizonSlots is the number of slots planned per run. Slot length
	// comes from the battery configuration.
	HorizonSlots int `json:"horizon_slots"`
	// IntervalMinutes is the pause between runs in service mode. Zero
	// means run once and exit.
	IntervalMinutes int `json:"interval_minutes"`
}

// SetDefaults applies sane defaults.
func (c *ScheduleConfig) SetDefaults() {
	if c.HorizonSlots == 0 {
		c.HorizonSlots = 24
	}
}

// Validate checks mandatory fields.
func (c ScheduleConfig) Validate() error {
	if c.HorizonSlots < 0 {
		return fmt.Errorf("horizon_slots must not be negative")
	}
	if c.IntervalMinutes < 0 {
		return fmt.Errorf("interval_minutes must not be negative")
	}
	return nil
}
