package model

import (
	"fmt"
	"time"
)

// EVConfig describes an optional EV charging load sharing the grid
// connection with the battery. The EV only draws energy; it never feeds
// back into the house. A ready-by wall-clock time turns the target SOC
// into a soft deadline for the optimizer.
type EVConfig struct {
	CapacityWh          float64 `json:"capacity_wh"`
	MaxChargeW          float64 `json:"max_charge_w"`
	InitialSOC          float64 `json:"initial_soc_fraction"`
	TargetSOC           float64 `json:"target_soc_fraction"`
	DeficitPenaltyPerWh float64 `json:"deficit_penalty_per_wh"`
	// ReadyBy is the local wall-clock deadline as "HH:MM"; empty means
	// no deadline, so the EV only charges when it is profitable.
	ReadyBy string `json:"ready_by"`
}

// Enabled reports whether an EV charger is configured at all.
func (c EVConfig) Enabled() bool {
	return c.CapacityWh > 0 && c.MaxChargeW > 0
}

// SetDefaults fills zero fields with defaults. The deficit penalty defaults
// well above realistic price spreads so a deadline outranks arbitrage.
func (c *EVConfig) SetDefaults() {
	if !c.Enabled() {
		return
	}
	if c.TargetSOC == 0 {
		c.TargetSOC = 0.9
	}
	if c.DeficitPenaltyPerWh == 0 {
		c.DeficitPenaltyPerWh = 0.01
	}
}

// Validate reports the first invariant violation, if any. A fully zero
// config is valid and means no EV.
func (c EVConfig) Validate() error {
	if c.CapacityWh == 0 && c.MaxChargeW == 0 && c.ReadyBy == "" {
		return nil
	}
	if !c.Enabled() {
		return fmt.Errorf("ev capacity_wh and max_charge_w must both be positive, got %v / %v", c.CapacityWh, c.MaxChargeW)
	}
	if c.InitialSOC < 0 || c.InitialSOC > 1 {
		return fmt.Errorf("ev initial_soc_fraction must be in [0,1], got %v", c.InitialSOC)
	}
	if c.TargetSOC < 0 || c.TargetSOC > 1 {
		return fmt.Errorf("ev target_soc_fraction must be in [0,1], got %v", c.TargetSOC)
	}
	if c.DeficitPenaltyPerWh < 0 {
		return fmt.Errorf("ev deficit_penalty_per_wh must not be negative, got %v", c.DeficitPenaltyPerWh)
	}
	if c.ReadyBy != "" {
		if _, err := time.Parse("15:04", c.ReadyBy); err != nil {
			return fmt.Errorf("ev ready_by %q is not HH:MM: %w", c.ReadyBy, err)
		}
	}
	return nil
}

// InitialEnergyWh is the EV energy at the start of the horizon.
func (c EVConfig) InitialEnergyWh() float64 { return c.InitialSOC * c.CapacityWh }

// TargetWh is the soft EV charging target in Wh.
func (c EVConfig) TargetWh() float64 { return c.TargetSOC * c.CapacityWh }

// ReadyTime resolves the ready-by wall-clock time to the next occurrence
// strictly after the given instant, in its location. The second return is
// false when no deadline is configured.
func (c EVConfig) ReadyTime(after time.Time) (time.Time, bool) {
	if !c.Enabled() || c.ReadyBy == "" {
		return time.Time{}, false
	}
	hm, err := time.Parse("15:04", c.ReadyBy)
	if err != nil {
		return time.Time{}, false
	}
	ready := time.Date(after.Year(), after.Month(), after.Day(), hm.Hour(), hm.Minute(), 0, 0, after.Location())
	if !ready.After(after) {
		ready = ready.Add(24 * time.Hour)
	}
	return ready, true
}
