package model

import "fmt"

// BatteryConfig describes the stationary battery and its grid connection.
// Energy values are Wh, power values W, SOC fractions in [0,1].
type BatteryConfig struct {
	CapacityWh       float64 `json:"capacity_wh"`
	InitialEnergyWh  float64 `json:"initial_energy_wh"`
	MaxChargeW       float64 `json:"max_charge_w"`
	MaxDischargeW    float64 `json:"max_discharge_w"`
	FuseCapacityW    float64 `json:"fuse_capacity_w"`
	ChargeEfficiency float64 `json:"charge_efficiency"`
	TargetSOC        float64 `json:"target_soc_fraction"`
	MinSOC           float64 `json:"min_soc_fraction"`
	SlotMinutes      int     `json:"slot_duration_minutes"`
}

// SetDefaults fills zero fields with the reference installation values.
func (c *BatteryConfig) SetDefaults() {
	if c.CapacityWh == 0 {
		c.CapacityWh = 44000
	}
	if c.MaxChargeW == 0 {
		c.MaxChargeW = 5000
	}
	if c.MaxDischargeW == 0 {
		c.MaxDischargeW = 5000
	}
	if c.FuseCapacityW == 0 {
		c.FuseCapacityW = 17000
	}
	if c.ChargeEfficiency == 0 {
		c.ChargeEfficiency = 0.95
	}
	if c.TargetSOC == 0 {
		c.TargetSOC = 0.3
	}
	if c.MinSOC == 0 {
		c.MinSOC = 0.07
	}
	if c.InitialEnergyWh == 0 {
		c.InitialEnergyWh = c.TargetWh()
	}
	if c.SlotMinutes == 0 {
		c.SlotMinutes = 5
	}
}

// Validate reports the first invariant violation, if any.
func (c BatteryConfig) Validate() error {
	if c.CapacityWh <= 0 {
		return fmt.Errorf("capacity_wh must be positive, got %v", c.CapacityWh)
	}
	if c.MaxChargeW < 0 || c.MaxDischargeW < 0 {
		return fmt.Errorf("charge/discharge power must not be negative")
	}
	if c.FuseCapacityW <= 0 {
		return fmt.Errorf("fuse_capacity_w must be positive, got %v", c.FuseCapacityW)
	}
	if c.ChargeEfficiency <= 0 || c.ChargeEfficiency > 1 {
		return fmt.Errorf("charge_efficiency must be in (0,1], got %v", c.ChargeEfficiency)
	}
	if c.MinSOC < 0 || c.TargetSOC > 1 || c.MinSOC > c.TargetSOC {
		return fmt.Errorf("soc fractions must satisfy 0 <= min (%v) <= target (%v) <= 1", c.MinSOC, c.TargetSOC)
	}
	if c.InitialEnergyWh < c.MinFloorWh() || c.InitialEnergyWh > c.CapacityWh {
		return fmt.Errorf("initial_energy_wh %v outside [%v, %v]", c.InitialEnergyWh, c.MinFloorWh(), c.CapacityWh)
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("slot_duration_minutes must be positive, got %d", c.SlotMinutes)
	}
	return nil
}

// MinFloorWh is the lowest allowed battery energy.
func (c BatteryConfig) MinFloorWh() float64 { return c.MinSOC * c.CapacityWh }

// TargetWh is the soft SOC target in Wh.
func (c BatteryConfig) TargetWh() float64 { return c.TargetSOC * c.CapacityWh }

// SlotHours is the timeslot length in hours.
func (c BatteryConfig) SlotHours() float64 { return float64(c.SlotMinutes) / 60 }

// ToWh converts a power in W to the energy moved during one timeslot.
func (c BatteryConfig) ToWh(powerW float64) float64 { return powerW * c.SlotHours() }
