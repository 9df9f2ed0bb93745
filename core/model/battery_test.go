package model

import "testing"

func TestToWh(t *testing.T) {
	cases := []struct {
		minutes int
		powerW  float64
		want    float64
	}{
		{60, 1, 1},
		{1, 60, 1},
		{30, 100, 50},
		{15, 200, 50},
		{60, 0, 0},
	}
	for _, tc := range cases {
		c := BatteryConfig{SlotMinutes: tc.minutes}
		if got := c.ToWh(tc.powerW); got != tc.want {
			t.Fatalf("%dW over %dmin: got %v, want %v", int(tc.powerW), tc.minutes, got, tc.want)
		}
	}
}

func validConfig() BatteryConfig {
	return BatteryConfig{
		CapacityWh:       44000,
		InitialEnergyWh:  5000,
		MaxChargeW:       5000,
		MaxDischargeW:    5000,
		FuseCapacityW:    17000,
		ChargeEfficiency: 0.95,
		TargetSOC:        0.3,
		MinSOC:           0.07,
		SlotMinutes:      5,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(*BatteryConfig){
		"zero capacity":       func(c *BatteryConfig) { c.CapacityWh = 0 },
		"negative charge":     func(c *BatteryConfig) { c.MaxChargeW = -1 },
		"zero fuse":           func(c *BatteryConfig) { c.FuseCapacityW = 0 },
		"efficiency above 1":  func(c *BatteryConfig) { c.ChargeEfficiency = 1.01 },
		"zero efficiency":     func(c *BatteryConfig) { c.ChargeEfficiency = 0 },
		"min above target":    func(c *BatteryConfig) { c.MinSOC = 0.4 },
		"target above 1":      func(c *BatteryConfig) { c.TargetSOC = 1.1 },
		"initial below floor": func(c *BatteryConfig) { c.InitialEnergyWh = 100 },
		"initial above cap":   func(c *BatteryConfig) { c.InitialEnergyWh = 50000 },
		"zero slot":           func(c *BatteryConfig) { c.SlotMinutes = 0 },
	}
	for name, mutate := range cases {
		c := validConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var c BatteryConfig
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if c.CapacityWh != 44000 || c.SlotMinutes != 5 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.InitialEnergyWh != c.TargetWh() {
		t.Fatalf("initial energy default = %v, want %v", c.InitialEnergyWh, c.TargetWh())
	}
}

func TestDerivedEnergies(t *testing.T) {
	c := validConfig()
	if got := c.MinFloorWh(); got < 3080-1e-9 || got > 3080+1e-9 {
		t.Fatalf("floor %v", got)
	}
	if got := c.TargetWh(); got < 13200-1e-9 || got > 13200+1e-9 {
		t.Fatalf("target %v", got)
	}
}
