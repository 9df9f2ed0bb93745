package config

import (
	"fmt"

	"github.com/solbatt/solbatt/core/model"
)

// PricesConfig selects the day-ahead price source and the fixed tariff
// applied on top of spot.
type PricesConfig struct {
	// Source is "elpris" for the day-ahead API.
	Source string `json:"source"`
	// Area is the bidding area, SE1 through SE4.
	Area   string       `json:"area"`
	Tariff model.Tariff `json:"tariff"`
}

// SetDefaults applies sane defaults.
func (c *PricesConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = "elpris"
	}
	if c.Area == "" {
		c.Area = "SE3"
	}
}

// Validate checks mandatory fields.
func (c PricesConfig) Validate() error {
	if c.Source != "elpris" {
		return fmt.Errorf("unknown price source %s", c.Source)
	}
	switch c.Area {
	case "SE1", "SE2", "SE3", "SE4":
	default:
		return fmt.Errorf("unknown bidding area %s", c.Area)
	}
	return nil
}
