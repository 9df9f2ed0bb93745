package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Activity labels the dominant battery behaviour of a solved timeslot.
// The label is purely descriptive: it never feeds back into the solve.
type Activity int

const (
	ActivityIdle Activity = iota
	ActivityCharge
	ActivityChargeSolarSurplus
	ActivityChargeLimit
	ActivityDischarge
	ActivityDischargeForHome
	ActivityDischargeLimit
)

var activityNames = map[Activity]string{
	ActivityIdle:               "idle",
	ActivityCharge:             "charge",
	ActivityChargeSolarSurplus: "charge_solar_surplus",
	ActivityChargeLimit:        "charge_limit",
	ActivityDischarge:          "discharge",
	ActivityDischargeForHome:   "discharge_for_home",
	ActivityDischargeLimit:     "discharge_limit",
}

func (a Activity) String() string {
	if s, ok := activityNames[a]; ok {
		return s
	}
	return fmt.Sprintf("activity(%d)", int(a))
}

// MarshalJSON encodes the activity as its snake_case name.
func (a Activity) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a snake_case activity name.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for act, name := range activityNames {
		if name == s {
			*a = act
			return nil
		}
	}
	return fmt.Errorf("unknown activity %q", s)
}

// ScheduleEntry is one solved timeslot.
type ScheduleEntry struct {
	StartTime          time.Time `json:"start_time"`
	SpotPerKWh         float64   `json:"spot_per_kwh"`
	GridImportWh       float64   `json:"grid_import_wh"`
	GridExportWh       float64   `json:"grid_export_wh"`
	BatteryChargeWh    float64   `json:"battery_charge_wh"`
	BatteryDischargeWh float64   `json:"battery_discharge_wh"`
	BatteryEnergyWh    float64   `json:"battery_energy_wh"`
	EVChargeWh         float64   `json:"ev_charge_wh"`
	EVEnergyWh         float64   `json:"ev_energy_wh"`
	Activity           Activity  `json:"activity"`
	// SlotCost is import cost minus export revenue, in currency.
	SlotCost float64 `json:"slot_cost"`
}

// BatteryFlowWh is positive when charging, negative when discharging.
func (e ScheduleEntry) BatteryFlowWh() float64 {
	return e.BatteryChargeWh - e.BatteryDischargeWh
}

// GridFlowWh is positive when importing, negative when exporting.
func (e ScheduleEntry) GridFlowWh() float64 {
	return e.GridImportWh - e.GridExportWh
}

// SOCPercent is the battery energy as a percentage of capacity.
func (e ScheduleEntry) SOCPercent(capacityWh float64) float64 {
	if capacityWh <= 0 {
		return 0
	}
	return e.BatteryEnergyWh / capacityWh * 100
}
