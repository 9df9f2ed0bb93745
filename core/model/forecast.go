package model

// ForecastPoint is the predicted energy produced and consumed during one
// timeslot, both in Wh and never negative.
type ForecastPoint struct {
	ProductionWh  float64 `json:"production_wh"`
	ConsumptionWh float64 `json:"consumption_wh"`
}

// NetConsumptionWh is the household need not covered by production.
// Negative values mean solar surplus.
func (f ForecastPoint) NetConsumptionWh() float64 {
	return f.ConsumptionWh - f.ProductionWh
}
