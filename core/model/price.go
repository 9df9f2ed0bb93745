package model

// Tariff holds the fixed additive fees applied on top of the spot price.
// All values are currency per kWh. With typical Swedish fees the buy price
// stays above the sell price for every slot; that ordering is a
// configuration assumption, not something this package enforces.
type Tariff struct {
	// BuyAddonPerKWh covers delivery fee and energy tax.
	BuyAddonPerKWh float64 `json:"buy_addon_per_kwh"`
	// SellAddonPerKWh covers grid benefit and the production tax rebate.
	SellAddonPerKWh float64 `json:"sell_addon_per_kwh"`
}

// Price is the market price for one timeslot.
type Price struct {
	SpotPerKWh float64
	Tariff     Tariff
}

// NewPrice pairs a spot price with the tariff.
func NewPrice(spotPerKWh float64, t Tariff) Price {
	return Price{SpotPerKWh: spotPerKWh, Tariff: t}
}

// BuyPerKWh is the effective price paid per imported kWh.
func (p Price) BuyPerKWh() float64 { return p.SpotPerKWh + p.Tariff.BuyAddonPerKWh }

// SellPerKWh is the effective price received per exported kWh.
func (p Price) SellPerKWh() float64 { return p.SpotPerKWh + p.Tariff.SellAddonPerKWh }

// BuyPerWh and SellPerWh are the per-Wh prices used by the optimizer so
// that price coefficients and the SOC penalty rate share one unit.
func (p Price) BuyPerWh() float64  { return p.BuyPerKWh() / 1000 }
func (p Price) SellPerWh() float64 { return p.SellPerKWh() / 1000 }
