package optimizer

import "math"

// composeObjective assembles the linear cost vector
//
//	sum_t import[t]*buy[t] - export[t]*sell[t] + deficit[t]*socPenalty
//
// plus three small tuning terms: a charge friction that breaks ties against
// churning energy through the battery, a hold incentive that defers
// discharging to the end of the horizon instead of an arbitrary earlier
// slot, and a terminal credit valuing the final battery energy at the final
// sell price so the horizon end does not trigger a sell-off. Everything is
// linear; no quadratic or integer terms.
//
// The friction is scaled so charge and discharge stay mutually exclusive
// even under negative sell prices. Cycling x Wh through the battery
// destroys (1-eta)*x at a friction cost of friction*x, and destroyed
// energy is worth at most the deepest negative sell price in the horizon:
// either it avoids exporting surplus at that price, or it sheds stored
// energy the terminal credit would bill at it. Keeping the friction above
// (1-eta)*max_t(max(0, -sell[t])) makes every simultaneous
// charge/discharge pair strictly worse than the reduced pair that exports
// the freed difference instead.
//
// When an EV deadline is in play, the shortfall below the EV target at the
// deadline slot is penalized like the battery SOC deficit.
func composeObjective(in Input, cfg Config) []float64 {
	eta := in.Battery.ChargeEfficiency
	worstSell := 0.0
	for _, p := range in.Prices {
		worstSell = math.Max(worstSell, -p.SellPerWh())
	}
	friction := cfg.ChargeFrictionPerWh + (1-eta)*worstSell

	c := make([]float64, len(in.Forecast)*varsPerSlot)
	for t, p := range in.Prices {
		c[varIndex(t, varImport)] = p.BuyPerWh()
		c[varIndex(t, varExport)] = -p.SellPerWh()
		c[varIndex(t, varCharge)] = friction
		c[varIndex(t, varEnergy)] = -cfg.HoldIncentivePerWh
		c[varIndex(t, varDeficit)] = cfg.SOCPenaltyPerWh
	}
	if !cfg.DisableTerminalCredit && len(in.Prices) > 0 {
		last := len(in.Prices) - 1
		c[varIndex(last, varEnergy)] -= in.Prices[last].SellPerWh()
	}
	if plan := planEV(in); plan.targetSlot >= 0 {
		c[varIndex(plan.targetSlot, varEVDeficit)] = plan.penaltyPerWh
	}
	return c
}
