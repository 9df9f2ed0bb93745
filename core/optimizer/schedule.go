package optimizer

import (
	"math"
	"time"

	"github.com/solbatt/solbatt/core/model"
)

// ExtractPolicy tunes when a flow-less slot is labelled CHARGE_LIMIT or
// DISCHARGE_LIMIT instead of IDLE: the battery energy must be pinned within
// the margin of a hard bound while the forecast shows the corresponding
// desire (solar surplus, or a consumption deficit).
type ExtractPolicy struct {
	CapacityMarginWh float64 `json:"capacity_margin_wh"`
	FloorMarginWh    float64 `json:"floor_margin_wh"`
}

// extract decodes the raw solution vector into ordered schedule entries.
// Numerical noise below the tolerance is clamped to zero, small bound
// overshoot is clamped to the bound and logged as a warning, and each slot
// is labelled by the first matching classification rule. Extraction is a
// pure post-processing step over solved values; it never alters them beyond
// noise clamping and never feeds back into the solve.
func (o *Optimizer) extract(in Input, x []float64) []model.ScheduleEntry {
	bat := in.Battery
	ev := planEV(in)
	slotDur := time.Duration(bat.SlotMinutes) * time.Minute
	entries := make([]model.ScheduleEntry, len(in.Forecast))

	for t := range in.Forecast {
		imp := o.clamp(t, "grid_import", x[varIndex(t, varImport)], 0, bat.ToWh(bat.FuseCapacityW))
		exp := o.clamp(t, "grid_export", x[varIndex(t, varExport)], 0, bat.ToWh(bat.FuseCapacityW))
		chg := o.clamp(t, "battery_charge", x[varIndex(t, varCharge)], 0, bat.ToWh(bat.MaxChargeW))
		dis := o.clamp(t, "battery_discharge", x[varIndex(t, varDischarge)], 0, bat.ToWh(bat.MaxDischargeW))
		soc := o.clamp(t, "battery_energy", x[varIndex(t, varEnergy)], bat.MinFloorWh(), bat.CapacityWh)
		evChg := o.clamp(t, "ev_charge", x[varIndex(t, varEVCharge)], 0, ev.chargeMaxWh)
		evSOC := o.clamp(t, "ev_energy", x[varIndex(t, varEVEnergy)], 0, ev.capacityWh)

		price := in.Prices[t]
		entries[t] = model.ScheduleEntry{
			StartTime:          in.Start.Add(time.Duration(t) * slotDur),
			SpotPerKWh:         price.SpotPerKWh,
			GridImportWh:       imp,
			GridExportWh:       exp,
			BatteryChargeWh:    chg,
			BatteryDischargeWh: dis,
			BatteryEnergyWh:    soc,
			EVChargeWh:         evChg,
			EVEnergyWh:         evSOC,
			Activity:           classify(chg, dis, soc, in.Forecast[t], bat, o.cfg.Policy),
			SlotCost:           imp*price.BuyPerWh() - exp*price.SellPerWh(),
		}
	}
	return entries
}

// clamp zeroes values within the noise tolerance and pulls small bound
// overshoot back onto the bound. Overshoot below the tolerance is expected
// simplex noise; anything larger is logged loudly but still clamped so the
// reported schedule stays within its declared bounds.
func (o *Optimizer) clamp(t int, name string, v, lo, hi float64) float64 {
	if math.Abs(v) < o.cfg.Tolerance {
		v = 0
	}
	if v < lo {
		if lo-v >= o.cfg.Tolerance {
			o.log.Errorf("slot %d: %s=%.9f violates lower bound %.9f beyond tolerance", t, name, v, lo)
		} else {
			o.log.Warnf("slot %d: %s clamped to lower bound %.3f (noise %.2e)", t, name, lo, lo-v)
		}
		return lo
	}
	if v > hi {
		if v-hi >= o.cfg.Tolerance {
			o.log.Errorf("slot %d: %s=%.9f violates upper bound %.9f beyond tolerance", t, name, v, hi)
		} else {
			o.log.Warnf("slot %d: %s clamped to upper bound %.3f (noise %.2e)", t, name, hi, v-hi)
		}
		return hi
	}
	return v
}

// classify labels one slot by the first matching rule, in order. The rules
// are deliberately order-sensitive: a charging slot that absorbs the whole
// solar surplus is CHARGE_SOLAR_SURPLUS even when it also imports.
func classify(chg, dis, socWh float64, f model.ForecastPoint, bat model.BatteryConfig, pol ExtractPolicy) model.Activity {
	switch {
	case chg > 0 && f.ProductionWh >= chg+f.ConsumptionWh:
		return model.ActivityChargeSolarSurplus
	case chg > 0:
		return model.ActivityCharge
	case dis > 0 && dis <= f.ConsumptionWh-f.ProductionWh:
		return model.ActivityDischargeForHome
	case dis > 0:
		return model.ActivityDischarge
	}

	// No flow: charge or discharge may have been blocked by a bound.
	surplus := f.ProductionWh - f.ConsumptionWh
	switch {
	case surplus > 0 && socWh >= bat.CapacityWh-pol.CapacityMarginWh:
		return model.ActivityChargeLimit
	case surplus < 0 && socWh <= bat.MinFloorWh()+pol.FloorMarginWh:
		return model.ActivityDischargeLimit
	}
	return model.ActivityIdle
}
