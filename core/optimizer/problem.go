package optimizer

import (
	"gonum.org/v1/gonum/mat"
)

// Decision variable layout within one timeslot. The EV columns are always
// present; without an EV their bounds are zero and they drop out of the
// feasible region.
const (
	varImport    = iota // grid import, Wh
	varExport           // grid export, Wh
	varCharge           // battery charge, Wh
	varDischarge        // battery discharge, Wh
	varEnergy           // battery energy at end of slot, Wh
	varDeficit          // SOC deficit slack, Wh
	varEVCharge         // EV charge, Wh
	varEVEnergy         // EV energy at end of slot, Wh
	varEVDeficit        // EV target shortfall slack, Wh
	varsPerSlot
)

// Inequality rows per timeslot: seven upper bounds, nine non-negativity /
// floor bounds, the soft SOC deficit coupling and the EV deadline row.
const ineqPerSlot = 18

// Equality rows per timeslot: energy balance, battery state, EV state.
const eqPerSlot = 3

func varIndex(t, v int) int { return t*varsPerSlot + v }

// problem holds one LP in the general form G·x <= h, A·x = b minimized over
// free x; lp.Convert turns it into the standard form the simplex expects.
type problem struct {
	nVars int
	g     *mat.Dense
	h     []float64
	a     *mat.Dense
	b     []float64
}

// buildProblem creates the per-slot variables and all constraints:
//
//   - energy balance: production + import + discharge =
//     consumption + charge + ev_charge + export
//   - battery state: energy[t] = energy[t-1] + eta*charge[t] - discharge[t],
//     with energy[-1] fixed to the initial battery energy
//   - EV state: ev_energy[t] = ev_energy[t-1] + ev_charge[t], anchored to
//     the initial EV energy; the EV never discharges
//   - device and fuse limits converted to per-slot Wh
//   - battery energy within [min_soc*capacity, capacity], EV energy within
//     [0, ev capacity]
//   - soft SOC slack: deficit >= target - energy, deficit >= 0
//   - at the EV deadline slot: ev_deficit >= ev_target - ev_energy; every
//     other slot pins the unused slack to zero
//
// Infeasibility cannot arise here by construction; only the solve step can
// report it.
func buildProblem(in Input) *problem {
	T := len(in.Forecast)
	bat := in.Battery
	ev := planEV(in)
	n := T * varsPerSlot

	chargeMaxWh := bat.ToWh(bat.MaxChargeW)
	dischargeMaxWh := bat.ToWh(bat.MaxDischargeW)
	fuseMaxWh := bat.ToWh(bat.FuseCapacityW)
	floorWh := bat.MinFloorWh()
	targetWh := bat.TargetWh()

	g := mat.NewDense(T*ineqPerSlot, n, nil)
	h := make([]float64, T*ineqPerSlot)
	a := mat.NewDense(T*eqPerSlot, n, nil)
	b := make([]float64, T*eqPerSlot)

	for t := 0; t < T; t++ {
		imp := varIndex(t, varImport)
		exp := varIndex(t, varExport)
		chg := varIndex(t, varCharge)
		dis := varIndex(t, varDischarge)
		soc := varIndex(t, varEnergy)
		def := varIndex(t, varDeficit)
		evc := varIndex(t, varEVCharge)
		eve := varIndex(t, varEVEnergy)
		evd := varIndex(t, varEVDeficit)

		// Energy balance, moved to import + discharge - charge - ev_charge
		// - export = consumption - production.
		row := eqPerSlot * t
		a.Set(row, imp, 1)
		a.Set(row, dis, 1)
		a.Set(row, chg, -1)
		a.Set(row, evc, -1)
		a.Set(row, exp, -1)
		b[row] = in.Forecast[t].ConsumptionWh - in.Forecast[t].ProductionWh

		// Battery state transition linking slot t to t-1.
		row = eqPerSlot*t + 1
		a.Set(row, soc, 1)
		a.Set(row, chg, -bat.ChargeEfficiency)
		a.Set(row, dis, 1)
		if t == 0 {
			b[row] = bat.InitialEnergyWh
		} else {
			a.Set(row, varIndex(t-1, varEnergy), -1)
		}

		// EV state transition; the EV only accumulates.
		row = eqPerSlot*t + 2
		a.Set(row, eve, 1)
		a.Set(row, evc, -1)
		if t == 0 {
			b[row] = ev.initialWh
		} else {
			a.Set(row, varIndex(t-1, varEVEnergy), -1)
		}

		base := t * ineqPerSlot

		// Upper bounds.
		g.Set(base+0, imp, 1)
		h[base+0] = fuseMaxWh
		g.Set(base+1, exp, 1)
		h[base+1] = fuseMaxWh
		g.Set(base+2, chg, 1)
		h[base+2] = chargeMaxWh
		g.Set(base+3, dis, 1)
		h[base+3] = dischargeMaxWh
		g.Set(base+4, soc, 1)
		h[base+4] = bat.CapacityWh
		g.Set(base+5, evc, 1)
		h[base+5] = ev.chargeMaxWh
		g.Set(base+6, eve, 1)
		h[base+6] = ev.capacityWh

		// Lower bounds. lp.Convert treats variables as free, so
		// non-negativity must be stated explicitly.
		g.Set(base+7, imp, -1)
		g.Set(base+8, exp, -1)
		g.Set(base+9, chg, -1)
		g.Set(base+10, dis, -1)
		g.Set(base+11, soc, -1)
		h[base+11] = -floorWh
		g.Set(base+12, def, -1)
		g.Set(base+13, evc, -1)
		g.Set(base+14, eve, -1)
		g.Set(base+15, evd, -1)

		// Soft SOC constraint: deficit >= target - energy.
		g.Set(base+16, soc, -1)
		g.Set(base+16, def, -1)
		h[base+16] = -targetWh

		// EV deadline coupling at the target slot; unused slacks are
		// pinned to zero everywhere else.
		if t == ev.targetSlot {
			g.Set(base+17, eve, -1)
			g.Set(base+17, evd, -1)
			h[base+17] = -ev.targetWh
		} else {
			g.Set(base+17, evd, 1)
		}
	}

	return &problem{nVars: n, g: g, h: h, a: a, b: b}
}
