package optimizer

import "time"

// evPlan is the per-solve view of the EV charging load: the variable bounds
// and, when a deadline applies, the slot whose shortfall is penalized.
// With no EV configured every bound is zero and the EV columns vanish from
// the feasible region.
type evPlan struct {
	chargeMaxWh  float64
	capacityWh   float64
	initialWh    float64
	targetSlot   int // -1 when no deadline applies
	targetWh     float64
	penaltyPerWh float64
}

// planEV resolves the EV deadline against the slot grid. A deadline inside
// the horizon targets the first slot starting at or after it with the full
// configured target. A deadline beyond the horizon targets the last slot
// with target and penalty scaled by how much of the time until the deadline
// the horizon covers, so consecutive runs converge on the full target
// instead of front-loading the whole charge.
func planEV(in Input) evPlan {
	ev := in.EV
	p := evPlan{targetSlot: -1}
	if !ev.Enabled() || len(in.Forecast) == 0 {
		return p
	}
	p.chargeMaxWh = in.Battery.ToWh(ev.MaxChargeW)
	p.capacityWh = ev.CapacityWh
	p.initialWh = ev.InitialEnergyWh()

	ready, ok := ev.ReadyTime(in.Start)
	if !ok {
		return p
	}
	slotDur := time.Duration(in.Battery.SlotMinutes) * time.Minute
	T := len(in.Forecast)
	lastStart := in.Start.Add(time.Duration(T-1) * slotDur)

	if !ready.After(lastStart) {
		for t := 0; t < T; t++ {
			if !in.Start.Add(time.Duration(t) * slotDur).Before(ready) {
				p.targetSlot = t
				break
			}
		}
		p.targetWh = ev.TargetWh()
		p.penaltyPerWh = ev.DeficitPenaltyPerWh
		return p
	}

	total := ready.Sub(in.Start).Hours()
	elapsed := lastStart.Sub(in.Start).Hours()
	progress := 1.0
	if total > 0 {
		progress = elapsed / total
	}
	if progress > 1 {
		progress = 1
	}
	p.targetSlot = T - 1
	p.targetWh = progress * ev.TargetWh()
	p.penaltyPerWh = progress * ev.DeficitPenaltyPerWh
	return p
}
