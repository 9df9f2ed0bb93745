package optimizer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/solbatt/solbatt/core/model"
)

func testEV(readyBy string) model.EVConfig {
	return model.EVConfig{
		CapacityWh:          8000,
		MaxChargeW:          4000,
		TargetSOC:           0.9,
		DeficitPenaltyPerWh: 0.01,
		ReadyBy:             readyBy,
	}
}

func TestEVChargesToTargetByDeadline(t *testing.T) {
	// Flat prices leave the battery idle; the EV must still reach its
	// 9000 Wh target by the 02:00 slot because the deficit penalty dwarfs
	// the import price.
	ev := testEV("02:00")
	ev.CapacityWh = 10000
	ev.MaxChargeW = 5000
	in := Input{
		Start:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Battery:  testBattery(),
		EV:       ev,
		Forecast: []model.ForecastPoint{{}, {}, {}, {}},
		Prices:   flatPrices(4, 1.0, 0.95, 0.68),
	}
	o := New(Config{}, nil)
	res, err := o.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if got := res.Entries[2].EVEnergyWh; math.Abs(got-9000) > 1e-3 {
		t.Fatalf("ev energy at deadline %v, want 9000", got)
	}
	prevEV := 0.0
	for i, e := range res.Entries {
		if e.EVChargeWh > in.Battery.ToWh(ev.MaxChargeW)+1e-3 {
			t.Fatalf("slot %d: ev charge %v exceeds limit", i, e.EVChargeWh)
		}
		if math.Abs(e.EVEnergyWh-(prevEV+e.EVChargeWh)) > 1e-3 {
			t.Fatalf("slot %d: ev energy %v, want %v", i, e.EVEnergyWh, prevEV+e.EVChargeWh)
		}
		prevEV = e.EVEnergyWh

		f := in.Forecast[i]
		got := f.ProductionWh + e.GridImportWh + e.BatteryDischargeWh
		want := f.ConsumptionWh + e.BatteryChargeWh + e.EVChargeWh + e.GridExportWh
		if math.Abs(got-want) > 1e-3 {
			t.Fatalf("slot %d: balance off by %v", i, got-want)
		}
		if e.BatteryChargeWh != 0 || e.BatteryDischargeWh != 0 {
			t.Fatalf("slot %d: unexpected battery flow %+v", i, e)
		}
	}
	// No reason to keep charging past the deadline target.
	if got := res.Entries[3].EVEnergyWh; math.Abs(got-9000) > 1e-3 {
		t.Fatalf("final ev energy %v, want 9000", got)
	}
}

func TestEVDeadlineBeyondHorizonScalesTarget(t *testing.T) {
	// Ready at 04:00 with a two-slot horizon: a quarter of the time until
	// the deadline is covered, so a quarter of the 7200 Wh target is due
	// by the end of the horizon.
	in := Input{
		Start:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Battery:  testBattery(),
		EV:       testEV("04:00"),
		Forecast: []model.ForecastPoint{{}, {}},
		Prices:   flatPrices(2, 0.5, 0.95, 0.68),
	}
	plan := planEV(in)
	if plan.targetSlot != 1 {
		t.Fatalf("target slot %d, want last slot", plan.targetSlot)
	}
	if math.Abs(plan.targetWh-1800) > 1e-9 {
		t.Fatalf("scaled target %v, want 1800", plan.targetWh)
	}

	o := New(Config{}, nil)
	res, err := o.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got := res.Entries[1].EVEnergyWh; math.Abs(got-1800) > 1e-3 {
		t.Fatalf("final ev energy %v, want 1800", got)
	}
}

func TestEVWithoutDeadlineStaysIdle(t *testing.T) {
	// No ready-by time means no deficit penalty, and at positive prices
	// charging the EV is pure cost.
	in := Input{
		Start:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Battery:  testBattery(),
		EV:       testEV(""),
		Forecast: []model.ForecastPoint{{}, {}, {}},
		Prices:   flatPrices(3, 1.0, 0.95, 0.68),
	}
	o := New(Config{}, nil)
	res, err := o.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	for i, e := range res.Entries {
		if e.EVChargeWh != 0 || e.EVEnergyWh != 0 {
			t.Fatalf("slot %d: unexpected ev activity %+v", i, e)
		}
	}
}

func TestNoEVKeepsEntriesZero(t *testing.T) {
	in := mixedScenario()
	o := New(Config{}, nil)
	res, err := o.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	for i, e := range res.Entries {
		if e.EVChargeWh != 0 || e.EVEnergyWh != 0 {
			t.Fatalf("slot %d: ev columns leaked into the schedule: %+v", i, e)
		}
	}
}

func TestEVValidation(t *testing.T) {
	o := New(Config{}, nil)
	in := Input{
		Battery:  testBattery(),
		Forecast: []model.ForecastPoint{{}},
		Prices:   flatPrices(1, 1.0, 0.95, 0.68),
	}

	cases := map[string]model.EVConfig{
		"capacity without charger": {CapacityWh: 8000},
		"bad initial soc":          {CapacityWh: 8000, MaxChargeW: 4000, InitialSOC: 1.2, TargetSOC: 0.9},
		"bad target soc":           {CapacityWh: 8000, MaxChargeW: 4000, TargetSOC: -0.1},
		"negative penalty":         {CapacityWh: 8000, MaxChargeW: 4000, TargetSOC: 0.9, DeficitPenaltyPerWh: -1},
		"bad ready_by":             {CapacityWh: 8000, MaxChargeW: 4000, TargetSOC: 0.9, ReadyBy: "25:99"},
	}
	for name, ev := range cases {
		bad := in
		bad.EV = ev
		var verr *ValidationError
		if _, err := o.Schedule(context.Background(), bad); !errors.As(err, &verr) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}
