package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/solbatt/solbatt/core/logger"
	"github.com/solbatt/solbatt/core/model"
)

// Input is one complete solve request. Inputs are treated as immutable;
// nothing persists across calls.
type Input struct {
	Start    time.Time
	Battery  model.BatteryConfig
	EV       model.EVConfig
	Forecast []model.ForecastPoint
	Prices   []model.Price
}

// Config holds the optimizer tuning knobs. The SOC penalty must stay below
// the maximum realizable arbitrage margin per Wh (max buy - min sell) or
// the deficit term dominates all scheduling decisions.
type Config struct {
	SOCPenaltyPerWh       float64       `json:"soc_penalty_per_wh"`
	ChargeFrictionPerWh   float64       `json:"charge_friction_per_wh"`
	HoldIncentivePerWh    float64       `json:"hold_incentive_per_wh"`
	DisableTerminalCredit bool          `json:"disable_terminal_credit"`
	Timeout               time.Duration `json:"-"`
	TimeoutSeconds        int           `json:"timeout_seconds"`
	Tolerance             float64       `json:"tolerance"`
	Policy                ExtractPolicy `json:"limit_policy"`
}

// SetDefaults fills zero fields with production defaults.
func (c *Config) SetDefaults() {
	if c.SOCPenaltyPerWh == 0 {
		c.SOCPenaltyPerWh = 5e-4
	}
	if c.ChargeFrictionPerWh == 0 {
		c.ChargeFrictionPerWh = 1e-6
	}
	if c.HoldIncentivePerWh == 0 {
		c.HoldIncentivePerWh = 1e-7
	}
	if c.Timeout == 0 {
		if c.TimeoutSeconds > 0 {
			c.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
		} else {
			c.Timeout = 30 * time.Second
		}
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-6
	}
	if c.Policy.CapacityMarginWh == 0 {
		c.Policy.CapacityMarginWh = 1
	}
	if c.Policy.FloorMarginWh == 0 {
		c.Policy.FloorMarginWh = 1
	}
}

// Result is the solved schedule with its solver status and total objective.
type Result struct {
	Status    Status                `json:"status"`
	Objective float64               `json:"objective"`
	Entries   []model.ScheduleEntry `json:"entries"`
}

// Optimizer builds and solves schedule LPs. It carries only configuration
// and a logger, so a single instance may serve concurrent callers.
type Optimizer struct {
	cfg Config
	log logger.Logger
}

// New returns an Optimizer with defaults applied. A nil logger is replaced
// with a no-op implementation.
func New(cfg Config, log logger.Logger) *Optimizer {
	cfg.SetDefaults()
	if log == nil {
		log = nopLogger{}
	}
	return &Optimizer{cfg: cfg, log: log}
}

// Schedule validates the input, formulates the LP, solves it and decodes
// the solution. An empty horizon is a valid request answered with an empty
// optimal schedule. Infeasible, unbounded and failed solves surface as
// typed errors; the optimizer never substitutes a default schedule.
func (o *Optimizer) Schedule(ctx context.Context, in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if len(in.Forecast) == 0 {
		return &Result{Status: StatusOptimal, Objective: 0, Entries: []model.ScheduleEntry{}}, nil
	}

	started := time.Now()
	prob := buildProblem(in)
	c := composeObjective(in, o.cfg)

	obj, x, status, err := o.solve(ctx, c, prob)
	switch status {
	case StatusOptimal, StatusFeasible:
		// fall through to extraction
	case StatusTimeout:
		o.log.Warnf("solve timed out after %s (%d slots)", o.cfg.Timeout, len(in.Forecast))
		return nil, &TimeoutError{Budget: o.cfg.Timeout}
	case StatusInfeasible, StatusUnbounded:
		return nil, &InfeasibleError{Status: status, Err: err}
	default:
		return nil, fmt.Errorf("lp solve failed: %w", err)
	}

	entries := o.extract(in, x)
	o.log.Debugw("schedule solved", map[string]any{
		"slots":     len(entries),
		"objective": obj,
		"elapsed":   time.Since(started).String(),
	})
	return &Result{Status: status, Objective: obj, Entries: entries}, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
