package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Status is the outcome reported by the solver adapter.
type Status int

const (
	StatusOptimal Status = iota
	// StatusFeasible is reserved for engines that can stop at a feasible
	// but non-optimal point; the simplex backend always proves optimality.
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusTimeout
	StatusError
)

var statusNames = map[Status]string{
	StatusOptimal:    "OPTIMAL",
	StatusFeasible:   "FEASIBLE",
	StatusInfeasible: "INFEASIBLE",
	StatusUnbounded:  "UNBOUNDED",
	StatusTimeout:    "TIMEOUT",
	StatusError:      "ERROR",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// MarshalJSON emits the status name rather than the numeric value.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

const simplexTol = 1e-7

// solveLP converts the general-form problem to standard form and runs the
// simplex. Convert splits each free variable into positive and negative
// parts, so the original values are recovered as x[i] = sol[i] - sol[n+i].
func solveLP(c []float64, p *problem) (float64, []float64, error) {
	cStd, aStd, bStd := lp.Convert(c, p.g, p.h, p.a, p.b)
	obj, sol, err := lp.Simplex(cStd, aStd, bStd, simplexTol, nil)
	if err != nil {
		return 0, nil, err
	}
	x := make([]float64, p.nVars)
	for i := range x {
		x[i] = sol[i] - sol[p.nVars+i]
	}
	return obj, x, nil
}

// lpSolve points to the function used to solve the LP. It can be overridden
// in tests to simulate solver failures.
var lpSolve = solveLP

// solve runs the LP under the configured wall-clock budget. The simplex
// cannot be interrupted mid-pivot; on timeout the worker goroutine is
// abandoned and its result discarded when it eventually finishes.
func (o *Optimizer) solve(ctx context.Context, c []float64, p *problem) (float64, []float64, Status, error) {
	type outcome struct {
		obj float64
		x   []float64
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		obj, x, err := lpSolve(c, p)
		ch <- outcome{obj: obj, x: x, err: err}
	}()

	var deadline <-chan time.Time
	if o.cfg.Timeout > 0 {
		timer := time.NewTimer(o.cfg.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case out := <-ch:
		switch {
		case out.err == nil:
			return out.obj, out.x, StatusOptimal, nil
		case errors.Is(out.err, lp.ErrInfeasible):
			return 0, nil, StatusInfeasible, out.err
		case errors.Is(out.err, lp.ErrUnbounded):
			return 0, nil, StatusUnbounded, out.err
		default:
			return 0, nil, StatusError, out.err
		}
	case <-deadline:
		return 0, nil, StatusTimeout, nil
	case <-ctx.Done():
		return 0, nil, StatusTimeout, ctx.Err()
	}
}
