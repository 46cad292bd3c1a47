// SPDX-License-Identifier: MIT

package nlp

import (
	"context"
	"math"

	"github.com/katalvlaran/decomp/logger"
	"github.com/katalvlaran/decomp/model"
	"github.com/katalvlaran/decomp/nogood"
)

// Solve implements nogood.SolverAdapter for the subproblem role.
//
// The starting point is the view's current primal values — which is exactly
// what makes the driver's warm mode effective: a retained view hands last
// iteration's solution back to this oracle as the seed. Under
// SolveOptions.NonConvex additional deterministic seeds (box midpoint and
// the two finite corners) are descended too, keeping the best stationary
// point found.
func (a *Adapter) Solve(ctx context.Context, v *model.View, _ nogood.Role, opts nogood.SolveOptions) (nogood.SolveResult, error) {
	log := logger.Logger().With().Str("component", "nlp").Logger()
	eng := newEngine(ctx, v, a.feasTol, a.maxIter, opts.TimeLimit)

	seeds := [][]float64{v.Values()}
	if opts.NonConvex {
		seeds = append(seeds, eng.seedMid(), eng.seedCorner(false), eng.seedCorner(true))
	}

	var (
		bestX    []float64
		bestObj  = math.Inf(1)
		anyFeas  bool
		lastFail error
	)
	for _, x := range seeds {
		feasible, err := eng.minimize(x)
		if err != nil {
			lastFail = err
			continue
		}
		if !feasible {
			continue
		}
		if obj := eng.obj.Eval(x); obj < bestObj {
			anyFeas = true
			bestObj = obj
			bestX = x
		}
	}
	if lastFail != nil && !anyFeas {
		return nogood.SolveResult{Status: nogood.StatusOther}, lastFail
	}
	if !anyFeas {
		log.Debug().Msg("penalty escalation exhausted; infeasible")
		return nogood.SolveResult{Status: nogood.StatusInfeasible}, nil
	}

	for i, val := range bestX {
		v.SetValue(i, val)
	}
	log.Debug().Float64("objective", bestObj).Msg("locally optimal")
	return nogood.SolveResult{Status: nogood.StatusLocallyOptimal, Objective: bestObj}, nil
}

// seedMid is the midpoint of the (finite-clamped) box.
func (e *engine) seedMid() []float64 {
	x := make([]float64, len(e.lower))
	for i := range x {
		lo, hi := finiteBox(e.lower[i], e.upper[i])
		x[i] = (lo + hi) / 2
	}
	return x
}

// seedCorner is the lower (or upper) finite-clamped corner of the box.
func (e *engine) seedCorner(up bool) []float64 {
	x := make([]float64, len(e.lower))
	for i := range x {
		lo, hi := finiteBox(e.lower[i], e.upper[i])
		if up {
			x[i] = hi
		} else {
			x[i] = lo
		}
	}
	return x
}

// finiteBox clamps infinite bounds to a large finite box so seeds stay
// representable; projection still uses the true bounds.
func finiteBox(lo, hi float64) (float64, float64) {
	const big = 1e6
	if math.IsInf(lo, -1) {
		lo = -big
	}
	if math.IsInf(hi, 1) {
		hi = big
	}
	return lo, hi
}
