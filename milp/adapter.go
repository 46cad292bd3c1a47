// SPDX-License-Identifier: MIT

package milp

import (
	"context"
	"errors"
	"math"

	"github.com/katalvlaran/decomp/logger"
	"github.com/katalvlaran/decomp/model"
	"github.com/katalvlaran/decomp/nogood"
)

// Solve implements nogood.SolverAdapter.
//
// The role only affects which SolveOptions fields are honored (AbsoluteGap
// is a master-side knob); the lowering and the search are role-agnostic, so
// the adapter also solves all-linear subproblem views, which is convenient
// in tests. Status mapping:
//
//	proof completed, incumbent found  → StatusOptimal (within AbsoluteGap)
//	proof completed, no incumbent     → StatusInfeasible
//	nonlinear/unbounded/budget/numeric → StatusOther + error
func (a *Adapter) Solve(ctx context.Context, v *model.View, role nogood.Role, opts nogood.SolveOptions) (nogood.SolveResult, error) {
	log := logger.Logger().With().Str("component", "milp").Str("role", role.String()).Logger()

	sf, err := buildStandardForm(v)
	if errors.Is(err, errEmptyIntegerBox) {
		log.Debug().Msg("integer bounds admit no lattice point")
		return nogood.SolveResult{Status: nogood.StatusInfeasible}, nil
	}
	if err != nil {
		return nogood.SolveResult{Status: nogood.StatusOther}, err
	}

	if sf.n == 0 {
		// Everything fixed: feasibility is a direct right-hand-side test.
		if !sf.feasibleDegenerate() {
			return nogood.SolveResult{Status: nogood.StatusInfeasible}, nil
		}
		return nogood.SolveResult{Status: nogood.StatusOptimal, Objective: sf.offset}, nil
	}

	absGap := 0.0
	if role == nogood.RoleMaster {
		absGap = opts.AbsoluteGap
	}
	eng := newEngine(ctx, sf, absGap, a.nodeLimit, opts.TimeLimit)
	if err = eng.run(); err != nil {
		return nogood.SolveResult{Status: nogood.StatusOther}, err
	}
	if !eng.found {
		log.Debug().Int("nodes", eng.nodes).Msg("proven infeasible")
		return nogood.SolveResult{Status: nogood.StatusInfeasible}, nil
	}

	// Unshift and write the primal point back onto the view. Integral
	// columns are rounded to the integers the proof certified.
	for col, i := range sf.cols {
		val := eng.bestY[col] + sf.lower[col]
		if sf.integral[col] {
			val = math.Round(val)
		}
		v.SetValue(i, val)
	}
	obj := eng.best + sf.offset
	log.Debug().Int("nodes", eng.nodes).Float64("objective", obj).Msg("solved")
	return nogood.SolveResult{Status: nogood.StatusOptimal, Objective: obj}, nil
}
