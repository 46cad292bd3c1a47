// SPDX-License-Identifier: MIT

// Package nogood: the decomposition driver.
//
// State machine (terminal states in caps):
//
//	Init → MasterSolve → { INFEASIBLE | HaveLB }
//	HaveLB → SubproblemSolve → { UpdateBound | SkipBound }
//	       → { BOUNDS-CROSSED | CONVERGED }?
//	       → AddCut → MasterResolve → { EXHAUSTED/INFEASIBLE | HaveNewLB }
//	       → loop | ITERATION-LIMIT
//
// Invariants maintained per iteration k:
//   - LB_k ≤ LB_{k+1} (cuts only remove discrete points; a regression is an
//     oracle contract breach and aborts the run).
//   - UB_k ≥ UB_{k+1} (UB updates on strict improvement only).
//   - Iteration k's subproblem is built from exactly the assignment of
//     iteration k's most recent master solve; the model views are owned by
//     this goroutine alone for the duration of the run.
package nogood

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/decomp/logger"
	"github.com/katalvlaran/decomp/model"
)

// boundState tracks the converging bound pair of one run.
// Fresh per run; discarded at termination.
type boundState struct {
	lb        float64
	ub        float64
	incumbent model.Assignment
}

func newBoundState() boundState {
	return boundState{lb: math.Inf(-1), ub: math.Inf(1)}
}

// relGap is the symmetric relative LB/UB gap with a guarded denominator.
func (b boundState) relGap() float64 {
	d := math.Max(math.Abs(b.lb), math.Abs(b.ub)) + relEps
	return math.Abs(b.ub-b.lb) / d
}

func (b boundState) result(s Status, iters, cuts int) Result {
	obj := math.Inf(1)
	if b.incumbent != nil {
		obj = b.ub
	}
	return Result{
		Status:     s,
		Incumbent:  b.incumbent,
		Objective:  obj,
		LowerBound: b.lb,
		UpperBound: b.ub,
		Iterations: iters,
		Cuts:       cuts,
	}
}

// Solve runs the integer-cut decomposition of p until a terminal state.
//
// master and sub are the injected MILP and NLP oracles; the driver issues
// one blocking call at a time and never overlaps them. ctx is passed
// through to every oracle call; cancellation beyond the per-call time
// budget is up to the oracles themselves.
//
// The error return is non-nil only for the fatal class (*SolverError and
// argument sentinels); every expected condition — initial infeasibility,
// infeasible subproblems, exhaustion, budget expiry — is reported through
// Result.Status.
func Solve(ctx context.Context, p *model.Problem, master, sub SolverAdapter, opts ...Option) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProblem
	}
	if master == nil || sub == nil {
		return Result{}, ErrNilAdapter
	}
	if p.NumBinary() == 0 {
		return Result{}, ErrNoBinaries
	}
	o := gatherOptions(opts)
	log := logger.Logger().With().Str("component", "nogood").Logger()

	// Init → MasterSolve: linear relaxation, nonlinear constraints off.
	mv := model.NewView(p)
	mv.Relax(false)
	bounds := newBoundState()

	mres, err := master.Solve(ctx, mv, RoleMaster, o.masterOptions())
	if err != nil {
		return Result{}, &SolverError{Role: RoleMaster, Status: mres.Status, Err: err}
	}
	switch mres.Status {
	case StatusOptimal, StatusLocallyOptimal:
		bounds.lb = mres.Objective
	case StatusInfeasible:
		// No feasible integer assignment exists at all; zero subproblem
		// solves were performed.
		log.Debug().Msg("initial master infeasible")
		return bounds.result(Infeasible, 0, 0), nil
	default:
		return Result{}, &SolverError{Role: RoleMaster, Status: mres.Status}
	}
	log.Debug().Float64("lb", bounds.lb).Msg("initial master solved")

	var sv *model.View // retained across iterations in warm mode
	cuts := 0
	for k := 0; k < o.iterLimit; k++ {
		assignment, err := mv.BinaryAssignment()
		if err != nil {
			// The MILP oracle must deliver integral binaries; fractional
			// values are a contract breach, not a recoverable state.
			return Result{}, &SolverError{Role: RoleMaster, Iteration: k, Err: err}
		}

		// SubproblemSolve: full model, binaries pinned to the master's
		// assignment. Cold mode rebuilds the view from the pristine
		// problem; warm mode keeps the previous view so the oracle sees
		// last iteration's primal values as a starting point.
		if sv == nil || !o.warm {
			sv = model.NewView(p)
		} else {
			sv.Unfix()
		}
		sv.Relax(true)
		if err = sv.FixBinaries(assignment); err != nil {
			return Result{}, fmt.Errorf("nogood: fixing subproblem binaries: %w", err)
		}
		sres, err := sub.Solve(ctx, sv, RoleSubproblem, o.subOptions())
		if err != nil {
			return Result{}, &SolverError{Role: RoleSubproblem, Status: sres.Status, Iteration: k, Err: err}
		}

		switch sres.Status {
		case StatusOptimal, StatusLocallyOptimal:
			if sres.Objective < bounds.ub {
				bounds.ub = sres.Objective
				bounds.incumbent = sv.Assignment()
				log.Debug().Int("k", k).Float64("ub", bounds.ub).Msg("incumbent improved")
			}
			if bounds.ub < bounds.lb {
				// Every remaining master-feasible assignment is bounded
				// below by LB, which the incumbent already beats.
				log.Debug().Int("k", k).Msg("bounds crossed")
				return bounds.result(BoundsCrossed, k+1, cuts), nil
			}
			if o.exact && bounds.relGap() < o.rtol {
				log.Debug().Int("k", k).Float64("gap", bounds.relGap()).Msg("converged")
				return bounds.result(Converged, k+1, cuts), nil
			}
		case StatusInfeasible:
			// Expected and non-fatal: this binary assignment admits no
			// feasible continuous completion. The cut below excludes it.
			log.Debug().Int("k", k).Msg("subproblem infeasible")
		default:
			return Result{}, &SolverError{Role: RoleSubproblem, Status: sres.Status, Iteration: k}
		}

		// AddCut: exclude the tried assignment from the master, forever.
		cut, err := NewCut(assignment)
		if err != nil {
			return Result{}, fmt.Errorf("nogood: building cut %d: %w", cuts, err)
		}
		cons, err := cut.AsConstraint(p, cuts)
		if err != nil {
			return Result{}, fmt.Errorf("nogood: lowering cut %d: %w", cuts, err)
		}
		if err = mv.AppendConstraint(cons); err != nil {
			return Result{}, fmt.Errorf("nogood: appending cut %d: %w", cuts, err)
		}
		cuts++

		// MasterResolve on the tightened cut set.
		mres, err = master.Solve(ctx, mv, RoleMaster, o.masterOptions())
		if err != nil {
			return Result{}, &SolverError{Role: RoleMaster, Status: mres.Status, Iteration: k, Err: err}
		}
		switch mres.Status {
		case StatusOptimal, StatusLocallyOptimal:
			if mres.Objective < bounds.lb-regressTol(bounds.lb) {
				return Result{}, &SolverError{
					Role: RoleMaster, Status: mres.Status, Iteration: k,
					Err: fmt.Errorf("%w: %g < %g", ErrBoundRegression, mres.Objective, bounds.lb),
				}
			}
			bounds.lb = mres.Objective
		case StatusInfeasible:
			// The discrete search space is exhausted.
			if bounds.incumbent != nil {
				log.Debug().Int("k", k).Msg("search exhausted; returning incumbent")
				return bounds.result(ExhaustedWithIncumbent, k+1, cuts), nil
			}
			log.Debug().Int("k", k).Msg("search exhausted; no incumbent")
			return bounds.result(Infeasible, k+1, cuts), nil
		default:
			return Result{}, &SolverError{Role: RoleMaster, Status: mres.Status, Iteration: k}
		}

		if o.trace != nil {
			o.trace(IterationRecord{
				K:            k,
				LowerBound:   bounds.lb,
				UpperBound:   bounds.ub,
				SubStatus:    sres.Status,
				SubObjective: sres.Objective,
				Cuts:         cuts,
			})
		}
		log.Debug().Int("k", k).Float64("lb", bounds.lb).Float64("ub", bounds.ub).
			Int("cuts", cuts).Msg("iteration complete")
	}

	return bounds.result(IterationLimitReached, o.iterLimit, cuts), nil
}

// regressTol is the numeric slack allowed before a shrinking master
// objective is declared a bound regression.
func regressTol(lb float64) float64 {
	a := math.Abs(lb)
	if a < 1 {
		a = 1
	}
	return relEps * a
}
