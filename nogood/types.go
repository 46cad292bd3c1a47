// SPDX-License-Identifier: MIT

// Package nogood: adapter contract, terminal states and error taxonomy.
package nogood

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/decomp/model"
)

// Sentinel errors.
var (
	// ErrNilProblem indicates Solve was called with a nil problem.
	ErrNilProblem = errors.New("nogood: problem is nil")

	// ErrNilAdapter indicates Solve was called without a master or
	// subproblem adapter.
	ErrNilAdapter = errors.New("nogood: solver adapter is nil")

	// ErrNoBinaries indicates the problem has no Binary variables: there is
	// nothing to cut, so the decomposition degenerates and is refused.
	ErrNoBinaries = errors.New("nogood: problem has no binary variables")

	// ErrBoundRegression indicates a master re-solve returned an objective
	// strictly below the previous lower bound. Cuts only remove discrete
	// points, so a deterministic oracle can never regress; this is an oracle
	// contract breach and is surfaced as a *SolverError.
	ErrBoundRegression = errors.New("nogood: master lower bound regressed")

	// ErrEmptyCut indicates a cut was requested over an empty binary
	// assignment.
	ErrEmptyCut = errors.New("nogood: cut over empty assignment")
)

// Role tells an adapter which side of the decomposition it is solving.
type Role uint8

const (
	// RoleMaster is the relaxed, linear, mixed-integer master problem.
	RoleMaster Role = iota
	// RoleSubproblem is the full nonlinear model with binaries fixed.
	RoleSubproblem
)

func (r Role) String() string {
	if r == RoleMaster {
		return "master"
	}
	return "subproblem"
}

// TermStatus is the oracle's own termination status.
// Anything other than the three well-defined statuses is StatusOther and is
// treated as fatal by the driver — adapters must not invent fallbacks.
type TermStatus uint8

const (
	// StatusOther covers every ambiguous outcome: budget exhausted without
	// proof, numerical failure, unbounded model, unsupported structure.
	// It is the zero value, so a zero or errored SolveResult never reads as
	// a certificate.
	StatusOther TermStatus = iota
	// StatusOptimal certifies a global optimum for the solved view.
	StatusOptimal
	// StatusLocallyOptimal certifies only stationarity (NLP oracles).
	StatusLocallyOptimal
	// StatusInfeasible certifies the solved view admits no feasible point.
	StatusInfeasible
)

func (s TermStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusLocallyOptimal:
		return "locally-optimal"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "other"
	}
}

// SolveOptions is the per-call budget and policy passed to an adapter.
// Fields an oracle does not support are ignored by that oracle.
type SolveOptions struct {
	// TimeLimit is the wall-clock budget for this single call; zero means
	// unlimited. Enforcement granularity is up to the oracle.
	TimeLimit time.Duration

	// AbsoluteGap is the absolute optimality gap at which a master oracle
	// may stop early. Meaningful for RoleMaster only.
	AbsoluteGap float64

	// Threads is passed through to oracles with internal parallelism.
	// The driver itself never observes that parallelism.
	Threads int

	// NonConvex asks an NLP oracle to treat quadratic terms as non-convex
	// (e.g. multi-start). Meaningful for RoleSubproblem only.
	NonConvex bool
}

// SolveResult is the oracle's verdict. On Optimal/LocallyOptimal the primal
// values have been written back onto the view before returning.
type SolveResult struct {
	Status    TermStatus
	Objective float64
}

// SolverAdapter is the uniform interface to an external MILP or NLP oracle.
// Implementations solve the active constraints of the view at its current
// fix state, write primal values back via view.SetValue, and report a
// TermStatus. An adapter must not retry, fall back, or mutate anything
// beyond primal values.
type SolverAdapter interface {
	Solve(ctx context.Context, v *model.View, role Role, opts SolveOptions) (SolveResult, error)
}

// SolverError is the single fatal error class of the driver: an oracle
// returned StatusOther, failed outright, or broke its contract (fractional
// master binaries, regressing bound). The run aborts with no partial result.
type SolverError struct {
	Role      Role
	Status    TermStatus
	Iteration int
	Err       error
}

func (e *SolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nogood: %s solve failed at iteration %d (status %s): %v",
			e.Role, e.Iteration, e.Status, e.Err)
	}
	return fmt.Sprintf("nogood: %s solve failed at iteration %d (status %s)",
		e.Role, e.Iteration, e.Status)
}

func (e *SolverError) Unwrap() error { return e.Err }

// Status is the driver's terminal state.
type Status uint8

const (
	// Converged: relative LB/UB gap fell below tolerance under an exact
	// oracle pairing. Incumbent is certified optimal.
	Converged Status = iota
	// BoundsCrossed: UB < LB. Incumbent is certified optimal.
	BoundsCrossed
	// Infeasible: no feasible integer assignment exists (first master
	// infeasible, or search exhausted with no incumbent).
	Infeasible
	// ExhaustedWithIncumbent: every master-feasible binary assignment was
	// tried; the incumbent is optimal among them.
	ExhaustedWithIncumbent
	// IterationLimitReached: budget spent; incumbent (possibly absent) is
	// best-effort and carries no optimality certificate.
	IterationLimitReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case BoundsCrossed:
		return "bounds-crossed"
	case Infeasible:
		return "infeasible"
	case ExhaustedWithIncumbent:
		return "exhausted-with-incumbent"
	case IterationLimitReached:
		return "iteration-limit-reached"
	default:
		return "unknown"
	}
}

// Certified reports whether the terminal state carries an optimality
// certificate for the incumbent.
func (s Status) Certified() bool {
	switch s {
	case Converged, BoundsCrossed, ExhaustedWithIncumbent:
		return true
	default:
		return false
	}
}

// Result is the outcome of one decomposition run.
type Result struct {
	// Status is the terminal state; see Status.Certified.
	Status Status

	// Incumbent is the best feasible full assignment found, nil if none.
	Incumbent model.Assignment

	// Objective is the incumbent's objective (equals UpperBound), +Inf if
	// no incumbent exists.
	Objective float64

	// LowerBound / UpperBound are the final bound state.
	LowerBound float64
	UpperBound float64

	// Iterations is the number of completed driver iterations k.
	Iterations int

	// Cuts is the number of no-good cuts appended to the master.
	Cuts int
}

// IterationRecord is one entry of the optional iteration trace.
type IterationRecord struct {
	K            int
	LowerBound   float64
	UpperBound   float64
	SubStatus    TermStatus
	SubObjective float64
	Cuts         int
}
