// SPDX-License-Identifier: MIT

package milp

import "errors"

// DEFAULTS.
const (
	// DefaultNodeLimit caps the number of branch-and-bound nodes explored
	// in a single Solve call.
	DefaultNodeLimit = 100_000

	// intTol is the integrality tolerance: an LP value within intTol of an
	// integer counts as integral.
	intTol = 1e-7

	// deadlineStride is how many nodes pass between wall-clock checks.
	deadlineStride = 64
)

const panicNodeLimit = "milp: WithNodeLimit: limit must be >= 1"

// Sentinel errors. All are reported together with nogood.StatusOther.
var (
	// ErrNonlinear indicates an active nonlinear constraint or a quadratic
	// objective; this backend solves strictly linear models.
	ErrNonlinear = errors.New("milp: model is not linear")

	// ErrUnboundedBelow indicates a free variable without a finite lower
	// bound; standard-form shifting requires one.
	ErrUnboundedBelow = errors.New("milp: variable has no finite lower bound")

	// ErrUnbounded indicates the LP relaxation is unbounded.
	ErrUnbounded = errors.New("milp: relaxation is unbounded")

	// ErrBudget indicates the node or time budget ran out before a proof.
	ErrBudget = errors.New("milp: search budget exhausted before optimality proof")
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithNodeLimit caps branch-and-bound nodes per Solve call.
func WithNodeLimit(n int) Option {
	if n < 1 {
		panic(panicNodeLimit)
	}
	return func(a *Adapter) { a.nodeLimit = n }
}

// Adapter is a reusable, stateless-between-calls MILP oracle.
// The zero value is not usable; construct with New.
type Adapter struct {
	nodeLimit int
}

// New returns a MILP adapter with the given options applied.
func New(opts ...Option) *Adapter {
	a := &Adapter{nodeLimit: DefaultNodeLimit}
	for _, fn := range opts {
		fn(a)
	}
	return a
}
