// SPDX-License-Identifier: MIT

package nlp

import "errors"

// DEFAULTS.
const (
	// DefaultFeasTol is the residual below which the penalty method accepts
	// a point as feasible.
	DefaultFeasTol = 1e-6

	// DefaultStepTol stops the inner descent when the projected step norm
	// falls below it.
	DefaultStepTol = 1e-9

	// DefaultMaxIter caps inner descent iterations per penalty level.
	DefaultMaxIter = 10_000

	// penaltyInit / penaltyMax / penaltyGrow drive the outer escalation
	// ρ ← ρ·grow until the residual is feasible or ρ exceeds the cap.
	penaltyInit = 10.0
	penaltyMax  = 1e9
	penaltyGrow = 10.0
)

const (
	panicFeasTol = "nlp: WithFeasTol: tol must be > 0"
	panicMaxIter = "nlp: WithMaxIter: n must be >= 1"
)

// Sentinel errors. All are reported together with nogood.StatusOther.
var (
	// ErrNumerical indicates NaN or ±Inf appeared during descent.
	ErrNumerical = errors.New("nlp: numerical failure during descent")

	// ErrBudget indicates the wall-clock budget ran out mid-descent.
	ErrBudget = errors.New("nlp: time budget exhausted before convergence")
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithFeasTol overrides the feasibility residual tolerance.
func WithFeasTol(tol float64) Option {
	if !(tol > 0) {
		panic(panicFeasTol)
	}
	return func(a *Adapter) { a.feasTol = tol }
}

// WithMaxIter overrides the inner iteration cap per penalty level.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(panicMaxIter)
	}
	return func(a *Adapter) { a.maxIter = n }
}

// Adapter is a reusable NLP oracle; construct with New.
type Adapter struct {
	feasTol float64
	maxIter int
}

// New returns an NLP adapter with the given options applied.
func New(opts ...Option) *Adapter {
	a := &Adapter{feasTol: DefaultFeasTol, maxIter: DefaultMaxIter}
	for _, fn := range opts {
		fn(a)
	}
	return a
}
