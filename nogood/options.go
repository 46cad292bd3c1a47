// SPDX-License-Identifier: MIT

// Package nogood: functional configuration of a decomposition run.
//
// Defaults are documented constants; WithX constructors panic only on
// nonsensical values (programmer error), never on policy choices.
package nogood

import "time"

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultIterLimit is the hard cap on driver iterations.
	DefaultIterLimit = 50

	// DefaultRelTol is the relative LB/UB gap used by the opt-in exact
	// convergence check.
	DefaultRelTol = 1e-6

	// DefaultAbsoluteGap is the absolute optimality gap handed to the
	// master oracle (zero: solve masters to proven optimality).
	DefaultAbsoluteGap = 0.0

	// relEps guards the relative-gap denominator against tiny bounds.
	relEps = 1e-9
)

const (
	panicIterLimit = "nogood: WithIterLimit: limit must be >= 0"
	panicTimeLimit = "nogood: WithTimeLimit: limit must be >= 0"
	panicRelTol    = "nogood: WithExactConvergence: rtol must be > 0"
	panicGap       = "nogood: WithAbsoluteGap: gap must be >= 0 and finite"
	panicThreads   = "nogood: WithThreads: n must be >= 1"
)

// Option mutates run options. Safe to apply repeatedly.
type Option func(*options)

type options struct {
	iterLimit int
	timeLimit time.Duration
	absGap    float64
	threads   int
	nonConvex bool
	warm      bool
	exact     bool
	rtol      float64
	trace     func(IterationRecord)
}

func defaultOptions() options {
	return options{
		iterLimit: DefaultIterLimit,
		absGap:    DefaultAbsoluteGap,
		rtol:      DefaultRelTol,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithIterLimit caps the number of driver iterations. Zero is legal and
// returns exactly the outcome of the first master solve.
func WithIterLimit(n int) Option {
	if n < 0 {
		panic(panicIterLimit)
	}
	return func(o *options) { o.iterLimit = n }
}

// WithTimeLimit sets the wall-clock budget per individual oracle call.
// There is no mid-solve cancellation beyond what the oracle enforces.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(panicTimeLimit)
	}
	return func(o *options) { o.timeLimit = d }
}

// WithAbsoluteGap sets the absolute optimality gap handed to master solves.
func WithAbsoluteGap(gap float64) Option {
	if gap < 0 || gap != gap || gap > 1e300 {
		panic(panicGap)
	}
	return func(o *options) { o.absGap = gap }
}

// WithThreads passes a thread count through to oracles with internal
// parallelism. The driver itself stays single-threaded.
func WithThreads(n int) Option {
	if n < 1 {
		panic(panicThreads)
	}
	return func(o *options) { o.threads = n }
}

// WithNonConvex asks the subproblem oracle to treat quadratic terms as
// non-convex, when it supports that.
func WithNonConvex() Option {
	return func(o *options) { o.nonConvex = true }
}

// WithWarmstart retains the subproblem view (and thus its primal values)
// across iterations, only re-fixing binaries each round. Default is cold:
// rebuild the subproblem view from the pristine problem every iteration.
func WithWarmstart() Option {
	return func(o *options) { o.warm = true }
}

// WithExactConvergence enables the relative-gap stopping rule
//
//	|UB − LB| / (max(|LB|,|UB|) + ε) < rtol  ⇒  Converged.
//
// Sound only when both oracles return exact global optima with zero gap;
// with heuristic or local oracles leave this off (the default) and rely on
// bounds crossing or exhaustion.
func WithExactConvergence(rtol float64) Option {
	if !(rtol > 0) {
		panic(panicRelTol)
	}
	return func(o *options) {
		o.exact = true
		o.rtol = rtol
	}
}

// WithTrace registers a callback invoked after every completed iteration
// with the current bound state. The callback must not mutate the model.
func WithTrace(fn func(IterationRecord)) Option {
	return func(o *options) { o.trace = fn }
}

func (o options) masterOptions() SolveOptions {
	return SolveOptions{TimeLimit: o.timeLimit, AbsoluteGap: o.absGap, Threads: o.threads}
}

func (o options) subOptions() SolveOptions {
	return SolveOptions{TimeLimit: o.timeLimit, Threads: o.threads, NonConvex: o.nonConvex}
}
