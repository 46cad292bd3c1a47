// SPDX-License-Identifier: MIT

// Package nlp is a pure-Go NLP oracle for the subproblem role of the
// nogood decomposition: projected-gradient descent on the quadratic
// objective with an escalating quadratic penalty for active constraints,
// and box projection onto variable bounds.
//
// With every Binary variable fixed by the subproblem builder, the remaining
// model is a box-constrained quadratic program with quadratic constraints —
// smooth, with analytic gradients (model.Expr.AddGrad), so first-order
// descent is exact in its derivatives.
//
// Status mapping, deliberately conservative:
//
//	descent converged, residual feasible   → StatusLocallyOptimal
//	    (stationarity is all a first-order method certifies; this oracle
//	    never claims StatusOptimal)
//	penalty escalation cannot reach feasibility → StatusInfeasible
//	NaN/divergence/time budget                → StatusOther + error
//
// SolveOptions.NonConvex switches on deterministic multi-start (bound
// corners plus midpoint) and keeps the best stationary point, which is the
// standard cheap hedge when bilinear terms make the subproblem non-convex.
package nlp
