// SPDX-License-Identifier: MIT

// Package nogood implements an integer-cut (no-good cut) decomposition for
// mixed-integer quadratically-constrained minimization problems.
//
// The scheme alternates two solves over the very same model.Problem:
//
//  1. Master    — the linear relaxation (nonlinear constraints off) with all
//     integrality kept, solved by an external MILP oracle. Its objective is
//     a certified lower bound (LB) on the true optimum.
//  2. Subproblem — the full nonlinear model with every Binary variable fixed
//     to the master's assignment, solved by an external NLP oracle. A
//     feasible subproblem objective is an upper bound (UB) and a candidate
//     incumbent.
//
// After each subproblem, the master's binary assignment A is excluded by a
// no-good cut
//
//	Σ_{v: A(v)=1} (1 − v)  +  Σ_{v: A(v)=0} v  ≥  1
//
// which cuts exactly A and nothing else. Cuts accumulate monotonically; the
// master is re-solved and the loop runs until one of the terminal
// conditions fires:
//
//	Infeasible              — the very first master has no integer point.
//	BoundsCrossed           — UB < LB: the incumbent is certified optimal.
//	Converged               — relative LB/UB gap below tolerance (only under
//	                          an exact zero-gap oracle pairing; opt-in).
//	ExhaustedWithIncumbent  — a later master became infeasible: the discrete
//	                          space is spent, the incumbent is optimal among
//	                          all master-feasible assignments.
//	IterationLimitReached   — budget spent; incumbent (if any) is
//	                          best-effort, not certified.
//
// Both oracles are opaque, injected behind the SolverAdapter interface; the
// driver is solver-agnostic, single-threaded and synchronous. Only an
// oracle misbehaving (a status outside Optimal/LocallyOptimal/Infeasible,
// a transport error, a fractional master binary, a regressing lower bound)
// aborts the run, as a *SolverError. Everything else folds into the
// terminal states above.
//
// One deliberate asymmetry, kept from the scheme this package reproduces:
// only Binary variables are cut and fixed. General Integer variables stay
// free in the subproblem and are never excluded by cuts, so a master may
// revisit integer assignments that differ only on non-binary variables.
package nogood
