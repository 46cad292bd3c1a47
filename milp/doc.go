// SPDX-License-Identifier: MIT

// Package milp is a pure-Go MILP oracle for the master role of the nogood
// decomposition: branch-and-bound over LP relaxations solved with gonum's
// dense Simplex (gonum.org/v1/gonum/optimize/convex/lp).
//
// Scope and contract:
//
//   - Accepts any view whose *active* constraints and objective are linear;
//     an active nonlinear constraint or a quadratic objective yields
//     StatusOther plus ErrNonlinear — this oracle does not linearize.
//   - Fixed variables are substituted out; free variables are shifted to
//     the nonnegative orthant (y = x − lower), so every free variable needs
//     a finite lower bound. Finite upper bounds become inequality rows.
//   - Branching is deterministic: most fractional integral column, lowest
//     index tiebreak, ≤-branch explored first. Identical inputs always
//     yield identical search trees.
//   - Budget: wall-clock time limit (sparse deadline checks) and a node
//     cap. Exhausting either without a proof reports StatusOther — the
//     driver treats ambiguity as fatal by design, so this oracle never
//     pretends a best-effort incumbent is a certificate.
//   - Optimality is certified within SolveOptions.AbsoluteGap (zero by
//     default: exact proof).
//
// Primal values are written back onto the view on success, with integral
// columns rounded to their proven integer values.
package milp
