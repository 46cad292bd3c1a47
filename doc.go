// SPDX-License-Identifier: MIT

// Package decomp is a solver-agnostic toolkit for integer-cut (no-good cut)
// decomposition of mixed-integer quadratically-constrained minimization
// problems (MIQCP).
//
// 🚀 What is decomp?
//
//	A small, deterministic library that splits a hard MIQCP into a loop of
//	two tractable solves:
//		• Master     — the linear relaxation with integrality kept (MILP)
//		• Subproblem — the full nonlinear model with binaries fixed (NLP)
//	and steers the loop with no-good cuts plus converging lower/upper
//	bounds until optimality is certified or the budget runs out.
//
// ✨ Why choose decomp?
//
//   - Immutable problems, explicit views — no shared mutable model between
//     the two solver roles; every per-iteration change is an overlay
//   - Solver-agnostic — oracles are injected behind one small interface;
//     in-tree pure-Go backends (simplex branch-and-bound, penalized
//     projected gradient) come included
//   - Honest termination taxonomy — certified optima are distinguishable
//     from best-effort incumbents, and ambiguous solver states abort
//     instead of guessing
//
// Everything is organized under small, focused subpackages:
//
//	model/      — immutable MIQCP container (variables, constraints,
//	              objective) plus copy-on-write Views for relaxing, fixing
//	              and cut accumulation
//	nogood/     — the decomposition driver, cut generator, adapter contract
//	              and terminal-state/error taxonomy
//	milp/       — master oracle: branch-and-bound over gonum's Simplex
//	nlp/        — subproblem oracle: penalized projected-gradient descent
//	solvertest/ — deterministic scripted oracles for tests and examples
//	logger/     — zerolog-backed logging switchboard shared by all of the
//	              above
//
// Quick sketch:
//
//	p, _ := model.NewBuilder().
//	    AddBinary("build_a").
//	    AddBinary("build_b").
//	    AddContinuous("flow", 0, 10).
//	    AddConstraint("cap", model.LE, 8,
//	        model.L(1, "flow"), model.Q(2, "flow", "build_a")).
//	    SetObjective(model.L(3, "flow"), model.L(5, "build_b")).
//	    Build()
//
//	res, err := nogood.Solve(ctx, p, milp.New(), nlp.New(),
//	    nogood.WithIterLimit(25))
//
// res.Status tells you whether res.Incumbent is certified optimal
// (Converged, BoundsCrossed, ExhaustedWithIncumbent) or best-effort
// (IterationLimitReached).
package decomp
