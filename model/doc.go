// SPDX-License-Identifier: MIT

// Package model defines the canonical, immutable representation of a
// mixed-integer quadratically-constrained minimization problem (MIQCP)
// and the lightweight overlays ("views") that the decomposition driver
// manipulates instead of mutating the problem itself.
//
// What lives here:
//
//	• Variable      — identity, VarDomain tag (Continuous / Integer / Binary),
//	                  lower/upper bounds.
//	• Expr          — sparse linear + quadratic terms over variable indices,
//	                  with analytic evaluation and gradient.
//	• Constraint    — identity, relation (≤ / ≥ / =), right-hand side and a
//	                  Linearity tag derived once at build time from the
//	                  polynomial degree of the body.
//	• Problem       — the immutable container, assembled via Builder; all
//	                  validation (duplicate names, bound sanity, domain
//	                  exhaustiveness) happens in Build, never per iteration.
//	• View          — a copy-on-write overlay over a *Problem: a
//	                  constraint-active bitmap, a variable-fix map, appended
//	                  linear constraints (integer cuts) and a primal value
//	                  vector. Views are cheap; the Problem is shared.
//
// Why views?
//
// The decomposition scheme alternates between two *roles* of the very same
// problem: a linear, mixed-integer master (nonlinear constraints switched
// off) and a fixed-binary nonlinear subproblem (everything switched on,
// binaries pinned). Mutating one shared model in place for both roles is a
// well-known global-state hazard; a View keeps the canonical Problem
// untouched and makes every per-iteration change explicit, reversible and
// testable.
//
// Determinism: variable and constraint order is insertion order and never
// reshuffled; every exported operation on the same inputs yields the same
// outputs.
package model
