// SPDX-License-Identifier: MIT

// Package model: enums, sentinel errors and shared scalar policy.
//
// All sentinels are wrapped with the "model:" prefix so callers can rely on
// errors.Is without string matching. Enums are tagged variants checked
// exhaustively at Problem construction time — never per iteration.
package model

import "errors"

// DefaultEpsilon is the non-negative tolerance used by feasibility and
// integrality checks throughout the package.
const DefaultEpsilon = 1e-9

// Sentinel errors returned by Builder and View operations.
var (
	// ErrEmptyName indicates a variable or constraint with an empty identifier.
	ErrEmptyName = errors.New("model: empty name")

	// ErrDuplicateName indicates that a variable or constraint identifier was
	// registered twice on the same Builder.
	ErrDuplicateName = errors.New("model: duplicate name")

	// ErrUnknownVariable indicates a term or assignment referring to a
	// variable the Problem does not contain.
	ErrUnknownVariable = errors.New("model: unknown variable")

	// ErrBadBounds indicates lower > upper, a NaN bound, or binary bounds
	// outside [0,1].
	ErrBadBounds = errors.New("model: invalid variable bounds")

	// ErrBadCoefficient indicates a NaN or infinite coefficient in an
	// expression term or right-hand side.
	ErrBadCoefficient = errors.New("model: non-finite coefficient")

	// ErrNoVariables indicates Build was called on a Builder with no
	// variables registered.
	ErrNoVariables = errors.New("model: problem has no variables")

	// ErrNotBinary indicates an operation that only accepts Binary variables
	// (fixing, cut membership) was given a variable of another domain.
	ErrNotBinary = errors.New("model: variable is not binary")

	// ErrIncompleteAssignment indicates a binary assignment that does not
	// cover every Binary variable of the Problem.
	ErrIncompleteAssignment = errors.New("model: assignment does not cover all binary variables")

	// ErrFractionalBinary indicates a primal value on a Binary variable that
	// is not within tolerance of 0 or 1 when an integral value is required.
	ErrFractionalBinary = errors.New("model: binary variable has fractional value")

	// ErrNonlinearCut indicates an attempt to append a nonlinear constraint
	// to a View; appended constraints (integer cuts) must be linear.
	ErrNonlinearCut = errors.New("model: appended constraints must be linear")
)

// VarDomain tags the admissible values of a Variable.
//
// Only Binary variables are cut- and fix-eligible in the decomposition:
// general Integer variables participate in the master search but are never
// pinned by the subproblem builder nor excluded by no-good cuts.
type VarDomain uint8

const (
	// Continuous admits any value within the variable bounds.
	Continuous VarDomain = iota

	// Integer admits integral values within the variable bounds.
	Integer

	// Binary admits exactly {0,1}.
	Binary
)

func (d VarDomain) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Linearity tags a constraint body by its polynomial degree.
// It is derived exactly once, in Builder.Build, and never changes afterwards.
type Linearity uint8

const (
	// Linear means degree ≤ 1: the constraint survives into the relaxed master.
	Linear Linearity = iota

	// Nonlinear means degree 2 (bilinear/quadratic terms present): the
	// constraint is toggled off in the relaxed master and back on in the
	// subproblem.
	Nonlinear
)

func (l Linearity) String() string {
	if l == Linear {
		return "linear"
	}
	return "nonlinear"
}

// Relation is the comparison of a constraint body against its right-hand side.
type Relation uint8

const (
	// LE encodes body ≤ rhs.
	LE Relation = iota
	// GE encodes body ≥ rhs.
	GE
	// EQ encodes body = rhs.
	EQ
)

func (r Relation) String() string {
	switch r {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Assignment is a full primal point, keyed by variable name.
type Assignment map[string]float64

// BinaryAssignment is a concrete 0/1 valuation of the Binary variables,
// keyed by variable name. It is the unit of currency between the master
// solution, the subproblem builder and the no-good cut generator.
type BinaryAssignment map[string]bool
