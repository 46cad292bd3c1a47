// SPDX-License-Identifier: MIT

package model

// Variable is a single decision variable of the Problem.
// Bounds are inclusive; Binary variables always carry bounds within [0,1].
type Variable struct {
	Name   string
	Domain VarDomain
	Lower  float64
	Upper  float64
}

// Constraint is a single relation Body Rel RHS.
// Linearity is derived once from Body.Degree() in Builder.Build and is
// immutable afterwards; activation is a property of a View, not of the
// Constraint itself.
type Constraint struct {
	Name      string
	Rel       Relation
	RHS       float64
	Body      Expr
	Linearity Linearity
}

// Sat reports whether the constraint holds at the point x within eps.
func (c Constraint) Sat(x []float64, eps float64) bool {
	v := c.Body.Eval(x)
	switch c.Rel {
	case LE:
		return v <= c.RHS+eps
	case GE:
		return v >= c.RHS-eps
	default:
		return v >= c.RHS-eps && v <= c.RHS+eps
	}
}

// Problem is the immutable MIQCP container: variables, constraints and one
// minimization objective. Construct it with Builder; a zero Problem is not
// usable. After Build the Problem is never mutated — per-run state lives in
// Views.
type Problem struct {
	vars     []Variable
	index    map[string]int
	cons     []Constraint
	obj      Expr
	binaries []int // indices of Binary variables, insertion order
}

// NumVars returns the number of variables.
func (p *Problem) NumVars() int { return len(p.vars) }

// NumConstraints returns the number of constraints.
func (p *Problem) NumConstraints() int { return len(p.cons) }

// Var returns the i-th variable (insertion order).
func (p *Problem) Var(i int) Variable { return p.vars[i] }

// VarIndex resolves a variable name to its dense index.
func (p *Problem) VarIndex(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Constraint returns the i-th constraint (insertion order).
func (p *Problem) Constraint(i int) Constraint { return p.cons[i] }

// Objective returns the minimization objective.
func (p *Problem) Objective() Expr { return p.obj }

// Binaries returns the indices of all Binary variables in insertion order.
// The returned slice is shared; callers must not modify it.
func (p *Problem) Binaries() []int { return p.binaries }

// NumBinary returns the number of Binary variables.
func (p *Problem) NumBinary() int { return len(p.binaries) }
