// SPDX-License-Identifier: MIT

// Package model: chainable Problem construction with deferred validation.
//
// The Builder records variables, constraints and the objective in insertion
// order and validates everything exactly once, in Build:
//   - Stage 1: variable sanity (names, domains, bounds).
//   - Stage 2: term resolution (names → dense indices, finiteness, folding
//     of duplicate terms, pruning of zero coefficients).
//   - Stage 3: linearity derivation from the polynomial degree of each body.
//
// The first recorded error wins and is returned from Build; intermediate
// calls never panic on bad data, so model assembly code can stay linear.
package model

import (
	"fmt"
	"math"
	"sort"
)

// Term is one builder-level monomial: Coef·X, Coef·X·Y, or a plain constant
// when both names are empty. Helper constructors L, Q and K are the intended
// way to produce one.
type Term struct {
	Coef float64
	X, Y string
}

// L builds the linear term coef·x.
func L(coef float64, x string) Term { return Term{Coef: coef, X: x} }

// Q builds the quadratic term coef·x·y (x == y encodes a square).
func Q(coef float64, x, y string) Term { return Term{Coef: coef, X: x, Y: y} }

// K builds a constant term.
func K(c float64) Term { return Term{Coef: c} }

type rawConstraint struct {
	name  string
	rel   Relation
	rhs   float64
	terms []Term
}

// Builder assembles a Problem. Methods are chainable; errors are deferred
// to Build. A Builder is single-use: calling Build twice returns the same
// result.
type Builder struct {
	vars  []Variable
	index map[string]int
	cons  []rawConstraint
	names map[string]struct{} // constraint name registry
	obj   []Term
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
		names: make(map[string]struct{}),
	}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) addVar(v Variable) *Builder {
	if b.err != nil {
		return b
	}
	if v.Name == "" {
		return b.fail(fmt.Errorf("%w: variable", ErrEmptyName))
	}
	if _, dup := b.index[v.Name]; dup {
		return b.fail(fmt.Errorf("%w: variable %q", ErrDuplicateName, v.Name))
	}
	if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || v.Lower > v.Upper {
		return b.fail(fmt.Errorf("%w: %q [%g, %g]", ErrBadBounds, v.Name, v.Lower, v.Upper))
	}
	b.index[v.Name] = len(b.vars)
	b.vars = append(b.vars, v)
	return b
}

// AddContinuous registers a continuous variable with inclusive bounds.
func (b *Builder) AddContinuous(name string, lower, upper float64) *Builder {
	return b.addVar(Variable{Name: name, Domain: Continuous, Lower: lower, Upper: upper})
}

// AddInteger registers a general integer variable with inclusive bounds.
func (b *Builder) AddInteger(name string, lower, upper float64) *Builder {
	return b.addVar(Variable{Name: name, Domain: Integer, Lower: lower, Upper: upper})
}

// AddBinary registers a {0,1} variable.
func (b *Builder) AddBinary(name string) *Builder {
	return b.addVar(Variable{Name: name, Domain: Binary, Lower: 0, Upper: 1})
}

// AddConstraint registers the constraint Σterms rel rhs under a unique name.
// Constant terms are folded into the right-hand side at Build time.
func (b *Builder) AddConstraint(name string, rel Relation, rhs float64, terms ...Term) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		return b.fail(fmt.Errorf("%w: constraint", ErrEmptyName))
	}
	if _, dup := b.names[name]; dup {
		return b.fail(fmt.Errorf("%w: constraint %q", ErrDuplicateName, name))
	}
	b.names[name] = struct{}{}
	b.cons = append(b.cons, rawConstraint{name: name, rel: rel, rhs: rhs, terms: terms})
	return b
}

// SetObjective registers the minimization objective Σterms.
// Later calls replace earlier ones; an absent objective minimizes the
// constant 0 (pure feasibility).
func (b *Builder) SetObjective(terms ...Term) *Builder {
	if b.err != nil {
		return b
	}
	b.obj = terms
	return b
}

// resolve folds a Term list into an Expr over dense indices: duplicate
// monomials are summed, zero coefficients pruned, quadratic index pairs
// canonicalized to I ≤ J so (x,y) and (y,x) collide.
func (b *Builder) resolve(terms []Term, where string) (Expr, error) {
	lin := make(map[int]float64)
	quad := make(map[[2]int]float64)
	var konst float64
	for _, t := range terms {
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return Expr{}, fmt.Errorf("%w: %s", ErrBadCoefficient, where)
		}
		switch {
		case t.X == "" && t.Y == "":
			konst += t.Coef
		case t.Y == "":
			i, ok := b.index[t.X]
			if !ok {
				return Expr{}, fmt.Errorf("%w: %q in %s", ErrUnknownVariable, t.X, where)
			}
			lin[i] += t.Coef
		case t.X == "":
			return Expr{}, fmt.Errorf("%w: %q in %s", ErrUnknownVariable, t.X, where)
		default:
			i, ok := b.index[t.X]
			if !ok {
				return Expr{}, fmt.Errorf("%w: %q in %s", ErrUnknownVariable, t.X, where)
			}
			j, ok := b.index[t.Y]
			if !ok {
				return Expr{}, fmt.Errorf("%w: %q in %s", ErrUnknownVariable, t.Y, where)
			}
			if i > j {
				i, j = j, i
			}
			quad[[2]int{i, j}] += t.Coef
		}
	}
	var e Expr
	e.Const = konst
	for i, c := range lin {
		if c != 0 {
			e.Lin = append(e.Lin, LinTerm{Var: i, Coef: c})
		}
	}
	for ij, c := range quad {
		if c != 0 {
			e.Quad = append(e.Quad, QuadTerm{I: ij[0], J: ij[1], Coef: c})
		}
	}
	// Deterministic term order regardless of map iteration.
	sort.Slice(e.Lin, func(a, b int) bool { return e.Lin[a].Var < e.Lin[b].Var })
	sort.Slice(e.Quad, func(a, b int) bool {
		if e.Quad[a].I != e.Quad[b].I {
			return e.Quad[a].I < e.Quad[b].I
		}
		return e.Quad[a].J < e.Quad[b].J
	})
	return e, nil
}

// Build validates the accumulated definition and returns the immutable
// Problem. The returned error wraps the first sentinel hit during assembly
// or validation.
func (b *Builder) Build() (*Problem, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.vars) == 0 {
		return nil, ErrNoVariables
	}
	p := &Problem{
		vars:  b.vars,
		index: b.index,
	}
	for i, v := range b.vars {
		if v.Domain == Binary {
			if v.Lower < 0 || v.Upper > 1 {
				return nil, fmt.Errorf("%w: binary %q", ErrBadBounds, v.Name)
			}
			p.binaries = append(p.binaries, i)
		}
	}
	for _, rc := range b.cons {
		if math.IsNaN(rc.rhs) || math.IsInf(rc.rhs, 0) {
			return nil, fmt.Errorf("%w: constraint %q rhs", ErrBadCoefficient, rc.name)
		}
		body, err := b.resolve(rc.terms, "constraint "+rc.name)
		if err != nil {
			return nil, err
		}
		// Fold the constant offset of the body into the right-hand side so
		// downstream consumers see homogeneous bodies.
		rhs := rc.rhs - body.Const
		body.Const = 0
		lin := Linear
		if body.Degree() == 2 {
			lin = Nonlinear
		}
		p.cons = append(p.cons, Constraint{
			Name:      rc.name,
			Rel:       rc.rel,
			RHS:       rhs,
			Body:      body,
			Linearity: lin,
		})
	}
	obj, err := b.resolve(b.obj, "objective")
	if err != nil {
		return nil, err
	}
	p.obj = obj
	return p, nil
}
