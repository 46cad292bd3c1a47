// SPDX-License-Identifier: MIT

// Package nogood: no-good (integer) cut generation.
//
// A cut built from binary assignment A is the linear inequality
//
//	Σ_{v: A(v)=1} (1 − v)  +  Σ_{v: A(v)=0} v  ≥  1
//
// Its left-hand side counts the Hamming distance to A over the binary
// variables, so it evaluates to 0 exactly at A (violated) and to ≥ 1 at any
// assignment differing from A in at least one coordinate (satisfied). Only
// Binary variables participate; general Integer variables are deliberately
// never cut.
package nogood

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/decomp/model"
)

// Cut is one no-good inequality over the binary-variable subset.
// A Cut is pure data: building one has no side effect on any model or view.
type Cut struct {
	ones  []string // variables assigned 1 in the generating assignment
	zeros []string // variables assigned 0
}

// NewCut builds the no-good cut excluding exactly the assignment a.
// Variable order inside the cut is name-sorted for determinism.
func NewCut(a model.BinaryAssignment) (Cut, error) {
	if len(a) == 0 {
		return Cut{}, ErrEmptyCut
	}
	var c Cut
	for name, val := range a {
		if val {
			c.ones = append(c.ones, name)
		} else {
			c.zeros = append(c.zeros, name)
		}
	}
	sort.Strings(c.ones)
	sort.Strings(c.zeros)
	return c, nil
}

// Size returns the number of variables the cut ranges over.
func (c Cut) Size() int { return len(c.ones) + len(c.zeros) }

// LHS evaluates the cut's left-hand side at assignment a: the Hamming
// distance between a and the generating assignment, restricted to the cut's
// variables. Variables absent from a count as 0.
func (c Cut) LHS(a model.BinaryAssignment) int {
	d := 0
	for _, name := range c.ones {
		if !a[name] {
			d++
		}
	}
	for _, name := range c.zeros {
		if a[name] {
			d++
		}
	}
	return d
}

// Excludes reports whether a violates the cut, i.e. whether a is exactly
// the assignment the cut was generated from (LHS < 1).
func (c Cut) Excludes(a model.BinaryAssignment) bool { return c.LHS(a) < 1 }

// AsConstraint lowers the cut to a model.Constraint over p's variable
// indices, suitable for View.AppendConstraint:
//
//	Σ_{zeros} v − Σ_{ones} v  ≥  1 − |ones|
//
// (the homogeneous form of the inequality in the package comment). The name
// encodes the ordinal k to keep appended constraints identifiable in logs.
func (c Cut) AsConstraint(p *model.Problem, k int) (model.Constraint, error) {
	body := model.Expr{}
	for _, name := range c.ones {
		i, ok := p.VarIndex(name)
		if !ok {
			return model.Constraint{}, fmt.Errorf("%w: %q", model.ErrUnknownVariable, name)
		}
		body.Lin = append(body.Lin, model.LinTerm{Var: i, Coef: -1})
	}
	for _, name := range c.zeros {
		i, ok := p.VarIndex(name)
		if !ok {
			return model.Constraint{}, fmt.Errorf("%w: %q", model.ErrUnknownVariable, name)
		}
		body.Lin = append(body.Lin, model.LinTerm{Var: i, Coef: 1})
	}
	return model.Constraint{
		Name:      fmt.Sprintf("nogood_%d", k),
		Rel:       model.GE,
		RHS:       1 - float64(len(c.ones)),
		Body:      body,
		Linearity: model.Linear,
	}, nil
}
