// SPDX-License-Identifier: MIT

// Package milp: lowering a linear view into nonnegative standard form.
//
// Integer-domain bounds are snapped to [⌈lo⌉, ⌊hi⌋] first, so integrality of
// the shifted column coincides with integrality of the original variable.
// Free variables are shifted by their lower bound (y = x − lo, y ≥ 0);
// fixed variables are substituted into right-hand sides; GE rows are
// negated into LE rows; finite upper bounds become LE rows y ≤ hi − lo.
// The result is minimize cᵀy s.t. Aeq·y = beq, G·y ≤ h, y ≥ 0 — the shape
// gonum's Simplex consumes after slack conversion.
package milp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/decomp/model"
)

// errEmptyIntegerBox marks an integer variable whose bounds contain no
// lattice point at all; the model is trivially infeasible, not broken.
var errEmptyIntegerBox = errors.New("milp: no integer point inside variable bounds")

type standardForm struct {
	n        int       // number of free columns
	cols     []int     // free column → problem variable index
	lower    []float64 // per free column: effective lower bound (unshift)
	upper    []float64 // per free column: effective upper bound
	integral []bool    // per free column: integrality requirement
	c        []float64 // objective over free columns
	offset   float64   // objective constant after shifting/substitution

	eqRows [][]float64
	eqRHS  []float64
	leRows [][]float64
	leRHS  []float64
}

func buildStandardForm(v *model.View) (*standardForm, error) {
	p := v.Problem()
	sf := &standardForm{}

	varToCol := make([]int, p.NumVars())
	for i := 0; i < p.NumVars(); i++ {
		varToCol[i] = -1
		if _, fixed := v.Fixed(i); fixed {
			continue
		}
		vr := p.Var(i)
		lo, hi := vr.Lower, vr.Upper
		if vr.Domain != model.Continuous {
			// Integrality lives on the original variable, so the bounds must
			// be snapped to the integer lattice before the y = x − lo shift.
			lo = math.Ceil(lo)
			hi = math.Floor(hi)
			if lo > hi {
				return nil, errEmptyIntegerBox
			}
		}
		if math.IsInf(lo, -1) {
			return nil, fmt.Errorf("%w: %q", ErrUnboundedBelow, vr.Name)
		}
		varToCol[i] = sf.n
		sf.cols = append(sf.cols, i)
		sf.lower = append(sf.lower, lo)
		sf.upper = append(sf.upper, hi)
		sf.integral = append(sf.integral, vr.Domain != model.Continuous)
		sf.n++
	}

	// Objective: must be linear for this oracle.
	obj := p.Objective()
	if len(obj.Quad) > 0 {
		return nil, fmt.Errorf("%w: quadratic objective", ErrNonlinear)
	}
	sf.c = make([]float64, sf.n)
	sf.offset = obj.Const
	for _, t := range obj.Lin {
		if fix, ok := v.Fixed(t.Var); ok {
			sf.offset += t.Coef * fix
			continue
		}
		col := varToCol[t.Var]
		sf.c[col] += t.Coef
		sf.offset += t.Coef * sf.lower[col]
	}

	// Active constraints, base and appended alike.
	for i := 0; i < v.NumConstraints(); i++ {
		if !v.Active(i) {
			continue
		}
		cons := v.Constraint(i)
		if cons.Linearity == model.Nonlinear || len(cons.Body.Quad) > 0 {
			return nil, fmt.Errorf("%w: active constraint %q", ErrNonlinear, cons.Name)
		}
		row := make([]float64, sf.n)
		rhs := cons.RHS - cons.Body.Const
		for _, t := range cons.Body.Lin {
			if fix, ok := v.Fixed(t.Var); ok {
				rhs -= t.Coef * fix
				continue
			}
			col := varToCol[t.Var]
			row[col] += t.Coef
			rhs -= t.Coef * sf.lower[col]
		}
		switch cons.Rel {
		case model.LE:
			sf.leRows = append(sf.leRows, row)
			sf.leRHS = append(sf.leRHS, rhs)
		case model.GE:
			sf.leRows = append(sf.leRows, negate(row))
			sf.leRHS = append(sf.leRHS, -rhs)
		default:
			sf.eqRows = append(sf.eqRows, row)
			sf.eqRHS = append(sf.eqRHS, rhs)
		}
	}

	// Finite upper bounds become y ≤ hi − lo rows.
	for col := 0; col < sf.n; col++ {
		hi := sf.upper[col]
		if math.IsInf(hi, 1) {
			continue
		}
		row := make([]float64, sf.n)
		row[col] = 1
		sf.leRows = append(sf.leRows, row)
		sf.leRHS = append(sf.leRHS, hi-sf.lower[col])
	}

	return sf, nil
}

func negate(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = -v
	}
	return out
}

// feasibleDegenerate checks the all-variables-fixed corner: every row has an
// empty left-hand side, so feasibility is a direct right-hand-side test.
func (sf *standardForm) feasibleDegenerate() bool {
	for _, rhs := range sf.leRHS {
		if rhs < -intTol {
			return false
		}
	}
	for _, rhs := range sf.eqRHS {
		if math.Abs(rhs) > intTol {
			return false
		}
	}
	return true
}
