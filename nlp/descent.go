// SPDX-License-Identifier: MIT

// Package nlp: the penalized projected-gradient engine.
//
// Inner loop: backtracking projected gradient on
//
//	φ_ρ(x) = f(x) + ρ · Σ_i viol_i(x)²
//
// where viol_i is the one-sided (or absolute, for equalities) constraint
// residual. Outer loop: escalate ρ geometrically until the unpenalized
// residual is within tolerance or ρ hits its cap.
package nlp

import (
	"context"
	"math"
	"time"

	"github.com/katalvlaran/decomp/model"
)

type engine struct {
	obj    model.Expr
	cons   []model.Constraint // active constraints only
	lower  []float64
	upper  []float64
	frozen []bool // fixed variables: projection pins, gradient ignored

	feasTol float64
	maxIter int

	ctx         context.Context
	useDeadline bool
	deadline    time.Time
}

func newEngine(ctx context.Context, v *model.View, feasTol float64, maxIter int, limit time.Duration) *engine {
	p := v.Problem()
	e := &engine{
		obj:     p.Objective(),
		lower:   make([]float64, p.NumVars()),
		upper:   make([]float64, p.NumVars()),
		frozen:  make([]bool, p.NumVars()),
		feasTol: feasTol,
		maxIter: maxIter,
		ctx:     ctx,
	}
	for i := 0; i < p.NumVars(); i++ {
		vr := p.Var(i)
		e.lower[i], e.upper[i] = vr.Lower, vr.Upper
		if fix, ok := v.Fixed(i); ok {
			e.lower[i], e.upper[i] = fix, fix
			e.frozen[i] = true
		}
	}
	for i := 0; i < v.NumConstraints(); i++ {
		if v.Active(i) {
			e.cons = append(e.cons, v.Constraint(i))
		}
	}
	if limit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(limit)
	}
	return e
}

// residual returns the i-th constraint's violation at x (0 when satisfied).
func (e *engine) residual(i int, x []float64) float64 {
	c := e.cons[i]
	val := c.Body.Eval(x) - c.RHS
	switch c.Rel {
	case model.LE:
		return math.Max(0, val)
	case model.GE:
		return math.Max(0, -val)
	default:
		return math.Abs(val)
	}
}

// maxResidual is the worst violation over all active constraints.
func (e *engine) maxResidual(x []float64) float64 {
	worst := 0.0
	for i := range e.cons {
		if r := e.residual(i, x); r > worst {
			worst = r
		}
	}
	return worst
}

// penalized evaluates φ_ρ(x).
func (e *engine) penalized(x []float64, rho float64) float64 {
	v := e.obj.Eval(x)
	for i := range e.cons {
		r := e.residual(i, x)
		v += rho * r * r
	}
	return v
}

// grad writes ∇φ_ρ(x) into g. The one-sided residuals are differentiable
// wherever they are nonzero, which is the only place they contribute.
func (e *engine) grad(x, g []float64, rho float64) {
	for i := range g {
		g[i] = 0
	}
	e.obj.AddGrad(x, g, 1)
	for i, c := range e.cons {
		r := e.residual(i, x)
		if r == 0 {
			continue
		}
		w := 2 * rho * r
		if c.Rel == model.GE || (c.Rel == model.EQ && c.Body.Eval(x) < c.RHS) {
			w = -w
		}
		c.Body.AddGrad(x, g, w)
	}
	for i, f := range e.frozen {
		if f {
			g[i] = 0
		}
	}
}

func (e *engine) project(x []float64) {
	for i := range x {
		if x[i] < e.lower[i] {
			x[i] = e.lower[i]
		}
		if x[i] > e.upper[i] {
			x[i] = e.upper[i]
		}
	}
}

func (e *engine) overBudget() bool {
	if e.ctx.Err() != nil {
		return true
	}
	return e.useDeadline && time.Now().After(e.deadline)
}

// descend runs the inner projected-gradient loop at fixed ρ, mutating x in
// place. Returns ErrBudget on deadline, ErrNumerical on NaN/Inf.
func (e *engine) descend(x []float64, rho float64) error {
	n := len(x)
	g := make([]float64, n)
	trial := make([]float64, n)
	phi := e.penalized(x, rho)
	step := 1.0

	for iter := 0; iter < e.maxIter; iter++ {
		if iter&63 == 0 && e.overBudget() {
			return ErrBudget
		}
		e.grad(x, g, rho)

		// Backtracking line search on the projected step.
		moved := false
		for step >= 1e-14 {
			for i := 0; i < n; i++ {
				trial[i] = x[i] - step*g[i]
			}
			e.project(trial)
			phiTrial := e.penalized(trial, rho)
			if math.IsNaN(phiTrial) || math.IsInf(phiTrial, 0) {
				return ErrNumerical
			}
			if phiTrial < phi-1e-15 {
				moved = true
				break
			}
			step /= 2
		}
		if !moved {
			return nil // stationary at this ρ
		}

		var delta float64
		for i := 0; i < n; i++ {
			d := trial[i] - x[i]
			delta += d * d
			x[i] = trial[i]
		}
		phi = e.penalized(x, rho)
		if math.Sqrt(delta) < DefaultStepTol {
			return nil
		}
		// Cautious step recovery keeps the search from creeping.
		step *= 2
	}
	return nil
}

// minimize runs the full penalty escalation from the starting point x.
// On return x holds the final iterate; feasible reports whether the
// unpenalized residual met the tolerance.
func (e *engine) minimize(x []float64) (feasible bool, err error) {
	for rho := penaltyInit; rho <= penaltyMax; rho *= penaltyGrow {
		if err = e.descend(x, rho); err != nil {
			return false, err
		}
		if e.maxResidual(x) <= e.feasTol {
			return true, nil
		}
	}
	return false, nil
}
