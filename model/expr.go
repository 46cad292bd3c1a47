// SPDX-License-Identifier: MIT

package model

// LinTerm is a single first-degree term coef·x[Var] over a variable index.
type LinTerm struct {
	Var  int
	Coef float64
}

// QuadTerm is a single second-degree term coef·x[I]·x[J].
// I == J encodes a square; I != J encodes a bilinear product.
type QuadTerm struct {
	I, J int
	Coef float64
}

// Expr is a sparse polynomial of degree ≤ 2 over the Problem's variable
// indices, plus a constant offset. Expressions are value types: copying the
// struct shares the underlying term slices, which are never mutated after
// Build.
type Expr struct {
	Lin   []LinTerm
	Quad  []QuadTerm
	Const float64
}

// Degree reports the polynomial degree of e: 0, 1 or 2.
// Zero-coefficient terms are pruned at Build time, so presence of a term
// slice is authoritative.
func (e Expr) Degree() int {
	if len(e.Quad) > 0 {
		return 2
	}
	if len(e.Lin) > 0 {
		return 1
	}
	return 0
}

// Eval computes e at the point x (dense, indexed like Problem variables).
func (e Expr) Eval(x []float64) float64 {
	v := e.Const
	for _, t := range e.Lin {
		v += t.Coef * x[t.Var]
	}
	for _, q := range e.Quad {
		v += q.Coef * x[q.I] * x[q.J]
	}
	return v
}

// AddGrad accumulates ∇e(x) into grad (len(grad) == len(x)), scaled by w.
// The gradient of a degree-≤2 polynomial is affine, so this is exact.
func (e Expr) AddGrad(x, grad []float64, w float64) {
	for _, t := range e.Lin {
		grad[t.Var] += w * t.Coef
	}
	for _, q := range e.Quad {
		if q.I == q.J {
			grad[q.I] += w * 2 * q.Coef * x[q.I]
			continue
		}
		grad[q.I] += w * q.Coef * x[q.J]
		grad[q.J] += w * q.Coef * x[q.I]
	}
}
