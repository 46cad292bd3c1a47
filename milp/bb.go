// SPDX-License-Identifier: MIT

// Package milp: the branch-and-bound engine.
//
// Depth-first search over LP relaxations. Each node carries only its extra
// bound rows (one per branching decision); the standard form is shared.
// Branching is deterministic — most fractional integral column, lowest index
// tiebreak, ≤-child explored first — so identical inputs reproduce identical
// trees. The wall-clock deadline is checked every deadlineStride nodes.
package milp

import (
	"context"
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// branchRow is one branching decision lowered to a ≤-row: g·y ≤ h.
type branchRow struct {
	col   int
	coef  float64 // +1 for y ≤ floor, −1 for −y ≤ −(floor+1)
	bound float64
}

// bbEngine holds the shared search state for one Solve call.
type bbEngine struct {
	sf        *standardForm
	absGap    float64
	nodeLimit int

	useDeadline bool
	deadline    time.Time
	ctx         context.Context
	steps       int

	nodes int
	found bool
	best  float64
	bestY []float64
}

func newEngine(ctx context.Context, sf *standardForm, absGap float64, nodeLimit int, limit time.Duration) *bbEngine {
	e := &bbEngine{
		sf:        sf,
		absGap:    absGap,
		nodeLimit: nodeLimit,
		ctx:       ctx,
		best:      math.Inf(1),
	}
	if limit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(limit)
	}
	return e
}

// overBudget performs a sparse deadline/cancellation test.
func (e *bbEngine) overBudget() bool {
	if e.nodes > e.nodeLimit {
		return true
	}
	e.steps++
	if e.steps&(deadlineStride-1) != 0 {
		return false
	}
	if e.ctx.Err() != nil {
		return true
	}
	return e.useDeadline && time.Now().After(e.deadline)
}

// solveLP solves the node relaxation
//
//	min cᵀy  s.t.  Aeq·y = beq, (G + extra)·y ≤ h, y ≥ 0
//
// via slack conversion into equality standard form, the same lowering the
// classic simplex expects. Returns lp.ErrInfeasible / lp.ErrUnbounded
// unwrapped so callers can branch on them.
func (e *bbEngine) solveLP(extra []branchRow) (float64, []float64, error) {
	sf := e.sf
	nIneq := len(sf.leRows) + len(extra)
	nEq := len(sf.eqRows)
	if nIneq == 0 && nEq == 0 {
		// Pure box problem with no finite upper bounds: y = 0 unless some
		// objective coefficient rewards growing without limit.
		for _, cj := range sf.c {
			if cj < 0 {
				return 0, nil, lp.ErrUnbounded
			}
		}
		return 0, make([]float64, sf.n), nil
	}

	nTot := sf.n + nIneq
	rows := nEq + nIneq
	c := make([]float64, nTot)
	copy(c, sf.c)
	b := make([]float64, rows)
	copy(b, sf.eqRHS)

	a := mat.NewDense(rows, nTot, nil)
	for r, row := range sf.eqRows {
		for j, val := range row {
			a.Set(r, j, val)
		}
	}
	r := nEq
	slack := sf.n
	fill := func(row []float64, rhs float64) {
		for j, val := range row {
			a.Set(r, j, val)
		}
		a.Set(r, slack, 1)
		b[r] = rhs
		r++
		slack++
	}
	for i, row := range sf.leRows {
		fill(row, sf.leRHS[i])
	}
	for _, br := range extra {
		row := make([]float64, sf.n)
		row[br.col] = br.coef
		fill(row, br.bound)
	}

	z, y, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return 0, nil, err
	}
	return z, y[:sf.n], nil
}

// fractionalCol returns the most fractional integral column of y, or -1 if
// every integral column is within tolerance of an integer. Ties break to
// the lowest index.
func (e *bbEngine) fractionalCol(y []float64) int {
	bestCol, bestDist := -1, intTol
	for j, isInt := range e.sf.integral {
		if !isInt {
			continue
		}
		_, frac := math.Modf(y[j])
		dist := math.Min(frac, 1-frac)
		if frac < 0 {
			dist = math.Min(-frac, 1+frac)
		}
		if dist > bestDist {
			bestCol, bestDist = j, dist
		}
	}
	return bestCol
}

// run explores the tree rooted at the empty constraint set.
// The returned error is nil on a completed proof (found or proven empty),
// ErrBudget on budget expiry, ErrUnbounded on an unbounded relaxation, or a
// simplex failure for anything numerically broken.
func (e *bbEngine) run() error {
	stack := [][]branchRow{nil}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e.nodes++
		if e.overBudget() {
			return ErrBudget
		}

		z, y, err := e.solveLP(node)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			return ErrUnbounded
		case err != nil:
			return err
		}
		if e.found && z >= e.best-e.absGap {
			continue // cannot improve beyond the configured gap
		}

		col := e.fractionalCol(y)
		if col < 0 {
			if !e.found || z < e.best {
				e.found = true
				e.best = z
				e.bestY = append(e.bestY[:0], y...)
			}
			continue
		}

		floor := math.Floor(y[col])
		up := append(cloneRows(node), branchRow{col: col, coef: -1, bound: -(floor + 1)})
		down := append(cloneRows(node), branchRow{col: col, coef: 1, bound: floor})
		// LIFO stack: push the ≥-child first so the ≤-child is explored first.
		stack = append(stack, up, down)
	}
	return nil
}

func cloneRows(rows []branchRow) []branchRow {
	out := make([]branchRow, len(rows))
	copy(out, rows)
	return out
}
