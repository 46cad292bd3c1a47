// SPDX-License-Identifier: MIT

// Package model_test validates View overlays.
// Focus:
//  1. Relax idempotence and nonlinear-only toggling.
//  2. FixBinaries / Unfix reversibility and strict input contracts.
//  3. Appended (cut) constraints: linear-only, always active.
//  4. Primal bookkeeping: fixes are authoritative, snapshots are copies.
package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decomp/model"
)

func buildMixed(t *testing.T) *model.Problem {
	t.Helper()
	p, err := model.NewBuilder().
		AddBinary("y1").
		AddBinary("y2").
		AddInteger("n", 0, 3).
		AddContinuous("x", 0, 10).
		AddConstraint("lin", model.LE, 5, model.L(1, "x"), model.L(1, "n")).
		AddConstraint("quad", model.GE, 0, model.Q(1, "x", "x"), model.L(-4, "y1")).
		AddConstraint("bilinear", model.LE, 2, model.Q(1, "x", "y2")).
		SetObjective(model.L(1, "x")).
		Build()
	require.NoError(t, err)
	return p
}

func TestViewRelaxTogglesOnlyNonlinear(t *testing.T) {
	v := model.NewView(buildMixed(t))

	// Fresh view: everything active.
	for i := 0; i < v.NumConstraints(); i++ {
		require.True(t, v.Active(i))
	}

	v.Relax(false)
	require.True(t, v.Active(0), "linear constraint must stay active")
	require.False(t, v.Active(1))
	require.False(t, v.Active(2))

	// Idempotence: applying the same relaxation twice changes nothing.
	v.Relax(false)
	require.True(t, v.Active(0))
	require.False(t, v.Active(1))

	v.Relax(true)
	for i := 0; i < v.NumConstraints(); i++ {
		require.True(t, v.Active(i))
	}
}

func TestViewFixUnfixRoundTrip(t *testing.T) {
	p := buildMixed(t)
	v := model.NewView(p)

	a := model.BinaryAssignment{"y1": true, "y2": false}
	require.NoError(t, v.FixBinaries(a))

	iy1, _ := p.VarIndex("y1")
	iy2, _ := p.VarIndex("y2")
	in, _ := p.VarIndex("n")

	fix, ok := v.Fixed(iy1)
	require.True(t, ok)
	require.Equal(t, 1.0, fix)
	fix, ok = v.Fixed(iy2)
	require.True(t, ok)
	require.Equal(t, 0.0, fix)

	// Integer variables stay free.
	_, ok = v.Fixed(in)
	require.False(t, ok)

	// Writes to fixed variables are dropped; the fix is authoritative.
	v.SetValue(iy1, 0.25)
	require.Equal(t, 1.0, v.Value(iy1))

	v.Unfix()
	_, ok = v.Fixed(iy1)
	require.False(t, ok)
	v.SetValue(iy1, 0.25)
	require.Equal(t, 0.25, v.Value(iy1))
}

func TestViewFixBinariesContracts(t *testing.T) {
	p := buildMixed(t)

	err := model.NewView(p).FixBinaries(model.BinaryAssignment{"y1": true})
	require.ErrorIs(t, err, model.ErrIncompleteAssignment)

	err = model.NewView(p).FixBinaries(model.BinaryAssignment{"y1": true, "y2": false, "ghost": true})
	require.ErrorIs(t, err, model.ErrUnknownVariable)

	err = model.NewView(p).FixBinaries(model.BinaryAssignment{"y1": true, "y2": false, "n": true})
	require.ErrorIs(t, err, model.ErrNotBinary)
}

func TestViewAppendConstraint(t *testing.T) {
	p := buildMixed(t)
	v := model.NewView(p)
	base := p.NumConstraints()

	cut := model.Constraint{
		Name: "cut_0",
		Rel:  model.GE,
		RHS:  1,
		Body: model.Expr{Lin: []model.LinTerm{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}}},
	}
	require.NoError(t, v.AppendConstraint(cut))
	require.Equal(t, base+1, v.NumConstraints())
	require.Equal(t, 1, v.NumAppended())
	require.Equal(t, "cut_0", v.Constraint(base).Name)

	// Appended constraints survive relaxation toggling and stay active.
	v.Relax(false)
	require.True(t, v.Active(base))

	bad := model.Constraint{
		Name: "bad",
		Body: model.Expr{Quad: []model.QuadTerm{{I: 0, J: 1, Coef: 1}}},
	}
	require.ErrorIs(t, v.AppendConstraint(bad), model.ErrNonlinearCut)
}

func TestViewBinaryAssignmentSnapshot(t *testing.T) {
	p := buildMixed(t)
	v := model.NewView(p)

	iy1, _ := p.VarIndex("y1")
	iy2, _ := p.VarIndex("y2")

	v.SetValue(iy1, 1.0-1e-12) // within tolerance of 1
	v.SetValue(iy2, 0)
	a, err := v.BinaryAssignment()
	require.NoError(t, err)
	require.Equal(t, model.BinaryAssignment{"y1": true, "y2": false}, a)

	v.SetValue(iy1, 0.4)
	_, err = v.BinaryAssignment()
	require.ErrorIs(t, err, model.ErrFractionalBinary)
}

func TestViewSnapshotsAreCopies(t *testing.T) {
	p := buildMixed(t)
	v := model.NewView(p)
	ix, _ := p.VarIndex("x")
	v.SetValue(ix, 7)

	vals := v.Values()
	vals[ix] = 99
	require.Equal(t, 7.0, v.Value(ix))

	asg := v.Assignment()
	require.Equal(t, 7.0, asg["x"])
	asg["x"] = 99
	require.Equal(t, 7.0, v.Value(ix))
}

func TestViolations(t *testing.T) {
	p := buildMixed(t)
	v := model.NewView(p)
	ix, _ := p.VarIndex("x")
	in, _ := p.VarIndex("n")
	iy2, _ := p.VarIndex("y2")

	// x=4, n=3, y2=1 violates lin (x+n ≤ 5 off by 2) and bilinear
	// (x·y2 ≤ 2 off by 2); quad (x² − 4·y1 ≥ 0) holds.
	v.SetValue(ix, 4)
	v.SetValue(in, 3)
	v.SetValue(iy2, 1)
	viols := model.Violations(v, 0)
	require.Len(t, viols, 2)

	// Deactivate nonlinear constraints: only the linear violation remains.
	v.Relax(false)
	viols = model.Violations(v, 0)
	require.Len(t, viols, 1)
	require.Equal(t, "lin", viols[0].Constraint)
	require.InDelta(t, 2.0, viols[0].Amount, 1e-9)
	require.False(t, model.CheckFeasible(v, 0))

	v.SetValue(in, 1)
	require.True(t, model.CheckFeasible(v, 0))
}
