// SPDX-License-Identifier: MIT

// Package model: copy-on-write overlays for the two decomposition roles.
//
// A View layers four pieces of per-run state over an immutable *Problem:
//
//	• a constraint-active bitmap (relaxation toggling),
//	• a variable-fix map (binary pinning for the subproblem role),
//	• appended linear constraints (the accumulated no-good cuts),
//	• a primal value vector (written back by solver adapters).
//
// Contracts:
//   - Relax is idempotent: Relax(false) twice equals Relax(false) once.
//   - FixBinaries / Unfix are exact inverses on the fix map.
//   - Appended constraints are always active and must be linear.
//   - The underlying Problem is never touched.
package model

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// View is a mutable overlay over an immutable Problem. A View is owned by a
// single goroutine (the decomposition driver) for the duration of a run; it
// is not safe for concurrent use.
type View struct {
	p        *Problem
	active   *bitset.BitSet // base-constraint activation; appended cuts are always active
	fixed    map[int]float64
	appended []Constraint
	x        []float64
}

// NewView returns a fresh overlay: every constraint active, no variable
// fixed, no cuts appended, primal values at each variable's projection of 0
// onto its bounds.
func NewView(p *Problem) *View {
	v := &View{
		p:      p,
		active: bitset.New(uint(p.NumConstraints())),
		fixed:  make(map[int]float64),
		x:      make([]float64, p.NumVars()),
	}
	for i := 0; i < p.NumConstraints(); i++ {
		v.active.Set(uint(i))
	}
	for i := 0; i < p.NumVars(); i++ {
		v.x[i] = clamp(0, p.Var(i).Lower, p.Var(i).Upper)
	}
	return v
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Problem returns the underlying immutable Problem.
func (v *View) Problem() *Problem { return v.p }

// Relax toggles every Nonlinear base constraint: active=false produces the
// linear master relaxation, active=true restores the full model. Linear
// constraints and appended cuts are unaffected and always active.
func (v *View) Relax(active bool) {
	for i := 0; i < v.p.NumConstraints(); i++ {
		if v.p.Constraint(i).Linearity != Nonlinear {
			continue
		}
		v.active.SetTo(uint(i), active)
	}
}

// NumConstraints returns the total constraint count: base plus appended.
func (v *View) NumConstraints() int { return v.p.NumConstraints() + len(v.appended) }

// NumAppended returns the number of appended (cut) constraints.
func (v *View) NumAppended() int { return len(v.appended) }

// Constraint returns the i-th constraint; indices beyond the base range
// address appended cuts in append order.
func (v *View) Constraint(i int) Constraint {
	if i < v.p.NumConstraints() {
		return v.p.Constraint(i)
	}
	return v.appended[i-v.p.NumConstraints()]
}

// Active reports whether the i-th constraint participates in the view.
// Appended cuts are always active.
func (v *View) Active(i int) bool {
	if i < v.p.NumConstraints() {
		return v.active.Test(uint(i))
	}
	return i-v.p.NumConstraints() < len(v.appended)
}

// AppendConstraint adds a linear constraint to the overlay. The canonical
// use is appending a no-good cut after each iteration; cuts accumulate
// monotonically and are never removed for the lifetime of the View.
func (v *View) AppendConstraint(c Constraint) error {
	if c.Body.Degree() > 1 {
		return fmt.Errorf("%w: %q", ErrNonlinearCut, c.Name)
	}
	v.appended = append(v.appended, c)
	return nil
}

// FixBinaries pins every Binary variable to the value taken from a.
// The assignment must cover all Binary variables of the Problem and may not
// mention non-binary variables; Continuous and Integer variables stay free.
func (v *View) FixBinaries(a BinaryAssignment) error {
	for name := range a {
		i, ok := v.p.VarIndex(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
		if v.p.Var(i).Domain != Binary {
			return fmt.Errorf("%w: %q", ErrNotBinary, name)
		}
	}
	for _, i := range v.p.Binaries() {
		val, ok := a[v.p.Var(i).Name]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrIncompleteAssignment, v.p.Var(i).Name)
		}
		if val {
			v.fixed[i] = 1
			v.x[i] = 1
		} else {
			v.fixed[i] = 0
			v.x[i] = 0
		}
	}
	return nil
}

// Unfix restores every fixed variable to its free, bounded state.
// Exact inverse of FixBinaries with respect to the fix map; primal values
// keep their last written value.
func (v *View) Unfix() {
	for i := range v.fixed {
		delete(v.fixed, i)
	}
}

// Fixed reports the pinned value of variable i, if any.
func (v *View) Fixed(i int) (float64, bool) {
	val, ok := v.fixed[i]
	return val, ok
}

// SetValue writes a primal value for variable i. Writes to a fixed variable
// are dropped: the fix is authoritative until Unfix.
func (v *View) SetValue(i int, val float64) {
	if _, ok := v.fixed[i]; ok {
		return
	}
	v.x[i] = val
}

// Value reads the primal value of variable i; a fixed variable reads as its
// pinned value.
func (v *View) Value(i int) float64 {
	if val, ok := v.fixed[i]; ok {
		return val
	}
	return v.x[i]
}

// Values returns a dense snapshot of the primal point, fixes respected.
func (v *View) Values() []float64 {
	out := make([]float64, len(v.x))
	copy(out, v.x)
	for i, val := range v.fixed {
		out[i] = val
	}
	return out
}

// Assignment returns a name-keyed snapshot of the primal point.
func (v *View) Assignment() Assignment {
	out := make(Assignment, v.p.NumVars())
	for i := 0; i < v.p.NumVars(); i++ {
		out[v.p.Var(i).Name] = v.Value(i)
	}
	return out
}

// BinaryAssignment snapshots the current 0/1 valuation of the Binary
// variables. Every binary value must be within DefaultEpsilon of an integral
// point; otherwise ErrFractionalBinary is returned, naming the offender.
func (v *View) BinaryAssignment() (BinaryAssignment, error) {
	out := make(BinaryAssignment, v.p.NumBinary())
	for _, i := range v.p.Binaries() {
		val := v.Value(i)
		switch {
		case val > -DefaultEpsilon && val < DefaultEpsilon:
			out[v.p.Var(i).Name] = false
		case val > 1-DefaultEpsilon && val < 1+DefaultEpsilon:
			out[v.p.Var(i).Name] = true
		default:
			return nil, fmt.Errorf("%w: %q = %g", ErrFractionalBinary, v.p.Var(i).Name, val)
		}
	}
	return out, nil
}
