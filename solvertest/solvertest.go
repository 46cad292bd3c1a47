// SPDX-License-Identifier: MIT

// Package solvertest provides deterministic, scripted solver adapters for
// exercising the nogood driver without a real MILP/NLP backend.
//
// ScriptedMaster enumerates a fixed tie-break order of binary combinations
// and returns the first one not yet excluded by the view's appended cuts,
// with the minimum remaining scripted cost as its (relaxed) objective.
// TableSub looks the fixed assignment up in a scripted objective table.
// Both honor their role strictly and count calls, so tests can assert exact
// oracle usage (e.g. "zero subproblem solves on early infeasibility").
package solvertest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/decomp/model"
	"github.com/katalvlaran/decomp/nogood"
)

// Key canonicalizes a binary assignment into a stable string, e.g.
// "x1=0,x2=1" with name-sorted variables. Scripted tables are keyed by it.
func Key(a model.BinaryAssignment) string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		bit := "0"
		if a[name] {
			bit = "1"
		}
		parts[i] = name + "=" + bit
	}
	return strings.Join(parts, ",")
}

// ScriptedMaster is a fake MILP oracle over an explicit candidate order.
type ScriptedMaster struct {
	// Order is the fixed tie-break order of binary combinations.
	Order []model.BinaryAssignment
	// Cost maps Key(combo) to the combo's cost. The reported master
	// objective is the minimum cost over all not-yet-cut combos — a valid
	// relaxation bound for the remaining discrete space.
	Cost map[string]float64
	// Calls counts Solve invocations.
	Calls int
}

// Solve picks the first combination in Order that satisfies every cut
// appended to the view, writes it back as the primal point, and reports the
// minimum remaining cost as objective. No remaining combination means
// StatusInfeasible.
func (m *ScriptedMaster) Solve(_ context.Context, v *model.View, role nogood.Role, _ nogood.SolveOptions) (nogood.SolveResult, error) {
	m.Calls++
	if role != nogood.RoleMaster {
		return nogood.SolveResult{Status: nogood.StatusOther}, fmt.Errorf("solvertest: ScriptedMaster used as %s", role)
	}
	var (
		chosen model.BinaryAssignment
		best   = math.Inf(1)
	)
	for _, combo := range m.Order {
		if !m.admits(v, combo) {
			continue
		}
		if chosen == nil {
			chosen = combo
		}
		if c, ok := m.Cost[Key(combo)]; ok && c < best {
			best = c
		}
	}
	if chosen == nil {
		return nogood.SolveResult{Status: nogood.StatusInfeasible}, nil
	}
	p := v.Problem()
	for name, val := range chosen {
		i, ok := p.VarIndex(name)
		if !ok {
			return nogood.SolveResult{Status: nogood.StatusOther}, fmt.Errorf("solvertest: unknown variable %q", name)
		}
		if val {
			v.SetValue(i, 1)
		} else {
			v.SetValue(i, 0)
		}
	}
	return nogood.SolveResult{Status: nogood.StatusOptimal, Objective: best}, nil
}

// admits evaluates the view's appended cut constraints at the combo point.
// Base constraints are ignored: the script, not the model, is the oracle.
func (m *ScriptedMaster) admits(v *model.View, combo model.BinaryAssignment) bool {
	p := v.Problem()
	x := make([]float64, p.NumVars())
	for name, val := range combo {
		if i, ok := p.VarIndex(name); ok && val {
			x[i] = 1
		}
	}
	for i := p.NumConstraints(); i < v.NumConstraints(); i++ {
		if !v.Constraint(i).Sat(x, model.DefaultEpsilon) {
			return false
		}
	}
	return true
}

// TableSub is a fake NLP oracle: the fixed binary assignment indexes a
// scripted objective table. Missing keys report StatusInfeasible; Statuses
// overrides the reported status per key when present.
type TableSub struct {
	Objective map[string]float64
	Statuses  map[string]nogood.TermStatus
	// Calls counts Solve invocations; Seen records the visited keys in
	// call order so tests can assert the exact visit sequence.
	Calls int
	Seen  []string
}

func (s *TableSub) Solve(_ context.Context, v *model.View, role nogood.Role, _ nogood.SolveOptions) (nogood.SolveResult, error) {
	s.Calls++
	if role != nogood.RoleSubproblem {
		return nogood.SolveResult{Status: nogood.StatusOther}, fmt.Errorf("solvertest: TableSub used as %s", role)
	}
	a, err := v.BinaryAssignment()
	if err != nil {
		return nogood.SolveResult{Status: nogood.StatusOther}, err
	}
	key := Key(a)
	s.Seen = append(s.Seen, key)
	if st, ok := s.Statuses[key]; ok {
		return nogood.SolveResult{Status: st}, nil
	}
	obj, ok := s.Objective[key]
	if !ok {
		return nogood.SolveResult{Status: nogood.StatusInfeasible}, nil
	}
	return nogood.SolveResult{Status: nogood.StatusOptimal, Objective: obj}, nil
}

// Failing is an adapter that always reports the configured status and
// error, for exercising the driver's fatal path.
type Failing struct {
	Status nogood.TermStatus
	Err    error
	Calls  int
}

func (f *Failing) Solve(context.Context, *model.View, nogood.Role, nogood.SolveOptions) (nogood.SolveResult, error) {
	f.Calls++
	return nogood.SolveResult{Status: f.Status}, f.Err
}
