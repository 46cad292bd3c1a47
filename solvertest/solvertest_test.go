// SPDX-License-Identifier: MIT

// Package solvertest_test — self-checks for the scripted oracles.
// Focus: Key canonicalization, cut admission in ScriptedMaster, and the
// role guards both fakes enforce.
package solvertest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decomp/model"
	"github.com/katalvlaran/decomp/nogood"
	"github.com/katalvlaran/decomp/solvertest"
)

func twoBinary(t *testing.T) *model.Problem {
	t.Helper()
	p, err := model.NewBuilder().AddBinary("a").AddBinary("b").Build()
	require.NoError(t, err)
	return p
}

func TestKeyCanonical(t *testing.T) {
	a := model.BinaryAssignment{"b": true, "a": false}
	assert.Equal(t, "a=0,b=1", solvertest.Key(a))
	assert.Equal(t, "", solvertest.Key(nil))
}

func TestScriptedMasterSkipsCutCombos(t *testing.T) {
	p := twoBinary(t)
	order := []model.BinaryAssignment{
		{"a": false, "b": false},
		{"a": true, "b": false},
	}
	cost := map[string]float64{
		solvertest.Key(order[0]): 4,
		solvertest.Key(order[1]): 6,
	}
	m := &solvertest.ScriptedMaster{Order: order, Cost: cost}

	v := model.NewView(p)
	res, err := m.Solve(context.Background(), v, nogood.RoleMaster, nogood.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, nogood.StatusOptimal, res.Status)
	assert.Equal(t, 4.0, res.Objective)
	ba, err := v.BinaryAssignment()
	require.NoError(t, err)
	assert.Equal(t, order[0], ba)

	// Cutting (0,0) moves the pick and tightens the reported bound.
	cut, err := nogood.NewCut(order[0])
	require.NoError(t, err)
	cons, err := cut.AsConstraint(p, 0)
	require.NoError(t, err)
	require.NoError(t, v.AppendConstraint(cons))

	res, err = m.Solve(context.Background(), v, nogood.RoleMaster, nogood.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, 6.0, res.Objective)
	ba, err = v.BinaryAssignment()
	require.NoError(t, err)
	assert.Equal(t, order[1], ba)

	// Cutting the last candidate exhausts the script.
	cut, err = nogood.NewCut(order[1])
	require.NoError(t, err)
	cons, err = cut.AsConstraint(p, 1)
	require.NoError(t, err)
	require.NoError(t, v.AppendConstraint(cons))

	res, err = m.Solve(context.Background(), v, nogood.RoleMaster, nogood.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, nogood.StatusInfeasible, res.Status)
	assert.Equal(t, 3, m.Calls)
}

func TestTableSubRecordsVisits(t *testing.T) {
	p := twoBinary(t)
	v := model.NewView(p)
	require.NoError(t, v.FixBinaries(model.BinaryAssignment{"a": true, "b": false}))

	s := &solvertest.TableSub{Objective: map[string]float64{"a=1,b=0": 7}}
	res, err := s.Solve(context.Background(), v, nogood.RoleSubproblem, nogood.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, nogood.StatusOptimal, res.Status)
	assert.Equal(t, 7.0, res.Objective)
	assert.Equal(t, []string{"a=1,b=0"}, s.Seen)

	// Missing key: infeasible. Status override wins over the table.
	require.NoError(t, v.FixBinaries(model.BinaryAssignment{"a": false, "b": false}))
	res, err = s.Solve(context.Background(), v, nogood.RoleSubproblem, nogood.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, nogood.StatusInfeasible, res.Status)

	s.Statuses = map[string]nogood.TermStatus{"a=0,b=0": nogood.StatusOther}
	res, err = s.Solve(context.Background(), v, nogood.RoleSubproblem, nogood.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, nogood.StatusOther, res.Status)
	assert.Equal(t, 3, s.Calls)
}

func TestRoleGuards(t *testing.T) {
	p := twoBinary(t)
	v := model.NewView(p)

	m := &solvertest.ScriptedMaster{}
	_, err := m.Solve(context.Background(), v, nogood.RoleSubproblem, nogood.SolveOptions{})
	assert.Error(t, err)

	s := &solvertest.TableSub{}
	_, err = s.Solve(context.Background(), v, nogood.RoleMaster, nogood.SolveOptions{})
	assert.Error(t, err)
}
