// SPDX-License-Identifier: MIT

// Package nogood_test — benchmarks for the decomposition driver loop.
// Scope:
//   - Solve with scripted oracles over n binaries (pure driver overhead:
//     view bookkeeping, cut construction, bound accounting).
//   - Cut evaluation in isolation (LHS / Excludes on wide assignments).
//
// Policy:
//   - Deterministic inputs, pre-built outside the timer.
//   - Instances sized to run to exhaustion (2^n combinations) so every
//     iteration exercises the full cut-append path.
package nogood_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/decomp/model"
	"github.com/katalvlaran/decomp/nogood"
	"github.com/katalvlaran/decomp/solvertest"
)

// benchInstance builds a problem with n binaries plus the full enumeration
// order and a strictly decreasing cost table, so the driver runs all 2^n
// iterations before exhausting.
func benchInstance(n int) (*model.Problem, []model.BinaryAssignment, map[string]float64) {
	b := model.NewBuilder()
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("y%d", i)
		b.AddBinary(names[i])
	}
	p, err := b.Build()
	if err != nil {
		panic(err)
	}

	total := 1 << n
	order := make([]model.BinaryAssignment, total)
	cost := make(map[string]float64, total)
	for m := 0; m < total; m++ {
		a := make(model.BinaryAssignment, n)
		for i := 0; i < n; i++ {
			a[names[i]] = m&(1<<i) != 0
		}
		order[m] = a
		cost[solvertest.Key(a)] = float64(total - m)
	}
	return p, order, cost
}

func benchmarkSolve(b *testing.B, n int) {
	p, order, cost := benchInstance(n)
	total := 1 << n
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		master := &solvertest.ScriptedMaster{Order: order, Cost: cost}
		sub := &solvertest.TableSub{Objective: cost}
		res, err := nogood.Solve(context.Background(), p, master, sub,
			nogood.WithIterLimit(total))
		if err != nil {
			b.Fatal(err)
		}
		if res.Status != nogood.ExhaustedWithIncumbent {
			b.Fatalf("unexpected status %s", res.Status)
		}
	}
}

func BenchmarkSolve4(b *testing.B) { benchmarkSolve(b, 4) }
func BenchmarkSolve6(b *testing.B) { benchmarkSolve(b, 6) }
func BenchmarkSolve8(b *testing.B) { benchmarkSolve(b, 8) }

func BenchmarkCutLHS(b *testing.B) {
	const n = 64
	a := make(model.BinaryAssignment, n)
	probe := make(model.BinaryAssignment, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("y%d", i)
		a[name] = i%2 == 0
		probe[name] = i%3 == 0
	}
	cut, err := nogood.NewCut(a)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if cut.LHS(probe) < 0 {
			b.Fatal("negative distance")
		}
	}
}
