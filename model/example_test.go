// SPDX-License-Identifier: MIT

package model_test

import (
	"fmt"

	"github.com/katalvlaran/decomp/model"
)

// ExampleBuilder shows the assembly of a tiny MIQCP and the two views the
// decomposition driver derives from it.
func ExampleBuilder() {
	p, err := model.NewBuilder().
		AddBinary("open").
		AddContinuous("flow", 0, 10).
		AddConstraint("capacity", model.LE, 8, model.L(1, "flow")).
		AddConstraint("activation", model.LE, 0,
			model.Q(1, "flow", "flow"), model.L(-100, "open")).
		SetObjective(model.L(3, "flow"), model.L(5, "open")).
		Build()
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	fmt.Println("activation is", p.Constraint(1).Linearity)

	// The master view: nonlinear constraints off.
	master := model.NewView(p)
	master.Relax(false)
	fmt.Println("activation active in master:", master.Active(1))

	// The subproblem view: everything on, binaries pinned.
	sub := model.NewView(p)
	sub.Relax(true)
	if err = sub.FixBinaries(model.BinaryAssignment{"open": true}); err != nil {
		fmt.Println("fix:", err)
		return
	}
	i, _ := p.VarIndex("open")
	fmt.Println("open pinned to:", sub.Value(i))

	// Output:
	// activation is nonlinear
	// activation active in master: false
	// open pinned to: 1
}
