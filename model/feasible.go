// SPDX-License-Identifier: MIT

package model

// Violation records one active constraint that does not hold at the view's
// current primal point, together with how far it is off.
type Violation struct {
	Constraint string
	Amount     float64 // positive slack deficit, in constraint units
}

// Violations evaluates every active constraint of v at its current primal
// point and returns the ones violated by more than eps, in constraint order.
// An empty result certifies feasibility of the point w.r.t. the view.
// eps ≤ 0 falls back to DefaultEpsilon.
func Violations(v *View, eps float64) []Violation {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	x := v.Values()
	var out []Violation
	for i := 0; i < v.NumConstraints(); i++ {
		if !v.Active(i) {
			continue
		}
		c := v.Constraint(i)
		val := c.Body.Eval(x)
		var miss float64
		switch c.Rel {
		case LE:
			miss = val - c.RHS
		case GE:
			miss = c.RHS - val
		default:
			if miss = val - c.RHS; miss < 0 {
				miss = -miss
			}
		}
		if miss > eps {
			out = append(out, Violation{Constraint: c.Name, Amount: miss})
		}
	}
	return out
}

// CheckFeasible reports whether the view's current primal point satisfies
// every active constraint within eps. Shorthand over Violations.
func CheckFeasible(v *View, eps float64) bool { return len(Violations(v, eps)) == 0 }
