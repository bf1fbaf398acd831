//==============================================================================
// presolve: root-problem reductions
//==============================================================================

// Optional reductions applied once, before the search, to shrink the root
// problem: fixed variables are substituted out, and rows that can never bind
// given the variable bounds are dropped. Only reductions that preserve MILP
// semantics exactly are performed; the post-solve step reconstitutes the
// full assignment so callers always see the original variable space.

package mip

import (
	"math"

	"github.com/pkg/errors"
)

// presolveState records what was removed so the solution can be expanded
// back to the original model.
type presolveState struct {
	fixed       map[int]float64 // original variable index -> fixed value
	keep        []int           // reduced index -> original index
	rowsRemoved int
	infeasible  bool // reductions proved the problem infeasible
}

// postsolve expands an assignment over the reduced variables into the
// original variable space, reinserting the fixed values.
func (ps *presolveState) postsolve(reduced []float64) []float64 {
	n := len(ps.keep) + len(ps.fixed)
	out := make([]float64, n)
	for j, v := range ps.fixed {
		out[j] = v
	}
	for r, orig := range ps.keep {
		if r < len(reduced) {
			out[orig] = reduced[r]
		}
	}
	return out
}

// presolve builds the reduced problem. The original problem is not touched.
// In case of failure, function returns an error.
func presolve(p *Problem) (*presolveState, *Problem, error) {
	ps := &presolveState{fixed: make(map[int]float64)}

	// Fixed variables: bounds pinched to a point. A fixed integer variable
	// at a fractional value makes the whole problem infeasible.
	for j := range p.Variables {
		v := &p.Variables[j]
		if v.Lb > v.Ub+epsilon {
			// Contradictory bounds are a solve outcome, not a fixing.
			ps.infeasible = true
			continue
		}
		if math.IsInf(v.Lb, 0) || math.IsInf(v.Ub, 0) {
			continue
		}
		if v.Ub-v.Lb <= epsilon {
			val := v.Lb
			if v.Kind != Continuous {
				if math.Abs(val-math.Round(val)) > intTol {
					ps.infeasible = true
				} else {
					val = math.Round(val)
				}
			}
			ps.fixed[j] = val
		}
	}

	// Reindex the surviving variables.
	newIndex := make(map[int]int, len(p.Variables)-len(ps.fixed))
	red := NewProblem(p.Name, p.Sense)
	red.ObjConst = p.ObjConst
	for j := range p.Variables {
		if v, ok := ps.fixed[j]; ok {
			red.ObjConst += p.Variables[j].Cost * v
			continue
		}
		orig := &p.Variables[j]
		idx := red.AddVariable(orig.Name, orig.Kind)
		red.Variables[idx].Lb = orig.Lb
		red.Variables[idx].Ub = orig.Ub
		red.Variables[idx].Cost = orig.Cost
		newIndex[j] = idx
		ps.keep = append(ps.keep, j)
	}

	// Rewrite constraints over the reduced variables, dropping rows that
	// are empty or provably non-binding.
	for i := range p.Constraints {
		con := &p.Constraints[i]
		rhs := con.Rhs
		coeffs := make(map[int]float64)
		for j, a := range con.Coeffs {
			if v, ok := ps.fixed[j]; ok {
				rhs -= a * v
				continue
			}
			if a != 0 {
				coeffs[newIndex[j]] += a
			}
		}

		if len(coeffs) == 0 {
			// Empty row: either trivially satisfied or contradictory.
			if !relationHolds(0, con.Rel, rhs) {
				ps.infeasible = true
			}
			ps.rowsRemoved++
			continue
		}

		lo, hi := activityBounds(red, coeffs)
		if nonBinding(lo, hi, con.Rel, rhs) {
			ps.rowsRemoved++
			continue
		}
		if impossible(lo, hi, con.Rel, rhs) {
			ps.infeasible = true
		}

		ci := red.AddConstraint(con.Name, con.Rel, rhs)
		for j, a := range coeffs {
			if err := red.AddConstraintCoefficient(ci, j, a); err != nil {
				return nil, nil, errors.Wrap(err, "presolve rebuild")
			}
		}
	}

	return ps, red, nil
}

// relationHolds evaluates lhs REL rhs within tolerance.
func relationHolds(lhs float64, rel Relation, rhs float64) bool {
	switch rel {
	case LessEqual:
		return lhs <= rhs+compTol
	case GreaterEqual:
		return lhs >= rhs-compTol
	case Equal:
		return math.Abs(lhs-rhs) <= compTol
	}
	return false
}

// activityBounds computes the smallest and largest value the row's LHS can
// take under the current variable bounds. Infinite bounds propagate.
func activityBounds(p *Problem, coeffs map[int]float64) (lo, hi float64) {
	for j, a := range coeffs {
		lb, ub := p.Variables[j].Lb, p.Variables[j].Ub
		if a > 0 {
			lo += a * lb
			hi += a * ub
		} else {
			lo += a * ub
			hi += a * lb
		}
	}
	return lo, hi
}

// nonBinding reports whether the row holds for every point inside the
// variable bounds, in which case it can be dropped.
func nonBinding(lo, hi float64, rel Relation, rhs float64) bool {
	switch rel {
	case LessEqual:
		return hi <= rhs+compTol
	case GreaterEqual:
		return lo >= rhs-compTol
	case Equal:
		// An equality is only removable when the activity is pinned to the
		// right-hand side from both sides.
		return hi <= rhs+compTol && lo >= rhs-compTol
	}
	return false
}

// impossible reports whether no point inside the variable bounds can satisfy
// the row, which proves the problem infeasible before any search.
func impossible(lo, hi float64, rel Relation, rhs float64) bool {
	switch rel {
	case LessEqual:
		return lo > rhs+compTol
	case GreaterEqual:
		return hi < rhs-compTol
	case Equal:
		return lo > rhs+compTol || hi < rhs-compTol
	}
	return false
}
