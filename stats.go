//==============================================================================
// stats: descriptive statistics about a problem instance
//==============================================================================

package mip

import (
	"fmt"
	"io"
	"math"
)

// Statistics summarizes the size and shape of a problem. All counts describe
// the model as built, before any presolve reductions.
type Statistics struct {
	Name           string  // problem name
	NumVariables   int     // total number of variables
	NumInteger     int     // variables with integer or binary kind
	NumBinary      int     // variables with binary kind
	NumConstraints int     // total number of constraints
	NumEquality    int     // constraints with the Equal relation
	NumNonZero     int     // nonzero constraint coefficients
	Density        float64 // nonzeros / (variables * constraints)
	MinCoeff       float64 // smallest nonzero coefficient magnitude
	MaxCoeff       float64 // largest nonzero coefficient magnitude
	NumFreeVars    int     // variables unbounded in both directions
	NumFixedVars   int     // variables with equal lower and upper bounds
}

// GetStatistics computes statistics for the problem.
func GetStatistics(prob *Problem) Statistics {
	st := Statistics{
		Name:           prob.Name,
		NumVariables:   prob.NumVariables(),
		NumConstraints: prob.NumConstraints(),
		MinCoeff:       math.Inf(1),
	}
	for i := range prob.Variables {
		v := &prob.Variables[i]
		switch v.Kind {
		case Binary:
			st.NumBinary++
			st.NumInteger++
		case Integer:
			st.NumInteger++
		}
		if math.IsInf(v.Lb, -1) && math.IsInf(v.Ub, 1) {
			st.NumFreeVars++
		}
		if v.Lb == v.Ub {
			st.NumFixedVars++
		}
	}
	for i := range prob.Constraints {
		con := &prob.Constraints[i]
		if con.Rel == Equal {
			st.NumEquality++
		}
		for _, a := range con.Coeffs {
			if a == 0 {
				continue
			}
			st.NumNonZero++
			m := math.Abs(a)
			if m < st.MinCoeff {
				st.MinCoeff = m
			}
			if m > st.MaxCoeff {
				st.MaxCoeff = m
			}
		}
	}
	if st.NumNonZero == 0 {
		st.MinCoeff = 0
	}
	if st.NumVariables > 0 && st.NumConstraints > 0 {
		st.Density = float64(st.NumNonZero) /
			(float64(st.NumVariables) * float64(st.NumConstraints))
	}
	return st
}

// PrintStatistics writes a human-readable statistics table to w.
func PrintStatistics(w io.Writer, st Statistics) {
	name := st.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Problem statistics for %s\n", name)
	fmt.Fprintf(w, "  Variables:     %8d (%d integer, %d binary, %d free, %d fixed)\n",
		st.NumVariables, st.NumInteger, st.NumBinary, st.NumFreeVars, st.NumFixedVars)
	fmt.Fprintf(w, "  Constraints:   %8d (%d equality)\n", st.NumConstraints, st.NumEquality)
	fmt.Fprintf(w, "  Nonzeros:      %8d (density %.4f)\n", st.NumNonZero, st.Density)
	if st.NumNonZero > 0 {
		fmt.Fprintf(w, "  Coefficients:  [%g, %g]\n", st.MinCoeff, st.MaxCoeff)
	}
}
