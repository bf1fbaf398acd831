package mip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresolveFixedVariableSubstitution(t *testing.T) {
	// y is fixed at 2; min x + 3y with x + y >= 5 reduces to a single
	// variable problem with objective constant 6 and x >= 3.
	p := NewProblem("fix", Minimize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetVariableBounds(y, 2, 2))
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	require.NoError(t, p.SetObjectiveCoefficient(y, 3))
	row := p.AddConstraint("cover", GreaterEqual, 5)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, 1))

	ps, red, err := presolve(p)
	require.NoError(t, err)
	require.False(t, ps.infeasible)
	require.Equal(t, 1, red.NumVariables())
	require.InDelta(t, 6.0, red.ObjConst, 1e-12)
	require.InDelta(t, 3.0, red.Constraints[0].Rhs, 1e-12)

	// The expanded solution matches the direct solve.
	opts := DefaultSolveOptions()
	opts.Presolve = true
	sol, err := NewSolver().Solve(p, opts)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status())
	obj, err := sol.ObjectiveValue()
	require.NoError(t, err)
	require.InDelta(t, 9.0, obj, 1e-6)
	values, err := sol.Values()
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.InDelta(t, 3.0, values[x], 1e-6)
	require.InDelta(t, 2.0, values[y], 1e-6)
}

func TestPresolveIntegerFixedAtFraction(t *testing.T) {
	p := NewProblem("fracfix", Minimize)
	x := p.AddVariable("x", Integer)
	require.NoError(t, p.SetVariableBounds(x, 1.5, 1.5))

	opts := DefaultSolveOptions()
	opts.Presolve = true
	sol, err := NewSolver().Solve(p, opts)
	require.NoError(t, err)
	require.Equal(t, StatusInfeasible, sol.Status())
}

func TestPresolveContradictoryBounds(t *testing.T) {
	// Bounds with lb > ub must surface as Infeasible, never as a variable
	// "fixed" at the lower bound. Both solve paths agree on the status.
	p := NewProblem("pinch", Minimize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	require.NoError(t, p.SetVariableBounds(x, 5, 3))

	ps, _, err := presolve(p)
	require.NoError(t, err)
	require.True(t, ps.infeasible)
	require.Empty(t, ps.fixed)

	opts := DefaultSolveOptions()
	opts.Presolve = true
	sol, err := NewSolver().Solve(p, opts)
	require.NoError(t, err)
	require.Equal(t, StatusInfeasible, sol.Status())

	plain, err := NewSolver().Solve(p, DefaultSolveOptions())
	require.NoError(t, err)
	require.Equal(t, plain.Status(), sol.Status())
}

func TestPresolveDropsNonBindingRow(t *testing.T) {
	// x + y <= 100 can never bind when both are binaries.
	p := NewProblem("slackrow", Maximize)
	x := p.AddVariable("x", Binary)
	y := p.AddVariable("y", Binary)
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	require.NoError(t, p.SetObjectiveCoefficient(y, 1))
	row := p.AddConstraint("loose", LessEqual, 100)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, 1))

	ps, red, err := presolve(p)
	require.NoError(t, err)
	require.Equal(t, 1, ps.rowsRemoved)
	require.Equal(t, 0, red.NumConstraints())

	opts := DefaultSolveOptions()
	opts.Presolve = true
	sol, err := NewSolver().Solve(p, opts)
	require.NoError(t, err)
	obj, err := sol.ObjectiveValue()
	require.NoError(t, err)
	require.InDelta(t, 2.0, obj, 1e-6)
}

func TestPresolveEmptyRowContradiction(t *testing.T) {
	// After substituting the fixed variable the row reads 3 <= 1.
	p := NewProblem("empty", Minimize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetVariableBounds(x, 3, 3))
	row := p.AddConstraint("bad", LessEqual, 1)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))

	ps, _, err := presolve(p)
	require.NoError(t, err)
	require.True(t, ps.infeasible)
}

func TestPresolveImpossibleRow(t *testing.T) {
	// x + y >= 5 over two binaries has activity at most 2.
	p := NewProblem("imp", Minimize)
	x := p.AddVariable("x", Binary)
	y := p.AddVariable("y", Binary)
	row := p.AddConstraint("cover", GreaterEqual, 5)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, 1))

	ps, _, err := presolve(p)
	require.NoError(t, err)
	require.True(t, ps.infeasible)
}

func TestPresolveMatchesDirectSolve(t *testing.T) {
	p := knapsack()
	direct, err := NewSolver().Solve(p, DefaultSolveOptions())
	require.NoError(t, err)

	opts := DefaultSolveOptions()
	opts.Presolve = true
	reduced, err := NewSolver().Solve(p, opts)
	require.NoError(t, err)

	do, err := direct.ObjectiveValue()
	require.NoError(t, err)
	ro, err := reduced.ObjectiveValue()
	require.NoError(t, err)
	require.InDelta(t, do, ro, 1e-6)
}

func TestPostsolveExpandsAllFixed(t *testing.T) {
	ps := &presolveState{
		fixed: map[int]float64{0: 2, 2: 5},
		keep:  []int{1},
	}
	out := ps.postsolve([]float64{7})
	require.Equal(t, []float64{2, 7, 5}, out)
}
