package mip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// relax solves the problem's own root relaxation with the built-in engine.
func relax(t *testing.T, p *Problem) Relaxation {
	t.Helper()
	lb, ub := p.bounds()
	rel, err := newSimplexEngine().SolveRelaxation(p, lb, ub)
	require.NoError(t, err)
	return rel
}

func TestSimplexMaximize(t *testing.T) {
	// max 3x + 2y  s.t.  x + y <= 4,  x + 3y <= 6,  x,y >= 0.
	p := NewProblem("lp", Maximize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 3))
	require.NoError(t, p.SetObjectiveCoefficient(y, 2))
	r1 := p.AddConstraint("r1", LessEqual, 4)
	require.NoError(t, p.AddConstraintCoefficient(r1, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(r1, y, 1))
	r2 := p.AddConstraint("r2", LessEqual, 6)
	require.NoError(t, p.AddConstraintCoefficient(r2, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(r2, y, 3))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 12.0, rel.Objective, 1e-6)
	require.InDelta(t, 4.0, rel.Values[x], 1e-6)
	require.InDelta(t, 0.0, rel.Values[y], 1e-6)
}

func TestSimplexMinimizeWithEquality(t *testing.T) {
	// min x + 2y  s.t.  x + y = 2,  x,y >= 0.
	p := NewProblem("eq", Minimize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	require.NoError(t, p.SetObjectiveCoefficient(y, 2))
	row := p.AddConstraint("bal", Equal, 2)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 2.0, rel.Objective, 1e-6)
	require.InDelta(t, 2.0, rel.Values[x], 1e-6)
	require.InDelta(t, 0.0, rel.Values[y], 1e-6)
}

func TestSimplexGreaterEqual(t *testing.T) {
	// min 2x + 3y  s.t.  x + y >= 4,  x >= 0, y >= 0.
	p := NewProblem("ge", Minimize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 2))
	require.NoError(t, p.SetObjectiveCoefficient(y, 3))
	row := p.AddConstraint("cover", GreaterEqual, 4)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 8.0, rel.Objective, 1e-6)
	require.InDelta(t, 4.0, rel.Values[x], 1e-6)
}

func TestSimplexInfeasible(t *testing.T) {
	// x <= 1 and x >= 2 cannot both hold.
	p := NewProblem("inf", Minimize)
	x := p.AddVariable("x", Continuous)
	r1 := p.AddConstraint("hi", LessEqual, 1)
	require.NoError(t, p.AddConstraintCoefficient(r1, x, 1))
	r2 := p.AddConstraint("lo", GreaterEqual, 2)
	require.NoError(t, p.AddConstraintCoefficient(r2, x, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxInfeasible, rel.Status)
}

func TestSimplexUnbounded(t *testing.T) {
	// max x with x >= 0 and no constraints.
	p := NewProblem("unb", Maximize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxUnbounded, rel.Status)
}

func TestSimplexFreeVariable(t *testing.T) {
	// min x with x free and x >= -5.
	p := NewProblem("free", Minimize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetVariableBounds(x, math.Inf(-1), math.Inf(1)))
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	row := p.AddConstraint("floor", GreaterEqual, -5)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, -5.0, rel.Objective, 1e-6)
	require.InDelta(t, -5.0, rel.Values[x], 1e-6)
}

func TestSimplexFlippedVariable(t *testing.T) {
	// max x with x in (-inf, 3].
	p := NewProblem("flip", Maximize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetVariableBounds(x, math.Inf(-1), 3))
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 3.0, rel.Objective, 1e-6)
	require.InDelta(t, 3.0, rel.Values[x], 1e-6)
}

func TestSimplexShiftedBounds(t *testing.T) {
	// min x + y over x in [2, 10], y in [3, 10] with x + y >= 7.
	p := NewProblem("shift", Minimize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetVariableBounds(x, 2, 10))
	require.NoError(t, p.SetVariableBounds(y, 3, 10))
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	require.NoError(t, p.SetObjectiveCoefficient(y, 1))
	row := p.AddConstraint("cover", GreaterEqual, 7)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 7.0, rel.Objective, 1e-6)
	require.True(t, p.FeasibleAt(rel.Values))
}

func TestSimplexNegativeRhsNormalization(t *testing.T) {
	// min y  s.t.  -x - y <= -4 (i.e. x + y >= 4), x in [0, 3], y >= 0.
	p := NewProblem("neg", Minimize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetVariableBounds(x, 0, 3))
	require.NoError(t, p.SetObjectiveCoefficient(y, 1))
	row := p.AddConstraint("r", LessEqual, -4)
	require.NoError(t, p.AddConstraintCoefficient(row, x, -1))
	require.NoError(t, p.AddConstraintCoefficient(row, y, -1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 1.0, rel.Objective, 1e-6)
	require.InDelta(t, 3.0, rel.Values[x], 1e-6)
	require.InDelta(t, 1.0, rel.Values[y], 1e-6)
}

func TestSimplexNodeBoundsOverrideProblemBounds(t *testing.T) {
	// Node bounds tighter than the problem's own are what branching passes.
	p := NewProblem("node", Maximize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetVariableBounds(x, 0, 10))
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))

	rel, err := newSimplexEngine().SolveRelaxation(p, []float64{0}, []float64{4})
	require.NoError(t, err)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 4.0, rel.Objective, 1e-6)
}

func TestSimplexObjectiveConstant(t *testing.T) {
	p := NewProblem("const", Minimize)
	x := p.AddVariable("x", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	p.ObjConst = 100
	row := p.AddConstraint("floor", GreaterEqual, 2)
	require.NoError(t, p.AddConstraintCoefficient(row, x, 1))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 102.0, rel.Objective, 1e-6)
}

func TestSimplexDegenerateProblem(t *testing.T) {
	// Redundant equalities exercise the phase-1 cleanup of basic artificials.
	p := NewProblem("degen", Minimize)
	x := p.AddVariable("x", Continuous)
	y := p.AddVariable("y", Continuous)
	require.NoError(t, p.SetObjectiveCoefficient(x, 1))
	require.NoError(t, p.SetObjectiveCoefficient(y, 1))
	r1 := p.AddConstraint("e1", Equal, 2)
	require.NoError(t, p.AddConstraintCoefficient(r1, x, 1))
	require.NoError(t, p.AddConstraintCoefficient(r1, y, 1))
	r2 := p.AddConstraint("e2", Equal, 4)
	require.NoError(t, p.AddConstraintCoefficient(r2, x, 2))
	require.NoError(t, p.AddConstraintCoefficient(r2, y, 2))

	rel := relax(t, p)
	require.Equal(t, RelaxOptimal, rel.Status)
	require.InDelta(t, 2.0, rel.Objective, 1e-6)
}
