package mip

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// coverModel is min 3x + 4y s.t. x + y >= rhs over nonnegative integers.
// MPS files carry no objective sense, so batch tests use minimizations.
func coverModel(rhs float64) *Problem {
	p := NewProblem("cover", Minimize)
	x := p.AddVariable("x", Integer)
	y := p.AddVariable("y", Integer)
	p.SetObjectiveCoefficient(x, 3)
	p.SetObjectiveCoefficient(y, 4)
	row := p.AddConstraint("cov", GreaterEqual, rhs)
	p.AddConstraintCoefficient(row, x, 1)
	p.AddConstraintCoefficient(row, y, 1)
	return p
}

func TestSolveFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.mps")
	p2 := filepath.Join(dir, "b.mps")
	require.NoError(t, WriteMPSFile(p1, coverModel(3.5)))
	require.NoError(t, WriteMPSFile(p2, coverModel(1.5)))

	results, err := SolveFiles(context.Background(), []string{p1, p2}, DefaultSolveOptions(), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, p1, results[0].Path)
	require.NoError(t, results[0].Err)
	require.Equal(t, StatusOptimal, results[0].Solution.Status())
	o1, err := results[0].Solution.ObjectiveValue()
	require.NoError(t, err)
	require.InDelta(t, 12.0, o1, 1e-6)

	require.Equal(t, p2, results[1].Path)
	require.NoError(t, results[1].Err)
	o2, err := results[1].Solution.ObjectiveValue()
	require.NoError(t, err)
	require.InDelta(t, 6.0, o2, 1e-6)
}

func TestSolveFilesReportsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mps")
	require.NoError(t, WriteMPSFile(good, coverModel(2.5)))
	missing := filepath.Join(dir, "missing.mps")

	results, err := SolveFiles(context.Background(), []string{missing, good}, DefaultSolveOptions(), 1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	require.Nil(t, results[0].Solution)
	require.NoError(t, results[1].Err)
	require.Equal(t, StatusOptimal, results[1].Solution.Status())
}

func TestSolveFilesCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mps")
	require.NoError(t, WriteMPSFile(path, coverModel(2.5)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, _ := SolveFiles(ctx, []string{path}, DefaultSolveOptions(), 1)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
}

func TestSolveFilesEmptyInput(t *testing.T) {
	results, err := SolveFiles(context.Background(), nil, DefaultSolveOptions(), 4)
	require.NoError(t, err)
	require.Empty(t, results)
}
