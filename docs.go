/*
Package mip provides a pure Go solver for Linear Programming (LP) and
Mixed-Integer Linear Programming (MILP). It is intended for two sets of
users: (i) researchers working on LP/MILP algorithms who want a small,
readable solver to experiment with, and (ii) users wanting easy Go access
to exact optimization over modestly sized models without an external
solver dependency.

Some of the main functions include:
	- ability to read and write model files in MPS format, or create models directly
	- model presolving
	- evaluating constraints and points
	- solving LP relaxations with a two-phase simplex method
	- solving mixed-integer models with depth-first branch and bound
	- concurrent batch solving of multiple model files

Creating Models

Models can be created in three ways:

  - Read in from files in MPS format via ReadMPSFile or ReadMPS.
  - Deserialized from the binary format written by Problem.WriteTo.
  - Created directly using NewProblem and the builder methods AddVariable,
    AddConstraint, AddConstraintCoefficient, SetVariableBounds, and
    SetObjectiveCoefficient.

Variables default to the bounds [0, +Inf); binary variables are clamped to
[0, 1]. Adding a coefficient twice for the same variable and constraint
accumulates the values.

Solving

A Solver runs branch and bound over LP relaxations. Solve accepts a
SolveOptions value controlling iteration and time limits, presolve, and
progress reporting. For example, the code could include the following:

	prob := mip.NewProblem("knapsack", mip.Maximize)
	x0 := prob.AddVariable("x0", mip.Binary)
	x1 := prob.AddVariable("x1", mip.Binary)
	prob.SetObjectiveCoefficient(x0, 5)
	prob.SetObjectiveCoefficient(x1, 8)
	row := prob.AddConstraint("cap", mip.LessEqual, 10)
	prob.AddConstraintCoefficient(row, x0, 2)
	prob.AddConstraintCoefficient(row, x1, 4)

	sol, err := mip.NewSolver().Solve(prob, mip.DefaultSolveOptions())
	if err != nil {
		fmt.Printf("solver returned the following error: %s\n", err)
		return
	}
	if obj, values, ok := sol.Best(); ok {
		fmt.Printf("objective %g at %v\n", obj, values)
	}

The Solution reports a Status of Optimal, Infeasible, Unbounded, Error, or,
when a limit stopped the search early, IterationLimit or TimeLimit. The
ObjectiveValue and Values accessors succeed only for an Optimal solution;
Best additionally exposes the incumbent of a limit-terminated search.

Presolving

Package mip implements some presolving techniques to reduce the size of a
model before the search runs. The reductions applied at this time include:

	- removing fixed variables         (upper bound equals the lower bound)
	- removing empty rows              (constraint has no variables)
	- removing non-binding constraints (satisfied for every point in the bounds)

Values for removed variables and constraints are restored in the reported
solution, which always matches the original model. Presolve is enabled
through the Presolve field of SolveOptions.

Interacting with Other Relaxation Engines

The branch-and-bound search obtains LP bounds through the Engine interface.
The built-in two-phase simplex engine is the default; algorithmic
researchers can supply their own with the WithEngine option and reuse the
search, the model builders, and the MPS tooling unchanged.

Tutorial and Function Exerciser

The executable provided with the package illustrates how the mip package
can be used and contains exercisers to allow each function to be tested
independently.
*/
package mip
