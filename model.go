//==============================================================================
// model: problem, variable, and constraint data structures
//==============================================================================

// The Problem is the data exchanged between the model-building client and the
// solver. It is built incrementally through the builder functions below and
// is treated as immutable once handed to Solver.Solve. The search never
// mutates a Problem; per-node bound changes live in copies owned by the
// branch-and-bound nodes.

package mip

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// VarKind identifies the mathematical nature of a decision variable.
type VarKind int

const (
	Continuous VarKind = iota // any real value within bounds
	Integer                   // integer values within bounds
	Binary                    // 0 or 1
)

// String returns a short mnemonic for the variable kind.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "C"
	case Integer:
		return "I"
	case Binary:
		return "B"
	}
	return "?"
}

// Relation identifies the sense of a linear constraint.
type Relation int

const (
	LessEqual    Relation = iota // LHS <= RHS
	GreaterEqual                 // LHS >= RHS
	Equal                        // LHS  = RHS
)

// String returns the conventional symbol for the relation.
func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return "?"
}

// Sense identifies the optimization direction of the objective function.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// String returns the name of the objective sense.
func (s Sense) String() string {
	if s == Maximize {
		return "Maximize"
	}
	return "Minimize"
}

// Numerical tolerances used throughout the package.
const (
	// epsilon absorbs floating-point noise in all simplex sign and zero
	// comparisons.
	epsilon = 1e-9

	// intTol is the distance from the nearest integer within which a
	// relaxed value is treated as integral by the search.
	intTol = 1e-6

	// compTol is the tolerance for incumbent comparisons and bound-based
	// pruning. A node is pruned only when its bound is definitively worse.
	compTol = 1e-6
)

// Variable is a single decision variable. Identity (Index, Name) is fixed at
// creation; bounds may be tightened on per-node copies during the search but
// never on the Problem's own slice.
type Variable struct {
	Index int     // dense index in the problem, 0..n-1
	Name  string  // variable name, used in MPS files and reports
	Kind  VarKind // continuous, integer, or binary
	Lb    float64 // lower bound, default 0, may be -Inf
	Ub    float64 // upper bound, default +Inf
	Cost  float64 // objective function coefficient
}

// Constraint is a single linear constraint with a sparse coefficient map
// keyed by variable index. Duplicate additions to the same variable
// accumulate additively.
type Constraint struct {
	Name   string          // constraint name
	Rel    Relation        // <=, >=, or =
	Rhs    float64         // right-hand side
	Coeffs map[int]float64 // variable index -> coefficient
}

// Problem is the container for an optimization model: an objective sense, an
// ordered list of variables, and a list of constraints. Variable indices are
// dense and stable for the lifetime of the Problem.
type Problem struct {
	Name        string       // problem name
	Sense       Sense        // Minimize or Maximize
	Variables   []Variable   // ordered decision variables
	Constraints []Constraint // linear constraints

	// ObjConst is an additive constant in the objective function. It is
	// populated by the MPS reader (RHS entry on the objective row) and
	// included in every reported objective value.
	ObjConst float64
}

//==============================================================================
// BUILDER FUNCTIONS
//==============================================================================

// NewProblem creates an empty problem with the given name and objective
// sense.
func NewProblem(name string, sense Sense) *Problem {
	return &Problem{Name: name, Sense: sense}
}

// AddVariable appends a new variable of the given kind and returns its index.
// The default bounds are [0, +Inf); a Binary variable is clamped to [0, 1].
// The objective coefficient starts at zero.
func (p *Problem) AddVariable(name string, kind VarKind) int {
	v := Variable{
		Index: len(p.Variables),
		Name:  name,
		Kind:  kind,
		Lb:    0,
		Ub:    math.Inf(1),
	}
	if kind == Binary {
		v.Ub = 1
	}
	p.Variables = append(p.Variables, v)
	return v.Index
}

// SetVariableBounds replaces the bounds of the variable at the given index.
// A Binary variable keeps its bounds inside [0, 1].
// In case of failure, function returns an error.
func (p *Problem) SetVariableBounds(index int, lb, ub float64) error {
	if index < 0 || index >= len(p.Variables) {
		return errors.Wrapf(ErrInvalidIndex, "variable %d of %d", index, len(p.Variables))
	}
	v := &p.Variables[index]
	if v.Kind == Binary {
		lb = math.Max(lb, 0)
		ub = math.Min(ub, 1)
	}
	v.Lb = lb
	v.Ub = ub
	return nil
}

// SetObjectiveCoefficient sets the objective coefficient of the variable at
// the given index.
// In case of failure, function returns an error.
func (p *Problem) SetObjectiveCoefficient(index int, coeff float64) error {
	if index < 0 || index >= len(p.Variables) {
		return errors.Wrapf(ErrInvalidIndex, "variable %d of %d", index, len(p.Variables))
	}
	p.Variables[index].Cost = coeff
	return nil
}

// AddConstraint appends a new constraint with no coefficients and returns its
// index. Coefficients are attached with AddConstraintCoefficient; a variable
// must exist before it is referenced.
func (p *Problem) AddConstraint(name string, rel Relation, rhs float64) int {
	p.Constraints = append(p.Constraints, Constraint{
		Name:   name,
		Rel:    rel,
		Rhs:    rhs,
		Coeffs: make(map[int]float64),
	})
	return len(p.Constraints) - 1
}

// AddConstraintCoefficient adds coeff to the entry for the given variable in
// the given constraint. Repeated calls for the same pair accumulate.
// In case of failure, function returns an error.
func (p *Problem) AddConstraintCoefficient(conIndex, varIndex int, coeff float64) error {
	if conIndex < 0 || conIndex >= len(p.Constraints) {
		return errors.Wrapf(ErrInvalidIndex, "constraint %d of %d", conIndex, len(p.Constraints))
	}
	if varIndex < 0 || varIndex >= len(p.Variables) {
		return errors.Wrapf(ErrInvalidIndex, "variable %d of %d", varIndex, len(p.Variables))
	}
	p.Constraints[conIndex].Coeffs[varIndex] += coeff
	return nil
}

//==============================================================================
// EVALUATION AND INSPECTION
//==============================================================================

// NumVariables returns the number of variables in the problem.
func (p *Problem) NumVariables() int { return len(p.Variables) }

// NumConstraints returns the number of constraints in the problem.
func (p *Problem) NumConstraints() int { return len(p.Constraints) }

// IsMIP reports whether any variable carries an integrality requirement.
func (p *Problem) IsMIP() bool {
	for i := range p.Variables {
		if p.Variables[i].Kind != Continuous {
			return true
		}
	}
	return false
}

// integrality returns the set of variable indices that must take integer
// values in a feasible solution.
func (p *Problem) integrality() *bitset.BitSet {
	s := bitset.New(uint(len(p.Variables)))
	for i := range p.Variables {
		if p.Variables[i].Kind != Continuous {
			s.Set(uint(i))
		}
	}
	return s
}

// ObjectiveAt evaluates the objective function, including the objective
// constant, at the given point. The point must have one entry per variable.
func (p *Problem) ObjectiveAt(x []float64) float64 {
	v := p.ObjConst
	for i := range p.Variables {
		if i < len(x) {
			v += p.Variables[i].Cost * x[i]
		}
	}
	return v
}

// ConstraintLhs evaluates the left-hand side of constraint i at the given
// point.
func (p *Problem) ConstraintLhs(i int, x []float64) float64 {
	lhs := 0.0
	for j, c := range p.Constraints[i].Coeffs {
		if j < len(x) {
			lhs += c * x[j]
		}
	}
	return lhs
}

// ConstraintSatisfied reports whether constraint i holds at the given point,
// within the comparison tolerance.
func (p *Problem) ConstraintSatisfied(i int, x []float64) bool {
	lhs := p.ConstraintLhs(i, x)
	rhs := p.Constraints[i].Rhs
	switch p.Constraints[i].Rel {
	case LessEqual:
		return lhs <= rhs+compTol
	case GreaterEqual:
		return lhs >= rhs-compTol
	case Equal:
		return math.Abs(lhs-rhs) <= compTol
	}
	return false
}

// FeasibleAt reports whether the given point respects every variable bound
// and satisfies every constraint, within the comparison tolerance.
func (p *Problem) FeasibleAt(x []float64) bool {
	if len(x) != len(p.Variables) {
		return false
	}
	for i := range p.Variables {
		if x[i] < p.Variables[i].Lb-compTol || x[i] > p.Variables[i].Ub+compTol {
			return false
		}
	}
	for i := range p.Constraints {
		if !p.ConstraintSatisfied(i, x) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the problem. The copy shares nothing with the
// original and may be mutated freely.
func (p *Problem) Clone() *Problem {
	cp := &Problem{
		Name:     p.Name,
		Sense:    p.Sense,
		ObjConst: p.ObjConst,
	}
	cp.Variables = append([]Variable(nil), p.Variables...)
	cp.Constraints = make([]Constraint, len(p.Constraints))
	for i := range p.Constraints {
		con := p.Constraints[i]
		coeffs := make(map[int]float64, len(con.Coeffs))
		for j, c := range con.Coeffs {
			coeffs[j] = c
		}
		con.Coeffs = coeffs
		cp.Constraints[i] = con
	}
	return cp
}

// bounds returns fresh lower- and upper-bound slices matching the problem's
// variables, used to seed the root node of the search.
func (p *Problem) bounds() (lb, ub []float64) {
	lb = make([]float64, len(p.Variables))
	ub = make([]float64, len(p.Variables))
	for i := range p.Variables {
		lb[i] = p.Variables[i].Lb
		ub[i] = p.Variables[i].Ub
	}
	return lb, ub
}

// validate checks the structural invariants of the model before solving:
// every coefficient references an existing variable and all numeric inputs
// are usable. Bound contradictions (lb > ub) are not build errors; they make
// the relaxation infeasible and are reported through the solve status.
// In case of failure, function returns an error.
func (p *Problem) validate() error {
	n := len(p.Variables)
	for i := range p.Variables {
		v := &p.Variables[i]
		if math.IsNaN(v.Lb) || math.IsNaN(v.Ub) || math.IsNaN(v.Cost) {
			return errors.Wrapf(ErrBadModel, "variable %q has NaN data", v.Name)
		}
	}
	for i := range p.Constraints {
		con := &p.Constraints[i]
		if math.IsNaN(con.Rhs) || math.IsInf(con.Rhs, 0) {
			return errors.Wrapf(ErrBadModel, "constraint %q has unusable RHS %v", con.Name, con.Rhs)
		}
		for j, c := range con.Coeffs {
			if j < 0 || j >= n {
				return errors.Wrapf(ErrBadModel, "constraint %q references variable %d of %d", con.Name, j, n)
			}
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return errors.Wrapf(ErrBadModel, "constraint %q has unusable coefficient %v", con.Name, c)
			}
		}
	}
	return nil
}
