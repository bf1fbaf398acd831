//==============================================================================
// simplex: two-phase tableau simplex engine
//==============================================================================

// The built-in Engine implementation. A node problem is rewritten into
// standard form (nonnegative variables, equality rows with slack, surplus,
// and artificial columns), phase 1 drives the artificial sum to zero or
// proves infeasibility, and phase 2 optimizes the real objective. The engine
// holds no state across calls and has no side effects beyond the returned
// Relaxation.

package mip

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// pivotRule selects the entering-variable strategy.
type pivotRule int

const (
	ruleDantzig pivotRule = iota // most-negative reduced cost
	ruleBland                    // lowest eligible index, cycle-proof
)

// phase-1 feasibility tolerance: the artificial sum must reach (numerical)
// zero for the problem to be feasible.
const phase1Tol = 1e-7

type simplexEngine struct{}

func newSimplexEngine() *simplexEngine { return &simplexEngine{} }

// SolveRelaxation solves the LP relaxation of prob under the node bounds
// lb/ub. On a numerical failure with the default pivoting rule the tableau
// is rebuilt and re-solved once under Bland's rule before the failure is
// surfaced.
// In case of failure, function returns an error.
func (e *simplexEngine) SolveRelaxation(prob *Problem, lb, ub []float64) (Relaxation, error) {
	rel, err := solveWithRule(prob, lb, ub, ruleDantzig)
	if err != nil && errors.Is(err, ErrNumerical) {
		rel, err = solveWithRule(prob, lb, ub, ruleBland)
	}
	return rel, err
}

func solveWithRule(prob *Problem, lb, ub []float64, rule pivotRule) (Relaxation, error) {
	// Contradictory node bounds make the relaxation trivially infeasible;
	// branching produces such nodes routinely.
	for j := range lb {
		if lb[j] > ub[j]+epsilon {
			return Relaxation{Status: RelaxInfeasible}, nil
		}
	}

	t := newTableau(prob, lb, ub)

	if t.numArt > 0 {
		if err := t.phase1(rule); err != nil {
			return Relaxation{}, err
		}
		if t.infeasible {
			return Relaxation{Status: RelaxInfeasible}, nil
		}
	}

	unbounded, err := t.pivotLoop(t.cost, rule, t.artBase)
	if err != nil {
		return Relaxation{}, err
	}
	if unbounded {
		return Relaxation{Status: RelaxUnbounded}, nil
	}

	return t.extract(), nil
}

//==============================================================================
// STANDARD-FORM TABLEAU
//==============================================================================

// colMap records how one original variable maps onto standard-form columns.
type colMap struct {
	mode int     // 0: x = lb + y, 1: x = ub - y, 2: free, x = y(+) - y(-)
	col  int     // primary y column
	neg  int     // negative-part column for free variables
	off  float64 // lb (mode 0) or ub (mode 1)
}

const (
	mapShift = iota
	mapFlip
	mapFree
)

// tableau is the dense working form of one relaxation. Rows are gonum
// vectors of length cols+1; the last component is the right-hand side.
type tableau struct {
	prob *Problem
	vmap []colMap

	rows  []*mat.VecDense // constraint rows
	basis []int           // basic column per row
	cost  *mat.VecDense   // phase-2 reduced-cost row, last entry is -z

	numY    int // structural columns
	artBase int // first artificial column; phase 2 may not enter at or past it
	numArt  int
	cols    int // total columns, excluding the rhs cell

	shiftConst float64 // objective constant introduced by bound shifting
	flipSense  bool    // true when the problem maximizes (internal minimize)

	infeasible bool
	pivots     int
	maxPivots  int
}

// rawRow is an intermediate constraint before slack/artificial augmentation.
type rawRow struct {
	coeffs []float64
	rel    Relation
	rhs    float64
}

// newTableau rewrites the node problem into a standard-form tableau:
// variables are shifted or flipped to be nonnegative, free variables are
// split, residual finite upper bounds become rows, and every row gains a
// slack, surplus, or artificial column as its relation requires.
func newTableau(prob *Problem, lb, ub []float64) *tableau {
	n := len(prob.Variables)
	t := &tableau{prob: prob, vmap: make([]colMap, n)}

	// Assign structural columns.
	numY := 0
	for j := 0; j < n; j++ {
		switch {
		case !math.IsInf(lb[j], -1):
			t.vmap[j] = colMap{mode: mapShift, col: numY, off: lb[j]}
			numY++
		case !math.IsInf(ub[j], 1):
			t.vmap[j] = colMap{mode: mapFlip, col: numY, off: ub[j]}
			numY++
		default:
			t.vmap[j] = colMap{mode: mapFree, col: numY, neg: numY + 1}
			numY += 2
		}
	}
	t.numY = numY

	// Objective in y-space, as an internal minimization.
	t.flipSense = prob.Sense == Maximize
	costY := make([]float64, numY)
	for j := 0; j < n; j++ {
		c := prob.Variables[j].Cost
		m := t.vmap[j]
		switch m.mode {
		case mapShift:
			costY[m.col] += c
			t.shiftConst += c * m.off
		case mapFlip:
			costY[m.col] -= c
			t.shiftConst += c * m.off
		case mapFree:
			costY[m.col] += c
			costY[m.neg] -= c
		}
	}
	if t.flipSense {
		for k := range costY {
			costY[k] = -costY[k]
		}
	}

	// Constraint rows in y-space.
	var raw []rawRow
	for i := range prob.Constraints {
		con := &prob.Constraints[i]
		r := rawRow{coeffs: make([]float64, numY), rel: con.Rel, rhs: con.Rhs}
		for j, a := range con.Coeffs {
			m := t.vmap[j]
			switch m.mode {
			case mapShift:
				r.coeffs[m.col] += a
				r.rhs -= a * m.off
			case mapFlip:
				r.coeffs[m.col] -= a
				r.rhs -= a * m.off
			case mapFree:
				r.coeffs[m.col] += a
				r.coeffs[m.neg] -= a
			}
		}
		raw = append(raw, r)
	}

	// Residual upper bounds for shifted variables.
	for j := 0; j < n; j++ {
		m := t.vmap[j]
		if m.mode == mapShift && !math.IsInf(ub[j], 1) {
			r := rawRow{coeffs: make([]float64, numY), rel: LessEqual, rhs: ub[j] - m.off}
			r.coeffs[m.col] = 1
			raw = append(raw, r)
		}
	}

	// Normalize signs so every rhs is nonnegative, then count the auxiliary
	// columns each row needs.
	numSlack, numArt := 0, 0
	for i := range raw {
		if raw[i].rhs < 0 {
			for k := range raw[i].coeffs {
				raw[i].coeffs[k] = -raw[i].coeffs[k]
			}
			raw[i].rhs = -raw[i].rhs
			switch raw[i].rel {
			case LessEqual:
				raw[i].rel = GreaterEqual
			case GreaterEqual:
				raw[i].rel = LessEqual
			}
		}
		switch raw[i].rel {
		case LessEqual:
			numSlack++ // slack enters the basis directly
		case GreaterEqual:
			numSlack++ // surplus
			numArt++
		case Equal:
			numArt++
		}
	}

	t.artBase = numY + numSlack
	t.numArt = numArt
	t.cols = t.artBase + numArt

	// Assemble the dense rows and the starting basis.
	slackAt := numY
	artAt := t.artBase
	for i := range raw {
		row := mat.NewVecDense(t.cols+1, nil)
		for k, v := range raw[i].coeffs {
			row.SetVec(k, v)
		}
		row.SetVec(t.cols, raw[i].rhs)

		switch raw[i].rel {
		case LessEqual:
			row.SetVec(slackAt, 1)
			t.basis = append(t.basis, slackAt)
			slackAt++
		case GreaterEqual:
			row.SetVec(slackAt, -1)
			slackAt++
			row.SetVec(artAt, 1)
			t.basis = append(t.basis, artAt)
			artAt++
		case Equal:
			row.SetVec(artAt, 1)
			t.basis = append(t.basis, artAt)
			artAt++
		}
		t.rows = append(t.rows, row)
	}

	// Phase-2 reduced-cost row. Auxiliary columns have zero cost.
	t.cost = mat.NewVecDense(t.cols+1, nil)
	for k, v := range costY {
		t.cost.SetVec(k, v)
	}

	t.maxPivots = 200 + 50*(len(t.rows)+t.cols)
	return t
}

//==============================================================================
// PIVOTING
//==============================================================================

// pivot performs one basis exchange on row r and column j, scaling the pivot
// row and eliminating column j from every other row and from the active cost
// rows.
func (t *tableau) pivot(r, j int, costRows ...*mat.VecDense) {
	piv := t.rows[r]
	piv.ScaleVec(1/piv.AtVec(j), piv)
	for i, row := range t.rows {
		if i == r {
			continue
		}
		if f := row.AtVec(j); math.Abs(f) > epsilon {
			row.AddScaledVec(row, -f, piv)
		}
	}
	for _, cr := range costRows {
		if f := cr.AtVec(j); math.Abs(f) > epsilon {
			cr.AddScaledVec(cr, -f, piv)
		}
	}
	t.basis[r] = j
	t.pivots++
}

// entering selects the entering column under the given rule among columns
// [0, limit) with reduced cost below -epsilon, or -1 when none qualifies.
func (t *tableau) entering(costRow *mat.VecDense, rule pivotRule, limit int) int {
	best, bestCost := -1, -epsilon
	for j := 0; j < limit; j++ {
		c := costRow.AtVec(j)
		if c < bestCost {
			if rule == ruleBland {
				return j
			}
			best, bestCost = j, c
		}
	}
	return best
}

// leaving runs the minimum-ratio test on column j. Ties break on the lowest
// row index, which combined with Bland's entering rule prevents cycling.
// Returns -1 when the column has no positive entry, i.e. the ray is
// unbounded.
func (t *tableau) leaving(j int) int {
	best, bestRatio := -1, math.Inf(1)
	for i, row := range t.rows {
		a := row.AtVec(j)
		if a > epsilon {
			ratio := row.AtVec(t.cols) / a
			if ratio < bestRatio-epsilon {
				best, bestRatio = i, ratio
			}
		}
	}
	return best
}

// pivotLoop optimizes against the given cost row, entering only columns
// below limit. Returns unbounded=true when an improving ray has no blocking
// row.
// In case of failure, function returns an error.
func (t *tableau) pivotLoop(costRow *mat.VecDense, rule pivotRule, limit int) (unbounded bool, err error) {
	for {
		if t.pivots > t.maxPivots {
			return false, errors.Wrapf(ErrNumerical, "pivot limit %d exceeded", t.maxPivots)
		}
		j := t.entering(costRow, rule, limit)
		if j < 0 {
			return false, nil
		}
		r := t.leaving(j)
		if r < 0 {
			return true, nil
		}
		if costRow != t.cost {
			t.pivot(r, j, costRow, t.cost)
		} else {
			t.pivot(r, j, costRow)
		}
	}
}

// phase1 minimizes the artificial-variable sum. If the minimum is not zero
// the problem is infeasible; otherwise remaining basic artificials are
// pivoted out (or their redundant rows dropped) so phase 2 starts from a
// clean basic feasible solution.
// In case of failure, function returns an error.
func (t *tableau) phase1(rule pivotRule) error {
	w := mat.NewVecDense(t.cols+1, nil)
	for j := t.artBase; j < t.cols; j++ {
		w.SetVec(j, 1)
	}
	// Price out the basic artificials so w holds true reduced costs.
	for i, b := range t.basis {
		if b >= t.artBase {
			w.AddScaledVec(w, -1, t.rows[i])
		}
	}

	unbounded, err := t.pivotLoop(w, rule, t.cols)
	if err != nil {
		return err
	}
	if unbounded {
		// The artificial sum is bounded below by zero; an unbounded ray
		// here is a numerical breakdown, not a real outcome.
		return errors.Wrap(ErrNumerical, "phase 1 reported unbounded")
	}

	if -w.AtVec(t.cols) > phase1Tol {
		t.infeasible = true
		return nil
	}

	// Drive zero-level artificials out of the basis.
	for i := 0; i < len(t.rows); i++ {
		if t.basis[i] < t.artBase {
			continue
		}
		pivoted := false
		for j := 0; j < t.artBase; j++ {
			if math.Abs(t.rows[i].AtVec(j)) > epsilon {
				t.pivot(i, j, w, t.cost)
				pivoted = true
				break
			}
		}
		if !pivoted {
			// Row is redundant: all structural entries vanished.
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			t.basis = append(t.basis[:i], t.basis[i+1:]...)
			i--
		}
	}
	return nil
}

//==============================================================================
// RESULT EXTRACTION
//==============================================================================

// extract reads the optimal basis back into original variable space and
// restores the objective sense and shift constants.
func (t *tableau) extract() Relaxation {
	y := make([]float64, t.cols)
	for i, b := range t.basis {
		y[b] = t.rows[i].AtVec(t.cols)
	}

	x := make([]float64, len(t.prob.Variables))
	for j := range x {
		m := t.vmap[j]
		switch m.mode {
		case mapShift:
			x[j] = m.off + y[m.col]
		case mapFlip:
			x[j] = m.off - y[m.col]
		case mapFree:
			x[j] = y[m.col] - y[m.neg]
		}
	}

	z := -t.cost.AtVec(t.cols) // internal minimization optimum
	if t.flipSense {
		z = -z
	}
	return Relaxation{
		Status:    RelaxOptimal,
		Objective: z + t.shiftConst + t.prob.ObjConst,
		Values:    x,
		Pivots:    t.pivots,
	}
}
