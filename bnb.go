//==============================================================================
// bnb: branch-and-bound search over the relaxation engine
//==============================================================================

// Depth-first search with an explicit LIFO stack. Each node is an immutable
// pair of bound vectors copied from its parent; the shared Problem is never
// touched. The incumbent tracker keeps the best integer-feasible assignment
// and drives bound-based pruning. Iteration and time limits are checked at
// the top of the node loop, which is the only cancellation point.

package mip

import (
	"math"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// node is one element of the search tree: the root bounds with a subset of
// integer variables tightened. Nodes are immutable once created and are
// discarded after evaluation.
type node struct {
	lb    []float64
	ub    []float64
	depth int
}

// child copies the node with one variable's bound replaced.
func (nd *node) child(j int, newLb, newUb float64) node {
	lb := append([]float64(nil), nd.lb...)
	ub := append([]float64(nil), nd.ub...)
	if !math.IsInf(newLb, -1) {
		lb[j] = math.Max(lb[j], newLb)
	}
	if !math.IsInf(newUb, 1) {
		ub[j] = math.Min(ub[j], newUb)
	}
	return node{lb: lb, ub: ub, depth: nd.depth + 1}
}

//==============================================================================

// incumbent holds the best known integer-feasible solution. It improves
// strictly under the objective sense and is replaced atomically.
type incumbent struct {
	objective float64
	values    []float64
	found     bool
}

// wouldImprove reports whether an objective value is strictly better than
// the incumbent under the given sense. An unset incumbent is improved by
// anything. The same test doubles as the pruning rule: a node whose bound
// cannot improve on the incumbent is discarded.
func (inc *incumbent) wouldImprove(obj float64, sense Sense) bool {
	if !inc.found {
		return true
	}
	if sense == Minimize {
		return obj < inc.objective-compTol
	}
	return obj > inc.objective+compTol
}

// replace installs a new best assignment. The slice is copied so the caller
// may reuse its buffer.
func (inc *incumbent) replace(obj float64, values []float64) {
	inc.objective = obj
	inc.values = append(inc.values[:0], values...)
	inc.found = true
}

//==============================================================================

// branchVariable selects the fractional integer variable to branch on:
// the one whose distance from the nearest integer is largest (closest to
// 0.5), ties broken by lowest index. Returns -1 when every integer variable
// is integral within tolerance, i.e. the node is integer feasible.
func branchVariable(values []float64, intMask *bitset.BitSet) int {
	best := -1
	bestDist := intTol
	for j, ok := intMask.NextSet(0); ok; j, ok = intMask.NextSet(j + 1) {
		v := values[j]
		dist := math.Abs(v - math.Round(v))
		if dist > bestDist {
			best = int(j)
			bestDist = dist
		}
	}
	return best
}

// snapIntegers rounds near-integral entries of the assignment to exact
// integers so reported solutions do not carry relaxation noise.
func snapIntegers(values []float64, intMask *bitset.BitSet) []float64 {
	out := append([]float64(nil), values...)
	for j, ok := intMask.NextSet(0); ok; j, ok = intMask.NextSet(j + 1) {
		out[j] = math.Round(out[j])
	}
	return out
}

//==============================================================================
// SOLVE
//==============================================================================

// Solve runs branch-and-bound on the problem and returns the terminal
// Solution. Model defects are returned as errors immediately; solve outcomes
// (Optimal, Infeasible, Unbounded, limit exhaustion, numerical failure) are
// reported through the Solution status.
//
// The zero SolveOptions value allows no search nodes; use
// DefaultSolveOptions for an unlimited solve.
// In case of failure, function returns an error.
func (s *Solver) Solve(prob *Problem, opts SolveOptions) (*Solution, error) {
	start := time.Now()

	if prob == nil {
		return nil, errors.Wrap(ErrBadModel, "nil problem")
	}
	if err := prob.validate(); err != nil {
		return nil, err
	}

	slog := newSolveLog()
	slog.logf("solving %q: %d variables, %d constraints",
		prob.Name, prob.NumVariables(), prob.NumConstraints())

	// Optional root reductions. The search then runs on the reduced
	// problem; the post-solve step expands assignments back.
	work := prob
	var ps *presolveState
	if opts.Presolve {
		var err error
		ps, work, err = presolve(prob)
		if err != nil {
			return nil, err
		}
		slog.logf("presolve removed %d rows and fixed %d variables",
			ps.rowsRemoved, len(ps.fixed))
		if ps.infeasible {
			slog.logf("presolve proved infeasibility")
			return &Solution{
				status:  StatusInfeasible,
				elapsed: time.Since(start),
				log:     slog.entries,
			}, nil
		}
	}

	sol := s.search(work, opts, slog)

	if ps != nil && sol.hasValues {
		sol.values = ps.postsolve(sol.values)
	}
	sol.elapsed = time.Since(start)
	sol.log = slog.entries
	return sol, nil
}

// search runs the node loop on the (possibly reduced) problem.
func (s *Solver) search(prob *Problem, opts SolveOptions, slog *solveLog) *Solution {
	sense := prob.Sense
	intMask := prob.integrality()

	// Verbose opens the debug level for this solve so node events reach the
	// configured logger without the caller retuning it.
	log := s.log
	if opts.Verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(time.Duration(opts.TimeLimit * float64(time.Second)))
	}

	rootLb, rootUb := prob.bounds()
	stack := []node{{lb: rootLb, ub: rootUb}}

	var inc incumbent
	nodes := 0
	status := StatusUnknown

loop:
	for len(stack) > 0 {
		// The only cancellation points: budget checks between nodes.
		if opts.IterationLimit >= 0 && nodes >= opts.IterationLimit {
			status = StatusIterationLimit
			slog.logf("iteration limit %d reached after %d nodes", opts.IterationLimit, nodes)
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			status = StatusTimeLimit
			slog.logf("time limit %.3fs reached after %d nodes", opts.TimeLimit, nodes)
			break
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		rel, err := s.engine.SolveRelaxation(prob, nd.lb, nd.ub)
		if err != nil {
			// The engine already retried with Bland's rule; a persistent
			// numerical failure ends the search with an Error status.
			status = StatusError
			slog.logf("node %d: relaxation failed: %v", nodes, err)
			log.Error().Err(err).Int("node", nodes).Msg("relaxation failed")
			break
		}

		switch rel.Status {
		case RelaxInfeasible:
			if opts.Verbose {
				log.Debug().Int("node", nodes).Int("depth", nd.depth).Msg("pruned: infeasible")
			}
			continue

		case RelaxUnbounded:
			// Children only tighten bounds, so an unbounded relaxation can
			// only appear at the root: the problem itself is unbounded.
			status = StatusUnbounded
			slog.logf("node %d: relaxation unbounded", nodes)
			break loop
		}

		if opts.Progress != nil {
			opts.Progress(ProgressInfo{
				Nodes:        nodes,
				Depth:        nd.depth,
				Bound:        rel.Objective,
				Incumbent:    inc.objective,
				HasIncumbent: inc.found,
			})
		}

		// Bound-based cutoff: discard the node when its relaxation bound
		// cannot strictly beat the incumbent.
		if !inc.wouldImprove(rel.Objective, sense) {
			if opts.Verbose {
				log.Debug().Int("node", nodes).Float64("bound", rel.Objective).
					Float64("incumbent", inc.objective).Msg("pruned: bound")
			}
			continue
		}

		j := branchVariable(rel.Values, intMask)
		if j < 0 {
			// Integer feasible leaf. Recompute the objective at the snapped
			// point so the incumbent carries an exact value.
			snapped := snapIntegers(rel.Values, intMask)
			obj := prob.ObjectiveAt(snapped)
			if inc.wouldImprove(obj, sense) {
				inc.replace(obj, snapped)
				slog.logf("node %d: new incumbent, objective %g", nodes, obj)
				if opts.Verbose {
					log.Debug().Int("node", nodes).Float64("objective", obj).Msg("new incumbent")
				}
			}
			continue
		}

		// Branch on the fractional variable: floor child and ceil child,
		// all other bounds inherited unchanged. The floor child is pushed
		// last so it is explored first.
		v := rel.Values[j]
		up := nd.child(j, math.Ceil(v), math.Inf(1))
		down := nd.child(j, math.Inf(-1), math.Floor(v))
		stack = append(stack, up, down)
		if opts.Verbose {
			log.Debug().Int("node", nodes).Int("branch", j).Float64("value", v).Msg("branching")
		}
	}

	if status == StatusUnknown {
		if inc.found {
			status = StatusOptimal
		} else {
			status = StatusInfeasible
		}
	}

	sol := &Solution{
		status:     status,
		iterations: nodes,
	}
	if inc.found && status != StatusUnbounded {
		sol.objective = inc.objective
		sol.values = inc.values
		sol.hasValues = true
	}
	slog.logf("finished: %s, %d nodes", status, nodes)
	return sol
}
