//==============================================================================
// engine: relaxation engine boundary and solver configuration
//==============================================================================

// The Engine interface is the seam between the branch-and-bound search and
// whatever solves a single LP relaxation. The production implementation is
// the tableau simplex in this package; an application with access to an
// external solver can inject its own implementation at construction time.
// There is no runtime backend flag: the engine is chosen when the Solver is
// built and never changes.

package mip

import (
	"github.com/rs/zerolog"
)

// RelaxStatus is the outcome of a single LP relaxation.
type RelaxStatus int

const (
	RelaxOptimal    RelaxStatus = iota // finite optimum found
	RelaxInfeasible                    // constraints are contradictory
	RelaxUnbounded                     // objective improves without limit
)

// Relaxation is the result of solving one LP relaxation of a node.
type Relaxation struct {
	Status    RelaxStatus
	Objective float64   // optimum in the problem's own objective sense
	Values    []float64 // assignment in original variable space
	Pivots    int       // simplex pivots performed
}

// Engine solves the LP relaxation of a problem under node-specific variable
// bounds. Implementations must be stateless across calls: the same engine
// value is invoked once per search node within a single solve.
type Engine interface {
	SolveRelaxation(prob *Problem, lb, ub []float64) (Relaxation, error)
}

// ProgressInfo is handed to the progress callback once per processed search
// node. All counts are real; the engine never fabricates progress.
type ProgressInfo struct {
	Nodes        int     // nodes relaxed so far, including this one
	Depth        int     // depth of the node just processed
	Bound        float64 // relaxation bound of the node just processed
	Incumbent    float64 // objective of the best incumbent, if any
	HasIncumbent bool
}

// SolveOptions controls a single Solve call.
type SolveOptions struct {
	IterationLimit int                // maximum search nodes, 0 means none allowed, negative means unlimited
	TimeLimit      float64            // wall-clock budget in seconds, <= 0 means unlimited
	Verbose        bool               // log node-level events to the package logger
	Presolve       bool               // apply root reductions before the search
	Progress       func(ProgressInfo) // optional callback at real node boundaries
}

// DefaultSolveOptions returns the options used when the caller passes the
// zero value: an effectively unlimited node budget and no time limit.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{IterationLimit: -1}
}

// Solver drives the branch-and-bound search over an Engine. A Solver may be
// reused for sequential solves; concurrent solves of independent problems
// require one Solver per goroutine, since the search stack and incumbent are
// owned by the in-flight call.
type Solver struct {
	engine Engine
	log    zerolog.Logger
}

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithEngine injects a relaxation engine other than the built-in simplex.
func WithEngine(e Engine) Option {
	return func(s *Solver) { s.engine = e }
}

// WithLogger routes the solver's log output to the given logger instead of
// the package logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// NewSolver creates a solver with the built-in simplex engine unless an
// option overrides it.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		engine: newSimplexEngine(),
		log:    Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
