//==============================================================================
// solution: terminal result of a solve call
//==============================================================================

package mip

import (
	"fmt"
	"io"
	"time"
)

// Status is the terminal state of a solve call.
//
// The first five values are stable integers kept for wire and API
// compatibility with existing callers; IterationLimit and TimeLimit extend
// the enum for callers that distinguish budget exhaustion from a true
// Unknown. WireCode folds the extensions back onto the stable set.
type Status int

const (
	StatusUnknown        Status = 1 // not solved, or status could not be determined
	StatusOptimal        Status = 2 // proven optimal assignment available
	StatusInfeasible     Status = 3 // no assignment satisfies the constraints
	StatusUnbounded      Status = 4 // objective can improve without limit
	StatusError          Status = 5 // solver failed (numerical trouble)
	StatusIterationLimit Status = 6 // node budget exhausted before proof
	StatusTimeLimit      Status = 7 // wall-clock budget exhausted before proof
)

// String returns the textual name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusError:
		return "Error"
	case StatusIterationLimit:
		return "IterationLimit"
	case StatusTimeLimit:
		return "TimeLimit"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// WireCode returns the stable integer code for the status. The limit
// statuses fold to Unknown, matching callers that only understand the five
// original codes.
func (s Status) WireCode() int {
	if s >= StatusUnknown && s <= StatusError {
		return int(s)
	}
	return int(StatusUnknown)
}

// Solution packages the terminal status, objective value, and variable
// assignment of a solve call. It is created once when the search finishes
// and is read-only thereafter.
//
// The objective value and assignment are accessible through ObjectiveValue
// and Values only when the status is Optimal; for IterationLimit and
// TimeLimit the best incumbent found within the budget, if any, is available
// through Best.
type Solution struct {
	status     Status
	objective  float64   // valid when hasValues
	values     []float64 // valid when hasValues
	hasValues  bool      // an incumbent assignment exists
	iterations int       // nodes relaxed by the search
	elapsed    time.Duration
	log        []string
}

// Status returns the terminal status of the solve.
func (s *Solution) Status() Status { return s.status }

// ObjectiveValue returns the optimal objective value.
// If the status is not Optimal the value was not computed and an error is
// returned instead of a zero default.
func (s *Solution) ObjectiveValue() (float64, error) {
	if s.status != StatusOptimal {
		return 0, ErrNotOptimal
	}
	return s.objective, nil
}

// Values returns the optimal variable assignment, ordered by variable index.
// If the status is not Optimal the assignment was not computed and an error
// is returned.
func (s *Solution) Values() ([]float64, error) {
	if s.status != StatusOptimal {
		return nil, ErrNotOptimal
	}
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out, nil
}

// Best returns the best integer-feasible assignment known when the solve
// stopped, whether or not optimality was proven. ok is false when no
// incumbent was found. This is the accessor to use after an IterationLimit
// or TimeLimit status.
func (s *Solution) Best() (objective float64, values []float64, ok bool) {
	if !s.hasValues {
		return 0, nil, false
	}
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return s.objective, out, true
}

// Iterations returns the number of search nodes relaxed during the solve.
// The count is exact; nothing is simulated.
func (s *Solution) Iterations() int { return s.iterations }

// Runtime returns the wall-clock duration of the solve call.
func (s *Solution) Runtime() time.Duration { return s.elapsed }

// Log returns the textual solve log, one entry per recorded event.
func (s *Solution) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Print writes a human-readable summary of the solution to w.
func (s *Solution) Print(w io.Writer) {
	fmt.Fprintf(w, "Status:     %s\n", s.status)
	if s.hasValues {
		fmt.Fprintf(w, "Objective:  %g\n", s.objective)
		for i, v := range s.values {
			fmt.Fprintf(w, "  x%-4d = %g\n", i, v)
		}
	}
	fmt.Fprintf(w, "Nodes:      %d\n", s.iterations)
	fmt.Fprintf(w, "Time:       %s\n", s.elapsed)
}

//==============================================================================

// solveLog accumulates timestamped entries during a solve. Entries record
// real solver events only; the elapsed prefix is measured from the start of
// the solve call.
type solveLog struct {
	start   time.Time
	entries []string
}

func newSolveLog() *solveLog {
	return &solveLog{start: time.Now()}
}

func (l *solveLog) logf(format string, args ...interface{}) {
	elapsed := time.Since(l.start).Seconds()
	l.entries = append(l.entries, fmt.Sprintf("[%.3fs] ", elapsed)+fmt.Sprintf(format, args...))
}
