//==============================================================================
// errors: sentinel errors shared across the mip package
//==============================================================================

package mip

import (
	"github.com/pkg/errors"
)

// Sentinel errors returned (possibly wrapped with additional context) by the
// model builder, the solution accessors, and the simplex engine. Callers
// should test for them with errors.Is or errors.Cause.
var (
	// ErrInvalidIndex indicates a variable or constraint index outside the
	// current size of the model. Setters never create entries implicitly.
	ErrInvalidIndex = errors.New("mip: index out of range")

	// ErrBadModel indicates a model that cannot be solved as constructed,
	// for example a constraint coefficient referencing a variable that was
	// removed, or a non-finite coefficient.
	ErrBadModel = errors.New("mip: malformed model")

	// ErrNotOptimal is returned by Solution accessors when the requested
	// value was not computed because the terminal status is not Optimal.
	// This distinguishes "not computed" from "computed as zero".
	ErrNotOptimal = errors.New("mip: solution is not optimal")

	// ErrNumerical indicates a pivoting failure inside the simplex engine
	// (degenerate cycling or a singular tableau). The engine retries the
	// affected relaxation once with Bland's rule before surfacing it.
	ErrNumerical = errors.New("mip: numerical failure in simplex")
)
