package integrate

import "errors"

var (
	// ErrNoConvergence is returned when the error estimate is still above
	// tolerance after MaxSubdivisions panels.
	ErrNoConvergence = errors.New("integrate: no convergence within subdivision budget")

	// ErrNonFinite is returned when the integrand evaluates to NaN or ±Inf.
	ErrNonFinite = errors.New("integrate: integrand is not finite")

	// ErrInvalidBounds is returned for NaN bounds.
	ErrInvalidBounds = errors.New("integrate: invalid bounds")

	// ErrInvalidConfig is returned by New for an unusable Config.
	ErrInvalidConfig = errors.New("integrate: invalid configuration")
)
