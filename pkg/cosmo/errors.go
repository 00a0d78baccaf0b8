package cosmo

import (
	"errors"

	"github.com/frwlab/cosmocalc/internal/domain"
)

// Re-export the shared error kinds so callers need not import internal
// packages.
var (
	ErrValidation  = domain.ErrValidation
	ErrDomain      = domain.ErrDomain
	ErrIntegration = domain.ErrIntegration
)

// Error is the concrete error type returned by this package.
type Error = domain.Error

var (
	// ErrNonPositiveExpansion is wrapped in a domain error when E²(z) <= 0
	// somewhere the integrand is sampled.
	ErrNonPositiveExpansion = errors.New("cosmo: expansion rate is not positive")

	// ErrNonFiniteExpansion is wrapped in an integration error when E²(z)
	// evaluates to NaN.
	ErrNonFiniteExpansion = errors.New("cosmo: expansion rate is not a number")

	// ErrInvalidRedshift is wrapped in a domain error for negative or
	// non-finite redshifts.
	ErrInvalidRedshift = errors.New("cosmo: redshift must be finite and non-negative")
)
