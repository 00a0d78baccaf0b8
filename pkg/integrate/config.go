package integrate

import "fmt"

// Config holds the accuracy target and the work budget of an Integrator.
type Config struct {
	// RelTol is the relative tolerance on the integral.
	// Default: 1e-10
	RelTol float64

	// AbsTol is the absolute tolerance on the integral. Convergence is
	// reached when the error estimate is below max(AbsTol, RelTol*|I|).
	// Default: 0
	AbsTol float64

	// Order is the number of points in the low-order Gauss-Legendre rule.
	// The high-order rule uses 2*Order+1 points.
	// Default: 10
	Order int

	// MaxSubdivisions caps the number of panels. It is the only bound on
	// the work done for a pathological integrand.
	// Default: 200
	MaxSubdivisions int
}

// DefaultConfig returns a Config good to well beyond six significant
// figures for smooth integrands.
func DefaultConfig() Config {
	return Config{
		RelTol:          1e-10,
		AbsTol:          0,
		Order:           10,
		MaxSubdivisions: 200,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.RelTol < 0 || c.AbsTol < 0 {
		return fmt.Errorf("%w: tolerances must be non-negative", ErrInvalidConfig)
	}
	if c.RelTol == 0 && c.AbsTol == 0 {
		return fmt.Errorf("%w: one of rel-tol or abs-tol must be positive", ErrInvalidConfig)
	}
	if c.Order < 2 {
		return fmt.Errorf("%w: order must be at least 2, got %d", ErrInvalidConfig, c.Order)
	}
	if c.MaxSubdivisions < 1 {
		return fmt.Errorf("%w: max subdivisions must be positive, got %d", ErrInvalidConfig, c.MaxSubdivisions)
	}
	return nil
}
