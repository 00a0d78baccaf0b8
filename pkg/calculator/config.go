package calculator

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/frwlab/cosmocalc/pkg/cosmo"
	"github.com/frwlab/cosmocalc/pkg/integrate"
)

// Config holds the numeric settings of a Calculator.
type Config struct {
	// Integrator configures every quadrature.
	Integrator integrate.Config

	// CurvatureTolerance is the flat band used to classify Ωk. Zero
	// classifies as Flat only when Ωk is exactly zero.
	// Default: cosmo.DefaultCurvatureTolerance
	CurvatureTolerance float64

	// Concurrency caps the number of grid points Sweep evaluates at once.
	// Default: runtime.NumCPU()
	Concurrency int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Integrator:         integrate.DefaultConfig(),
		CurvatureTolerance: cosmo.DefaultCurvatureTolerance,
		Concurrency:        runtime.NumCPU(),
	}
}

// SetDefaults fills a zero Integrator and Concurrency. CurvatureTolerance
// is left alone since zero is a valid setting.
func (c *Config) SetDefaults() {
	if c.Integrator == (integrate.Config{}) {
		c.Integrator = integrate.DefaultConfig()
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.NumCPU()
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if err := c.Integrator.Validate(); err != nil {
		return err
	}
	if c.CurvatureTolerance < 0 {
		return errors.New("curvature tolerance must be non-negative")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	return nil
}
