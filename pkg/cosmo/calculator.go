package cosmo

import (
	"fmt"
	"math"

	"github.com/frwlab/cosmocalc/internal/domain"
	"github.com/frwlab/cosmocalc/pkg/integrate"
)

// Calculator evaluates observables with a fixed quadrature configuration.
type Calculator struct {
	quad *integrate.Integrator
}

// NewCalculator creates a Calculator whose integrals use cfg.
func NewCalculator(cfg integrate.Config) (*Calculator, error) {
	q, err := integrate.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Calculator{quad: q}, nil
}

var defaultCalculator = func() *Calculator {
	c, err := NewCalculator(integrate.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}()

// Default returns a Calculator using integrate.DefaultConfig.
func Default() *Calculator {
	return defaultCalculator
}

// IntegratorConfig returns the quadrature configuration in use.
func (c *Calculator) IntegratorConfig() integrate.Config {
	return c.quad.Config()
}

// overflowScale is the 1+z above which E² is evaluated factored by (1+z)⁴,
// so that (1+z)² and (1+z)⁴ overflowing together give +Inf rather than
// Inf - Inf.
const overflowScale = 1e30

// expansion2 is E²(z) = ΩΛ + Ωm(1+z)³ + Ωk(1+z)² + Ωrad(1+z)⁴.
func expansion2(p Parameters, z float64) float64 {
	a := 1 + z
	if a > overflowScale {
		inv := 1 / a
		inv2 := inv * inv
		lead := p.omegaRad + p.omegaM*inv + p.omegaK*inv2 + p.omegaLambda*inv2*inv2
		a2 := a * a
		return a2 * a2 * lead
	}
	a2 := a * a
	return p.omegaLambda + p.omegaM*a2*a + p.omegaK*a2 + p.omegaRad*a2*a2
}

// HubbleFrac calculates E(z) = H(z)/H0. It is NaN where E²(z) < 0.
func HubbleFrac(p Parameters, z float64) float64 {
	return math.Sqrt(expansion2(p, z))
}

// HubbleRate is H(z) in km/s/Mpc, the convention of the distance integrals.
func HubbleRate(p Parameters, z float64) HubbleRateKmsMpc {
	return p.h0 * HubbleRateKmsMpc(HubbleFrac(p, z))
}

// HubbleRateSI is H(z) in 1/s, the convention of the time integrals.
func HubbleRateSI(p Parameters, z float64) HubbleRateInverseSeconds {
	return p.h0.InverseSeconds() * HubbleRateInverseSeconds(HubbleFrac(p, z))
}

// integrand receives the redshift and E(z) > 0.
type integrand func(z, e float64) float64

// integrate evaluates f over [lower, upper]. A non-positive E² at any
// sampled redshift, including the lower bound, aborts with a domain error;
// a NaN E² aborts with an integration error.
func (c *Calculator) integrate(op string, p Parameters, f integrand, lower, upper float64) (float64, error) {
	if e2 := expansion2(p, lower); !(e2 > 0) {
		return 0, badExpansion(op, lower, e2)
	}

	var (
		bad   bool
		badZ  float64
		badE2 float64
	)
	v, err := c.quad.Integrate(func(z float64) float64 {
		e2 := expansion2(p, z)
		if !(e2 > 0) {
			if !bad {
				bad, badZ, badE2 = true, z, e2
			}
			return math.NaN()
		}
		return f(z, math.Sqrt(e2))
	}, lower, upper)

	if bad {
		return 0, badExpansion(op, badZ, badE2)
	}
	if err != nil {
		return 0, domain.NewError(op, domain.KindIntegration, "", err)
	}
	return v, nil
}

func badExpansion(op string, z, e2 float64) error {
	if math.IsNaN(e2) {
		return domain.NewError(op, domain.KindIntegration, "",
			fmt.Errorf("%w: E²(z=%g) = NaN", ErrNonFiniteExpansion, z))
	}
	return domain.NewError(op, domain.KindDomain, "",
		fmt.Errorf("%w: E²(z=%g) = %g", ErrNonPositiveExpansion, z, e2))
}

func checkRedshift(op string, z float64) error {
	if !finite(z) || z < 0 {
		return domain.NewError(op, domain.KindDomain, "redshift",
			fmt.Errorf("%w, got %g", ErrInvalidRedshift, z))
	}
	return nil
}
