package cosmo

import "math"

// timeIntegrand is 1/[(1+z) H(z)] with H in 1/s.
func timeIntegrand(p Parameters) integrand {
	h0 := p.h0.InverseSeconds()
	return func(z, e float64) float64 {
		h := h0 * HubbleRateInverseSeconds(e)
		return 1 / ((1 + z) * float64(h))
	}
}

// Age is the age of the universe at redshift z in Gyr: the integral of
// 1/[(1+z')H(z')] from z to infinity.
func (c *Calculator) Age(p Parameters, z float64) (float64, error) {
	const op = "age"
	if err := checkRedshift(op, z); err != nil {
		return 0, err
	}
	secs, err := c.integrate(op, p, timeIntegrand(p), z, math.Inf(1))
	if err != nil {
		return 0, err
	}
	return secs / SecondsPerGyr, nil
}

// LightTravelTime is Age(p, 0) - Age(p, z) in Gyr. It is integrated
// directly over [0, z], so it is exactly 0 at z = 0 and never negative.
func (c *Calculator) LightTravelTime(p Parameters, z float64) (float64, error) {
	const op = "light travel time"
	if err := checkRedshift(op, z); err != nil {
		return 0, err
	}
	secs, err := c.integrate(op, p, timeIntegrand(p), 0, z)
	if err != nil {
		return 0, err
	}
	return secs / SecondsPerGyr, nil
}
