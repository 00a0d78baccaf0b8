package cosmo

import "math"

// HubbleDistance is D_H = c/H0 in Mpc, with H0 in km/s/Mpc.
func HubbleDistance(p Parameters) float64 {
	return SpeedOfLight / float64(p.h0)
}

// RadialComovingDistance is c times the integral of 1/H(z') over [0, z] in
// Mpc, with H in km/s/Mpc.
func (c *Calculator) RadialComovingDistance(p Parameters, z float64) (float64, error) {
	const op = "radial comoving distance"
	if err := checkRedshift(op, z); err != nil {
		return 0, err
	}
	return c.radial(op, p, z)
}

func (c *Calculator) radial(op string, p Parameters, z float64) (float64, error) {
	h0 := float64(p.h0)
	v, err := c.integrate(op, p, func(_, e float64) float64 {
		return 1 / (h0 * e)
	}, 0, z)
	if err != nil {
		return 0, err
	}
	return SpeedOfLight * v, nil
}

// TransverseComovingDistance is d_M in Mpc: d_C for Flat geometry, the sinh
// transform for Open and the sin transform for Closed.
func (c *Calculator) TransverseComovingDistance(p Parameters, z float64) (float64, error) {
	const op = "transverse comoving distance"
	if err := checkRedshift(op, z); err != nil {
		return 0, err
	}
	dC, err := c.radial(op, p, z)
	if err != nil {
		return 0, err
	}
	return transverse(p, dC), nil
}

func transverse(p Parameters, dC float64) float64 {
	dH := HubbleDistance(p)
	switch p.geometry {
	case Open:
		sk := math.Sqrt(p.omegaK)
		return dH / sk * math.Sinh(sk*dC/dH)
	case Closed:
		sk := math.Sqrt(-p.omegaK)
		return dH / sk * math.Sin(sk*dC/dH)
	default:
		return dC
	}
}
