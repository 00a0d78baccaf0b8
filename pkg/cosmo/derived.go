package cosmo

import "math"

// seriesThreshold bounds |Ωk x²| below which the volume bracket is summed
// as a series.
const seriesThreshold = 1e-4

// Quantities holds every observable for one (parameters, redshift) pair.
type Quantities struct {
	Redshift float64

	AgeNow          float64 // Gyr
	AgeAtRedshift   float64 // Gyr
	LightTravelTime float64 // Gyr

	ComovingDistance           float64 // Mpc
	TransverseComovingDistance float64 // Mpc
	ComovingVolume             float64 // Gpc³
	AngularDiameterDistance    float64 // Mpc
	AngularScale               float64 // kpc per arcsecond
	LuminosityDistance         float64 // Mpc
}

// ComovingVolume is the all-sky comoving volume out to z in Gpc³.
func (c *Calculator) ComovingVolume(p Parameters, z float64) (float64, error) {
	dM, err := c.TransverseComovingDistance(p, z)
	if err != nil {
		return 0, err
	}
	return comovingVolume(p, dM), nil
}

// AngularDiameterDistance is d_M/(1+z) in Mpc.
func (c *Calculator) AngularDiameterDistance(p Parameters, z float64) (float64, error) {
	dM, err := c.TransverseComovingDistance(p, z)
	if err != nil {
		return 0, err
	}
	return dM / (1 + z), nil
}

// LuminosityDistance is (1+z)d_M in Mpc.
func (c *Calculator) LuminosityDistance(p Parameters, z float64) (float64, error) {
	dM, err := c.TransverseComovingDistance(p, z)
	if err != nil {
		return 0, err
	}
	return (1 + z) * dM, nil
}

// LinearScale is the proper size in kpc subtended by one arcsecond at z.
func (c *Calculator) LinearScale(p Parameters, z float64) (float64, error) {
	dA, err := c.AngularDiameterDistance(p, z)
	if err != nil {
		return 0, err
	}
	return linearScale(dA), nil
}

// Evaluate computes all quantities at z with one distance integral.
func (c *Calculator) Evaluate(p Parameters, z float64) (Quantities, error) {
	const op = "evaluate"
	if err := checkRedshift(op, z); err != nil {
		return Quantities{}, err
	}

	ageNow, err := c.Age(p, 0)
	if err != nil {
		return Quantities{}, err
	}
	ageZ, err := c.Age(p, z)
	if err != nil {
		return Quantities{}, err
	}
	ltt, err := c.LightTravelTime(p, z)
	if err != nil {
		return Quantities{}, err
	}
	dC, err := c.radial(op, p, z)
	if err != nil {
		return Quantities{}, err
	}

	dM := transverse(p, dC)
	dA := dM / (1 + z)
	return Quantities{
		Redshift:                   z,
		AgeNow:                     ageNow,
		AgeAtRedshift:              ageZ,
		LightTravelTime:            ltt,
		ComovingDistance:           dC,
		TransverseComovingDistance: dM,
		ComovingVolume:             comovingVolume(p, dM),
		AngularDiameterDistance:    dA,
		AngularScale:               linearScale(dA),
		LuminosityDistance:         (1 + z) * dM,
	}, nil
}

func linearScale(dA float64) float64 {
	return dA * ArcsecRadians * 1000
}

// comovingVolume converts d_M to a volume in Gpc³.
func comovingVolume(p Parameters, dM float64) float64 {
	dH := HubbleDistance(p)
	x := dM / dH
	k := p.omegaK
	if p.geometry == Flat {
		k = 0
	}

	var bracket float64 // the Hogg bracket divided by 2Ωk
	switch {
	case math.Abs(k*x*x) < seriesThreshold:
		x3 := x * x * x
		bracket = x3/3 - k*x3*x*x/10 + 3*k*k*x3*x*x*x*x/56
	case k > 0:
		sk := math.Sqrt(k)
		bracket = (x*math.Sqrt(1+k*x*x) - math.Asinh(sk*x)/sk) / (2 * k)
	default:
		sk := math.Sqrt(-k)
		root := math.Sqrt(math.Max(0, 1+k*x*x))
		bracket = (x*root - math.Asin(math.Min(1, sk*x))/sk) / (2 * k)
	}
	return 4 * math.Pi * dH * dH * dH * bracket / 1e9
}
