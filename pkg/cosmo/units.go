package cosmo

import "math"

const (
	// SpeedOfLight in km/s.
	SpeedOfLight = 299792.458
	// MpcMeters is one megaparsec in meters.
	MpcMeters = 3.086e22
	// SecondsPerGyr uses a 365-day year.
	SecondsPerGyr = 86400 * 365 * 1e9
	// ArcsecRadians is one arcsecond in radians.
	ArcsecRadians = math.Pi / 648000
	// RadiationDensity is the present-day Ωrad h².
	RadiationDensity = 4.165e-5
)

// HubbleRateKmsMpc is an expansion rate in km/s/Mpc.
type HubbleRateKmsMpc float64

// HubbleRateInverseSeconds is an expansion rate in 1/s.
type HubbleRateInverseSeconds float64

// InverseSeconds converts h to 1/s.
func (h HubbleRateKmsMpc) InverseSeconds() HubbleRateInverseSeconds {
	return HubbleRateInverseSeconds(float64(h) * 1000 / MpcMeters)
}

// Little returns h = H/100.
func (h HubbleRateKmsMpc) Little() float64 {
	return float64(h) / 100
}
