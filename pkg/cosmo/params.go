package cosmo

import (
	"fmt"
	"math"

	"github.com/frwlab/cosmocalc/internal/domain"
)

// Geometry is the sign of the curvature density, classified once per
// parameter set.
type Geometry int

const (
	Flat Geometry = iota
	Open
	Closed
)

func (g Geometry) String() string {
	switch g {
	case Flat:
		return "flat"
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("Geometry(%d)", int(g))
}

// DefaultCurvatureTolerance is the half-width of the band around Ωk = 0
// classified as Flat. It is far below Ωrad for any realistic H0, so a flat
// selection still classifies as Closed unless the tolerance is widened.
const DefaultCurvatureTolerance = 1e-10

// ClassifyCurvature returns Flat when |omegaK| <= tol, otherwise Open or
// Closed by sign.
func ClassifyCurvature(omegaK, tol float64) Geometry {
	switch {
	case math.Abs(omegaK) <= tol:
		return Flat
	case omegaK > 0:
		return Open
	default:
		return Closed
	}
}

// Parameters is an immutable, fully derived cosmological parameter set.
// Build one with Derive.
type Parameters struct {
	h0          HubbleRateKmsMpc
	omegaM      float64
	omegaLambda float64
	omegaRad    float64
	omegaK      float64
	geometry    Geometry
}

func (p Parameters) H0() HubbleRateKmsMpc { return p.h0 }
func (p Parameters) OmegaM() float64      { return p.omegaM }
func (p Parameters) OmegaLambda() float64 { return p.omegaLambda }
func (p Parameters) OmegaRad() float64    { return p.omegaRad }
func (p Parameters) OmegaK() float64      { return p.omegaK }
func (p Parameters) Geometry() Geometry   { return p.geometry }

func (p Parameters) String() string {
	return fmt.Sprintf("H0=%g Ωm=%g ΩΛ=%g Ωrad=%.4g Ωk=%.4g (%s)",
		float64(p.h0), p.omegaM, p.omegaLambda, p.omegaRad, p.omegaK, p.geometry)
}

type deriveParams struct{ curvatureTol float64 }

// DeriveOption customizes Derive.
type DeriveOption func(*deriveParams)

// WithCurvatureTolerance sets the flat band used to classify Ωk.
func WithCurvatureTolerance(tol float64) DeriveOption {
	return func(p *deriveParams) { p.curvatureTol = tol }
}

func (p *deriveParams) loadOptions(opts []DeriveOption) {
	for _, opt := range opts {
		opt(p)
	}
}

// Derive validates H0 and derives the radiation and curvature densities.
// H0 must be positive and finite; Ωm and ΩΛ only need to be finite.
func Derive(h0 HubbleRateKmsMpc, omegaM, omegaLambda float64, opts ...DeriveOption) (Parameters, error) {
	const op = "derive parameters"

	dp := deriveParams{curvatureTol: DefaultCurvatureTolerance}
	dp.loadOptions(opts)

	h := float64(h0)
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0) || h <= 0:
		return Parameters{}, domain.NewError(op, domain.KindDomain, "h0",
			fmt.Errorf("H0 must be positive and finite, got %g", h))
	case !finite(omegaM):
		return Parameters{}, domain.NewError(op, domain.KindDomain, "omega_m",
			fmt.Errorf("Ωm must be finite, got %g", omegaM))
	case !finite(omegaLambda):
		return Parameters{}, domain.NewError(op, domain.KindDomain, "omega_vac",
			fmt.Errorf("ΩΛ must be finite, got %g", omegaLambda))
	case math.IsNaN(dp.curvatureTol) || dp.curvatureTol < 0:
		return Parameters{}, domain.NewError(op, domain.KindDomain, "curvature_tolerance",
			fmt.Errorf("curvature tolerance must be non-negative, got %g", dp.curvatureTol))
	}

	little := h0.Little()
	omegaRad := RadiationDensity / (little * little)
	omegaK := 1 - omegaLambda - omegaM - omegaRad

	return Parameters{
		h0:          h0,
		omegaM:      omegaM,
		omegaLambda: omegaLambda,
		omegaRad:    omegaRad,
		omegaK:      omegaK,
		geometry:    ClassifyCurvature(omegaK, dp.curvatureTol),
	}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
