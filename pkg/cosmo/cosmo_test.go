package cosmo

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frwlab/cosmocalc/internal/domain"
	"github.com/frwlab/cosmocalc/pkg/integrate"
)

const refTol = 1e-5

func mustDerive(t *testing.T, h0, om, ol float64, opts ...DeriveOption) Parameters {
	t.Helper()
	p, err := Derive(HubbleRateKmsMpc(h0), om, ol, opts...)
	require.NoError(t, err)
	return p
}

func TestDerive(t *testing.T) {
	p := mustDerive(t, 70, 0.3, 0.7)

	assert.InEpsilon(t, 4.165e-5/0.49, p.OmegaRad(), 1e-12)
	assert.InDelta(t, 1.0, p.OmegaM()+p.OmegaLambda()+p.OmegaRad()+p.OmegaK(), 1e-15)
	assert.Equal(t, Closed, p.Geometry())

	t.Run("permissive density parameters", func(t *testing.T) {
		p := mustDerive(t, 70, -0.5, 1.8)
		assert.Equal(t, -0.5, p.OmegaM())
		assert.Equal(t, 1.8, p.OmegaLambda())
	})

	tests := []struct {
		name  string
		h0    float64
		om    float64
		ol    float64
		opts  []DeriveOption
		field string
	}{
		{"zero H0", 0, 0.3, 0.7, nil, "h0"},
		{"negative H0", -70, 0.3, 0.7, nil, "h0"},
		{"NaN H0", math.NaN(), 0.3, 0.7, nil, "h0"},
		{"infinite H0", math.Inf(1), 0.3, 0.7, nil, "h0"},
		{"NaN omega_m", 70, math.NaN(), 0.7, nil, "omega_m"},
		{"infinite omega_vac", 70, 0.3, math.Inf(-1), nil, "omega_vac"},
		{"negative tolerance", 70, 0.3, 0.7, []DeriveOption{WithCurvatureTolerance(-1)}, "curvature_tolerance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(HubbleRateKmsMpc(tt.h0), tt.om, tt.ol, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDomain)

			var de *Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestClassifyCurvature(t *testing.T) {
	tests := []struct {
		omegaK float64
		tol    float64
		want   Geometry
	}{
		{0, 0, Flat},
		{1e-11, DefaultCurvatureTolerance, Flat},
		{-1e-11, DefaultCurvatureTolerance, Flat},
		{1e-3, DefaultCurvatureTolerance, Open},
		{-1e-3, DefaultCurvatureTolerance, Closed},
		{-1e-3, 1e-2, Flat},
	}
	for _, tt := range tests {
		if got := ClassifyCurvature(tt.omegaK, tt.tol); got != tt.want {
			t.Errorf("ClassifyCurvature(%g, %g) = %v, want %v", tt.omegaK, tt.tol, got, tt.want)
		}
	}
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "Geometry(7)", Geometry(7).String())
}

func TestFlatSelectionGeometry(t *testing.T) {
	// Ωk = -Ωrad for a flat selection.
	p := mustDerive(t, 70, 0.3, 1-0.3)
	assert.InEpsilon(t, -p.OmegaRad(), p.OmegaK(), 1e-9)
	assert.Equal(t, Closed, p.Geometry())

	calc := Default()
	dC, err := calc.RadialComovingDistance(p, 1)
	require.NoError(t, err)
	dM, err := calc.TransverseComovingDistance(p, 1)
	require.NoError(t, err)
	assert.Less(t, dM, dC)

	wide := mustDerive(t, 70, 0.3, 1-0.3, WithCurvatureTolerance(1e-3))
	assert.Equal(t, Flat, wide.Geometry())
	dMFlat, err := calc.TransverseComovingDistance(wide, 1)
	require.NoError(t, err)
	assert.Equal(t, dC, dMFlat)
}

func TestUnits(t *testing.T) {
	h := HubbleRateKmsMpc(70)
	assert.InEpsilon(t, 70*1000/3.086e22, float64(h.InverseSeconds()), 1e-15)
	assert.Equal(t, 0.7, h.Little())

	p := mustDerive(t, 70, 0.3, 0.7)
	assert.InEpsilon(t, 299792.458/70, HubbleDistance(p), 1e-15)
	assert.InEpsilon(t, 1.0, HubbleFrac(p, 0), 1e-12)
	assert.InEpsilon(t, 70.0, float64(HubbleRate(p, 0)), 1e-12)
	assert.InEpsilon(t, float64(h.InverseSeconds()), float64(HubbleRateSI(p, 0)), 1e-12)
}

type reference struct {
	z        float64
	age      float64
	dC       float64
	dM       float64
	volume   float64
	hasScale bool
	scale    float64
}

func TestReferenceValues(t *testing.T) {
	calc := Default()

	models := []struct {
		name       string
		h0, om, ol float64
		ageNow     float64
		geometry   Geometry
		refs       []reference
	}{
		{
			name: "concordance", h0: 70, om: 0.3, ol: 0.7, ageNow: 13.472709, geometry: Closed,
			refs: []reference{
				{z: 0.5, age: 8.428228, dC: 1888.5698, dM: 1888.5646, volume: 28.215407},
				{z: 1, age: 5.751717, dC: 3303.6116, dM: 3303.5838, volume: 151.025809, hasScale: true, scale: 8.008113},
				{z: 3, age: 2.110810, dC: 6354.4993, dM: 6354.3012, volume: 1074.772070},
			},
		},
		{
			name: "einstein-de sitter", h0: 70, om: 1, ol: 0, ageNow: 9.318723, geometry: Closed,
			refs: []reference{
				{z: 1, age: 3.294213, dC: 2508.7042, dM: 2508.6920, volume: 66.135468},
			},
		},
		{
			name: "open", h0: 70, om: 0.3, ol: 0, ageNow: 11.303073, geometry: Open,
			refs: []reference{
				{z: 1, dC: 2795.0429, dM: 2935.9995, volume: 97.075552},
				{z: 3, volume: 712.717240},
			},
		},
		{
			name: "closed", h0: 70, om: 0.3, ol: 0.9, ageNow: 14.446381, geometry: Closed,
			refs: []reference{
				{z: 1, dC: 3527.4258, dM: 3448.1677, volume: 178.922581},
			},
		},
	}

	for _, m := range models {
		t.Run(m.name, func(t *testing.T) {
			p := mustDerive(t, m.h0, m.om, m.ol)
			assert.Equal(t, m.geometry, p.Geometry())

			age0, err := calc.Age(p, 0)
			require.NoError(t, err)
			assert.InEpsilon(t, m.ageNow, age0, refTol)

			for _, r := range m.refs {
				q, err := calc.Evaluate(p, r.z)
				require.NoError(t, err, "z=%g", r.z)
				if r.age != 0 {
					assert.InEpsilon(t, r.age, q.AgeAtRedshift, refTol, "age z=%g", r.z)
				}
				if r.dC != 0 {
					assert.InEpsilon(t, r.dC, q.ComovingDistance, refTol, "dC z=%g", r.z)
					assert.InEpsilon(t, r.dM, q.TransverseComovingDistance, refTol, "dM z=%g", r.z)
				}
				assert.InEpsilon(t, r.volume, q.ComovingVolume, refTol, "volume z=%g", r.z)
				if r.hasScale {
					assert.InEpsilon(t, r.scale, q.AngularScale, refTol, "scale z=%g", r.z)
				}
			}
		})
	}
}

func TestConcordanceScenario(t *testing.T) {
	calc := Default()
	p := mustDerive(t, 70, 0.3, 0.7)

	age0, err := calc.Age(p, 0)
	require.NoError(t, err)
	age1, err := calc.Age(p, 1)
	require.NoError(t, err)
	ltt, err := calc.LightTravelTime(p, 1)
	require.NoError(t, err)

	assert.InDelta(t, 0.427, age1/age0, 1e-3)
	assert.InDelta(t, 0.573, ltt/age0, 1e-3)
	assert.Greater(t, ltt, 0.0)
	assert.Less(t, ltt, age0)
	assert.InEpsilon(t, age0-age1, ltt, 1e-8)

	prevC, prevL := -1.0, -1.0
	for i := 0; i <= 50; i++ {
		z := float64(i) * 0.1
		dC, err := calc.RadialComovingDistance(p, z)
		require.NoError(t, err)
		dL, err := calc.LuminosityDistance(p, z)
		require.NoError(t, err)
		assert.Greater(t, dC, prevC, "z=%g", z)
		assert.Greater(t, dL, prevL, "z=%g", z)
		prevC, prevL = dC, dL
	}
}

func TestZeroRedshift(t *testing.T) {
	calc := Default()
	for _, tt := range []struct{ om, ol float64 }{{1, 0}, {0.3, 0.7}, {0.3, 0}, {0.3, 0.9}} {
		p := mustDerive(t, 70, tt.om, tt.ol)
		q, err := calc.Evaluate(p, 0)
		require.NoError(t, err)

		assert.Equal(t, 0.0, q.LightTravelTime, p.String())
		assert.Equal(t, 0.0, q.ComovingDistance, p.String())
		assert.Equal(t, 0.0, q.TransverseComovingDistance, p.String())
		assert.Equal(t, 0.0, q.ComovingVolume, p.String())
		assert.Equal(t, 0.0, q.AngularDiameterDistance, p.String())
		assert.Equal(t, 0.0, q.AngularScale, p.String())
		assert.Equal(t, 0.0, q.LuminosityDistance, p.String())
		assert.Equal(t, q.AgeNow, q.AgeAtRedshift)
	}
}

func TestDuality(t *testing.T) {
	calc := Default()
	for _, tt := range []struct{ om, ol float64 }{{1, 0}, {0.3, 0.7}, {0.3, 0}, {0.3, 0.9}, {0.05, 0}} {
		p := mustDerive(t, 70, tt.om, tt.ol)
		for _, z := range []float64{0.01, 0.5, 1, 2.5, 7} {
			dA, err := calc.AngularDiameterDistance(p, z)
			require.NoError(t, err)
			dL, err := calc.LuminosityDistance(p, z)
			require.NoError(t, err)
			assert.InEpsilon(t, (1+z)*(1+z)*dA, dL, 1e-9, "%s z=%g", p, z)
		}
	}
}

func TestAgeMonotone(t *testing.T) {
	calc := Default()
	for _, tt := range []struct{ om, ol float64 }{{1, 0}, {0.3, 0.7}, {0.3, 0}} {
		p := mustDerive(t, 70, tt.om, tt.ol)
		prev := math.Inf(1)
		for _, z := range []float64{0, 0.1, 0.5, 1, 2, 5, 10, 100, 1000} {
			age, err := calc.Age(p, z)
			require.NoError(t, err)
			assert.LessOrEqual(t, age, prev, "%s z=%g", p, z)
			prev = age
		}
		assert.Less(t, prev, 1e-3)
	}
}

func TestAgeVeryHighRedshift(t *testing.T) {
	calc := Default()
	for _, tt := range []struct{ om, ol float64 }{{1, 0}, {0.3, 0.7}, {0.3, 0}, {0.3, 0.9}} {
		p := mustDerive(t, 70, tt.om, tt.ol)
		// Radiation dominated: t = 1/(2 H0 sqrt(Ωrad) (1+z)²).
		h0 := float64(p.H0().InverseSeconds())
		prev := math.Inf(1)
		for _, z := range []float64{3e9, 1e10, 1e15, 1e20} {
			age, err := calc.Age(p, z)
			require.NoError(t, err, "%s z=%g", p, z)
			a := 1 + z
			want := 1 / (2 * h0 * math.Sqrt(p.OmegaRad()) * a * a) / SecondsPerGyr
			assert.InEpsilon(t, want, age, 1e-2, "%s z=%g", p, z)
			assert.Less(t, age, prev, "%s z=%g", p, z)
			prev = age
		}
		assert.Greater(t, prev, 0.0)
		assert.Less(t, prev, 1e-30)
	}
}

func TestExpansionOverflow(t *testing.T) {
	p := mustDerive(t, 70, 0.3, 0.7)
	require.Less(t, p.OmegaK(), 0.0)

	assert.True(t, math.IsInf(expansion2(p, 1e100), 1))
	assert.InEpsilon(t, p.OmegaRad()*1e160, expansion2(p, 1e40), 1e-12)
	assert.True(t, math.IsInf(HubbleFrac(p, math.MaxFloat64), 1))
}

func TestBadExpansionKinds(t *testing.T) {
	err := badExpansion("age", 2, math.NaN())
	assert.ErrorIs(t, err, ErrIntegration)
	assert.ErrorIs(t, err, ErrNonFiniteExpansion)
	assert.NotErrorIs(t, err, ErrNonPositiveExpansion)

	err = badExpansion("age", 2, -0.5)
	assert.ErrorIs(t, err, ErrDomain)
	assert.ErrorIs(t, err, ErrNonPositiveExpansion)
}

func TestNonPositiveExpansion(t *testing.T) {
	calc := Default()
	p := mustDerive(t, 70, 0.3, 3.0)

	_, err := calc.Age(p, 3)
	assert.ErrorIs(t, err, ErrDomain)
	assert.ErrorIs(t, err, ErrNonPositiveExpansion)

	_, err = calc.Age(p, 0)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = calc.RadialComovingDistance(p, 3)
	assert.ErrorIs(t, err, ErrDomain)
	assert.True(t, domain.IsKind(err, domain.KindDomain))

	_, err = calc.Evaluate(p, 3)
	assert.Error(t, err)

	dC, err := calc.RadialComovingDistance(p, 0.1)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(dC))
	assert.Greater(t, dC, 0.0)
}

func TestInvalidRedshift(t *testing.T) {
	calc := Default()
	p := mustDerive(t, 70, 0.3, 0.7)

	for _, z := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		_, err := calc.Age(p, z)
		assert.ErrorIs(t, err, ErrInvalidRedshift)
		_, err = calc.TransverseComovingDistance(p, z)
		assert.ErrorIs(t, err, ErrDomain)
		_, err = calc.Evaluate(p, z)
		assert.ErrorIs(t, err, ErrDomain)
	}
}

func TestIntegrationFailure(t *testing.T) {
	cfg := integrate.DefaultConfig()
	cfg.MaxSubdivisions = 1
	cfg.RelTol = 1e-15
	calc, err := NewCalculator(cfg)
	require.NoError(t, err)

	p := mustDerive(t, 70, 0.3, 0.7)
	_, err = calc.Age(p, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegration)
	assert.ErrorIs(t, err, integrate.ErrNoConvergence)
}

func TestNewCalculator_InvalidConfig(t *testing.T) {
	cfg := integrate.DefaultConfig()
	cfg.Order = 0
	_, err := NewCalculator(cfg)
	assert.ErrorIs(t, err, integrate.ErrInvalidConfig)
	assert.Equal(t, integrate.DefaultConfig(), Default().IntegratorConfig())
}

func TestCalculator_Concurrent(t *testing.T) {
	calc := Default()
	p := mustDerive(t, 70, 0.3, 0.7)
	want, err := calc.Evaluate(p, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]Quantities, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = calc.Evaluate(p, 1)
		}(i)
	}
	wg.Wait()
	for _, q := range got {
		assert.Equal(t, want, q)
	}
}
