package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frwlab/cosmocalc/pkg/cosmo"
)

// RawInput is the unparsed form of a request, as received from a form,
// flags, environment or a parameter file.
type RawInput struct {
	Redshift string `json:"redshift" yaml:"redshift" toml:"redshift"`
	H0       string `json:"h0" yaml:"h0" toml:"h0"`
	OmegaM   string `json:"omega_m" yaml:"omega_m" toml:"omega_m"`
	OmegaVac string `json:"omega_vac" yaml:"omega_vac" toml:"omega_vac"`
	Mode     string `json:"mode" yaml:"mode" toml:"mode"`
}

// Request is a validated, immutable calculation request.
type Request struct {
	redshift    float64
	reflected   bool
	h0          float64
	omegaM      float64
	omegaLambda float64
	mode        Mode
}

func (r Request) Redshift() float64    { return r.redshift }
func (r Request) H0() float64          { return r.h0 }
func (r Request) OmegaM() float64      { return r.omegaM }
func (r Request) OmegaLambda() float64 { return r.omegaLambda }
func (r Request) Mode() Mode           { return r.mode }

// Reflected reports whether a negative redshift was replaced by |z|.
func (r Request) Reflected() bool { return r.reflected }

// WithRedshift returns a copy of r at redshift z. z is used as given.
func (r Request) WithRedshift(z float64) Request {
	r.redshift = z
	r.reflected = false
	return r
}

// Params derives the cosmological parameter set for r.
func (r Request) Params(opts ...cosmo.DeriveOption) (cosmo.Parameters, error) {
	return cosmo.Derive(cosmo.HubbleRateKmsMpc(r.h0), r.omegaM, r.omegaLambda, opts...)
}

func (r Request) String() string {
	return fmt.Sprintf("z=%g H0=%g Ωm=%g ΩΛ=%g mode=%s", r.redshift, r.h0, r.omegaM, r.omegaLambda, r.mode)
}

var numberHints = map[string]string{
	FieldRedshift: "Enter a valid redshift.",
	FieldH0:       "Enter a valid value for the Hubble parameter.",
	FieldOmegaM:   "Enter a valid value for mass density.",
	FieldOmegaVac: "Enter valid value for dark energy density.",
}

func notNumber(field, value string) *FieldError {
	return &FieldError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("'%s' is not a number! %s", value, numberHints[field]),
	}
}

// Parse validates every field of in and builds a Request. All field
// failures are returned together as ValidationErrors; nothing is computed
// when any field fails.
func Parse(in RawInput, policy NegativeRedshiftPolicy) (Request, error) {
	var errs ValidationErrors

	number := func(field, value string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			errs = append(errs, notNumber(field, value))
			return 0
		}
		return v
	}

	z := number(FieldRedshift, in.Redshift)
	h0 := number(FieldH0, in.H0)
	omegaM := number(FieldOmegaM, in.OmegaM)

	mode, err := ParseMode(in.Mode)
	if err != nil {
		errs = append(errs, &FieldError{
			Field:   FieldMode,
			Value:   in.Mode,
			Message: fmt.Sprintf("'%s' is not a cosmology mode! Choose flat, open or general.", in.Mode),
		})
	}

	var omegaVac float64
	if err == nil && mode.NeedsOmegaVac() {
		omegaVac = number(FieldOmegaVac, in.OmegaVac)
	}

	if len(errs) > 0 {
		return Request{}, errs
	}
	return New(z, h0, omegaM, omegaVac, mode, policy)
}

// New builds a Request from already numeric inputs. omegaVac is ignored
// unless mode is General.
func New(z, h0, omegaM, omegaVac float64, mode Mode, policy NegativeRedshiftPolicy) (Request, error) {
	r := Request{
		redshift:    z,
		h0:          h0,
		omegaM:      omegaM,
		omegaLambda: mode.OmegaLambda(omegaM, omegaVac),
		mode:        mode,
	}
	if z < 0 {
		if policy == Reject {
			value := strconv.FormatFloat(z, 'g', -1, 64)
			return Request{}, ValidationErrors{{
				Field:   FieldRedshift,
				Value:   value,
				Message: fmt.Sprintf("'%s' is negative! Enter a non-negative redshift.", value),
			}}
		}
		r.redshift = -z
		r.reflected = true
	}
	return r, nil
}
