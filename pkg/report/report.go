// Package report turns computed quantities into an ordered list of named
// records with display units, and renders them.
package report

import (
	"fmt"
	"math"

	"github.com/frwlab/cosmocalc/pkg/cosmo"
)

// Record is one named quantity in its display unit.
type Record struct {
	Quantity string  `json:"quantity" yaml:"quantity"`
	Value    float64 `json:"value" yaml:"value"`
	Unit     string  `json:"unit" yaml:"unit"`
}

// Formatted returns the value with three decimals.
func (r Record) Formatted() string {
	return fmt.Sprintf("%.3f", r.Value)
}

// Label is the quantity with its unit, e.g. "Comoving Distance [in Mpc]".
func (r Record) Label() string {
	return fmt.Sprintf("%s [in %s]", r.Quantity, r.Unit)
}

// Report is the result of one calculation.
type Report struct {
	Redshift    float64  `json:"redshift" yaml:"redshift"`
	H0          float64  `json:"h0" yaml:"h0"`
	OmegaM      float64  `json:"omega_m" yaml:"omega_m"`
	OmegaLambda float64  `json:"omega_lambda" yaml:"omega_lambda"`
	OmegaRad    float64  `json:"omega_rad" yaml:"omega_rad"`
	OmegaK      float64  `json:"omega_k" yaml:"omega_k"`
	Geometry    string   `json:"geometry" yaml:"geometry"`
	Records     []Record `json:"records" yaml:"records"`
}

// Scale is a default unit and the smaller unit used below magnitude 1.
type Scale struct {
	Unit   string
	Small  string
	Factor float64
}

var (
	Time     = Scale{Unit: "Gyr", Small: "Myr", Factor: 1e3}
	Distance = Scale{Unit: "Mpc", Small: "kpc", Factor: 1e3}
	Volume   = Scale{Unit: "cubic Gpc", Small: "cubic Mpc", Factor: 1e9}
	Angular  = Scale{Unit: "kpc/''", Small: "pc/''", Factor: 1e3}
)

// Record picks the unit for v: the default unit unless |v| < 1, in which
// case v is rescaled to the smaller unit.
func (s Scale) Record(quantity string, v float64) Record {
	if math.Abs(v) < 1 {
		return Record{Quantity: quantity, Value: v * s.Factor, Unit: s.Small}
	}
	return Record{Quantity: quantity, Value: v, Unit: s.Unit}
}

// New builds the report for q in display order.
func New(p cosmo.Parameters, q cosmo.Quantities) Report {
	return Report{
		Redshift:    q.Redshift,
		H0:          float64(p.H0()),
		OmegaM:      p.OmegaM(),
		OmegaLambda: p.OmegaLambda(),
		OmegaRad:    p.OmegaRad(),
		OmegaK:      p.OmegaK(),
		Geometry:    p.Geometry().String(),
		Records: []Record{
			Time.Record("Age of Universe (at z = 0)", q.AgeNow),
			Time.Record(fmt.Sprintf("Age of Universe (at z = %.3f)", q.Redshift), q.AgeAtRedshift),
			Time.Record("Light Travel Time", q.LightTravelTime),
			Distance.Record("Comoving Distance", q.ComovingDistance),
			Distance.Record("Transverse Comoving Distance", q.TransverseComovingDistance),
			Volume.Record("Comoving Volume", q.ComovingVolume),
			Distance.Record("Angular Diameter Distance", q.AngularDiameterDistance),
			Angular.Record("Angular Scale", q.AngularScale),
			Distance.Record("Luminosity Distance", q.LuminosityDistance),
		},
	}
}
