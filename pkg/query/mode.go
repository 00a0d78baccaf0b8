package query

import (
	"fmt"
	"strings"
)

// Mode selects how ΩΛ is obtained from the inputs.
type Mode int

const (
	// General takes ΩΛ from the omega_vac input.
	General Mode = iota
	// Flat forces ΩΛ = 1 - Ωm.
	Flat
	// Open forces ΩΛ = 0.
	Open
)

var modeNames = map[Mode]string{
	General: "general",
	Flat:    "flat",
	Open:    "open",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the mode names case-insensitively. An empty string is
// General.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return General, nil
	}
	for m, name := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return General, fmt.Errorf("unknown cosmology mode %q", s)
}

// NeedsOmegaVac reports whether omega_vac must be supplied.
func (m Mode) NeedsOmegaVac() bool { return m == General }

// OmegaLambda returns the ΩΛ this mode implies.
func (m Mode) OmegaLambda(omegaM, omegaVac float64) float64 {
	switch m {
	case Flat:
		return 1 - omegaM
	case Open:
		return 0
	default:
		return omegaVac
	}
}

// NegativeRedshiftPolicy decides what happens to a redshift below zero.
type NegativeRedshiftPolicy int

const (
	// Reflect uses |z|.
	Reflect NegativeRedshiftPolicy = iota
	// Reject reports a validation error on the redshift field.
	Reject
)

func (p NegativeRedshiftPolicy) String() string {
	switch p {
	case Reflect:
		return "reflect"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("NegativeRedshiftPolicy(%d)", int(p))
}

// ParseNegativeRedshiftPolicy accepts "reflect" or "reject". An empty
// string is Reflect.
func ParseNegativeRedshiftPolicy(s string) (NegativeRedshiftPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reflect":
		return Reflect, nil
	case "reject":
		return Reject, nil
	}
	return Reflect, fmt.Errorf("unknown negative redshift policy %q", s)
}
