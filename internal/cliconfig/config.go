package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/frwlab/cosmocalc/pkg/calculator"
	"github.com/frwlab/cosmocalc/pkg/cosmo"
	"github.com/frwlab/cosmocalc/pkg/integrate"
	"github.com/frwlab/cosmocalc/pkg/log"
	"github.com/frwlab/cosmocalc/pkg/query"
	"github.com/frwlab/cosmocalc/pkg/report"
)

// Config holds CLI configuration for cosmocalc.
//
// The physical inputs stay strings until query.Parse so that a bad value
// from any source is reported with the same per-field message.
type Config struct {
	Redshift string
	H0       string
	OmegaM   string
	OmegaVac string
	Mode     string

	NegativeRedshift string
	Output           string

	RelTol             float64
	MaxSubdivisions    int
	CurvatureTolerance float64
	Concurrency        int

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	ic := integrate.DefaultConfig()
	return Config{
		H0:                 "70",
		OmegaM:             "0.3",
		OmegaVac:           "0.7",
		Mode:               query.General.String(),
		NegativeRedshift:   query.Reflect.String(),
		Output:             string(report.FormatTable),
		RelTol:             ic.RelTol,
		MaxSubdivisions:    ic.MaxSubdivisions,
		CurvatureTolerance: cosmo.DefaultCurvatureTolerance,
		LogLevel:           "info",
		LogFormat:          string(log.FormatConsole),
	}
}

// Validate checks everything except the physical inputs, which are
// validated per field by query.Parse.
func (c *Config) Validate() error {
	if _, err := query.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := query.ParseNegativeRedshiftPolicy(c.NegativeRedshift); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !log.ValidFormat(log.Format(c.LogFormat)) {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.RelTol <= 0 {
		return fmt.Errorf("rel-tol must be positive")
	}
	if c.MaxSubdivisions <= 0 {
		return fmt.Errorf("max-subdivisions must be positive")
	}
	if c.CurvatureTolerance < 0 {
		return fmt.Errorf("curvature-tolerance must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be non-negative")
	}
	return nil
}

// RawInput returns the physical inputs for query.Parse.
func (c Config) RawInput() query.RawInput {
	return query.RawInput{
		Redshift: c.Redshift,
		H0:       c.H0,
		OmegaM:   c.OmegaM,
		OmegaVac: c.OmegaVac,
		Mode:     c.Mode,
	}
}

// Request parses the physical inputs with the configured policy.
func (c Config) Request() (query.Request, error) {
	policy, err := query.ParseNegativeRedshiftPolicy(c.NegativeRedshift)
	if err != nil {
		return query.Request{}, err
	}
	return query.Parse(c.RawInput(), policy)
}

// CalculatorConfig maps the numeric settings onto calculator.Config.
func (c Config) CalculatorConfig() calculator.Config {
	cc := calculator.DefaultConfig()
	cc.Integrator.RelTol = c.RelTol
	cc.Integrator.MaxSubdivisions = c.MaxSubdivisions
	cc.CurvatureTolerance = c.CurvatureTolerance
	if c.Concurrency > 0 {
		cc.Concurrency = c.Concurrency
	}
	return cc
}

// OutputFormat returns the parsed output format.
func (c Config) OutputFormat() report.Format {
	f, _ := report.ParseFormat(c.Output)
	return f
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setNumber stores a typed file value in its string field.
func (s *configSetter) setNumber(flag string, value *float64, dst *string) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = strconv.FormatFloat(*value, 'g', -1, 64)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloatPtr sets a float64 that may legitimately be zero.
func (s *configSetter) setFloatPtr(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
// Negative values are skipped; zero is kept only when allowZero is set.
func (s *configSetter) setFloatFromString(flag, value string, allowZero bool, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f < 0 || (f == 0 && !allowZero) {
		return nil
	}
	*dst = f
	return nil
}
