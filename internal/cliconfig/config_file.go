package cliconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig is a parameter file. Physical inputs are numbers in the file
// and become strings in Config.
type FileConfig struct {
	Redshift           *float64 `toml:"redshift" yaml:"redshift"`
	H0                 *float64 `toml:"h0" yaml:"h0"`
	OmegaM             *float64 `toml:"omega_m" yaml:"omega_m"`
	OmegaVac           *float64 `toml:"omega_vac" yaml:"omega_vac"`
	Mode               string   `toml:"mode" yaml:"mode"`
	NegativeRedshift   string   `toml:"negative_redshift" yaml:"negative_redshift"`
	Output             string   `toml:"output" yaml:"output"`
	RelTol             float64  `toml:"rel_tol" yaml:"rel_tol"`
	MaxSubdivisions    int      `toml:"max_subdivisions" yaml:"max_subdivisions"`
	CurvatureTolerance *float64 `toml:"curvature_tolerance" yaml:"curvature_tolerance"`
	Concurrency        int      `toml:"concurrency" yaml:"concurrency"`
	LogLevel           string   `toml:"log_level" yaml:"log_level"`
	LogFormat          string   `toml:"log_format" yaml:"log_format"`
}

// LoadFileConfig reads a parameter file. Files ending in .yaml or .yml are
// YAML, everything else TOML. Unknown keys are an error.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.cosmocalc/params.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cosmocalc", "params.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setNumber("redshift", fc.Redshift, &cfg.Redshift)
	s.setNumber("h0", fc.H0, &cfg.H0)
	s.setNumber("omega-m", fc.OmegaM, &cfg.OmegaM)
	s.setNumber("omega-vac", fc.OmegaVac, &cfg.OmegaVac)

	s.setString("mode", fc.Mode, &cfg.Mode)
	s.setString("negative-redshift", fc.NegativeRedshift, &cfg.NegativeRedshift)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	s.setFloat("rel-tol", fc.RelTol, &cfg.RelTol)
	s.setFloatPtr("curvature-tolerance", fc.CurvatureTolerance, &cfg.CurvatureTolerance)
	s.setInt("max-subdivisions", fc.MaxSubdivisions, &cfg.MaxSubdivisions)
	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
