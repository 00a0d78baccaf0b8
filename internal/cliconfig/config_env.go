package cliconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable cosmocalc reads.
const EnvPrefix = "COSMOCALC_"

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnvConfig applies COSMOCALC_* variables. They override the file and
// are overridden by flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(key string) string { return os.Getenv(EnvPrefix + key) }

	s.setString("redshift", env("REDSHIFT"), &cfg.Redshift)
	s.setString("h0", env("H0"), &cfg.H0)
	s.setString("omega-m", env("OMEGA_M"), &cfg.OmegaM)
	s.setString("omega-vac", env("OMEGA_VAC"), &cfg.OmegaVac)
	s.setString("mode", env("MODE"), &cfg.Mode)
	s.setString("negative-redshift", env("NEGATIVE_REDSHIFT"), &cfg.NegativeRedshift)
	s.setString("output", env("OUTPUT"), &cfg.Output)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", env("LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setFloatFromString("rel-tol", env("REL_TOL"), false, &cfg.RelTol); err != nil {
		return err
	}
	if err := s.setFloatFromString("curvature-tolerance", env("CURVATURE_TOLERANCE"), true, &cfg.CurvatureTolerance); err != nil {
		return err
	}
	if err := s.setIntFromString("max-subdivisions", env("MAX_SUBDIVISIONS"), &cfg.MaxSubdivisions); err != nil {
		return err
	}
	return s.setIntFromString("concurrency", env("CONCURRENCY"), &cfg.Concurrency)
}
