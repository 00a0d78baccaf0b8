package cliconfig

import (
	"fmt"
	"os"

	"github.com/frwlab/cosmocalc/pkg/log"
)

// Resolve layers the parameter file and the environment under the values
// already in base (defaults plus flags), then validates. The file at path
// is optional unless mustExist is set.
func Resolve(base Config, path string, mustExist bool, changed map[string]bool) (Config, error) {
	cfg := base
	if path != "" {
		switch {
		case FileExists(path):
			fc, err := LoadFileConfig(path)
			if err != nil {
				return Config{}, fmt.Errorf("load config: %w", err)
			}
			ApplyFileConfig(&cfg, fc, changed)
		case mustExist:
			return Config{}, fmt.Errorf("config file %s does not exist", path)
		}
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the logger selected by cfg, writing to stderr.
func NewLogger(cfg Config) (log.Logger, error) {
	return log.New(os.Stderr, log.Format(cfg.LogFormat), cfg.LogLevel)
}
