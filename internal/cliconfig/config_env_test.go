package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"COSMOCALC_REDSHIFT":            "2",
				"COSMOCALC_H0":                  "67.4",
				"COSMOCALC_OMEGA_M":             "0.315",
				"COSMOCALC_MODE":                "flat",
				"COSMOCALC_OUTPUT":              "json",
				"COSMOCALC_REL_TOL":             "1e-9",
				"COSMOCALC_CURVATURE_TOLERANCE": "0",
				"COSMOCALC_MAX_SUBDIVISIONS":    "300",
				"COSMOCALC_CONCURRENCY":         "4",
			},
			changed: map[string]bool{},
			initial: Config{CurvatureTolerance: 1e-10},
			expected: Config{
				Redshift:        "2",
				H0:              "67.4",
				OmegaM:          "0.315",
				Mode:            "flat",
				Output:          "json",
				RelTol:          1e-9,
				MaxSubdivisions: 300,
				Concurrency:     4,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"COSMOCALC_H0":      "50",
				"COSMOCALC_OMEGA_M": "1",
			},
			changed:  map[string]bool{"h0": true},
			initial:  Config{H0: "70"},
			expected: Config{H0: "70", OmegaM: "1"},
		},
		{
			name:     "non-numeric physical input is kept for query",
			envVars:  map[string]string{"COSMOCALC_REDSHIFT": "abc"},
			changed:  map[string]bool{},
			expected: Config{Redshift: "abc"},
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"COSMOCALC_MAX_SUBDIVISIONS": "lots"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid float",
			envVars: map[string]string{"COSMOCALC_REL_TOL": "tiny"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(path, []byte("COSMOCALC_H0=55\nCOSMOCALC_MODE=open\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("COSMOCALC_MODE", "flat")
	t.Setenv("COSMOCALC_H0", "")
	os.Unsetenv("COSMOCALC_H0")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("COSMOCALC_H0"); got != "55" {
		t.Errorf("COSMOCALC_H0 = %q, want 55", got)
	}
	if got := os.Getenv("COSMOCALC_MODE"); got != "flat" {
		t.Errorf("COSMOCALC_MODE = %q, want flat (existing env wins)", got)
	}

	if err := LoadDotEnv(filepath.Join(tmpDir, "missing.env")); err != nil {
		t.Errorf("LoadDotEnv(missing) error = %v, want nil", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Errorf("LoadDotEnv(\"\") error = %v, want nil", err)
	}
}

// Integration test: precedence order (CLI > Env > File > defaults)
func TestResolvePrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "params.toml")
	content := "redshift = 3.0\nh0 = 60.0\nomega_m = 0.25\nmode = \"open\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("COSMOCALC_H0", "65")
	t.Setenv("COSMOCALC_OMEGA_M", "0.28")

	base := DefaultConfig()
	base.OmegaM = "0.5"
	changed := map[string]bool{"omega-m": true}

	cfg, err := Resolve(base, path, true, changed)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.OmegaM != "0.5" {
		t.Errorf("OmegaM = %v, want 0.5 (CLI should win)", cfg.OmegaM)
	}
	if cfg.H0 != "65" {
		t.Errorf("H0 = %v, want 65 (env should override file)", cfg.H0)
	}
	if cfg.Redshift != "3" {
		t.Errorf("Redshift = %v, want 3 (file should set)", cfg.Redshift)
	}
	if cfg.Mode != "open" {
		t.Errorf("Mode = %v, want open (file should set)", cfg.Mode)
	}
	if cfg.OmegaVac != "0.7" {
		t.Errorf("OmegaVac = %v, want 0.7 (default)", cfg.OmegaVac)
	}

	if _, err := Resolve(base, filepath.Join(tmpDir, "missing.toml"), true, changed); err == nil {
		t.Error("Resolve() with missing required file error = nil, want error")
	}
	if _, err := Resolve(base, filepath.Join(tmpDir, "missing.toml"), false, changed); err != nil {
		t.Errorf("Resolve() with missing optional file error = %v", err)
	}

	t.Setenv("COSMOCALC_MODE", "spherical")
	if _, err := Resolve(base, "", false, changed); err == nil {
		t.Error("Resolve() with invalid mode error = nil, want error")
	}
}
