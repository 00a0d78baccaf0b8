package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/frwlab/cosmocalc/internal/cliconfig"
	"github.com/frwlab/cosmocalc/pkg/calculator"
	"github.com/frwlab/cosmocalc/pkg/cosmo"
	"github.com/frwlab/cosmocalc/pkg/integrate"
	"github.com/frwlab/cosmocalc/pkg/log"
	"github.com/frwlab/cosmocalc/pkg/query"
)

const helpDescription = `
Compute FRW cosmological observables for a redshift and a parameter set.

Reports the age of the universe now and at z, the light travel time, the
radial and transverse comoving distances, the comoving volume, the angular
diameter and luminosity distances, and the angular scale.

Modes:
  flat     ΩΛ = 1 - Ωm
  open     ΩΛ = 0
  general  ΩΛ = --omega-vac

Inputs come from flags, COSMOCALC_* environment variables (optionally via
a .env file), a TOML or YAML parameter file, and defaults, in that order.
`

var exampleUsage = strings.TrimSpace(`
  cosmocalc --redshift 1 --h0 70 --omega-m 0.3 --mode flat
  cosmocalc --redshift 3 --omega-m 0.3 --omega-vac 0.9 --output json
  cosmocalc sweep --z-min 0 --z-max 5 --steps 11 --mode flat
  cosmocalc watch --config params.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the state shared by all commands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	envFile string
	out     io.Writer
}

// resolve loads .env, the parameter file and the environment beneath the
// flags set on cmd.
func (a *app) resolve(cmd *cobra.Command) (cliconfig.Config, string, error) {
	if err := cliconfig.LoadDotEnv(a.envFile); err != nil {
		return cliconfig.Config{}, "", fmt.Errorf("load env file: %w", err)
	}

	cfgFile, mustExist := a.cfgPath, a.cfgPath != ""
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfg, err := cliconfig.Resolve(a.cfg, cfgFile, mustExist, changed)
	return cfg, cfgFile, err
}

func (a *app) newCalculator(cfg cliconfig.Config, logger log.Logger, opts ...calculator.Option) (*calculator.Calculator, error) {
	opts = append([]calculator.Option{calculator.WithLogger(logger)}, opts...)
	return calculator.New(cfg.CalculatorConfig(), opts...)
}

// reportFieldErrors logs every rejected input field.
func reportFieldErrors(logger log.Logger, err error) {
	for _, fe := range query.FieldErrors(err) {
		logger.Error(fe.Message, log.String("field", fe.Field))
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cosmocalc",
		Short:         "FRW cosmology calculator",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			logger, err := cliconfig.NewLogger(cfg)
			if err != nil {
				return err
			}
			calc, err := a.newCalculator(cfg, logger)
			if err != nil {
				return err
			}
			return compute(cmd.Context(), a.out, calc, cfg, logger)
		},
	}

	defaults := cliconfig.DefaultConfig()
	a.cfg = defaults

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "parameter file, TOML or YAML (default: $HOME/.cosmocalc/params.toml)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with COSMOCALC_* variables")

	pf.StringVarP(&a.cfg.Redshift, "redshift", "z", defaults.Redshift, "redshift z")
	pf.StringVar(&a.cfg.H0, "h0", defaults.H0, "Hubble constant in km/s/Mpc")
	pf.StringVar(&a.cfg.OmegaM, "omega-m", defaults.OmegaM, "matter density Ωm")
	pf.StringVar(&a.cfg.OmegaVac, "omega-vac", defaults.OmegaVac, "vacuum density ΩΛ (general mode only)")
	pf.StringVar(&a.cfg.Mode, "mode", defaults.Mode, "cosmology mode: flat, open or general")
	pf.StringVar(&a.cfg.NegativeRedshift, "negative-redshift", defaults.NegativeRedshift, "negative redshift policy: reflect or reject")

	pf.StringVarP(&a.cfg.Output, "output", "o", defaults.Output, "output format: table, json or yaml")
	pf.Float64Var(&a.cfg.RelTol, "rel-tol", defaults.RelTol, "relative tolerance of every integral")
	pf.IntVar(&a.cfg.MaxSubdivisions, "max-subdivisions", defaults.MaxSubdivisions, "panel budget of every integral")
	pf.Float64Var(&a.cfg.CurvatureTolerance, "curvature-tolerance", defaults.CurvatureTolerance, "|Ωk| at or below which geometry is flat")
	pf.IntVar(&a.cfg.Concurrency, "concurrency", defaults.Concurrency, "sweep workers (default: number of CPUs)")

	pf.StringVar(&a.cfg.LogLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&a.cfg.LogFormat, "log-format", defaults.LogFormat, "log format: console, json or tint")

	root.AddCommand(newSweepCommand(a), newWatchCommand(a), newVersionCommand(a))
	return root
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "cosmocalc %s %s/%s\n", getVersion(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(a.out, "  cosmo      %s\n", cosmo.Version)
			fmt.Fprintf(a.out, "  integrate  %s\n", integrate.Version)
			fmt.Fprintf(a.out, "  log        %s\n", log.Version)
		},
	}
}

func main() {
	a := &app{out: os.Stdout}
	root := newRootCommand(a)
	if err := root.ExecuteContext(context.Background()); err != nil {
		logger, lerr := cliconfig.NewLogger(a.cfg)
		if lerr != nil {
			logger = log.NewZerologAdapter(os.Stderr, log.LevelInfo, false)
		}
		if len(query.FieldErrors(err)) > 0 {
			reportFieldErrors(logger, err)
		} else {
			logger.Error("cosmocalc", log.Err(err))
		}
		os.Exit(1)
	}
}
