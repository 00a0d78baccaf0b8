package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/frwlab/cosmocalc/internal/cliconfig"
	"github.com/frwlab/cosmocalc/pkg/calculator"
	"github.com/frwlab/cosmocalc/pkg/log"
	"github.com/frwlab/cosmocalc/pkg/report"
)

func newSweepCommand(a *app) *cobra.Command {
	var (
		zMin, zMax float64
		steps      int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a grid of redshifts",
		Long:  "Evaluate the parameter set at evenly spaced redshifts from --z-min to --z-max. The --redshift input is ignored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			logger, err := cliconfig.NewLogger(cfg)
			if err != nil {
				return err
			}

			zs, err := calculator.Grid(zMin, zMax, steps)
			if err != nil {
				return err
			}

			// Sweep moves the request along the grid from its first point.
			cfg.Redshift = strconv.FormatFloat(zs[0], 'g', -1, 64)
			req, err := cfg.Request()
			if err != nil {
				return err
			}

			calc, err := a.newCalculator(cfg, logger, calculator.WithProgress(func(done, total int) {
				logger.Debug("sweep progress", log.Int("done", done), log.Int("total", total))
			}))
			if err != nil {
				return err
			}

			reps, err := calc.Sweep(cmd.Context(), req, zs)
			if err != nil {
				return err
			}
			return report.Write(a.out, cfg.OutputFormat(), reps...)
		},
	}
	cmd.Flags().Float64Var(&zMin, "z-min", 0, "first redshift")
	cmd.Flags().Float64Var(&zMax, "z-max", 5, "last redshift")
	cmd.Flags().IntVar(&steps, "steps", 11, "number of grid points")
	return cmd
}
