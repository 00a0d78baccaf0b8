package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frwlab/cosmocalc/internal/cliconfig"
	"github.com/frwlab/cosmocalc/pkg/log"
	"github.com/frwlab/cosmocalc/plugins/paramwatcher"
)

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompute whenever the parameter file changes",
		Long:  "Print a report now and again after every change to the parameter file. Stop with Ctrl-C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("watch needs a parameter file; pass --config")
			}
			logger, err := cliconfig.NewLogger(cfg)
			if err != nil {
				return err
			}

			recompute := func(ctx context.Context) error {
				cfg, _, err := a.resolve(cmd)
				if err != nil {
					return err
				}
				calc, err := a.newCalculator(cfg, logger)
				if err != nil {
					return err
				}
				err = compute(ctx, a.out, calc, cfg, logger)
				reportFieldErrors(logger, err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := paramwatcher.New(path, recompute, paramwatcher.DefaultConfig(), paramwatcher.WithLogger(logger))
			if err := w.Run(ctx); err != nil {
				return err
			}
			logger.Info("received signal, stopping", log.Int("recalculations", w.Runs()))
			return nil
		},
	}
}
