package main

import (
	"context"
	"io"

	"github.com/frwlab/cosmocalc/internal/cliconfig"
	"github.com/frwlab/cosmocalc/pkg/calculator"
	"github.com/frwlab/cosmocalc/pkg/log"
	"github.com/frwlab/cosmocalc/pkg/report"
)

// compute evaluates the configured request and writes one report.
func compute(ctx context.Context, w io.Writer, calc *calculator.Calculator, cfg cliconfig.Config, logger log.Logger) error {
	req, err := cfg.Request()
	if err != nil {
		return err
	}
	logger.Debug("request", log.String("query", req.String()))

	rep, err := calc.Evaluate(ctx, req)
	if err != nil {
		return err
	}
	return report.Write(w, cfg.OutputFormat(), rep)
}
