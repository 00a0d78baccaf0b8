// Package calculator is the embeddable entry point of cosmocalc.
//
// It evaluates a validated query.Request into a report.Report, and sweeps a
// redshift grid with a bounded pool of workers.
//
//	calc, err := calculator.New(calculator.DefaultConfig(),
//	    calculator.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//
//	req, err := query.Parse(query.RawInput{
//	    Redshift: "1", H0: "70", OmegaM: "0.3", Mode: "flat",
//	}, query.Reflect)
//	if err != nil {
//	    return err // query.FieldErrors(err) lists every bad field
//	}
//
//	rep, err := calc.Evaluate(ctx, req)
//
// # Errors
//
// Failures are *cosmo.Error values classified by kind; test them with
// errors.Is against cosmo.ErrValidation, cosmo.ErrDomain and
// cosmo.ErrIntegration. A failure never carries a partial report.
//
// # Concurrency
//
// A Calculator is safe for concurrent use. Sweep runs at most
// Config.Concurrency evaluations at once and keeps results in grid order.
package calculator
