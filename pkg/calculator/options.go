package calculator

import "github.com/frwlab/cosmocalc/pkg/log"

// ProgressFunc is called after each completed grid point of a sweep.
type ProgressFunc func(done, total int)

// Option configures optional behavior of a Calculator.
type Option func(*options)

type options struct {
	logger   log.Logger
	progress ProgressFunc
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress registers fn for sweep progress. Calls are serialized.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}
