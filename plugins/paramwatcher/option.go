package paramwatcher

import "github.com/frwlab/cosmocalc/pkg/log"

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}
