// Package log provides the logging abstraction used by cosmocalc.
//
// The numeric packages never log. The calculator facade, the parameter
// watcher and the CLI take a Logger so the backend can be chosen at startup:
//
//	logger, err := log.New(os.Stderr, log.FormatConsole, "info")
//
// Three backends are provided: zerolog (console or JSON lines), slog with
// the tint handler for colored human output, and a no-op logger for tests.
package log
