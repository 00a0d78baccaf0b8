// Package paramwatcher re-runs a calculation whenever a parameter file
// changes. It watches the file's directory so that editors which replace
// the file on save are seen too.
package paramwatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/frwlab/cosmocalc/pkg/log"
)

// Handler is called once at start and once per debounced change. An error
// is logged and watching continues.
type Handler func(ctx context.Context) error

// Config holds configuration options for the watcher.
type Config struct {
	// DebounceDelay is the quiet period after the last change before the
	// handler runs.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// SkipInitial suppresses the handler call at start.
	SkipInitial bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// Watcher monitors one parameter file.
type Watcher struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	skipInitial   bool
	handler       Handler
	logger        log.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	runs   int
}

// New creates a watcher for path.
func New(path string, handler Handler, cfg Config, opts ...Option) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	w := &Watcher{
		path:          filepath.Clean(path),
		debounceDelay: cfg.DebounceDelay,
		skipInitial:   cfg.SkipInitial,
		handler:       handler,
		logger:        log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching in the background.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return errors.New("paramwatcher: already started")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("paramwatcher: create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("paramwatcher: watch %s: %w", filepath.Dir(w.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.logger.Info("watching parameter file", log.String("path", w.path))

	w.wg.Add(1)
	go w.watchLoop(watchCtx, fw)
	return nil
}

// Shutdown stops the watcher and waits for a running handler to return.
func (w *Watcher) Shutdown() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Shutdown()
	return nil
}

// Runs returns how many times the handler has been called.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	if !w.skipInitial {
		w.run(ctx, "start")
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounceDelay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounceDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.run(ctx, "change")

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("parameter watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) run(ctx context.Context, reason string) {
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()

	w.logger.Debug("parameters reloaded", log.String("reason", reason))
	if err := w.handler(ctx); err != nil {
		w.logger.Error("recalculation failed", log.String("path", w.path), log.Err(err))
	}
}
