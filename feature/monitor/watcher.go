package monitor

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Watcher polls a file's modification time and calls OnChange when it moves forward.
type Watcher struct {
	path           string
	pollInterval   time.Duration
	missingBackoff time.Duration
	onChange       func(ctx context.Context)
	logger         *zap.Logger
}

// NewWatcher creates a watcher for path. Zero intervals take the defaults (5s, 30s).
func NewWatcher(path string, cfg Config, onChange func(ctx context.Context), logger *zap.Logger) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.MissingBackoff <= 0 {
		cfg.MissingBackoff = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:           path,
		pollInterval:   cfg.PollInterval,
		missingBackoff: cfg.MissingBackoff,
		onChange:       onChange,
		logger:         logger,
	}
}

// Run polls until active is cleared or ctx is done. The flag is read at the
// top of every iteration; a cancelled ctx also cuts the current wait short.
// OnChange runs on this goroutine, so passes never overlap, and it gets a
// context that ctx's cancellation does not reach: a pass in flight always
// finishes.
func (w *Watcher) Run(ctx context.Context, active *atomic.Bool, lastSeen time.Time) {
	w.logger.Info("Monitoring file", zap.String("path", w.path))
	defer w.logger.Info("Stopped monitoring file", zap.String("path", w.path))

	for active.Load() {
		info, err := os.Stat(w.path)
		if err != nil {
			w.logger.Warn("Watched file is missing", zap.String("path", w.path), zap.Error(err))
			// Only the backoff applies here; the poll interval resumes once
			// the file is back.
			if !sleep(ctx, w.missingBackoff) {
				return
			}
			continue
		}

		if mod := info.ModTime(); mod.After(lastSeen) {
			lastSeen = mod
			w.logger.Info("File changed", zap.String("path", w.path), zap.Time("modified", mod))
			w.fire(ctx)
		}

		if !sleep(ctx, w.pollInterval) {
			return
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Change handler panicked", zap.Any("panic", r))
		}
	}()
	w.onChange(context.WithoutCancel(ctx))
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
