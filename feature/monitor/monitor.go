package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"keys-monitor/core/settings"
	"keys-monitor/feature/keys"

	"go.uber.org/zap"
)

var (
	// ErrNoFileSelected is returned by Start without a path.
	ErrNoFileSelected = errors.New("no file selected")
	// ErrFileNotFound is returned by Start when the path is not a regular file.
	ErrFileNotFound = errors.New("file not found")
	// ErrAlreadyRunning is returned by Start while a worker is active.
	ErrAlreadyRunning = errors.New("monitoring already running")
)

// Syncer runs one pass over the addon file.
type Syncer interface {
	Sync(ctx context.Context, path string, opts keys.SyncOptions) (*keys.SyncResult, error)
}

// Status is a point-in-time view of the monitor.
type Status struct {
	Active     bool             `json:"active"`
	Path       string           `json:"path"`
	StartedAt  time.Time        `json:"started_at,omitempty"`
	LastPass   time.Time        `json:"last_pass,omitempty"`
	LastResult *keys.SyncResult `json:"last_result,omitempty"`
	LastError  string           `json:"last_error,omitempty"`
	Passes     int              `json:"passes"`
}

// Monitor owns the single background worker that keeps the sheet in sync
// with the addon file.
type Monitor struct {
	cfg      Config
	syncer   Syncer
	settings *settings.Store
	logger   *zap.Logger

	// mu guards the worker lifecycle. Each worker gets its own flag so a
	// stopped worker never sees a later start.
	mu     sync.Mutex
	active *atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}

	statusMu sync.RWMutex
	status   Status
}

// New creates a stopped monitor. settingsStore may be nil.
func New(cfg Config, syncer Syncer, settingsStore *settings.Store, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		cfg:      cfg,
		syncer:   syncer,
		settings: settingsStore,
		logger:   logger,
	}
}

// Start validates path, saves it, runs one pass and then watches the file in
// the background. Validation errors are returned before anything starts.
func (m *Monitor) Start(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoFileSelected
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && m.active.Load() {
		return ErrAlreadyRunning
	}

	if m.settings != nil {
		if err := m.settings.Save(settings.Settings{FilePath: path}); err != nil {
			m.logger.Warn("Failed to save settings", zap.Error(err))
		}
	}

	// The worker outlives the request that started it.
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	active := new(atomic.Bool)
	active.Store(true)
	m.active = active
	m.cancel = cancel
	m.done = done

	m.statusMu.Lock()
	m.status = Status{Active: true, Path: path, StartedAt: time.Now()}
	m.statusMu.Unlock()

	lastSeen := info.ModTime()
	m.logger.Info("Starting monitor", zap.String("path", path))
	m.pass(ctx, path)

	watcher := NewWatcher(path, m.cfg, func(ctx context.Context) { m.pass(ctx, path) }, m.logger)
	go func() {
		defer close(done)
		watcher.Run(runCtx, active, lastSeen)
	}()

	return nil
}

// Stop asks the worker to finish and reports whether it was running.
// It clears the worker flag and cuts the poll wait short; a pass in flight
// runs to completion. The worker exits after it; use Wait to join it.
func (m *Monitor) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil || !m.active.Swap(false) {
		return false
	}
	m.cancel()

	m.statusMu.Lock()
	m.status.Active = false
	m.statusMu.Unlock()

	m.logger.Info("Stopping monitor")
	return true
}

// Wait blocks until the last started worker has exited.
func (m *Monitor) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether monitoring is active.
func (m *Monitor) Running() bool {
	return m.Status().Active
}

// Status returns a copy of the current status.
func (m *Monitor) Status() Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}

// SavedPath returns the file path from the saved settings, if any.
func (m *Monitor) SavedPath() string {
	if m.settings == nil {
		return ""
	}
	return m.settings.Load().FilePath
}

// Autostart starts monitoring the saved file.
func (m *Monitor) Autostart(ctx context.Context) error {
	return m.Start(ctx, m.SavedPath())
}

func (m *Monitor) pass(ctx context.Context, path string) {
	result, err := m.syncer.Sync(ctx, path, keys.SyncOptions{})

	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	m.status.Passes++
	m.status.LastPass = time.Now()
	if err != nil {
		// Remote failures are retried on the next change.
		m.status.LastError = err.Error()
		return
	}
	m.status.LastError = ""
	m.status.LastResult = result
}
