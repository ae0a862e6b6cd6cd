package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"keys-monitor/core/settings"
	"keys-monitor/feature/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSyncer struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeSyncer) Sync(_ context.Context, path string, _ keys.SyncOptions) (*keys.SyncResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	return &keys.SyncResult{Path: path, Records: 1, Written: true}, nil
}

func (f *fakeSyncer) first() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.paths) == 0 {
		return ""
	}
	return f.paths[0]
}

func (f *fakeSyncer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paths)
}

func newMonitor(t *testing.T, syncer Syncer) (*Monitor, *settings.Store) {
	store := settings.NewStore(settings.Config{Path: filepath.Join(t.TempDir(), "settings.json")}, nil)
	m := New(fastConfig, syncer, store, zap.NewNop())
	t.Cleanup(func() {
		m.Stop()
		m.Wait()
	})
	return m, store
}

func TestStart_Preconditions(t *testing.T) {
	syncer := &fakeSyncer{}
	m, _ := newMonitor(t, syncer)

	assert.ErrorIs(t, m.Start(context.Background(), ""), ErrNoFileSelected)
	assert.ErrorIs(t, m.Start(context.Background(), filepath.Join(t.TempDir(), "missing.lua")), ErrFileNotFound)
	assert.ErrorIs(t, m.Start(context.Background(), t.TempDir()), ErrFileNotFound)

	assert.False(t, m.Running())
	assert.Equal(t, 0, syncer.calls())
}

func TestStart_RunsInitialPassAndSaves(t *testing.T) {
	syncer := &fakeSyncer{}
	m, store := newMonitor(t, syncer)
	path := writeFile(t, t.TempDir())

	require.NoError(t, m.Start(context.Background(), path))

	assert.Equal(t, 1, syncer.calls(), "first pass runs before Start returns")
	assert.True(t, m.Running())
	assert.Equal(t, path, store.Load().FilePath)

	status := m.Status()
	assert.Equal(t, path, status.Path)
	assert.Equal(t, 1, status.Passes)
	require.NotNil(t, status.LastResult)
	assert.True(t, status.LastResult.Written)

	assert.ErrorIs(t, m.Start(context.Background(), path), ErrAlreadyRunning)
}

func TestStart_WatchesForChanges(t *testing.T) {
	syncer := &fakeSyncer{}
	m, _ := newMonitor(t, syncer)
	path := writeFile(t, t.TempDir())
	touch(t, path, time.Now().Add(-time.Hour))

	require.NoError(t, m.Start(context.Background(), path))
	touch(t, path, time.Now())

	assert.Eventually(t, func() bool { return syncer.calls() == 2 }, time.Second, 5*time.Millisecond)
}

func TestStart_OutlivesRequestContext(t *testing.T) {
	syncer := &fakeSyncer{}
	m, _ := newMonitor(t, syncer)
	path := writeFile(t, t.TempDir())
	touch(t, path, time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx, path))
	cancel()

	touch(t, path, time.Now())
	assert.Eventually(t, func() bool { return syncer.calls() == 2 }, time.Second, 5*time.Millisecond)
}

func TestStop(t *testing.T) {
	syncer := &fakeSyncer{}
	m, _ := newMonitor(t, syncer)
	path := writeFile(t, t.TempDir())

	assert.False(t, m.Stop(), "not running yet")

	require.NoError(t, m.Start(context.Background(), path))
	assert.True(t, m.Stop())
	m.Wait()

	assert.False(t, m.Running())
	assert.False(t, m.Stop())

	// A stopped monitor can be started again.
	require.NoError(t, m.Start(context.Background(), path))
	assert.Equal(t, 2, syncer.calls())
}

// blockingSyncer holds its second call until release is closed and records
// the context error it sees afterwards.
type blockingSyncer struct {
	mu      sync.Mutex
	n       int
	entered chan struct{}
	release chan struct{}
	ctxErr  error
}

func (b *blockingSyncer) Sync(ctx context.Context, path string, _ keys.SyncOptions) (*keys.SyncResult, error) {
	b.mu.Lock()
	b.n++
	n := b.n
	b.mu.Unlock()

	if n == 2 {
		close(b.entered)
		<-b.release
		b.mu.Lock()
		b.ctxErr = ctx.Err()
		b.mu.Unlock()
		if b.ctxErr != nil {
			return nil, b.ctxErr
		}
	}
	return &keys.SyncResult{Path: path, Written: true}, nil
}

func TestStop_LetsPassInFlightFinish(t *testing.T) {
	syncer := &blockingSyncer{entered: make(chan struct{}), release: make(chan struct{})}
	m, _ := newMonitor(t, syncer)
	path := writeFile(t, t.TempDir())
	touch(t, path, time.Now().Add(-time.Hour))

	require.NoError(t, m.Start(context.Background(), path))
	touch(t, path, time.Now())

	select {
	case <-syncer.entered:
	case <-time.After(time.Second):
		t.Fatal("watcher pass did not start")
	}

	assert.True(t, m.Stop())
	close(syncer.release)
	m.Wait()

	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	assert.NoError(t, syncer.ctxErr)
	assert.Equal(t, 2, syncer.n)

	status := m.Status()
	assert.Equal(t, 2, status.Passes)
	assert.Empty(t, status.LastError)
}

func TestPass_RecordsErrors(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("sheet unavailable")}
	m, _ := newMonitor(t, syncer)

	require.NoError(t, m.Start(context.Background(), writeFile(t, t.TempDir())))

	status := m.Status()
	assert.True(t, status.Active, "remote failures do not stop monitoring")
	assert.Equal(t, "sheet unavailable", status.LastError)
	assert.Nil(t, status.LastResult)
}

func TestAutostart(t *testing.T) {
	t.Run("Saved Path", func(t *testing.T) {
		syncer := &fakeSyncer{}
		m, store := newMonitor(t, syncer)
		path := writeFile(t, t.TempDir())
		require.NoError(t, store.Save(settings.Settings{FilePath: path}))

		require.NoError(t, m.Autostart(context.Background()))
		assert.True(t, m.Running())
		assert.Equal(t, path, syncer.first())
	})

	t.Run("Nothing Saved", func(t *testing.T) {
		m, _ := newMonitor(t, &fakeSyncer{})
		assert.ErrorIs(t, m.Autostart(context.Background()), ErrNoFileSelected)
	})

	t.Run("Saved File Gone", func(t *testing.T) {
		m, store := newMonitor(t, &fakeSyncer{})
		require.NoError(t, store.Save(settings.Settings{FilePath: filepath.Join(t.TempDir(), "gone.lua")}))
		assert.ErrorIs(t, m.Autostart(context.Background()), ErrFileNotFound)
	})
}
