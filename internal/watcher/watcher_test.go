package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// harness drives Watcher.loop through plain channels.
type harness struct {
	w      *Watcher
	events chan fsnotify.Event
	errs   chan error
	calls  atomic.Int32
	cancel context.CancelFunc
	done   chan error
}

func newHarness(t *testing.T, debounce time.Duration, handlerErr error) *harness {
	t.Helper()

	h := &harness{
		w: &Watcher{
			dir:      "/gallery",
			debounce: debounce,
			ignore:   make(map[string]struct{}),
			logger:   zap.NewNop(),
		},
		events: make(chan fsnotify.Event),
		errs:   make(chan error),
		done:   make(chan error, 1),
	}
	h.w.Ignore("index.html", "index2.html", ".htaccess")

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.done <- h.w.loop(ctx, h.events, h.errs, func(context.Context) error {
			h.calls.Add(1)
			return handlerErr
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func (h *harness) send(name string, op fsnotify.Op) {
	h.events <- fsnotify.Event{Name: name, Op: op}
}

// TestLoop_DebouncesBurst verifies that a burst of events yields one run.
func TestLoop_DebouncesBurst(t *testing.T) {
	h := newHarness(t, 50*time.Millisecond, nil)

	for i := 0; i < 5; i++ {
		h.send("/gallery/photo.png", fsnotify.Create)
		h.send("/gallery/photo.png", fsnotify.Write)
	}

	assert.Eventually(t, func() bool { return h.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), h.calls.Load())
}

func TestLoop_SeparateBurstsRunSeparately(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond, nil)

	h.send("/gallery/a.png", fsnotify.Create)
	require.Eventually(t, func() bool { return h.calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	h.send("/gallery/b.png", fsnotify.Remove)
	assert.Eventually(t, func() bool { return h.calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

// TestLoop_IgnoresOwnArtifactsAndChmod verifies that writing the gallery
// does not trigger another run.
func TestLoop_IgnoresOwnArtifactsAndChmod(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond, nil)

	h.send("/gallery/index.html", fsnotify.Write)
	h.send("/gallery/index2.html", fsnotify.Create)
	h.send("/gallery/.htaccess", fsnotify.Write)
	h.send("/gallery/photo.png", fsnotify.Chmod)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), h.calls.Load())
}

func TestLoop_HandlerErrorKeepsWatching(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond, errors.New("disk full"))

	h.send("/gallery/a.png", fsnotify.Create)
	require.Eventually(t, func() bool { return h.calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	h.errs <- errors.New("queue overflow")
	h.send("/gallery/b.png", fsnotify.Create)
	assert.Eventually(t, func() bool { return h.calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestLoop_StopsOnCancel(t *testing.T) {
	h := newHarness(t, time.Hour, nil)

	h.send("/gallery/a.png", fsnotify.Create)
	h.cancel()

	select {
	case err := <-h.done:
		assert.NoError(t, err)
		h.done <- err // let Cleanup drain it
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	assert.Equal(t, int32(0), h.calls.Load())
}

func TestNew_InvalidDebounce(t *testing.T) {
	_, err := New(t.TempDir(), 0, nil)
	assert.Error(t, err)
}

// TestRun_RealDirectory exercises fsnotify against a temporary directory.
func TestRun_RealDirectory(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 30*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.Ignore("index.html")

	var mu sync.Mutex
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return nil
		})
	}()

	// Give the watch registration a moment before producing events.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.png"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 1
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), time.Second, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	err = w.Run(context.Background(), func(context.Context) error { return nil })
	assert.Error(t, err)
}
