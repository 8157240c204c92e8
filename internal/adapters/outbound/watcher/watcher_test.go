package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/watcher"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) seen() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]bool{}
	for _, c := range r.calls {
		for _, p := range c {
			out[filepath.Base(p)] = true
		}
	}
	return out
}

func startWatcher(t *testing.T, dir string) *recorder {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	w := watcher.New(dir, 50*time.Millisecond, nil)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec.record) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// give the watcher time to register directories
	time.Sleep(100 * time.Millisecond)
	return rec
}

func TestFileWatcher_ReportsXMLWrites(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "OrderEntities.xml"), []byte("<entities/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	require.Eventually(t, func() bool {
		return rec.seen()["OrderEntities.xml"]
	}, 3*time.Second, 20*time.Millisecond)
	assert.False(t, rec.seen()["notes.txt"])
}

func TestFileWatcher_WatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, dir)

	sub := filepath.Join(dir, "service")
	require.NoError(t, os.Mkdir(sub, 0755))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "OrderServices.xml"), []byte("<services/>"), 0644))

	require.Eventually(t, func() bool {
		return rec.seen()["OrderServices.xml"]
	}, 3*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_MissingRoot(t *testing.T) {
	w := watcher.New(filepath.Join(t.TempDir(), "missing"), 0, nil)
	err := w.Run(context.Background(), func([]string) {})
	assert.Error(t, err)
}
