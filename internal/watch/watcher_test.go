package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForCall(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch callback")
		return ""
	}
}

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine\n"), 0644))

	calls := make(chan string, 8)
	w, err := New(path, 20*time.Millisecond, func(p string) { calls <- p })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("FROM alpine:3.20\n"), 0644))

	require.Equal(t, path, waitForCall(t, calls))
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine\n"), 0644))

	calls := make(chan string, 8)
	w, err := New(path, 20*time.Millisecond, func(p string) { calls <- p })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0644))

	select {
	case p := <-calls:
		t.Fatalf("unexpected callback for %s", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine\n"), 0644))

	calls := make(chan string, 32)
	w, err := New(path, 150*time.Millisecond, func(p string) { calls <- p })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// A burst of rapid writes must collapse into one callback.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("FROM alpine\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	waitForCall(t, calls)
	select {
	case <-calls:
		t.Fatal("burst of writes fired more than once")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine\n"), 0644))

	w, err := New(path, 20*time.Millisecond, func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM alpine\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := New(path, 20*time.Millisecond, func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()
	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not exit on context cancel")
	}
	require.NoError(t, w.watcher.Close())
}
