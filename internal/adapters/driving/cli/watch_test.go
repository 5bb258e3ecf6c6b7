package cli

import (
	"context"
	"runtime"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_WorkerLifecycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test worker uses /bin/sleep")
	}

	worker, err := startWatchWorker(context.Background(), "/bin/sleep", "60")
	require.NoError(t, err)
	assert.True(t, worker.Running())

	stopWatchWorker(worker)
	assert.False(t, worker.Running())

	// Stopping an already-released worker is tolerated.
	stopWatchWorker(worker)
}

func TestWatchCmd_WorkerMissingBinary(t *testing.T) {
	_, err := startWatchWorker(context.Background(), "/nonexistent/worker-binary")
	assert.Error(t, err)
}

func TestIsPageEvent(t *testing.T) {
	assert.True(t, isPageEvent(fsnotify.Event{Name: "/ws/coral.md", Op: fsnotify.Write}))
	assert.True(t, isPageEvent(fsnotify.Event{Name: "/ws/lavender.md", Op: fsnotify.Remove}))
	assert.False(t, isPageEvent(fsnotify.Event{Name: "/ws/notes.md", Op: fsnotify.Write}))
	assert.False(t, isPageEvent(fsnotify.Event{Name: "/ws/coral.md", Op: fsnotify.Chmod}))
	assert.False(t, isPageEvent(fsnotify.Event{Name: "/ws/.hermes/index.sqlite", Op: fsnotify.Write}))
}
