// Package sidecar supervises the auxiliary worker process that the
// desktop app ships alongside the workspace engine. The process handle
// is an exclusively owned resource: acquired on Start, released on
// Stop or process exit, guarded by a mutex. The worker is unrelated to
// index correctness; its output is only logged.
package sidecar

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"sync"

	"github.com/google/uuid"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
	"github.com/hermes-labs/hermes-cli/internal/logger"
)

// Ensure Manager implements the interface.
var _ driven.SidecarRunner = (*Manager)(nil)

// Manager owns at most one running worker process.
type Manager struct {
	path string
	args []string

	mu    sync.Mutex
	cmd   *exec.Cmd
	runID string
}

// New creates a manager for the worker binary at path.
func New(path string, args ...string) *Manager {
	return &Manager{path: path, args: args}
}

// Start launches the worker and begins logging its output. Returns
// domain.ErrSidecarRunning if a worker is already owned.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd != nil {
		return domain.ErrSidecarRunning
	}

	cmd := exec.CommandContext(ctx, m.path, m.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	m.cmd = cmd
	m.runID = uuid.NewString()
	logger.Info("sidecar %s started (pid %d)", m.runID, cmd.Process.Pid)

	go m.relay(m.runID, stdout)
	go m.relay(m.runID, stderr)
	go m.reap(cmd, m.runID)

	return nil
}

// Stop terminates the owned worker and releases the handle. Returns
// domain.ErrSidecarNotRunning if nothing is running.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil {
		return domain.ErrSidecarNotRunning
	}

	err := m.cmd.Process.Kill()
	m.cmd = nil
	return err
}

// Running reports whether a worker is currently owned.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cmd != nil
}

// relay logs worker output line by line.
func (m *Manager) relay(runID string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logger.Debug("sidecar %s: %s", runID, scanner.Text())
	}
}

// reap waits for the worker to exit and releases the handle if this
// run still owns it.
func (m *Manager) reap(cmd *exec.Cmd, runID string) {
	err := cmd.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cmd == cmd {
		m.cmd = nil
	}
	if err != nil {
		logger.Warn("sidecar %s exited: %v", runID, err)
		return
	}
	logger.Info("sidecar %s exited cleanly", runID)
}
