package driven

import "context"

// SidecarRunner supervises the auxiliary worker process that ships with
// the desktop app. It is unrelated to index correctness: the core only
// needs start/stop semantics with an exclusively owned handle.
type SidecarRunner interface {
	// Start launches the worker. Returns domain.ErrSidecarRunning if a
	// worker is already owned by this runner.
	Start(ctx context.Context) error

	// Stop terminates the owned worker and releases the handle.
	// Returns domain.ErrSidecarNotRunning if nothing is running.
	Stop() error

	// Running reports whether a worker is currently owned.
	Running() bool
}
