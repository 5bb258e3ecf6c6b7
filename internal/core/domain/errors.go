package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSlot indicates an unknown page slot key.
	ErrInvalidSlot = errors.New("invalid slot key")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the page index store could not be
	// opened or initialised. The index is a best-effort derived cache;
	// this error is logged and discarded by load/save, never surfaced.
	ErrIndexUnavailable = errors.New("page index unavailable")

	// ErrSidecarRunning indicates the worker process is already running.
	ErrSidecarRunning = errors.New("sidecar already running")

	// ErrSidecarNotRunning indicates there is no worker process to stop.
	ErrSidecarNotRunning = errors.New("sidecar not running")
)
