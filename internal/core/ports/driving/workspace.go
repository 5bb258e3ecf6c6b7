package driving

import (
	"context"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

// WorkspaceService is the primary interface for page persistence.
// Every load and save also runs a best-effort index reconciliation
// pass; index failures never surface through these methods.
type WorkspaceService interface {
	// LoadPages reads all pages under root. Per-file read failures are
	// returned alongside the partial snapshot.
	LoadPages(ctx context.Context, root string) (domain.Snapshot, error)

	// SavePages writes the snapshot under root. Blank entries delete
	// the corresponding page file; absent entries leave their file
	// untouched.
	SavePages(ctx context.Context, root string, pages domain.Snapshot) error

	// Resync forces an index reconciliation pass from the current
	// on-disk pages. Unlike the implicit pass after load/save, the
	// index error is surfaced so callers can report it.
	Resync(ctx context.Context, root string) error

	// LoadChat returns the workspace chat transcript ("[]" if absent).
	LoadChat(ctx context.Context, root string) (string, error)

	// SaveChat overwrites the workspace chat transcript.
	SaveChat(ctx context.Context, root string, transcript string) error
}
