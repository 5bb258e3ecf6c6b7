package driven

import (
	"context"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

// IndexStore is the derived, queryable index over one workspace's pages:
// a relational record per non-blank page plus a full-text shadow.
// Backed by SQLite under {root}/.hermes/index.sqlite.
type IndexStore interface {
	// EnsureSchema creates the record table, recency index and
	// full-text shadow if absent. Idempotent. Rows whose slot key is
	// no longer part of the current enumeration are pruned here.
	EnsureSchema(ctx context.Context) error

	// Apply executes one reconciliation pass as a single atomic
	// transaction: either every operation commits or none do.
	Apply(ctx context.Context, set domain.ChangeSet) error

	// Search performs a full-text query over titles and bodies.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Recent lists records most recently updated first.
	Recent(ctx context.Context, limit int) ([]domain.Record, error)

	// Close releases the underlying store handle.
	Close() error
}

// IndexOpener opens the index store for a workspace root. The workspace
// service uses it to lazily open one store per root.
type IndexOpener func(root string) (IndexStore, error)
