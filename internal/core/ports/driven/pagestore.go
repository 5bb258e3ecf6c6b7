package driven

import (
	"context"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

// PageStore persists page files under a workspace root. The files are
// the durable source of truth; the index is derived from them.
type PageStore interface {
	// Load reads every existing page file under root. Slots without a
	// file are absent from the snapshot. An unreadable existing file is
	// reported in the returned error without preventing the remaining
	// slots from loading; the partial snapshot is still returned.
	Load(ctx context.Context, root string) (domain.Snapshot, error)

	// Save writes each slot's content to its page file, creating parent
	// directories as needed. Blank content deletes the slot's file; a
	// slot absent from the snapshot is left untouched. The first write
	// failure aborts the remaining writes and is returned with the
	// offending path.
	Save(ctx context.Context, root string, pages domain.Snapshot) error
}

// ChatStore persists the workspace chat transcript as opaque JSON.
type ChatStore interface {
	// LoadChat returns the stored transcript, or "[]" if none exists.
	LoadChat(ctx context.Context, root string) (string, error)

	// SaveChat overwrites the stored transcript.
	SaveChat(ctx context.Context, root string, transcript string) error
}
