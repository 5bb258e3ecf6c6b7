package driving

import (
	"context"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

// QueryService exposes the read side of the page index. Results reflect
// exactly the state left by the most recent committed reconciliation
// pass.
type QueryService interface {
	// Search performs a full-text query over page titles and bodies.
	Search(ctx context.Context, root string, query string, limit int) ([]domain.SearchResult, error)

	// Recent lists page records ordered by update time, newest first.
	Recent(ctx context.Context, root string, limit int) ([]domain.Record, error)
}
