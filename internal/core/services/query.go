package services

import (
	"context"
	"fmt"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// defaultLimit bounds queries when the caller passes a non-positive limit.
const defaultLimit = 20

// QueryService reads the page index. It shares open index stores with
// the workspace service through the same opener, so results reflect the
// most recent committed pass.
type QueryService struct {
	workspace *WorkspaceService
}

// NewQueryService creates a query service backed by the workspace
// service's index stores.
func NewQueryService(workspace *WorkspaceService) *QueryService {
	return &QueryService{workspace: workspace}
}

// Search performs a full-text query over page titles and bodies.
func (q *QueryService) Search(ctx context.Context, root, query string, limit int) ([]domain.SearchResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	store, err := q.store(ctx, root)
	if err != nil {
		return nil, err
	}
	return store.Search(ctx, query, limit)
}

// Recent lists page records ordered by update time, newest first.
func (q *QueryService) Recent(ctx context.Context, root string, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	store, err := q.store(ctx, root)
	if err != nil {
		return nil, err
	}
	return store.Recent(ctx, limit)
}

// store opens the index for root and guarantees the schema exists, so
// queries against a never-synced workspace return empty results rather
// than missing-table errors.
func (q *QueryService) store(ctx context.Context, root string) (driven.IndexStore, error) {
	store, err := q.workspace.indexStore(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return store, nil
}
