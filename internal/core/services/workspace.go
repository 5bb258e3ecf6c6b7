package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driving"
	"github.com/hermes-labs/hermes-cli/internal/logger"
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService persists pages through the PageStore and keeps the
// derived index reconciled. Page file errors are surfaced to callers;
// index errors are logged and discarded, because the index is a
// best-effort cache fully re-derivable from the page files.
type WorkspaceService struct {
	pages     driven.PageStore
	chat      driven.ChatStore
	openIndex driven.IndexOpener

	mu     sync.Mutex
	roots  map[string]*rootState
	stores map[string]driven.IndexStore
}

// rootState serializes reconciliation passes for one workspace root.
// gen orders passes by snapshot age; a pass whose generation is older
// than the last applied one is dropped rather than allowed to clobber
// a newer result.
type rootState struct {
	run     sync.Mutex
	gen     uint64
	applied uint64
}

// NewWorkspaceService creates a workspace service.
func NewWorkspaceService(
	pages driven.PageStore,
	chat driven.ChatStore,
	openIndex driven.IndexOpener,
) *WorkspaceService {
	return &WorkspaceService{
		pages:     pages,
		chat:      chat,
		openIndex: openIndex,
		roots:     make(map[string]*rootState),
		stores:    make(map[string]driven.IndexStore),
	}
}

// LoadPages reads all pages under root, then reconciles the index from
// the loaded snapshot. Per-file read failures are returned alongside
// the partial snapshot; the index pass still runs with what loaded.
func (s *WorkspaceService) LoadPages(ctx context.Context, root string) (domain.Snapshot, error) {
	pages, err := s.pages.Load(ctx, root)
	s.syncIndex(ctx, root, pages)
	return pages, err
}

// SavePages writes the snapshot under root, then reconciles the index.
// The index pass runs even when a write failed part-way, using the
// supplied snapshot as the best available view of intent; the next
// successful pass self-heals any divergence.
func (s *WorkspaceService) SavePages(ctx context.Context, root string, pages domain.Snapshot) error {
	err := s.pages.Save(ctx, root, pages)
	s.syncIndex(ctx, root, pages)
	return err
}

// Resync rebuilds the index from the current on-disk pages and surfaces
// the index error, unlike the implicit pass after load/save.
func (s *WorkspaceService) Resync(ctx context.Context, root string) error {
	pages, err := s.pages.Load(ctx, root)
	if err != nil {
		return fmt.Errorf("loading pages: %w", err)
	}
	return s.runPass(ctx, root, pages)
}

// LoadChat returns the workspace chat transcript.
func (s *WorkspaceService) LoadChat(ctx context.Context, root string) (string, error) {
	return s.chat.LoadChat(ctx, root)
}

// SaveChat overwrites the workspace chat transcript.
func (s *WorkspaceService) SaveChat(ctx context.Context, root string, transcript string) error {
	return s.chat.SaveChat(ctx, root, transcript)
}

// Close releases all open index stores.
func (s *WorkspaceService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for root, store := range s.stores {
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.stores, root)
	}
	return firstErr
}

// syncIndex runs a reconciliation pass and deliberately discards the
// result. This is the only place index errors are dropped, and every
// drop is logged.
func (s *WorkspaceService) syncIndex(ctx context.Context, root string, pages domain.Snapshot) {
	if err := s.runPass(ctx, root, pages); err != nil {
		logger.Error("index sync for %s: %v", root, err)
	}
}

// runPass executes one reconciliation pass for root. Passes for the
// same root are serialized, and a pass planned from an older snapshot
// than one already applied is skipped. The pass ID exists purely to
// correlate log lines; the planner and its output stay free of it.
func (s *WorkspaceService) runPass(ctx context.Context, root string, pages domain.Snapshot) error {
	state := s.rootState(root)
	passID := uuid.NewString()

	state.run.Lock()
	state.gen++
	gen := state.gen
	set := PlanSync(root, pages, time.Now())
	state.run.Unlock()

	store, err := s.indexStore(root)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	state.run.Lock()
	defer state.run.Unlock()

	if gen < state.applied {
		logger.Debug("index pass %s superseded, skipping", passID)
		return nil
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	if err := store.Apply(ctx, set); err != nil {
		return fmt.Errorf("applying pass %s: %w", passID, err)
	}
	state.applied = gen

	logger.Debug("index pass %s applied for %s (%d ops)", passID, root, len(set.Ops))
	return nil
}

// rootState returns the serialization state for root, creating it on
// first use.
func (s *WorkspaceService) rootState(root string) *rootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.roots[root]
	if !ok {
		state = &rootState{}
		s.roots[root] = state
	}
	return state
}

// indexStore returns the open index store for root, opening it on
// first use.
func (s *WorkspaceService) indexStore(root string) (driven.IndexStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.stores[root]; ok {
		return store, nil
	}
	store, err := s.openIndex(root)
	if err != nil {
		return nil, err
	}
	s.stores[root] = store
	return store, nil
}
