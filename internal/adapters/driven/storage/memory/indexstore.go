// Package memory provides in-memory implementations of driven ports
// for tests and wiring without a real SQLite file.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// Search is a naive substring match over title and body, sufficient
// for exercising the reconciliation flow.
type IndexStore struct {
	mu      sync.RWMutex
	records map[domain.Slot]domain.Record

	// Applied counts committed passes; tests use it to observe
	// stale-pass suppression.
	Applied int

	// FailApply, when set, makes Apply return the error without
	// mutating state, mimicking a rejected transaction.
	FailApply error
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{records: make(map[domain.Slot]domain.Record)}
}

// Open is a driven.IndexOpener returning the same store for any root.
func (s *IndexStore) Open(string) (driven.IndexStore, error) {
	return s, nil
}

// EnsureSchema is a no-op for the in-memory store.
func (s *IndexStore) EnsureSchema(context.Context) error {
	return nil
}

// Apply replaces the indexed state for every slot in the change set.
func (s *IndexStore) Apply(_ context.Context, set domain.ChangeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailApply != nil {
		return s.FailApply
	}
	for _, op := range set.Ops {
		if op.Record == nil {
			delete(s.records, op.Slot)
			continue
		}
		s.records[op.Slot] = *op.Record
	}
	s.Applied++
	return nil
}

// Search returns records whose title or body contains the query.
func (s *IndexStore) Search(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []domain.SearchResult
	for _, rec := range s.records {
		if len(results) >= limit {
			break
		}
		if strings.Contains(rec.Title, query) || strings.Contains(rec.Body, query) {
			results = append(results, domain.SearchResult{Slot: rec.Slot, Title: rec.Title})
		}
	}
	return results, nil
}

// Recent lists records newest first.
func (s *IndexStore) Recent(_ context.Context, limit int) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].UpdatedUnix != records[j].UpdatedUnix {
			return records[i].UpdatedUnix > records[j].UpdatedUnix
		}
		return records[i].Slot < records[j].Slot
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close is a no-op for the in-memory store.
func (s *IndexStore) Close() error {
	return nil
}

// Records returns a copy of the current indexed state.
func (s *IndexStore) Records() map[domain.Slot]domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.Slot]domain.Record, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out
}
