package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
)

// Ensure PageStore implements the interfaces.
var (
	_ driven.PageStore = (*PageStore)(nil)
	_ driven.ChatStore = (*PageStore)(nil)
)

// chatFile is the workspace chat transcript file name.
const chatFile = "chat.json"

// PageStore reads and writes page files under a workspace root.
type PageStore struct{}

// NewPageStore creates a filesystem page store.
func NewPageStore() *PageStore {
	return &PageStore{}
}

// Load reads every existing page file under root. A missing root or
// missing page file is not an error: the slot is simply absent from
// the snapshot. An unreadable existing file is collected into the
// returned error without blocking the remaining slots.
func (p *PageStore) Load(_ context.Context, root string) (domain.Snapshot, error) {
	pages := make(domain.Snapshot)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return pages, nil
	}

	var errs []error
	for _, slot := range domain.Slots() {
		path := filepath.Join(root, slot.Filename())
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Errorf("reading %s: %w", path, err))
			continue
		}
		pages[slot] = string(content)
	}

	return pages, errors.Join(errs...)
}

// Save writes each slot's content under root in enumeration order.
// Blank content deletes the slot's file if present; a slot absent from
// the snapshot is left untouched, so a partial snapshot (one produced
// by a load that skipped an unreadable file) never destroys a page it
// makes no statement about. The first failure aborts the remaining
// writes.
func (p *PageStore) Save(_ context.Context, root string, pages domain.Snapshot) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("creating workspace directory %s: %w", root, err)
	}

	for _, slot := range domain.Slots() {
		path := filepath.Join(root, slot.Filename())
		content, ok := pages[slot]
		if !ok {
			continue
		}

		if domain.IsBlank(content) {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing %s: %w", path, err)
			}
			continue
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}

// LoadChat returns the stored chat transcript, or "[]" if none exists.
func (p *PageStore) LoadChat(_ context.Context, root string) (string, error) {
	path := filepath.Join(root, chatFile)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "[]", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(content), nil
}

// SaveChat overwrites the stored chat transcript.
func (p *PageStore) SaveChat(_ context.Context, root string, transcript string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("creating workspace directory %s: %w", root, err)
	}
	path := filepath.Join(root, chatFile)
	if err := os.WriteFile(path, []byte(transcript), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
