package services

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

// titleLimit is the maximum title length in characters (not bytes).
const titleLimit = 120

// PlanSync computes the index operations needed to reconcile the page
// index with the given snapshot. It is a pure function: no I/O, no
// database access. Slots absent from the snapshot are treated as empty
// and planned as deletions, so a pass computed from a complete snapshot
// fully reconciles the index regardless of its prior state.
//
// All records in one pass share a single wall-clock timestamp taken at
// plan time, truncated to seconds.
func PlanSync(root string, pages domain.Snapshot, now time.Time) domain.ChangeSet {
	set := domain.ChangeSet{
		Ops: make([]domain.ChangeOp, 0, len(domain.Slots())),
	}
	updated := now.Unix()

	for _, slot := range domain.Slots() {
		content := pages[slot]
		if domain.IsBlank(content) {
			set.Ops = append(set.Ops, domain.ChangeOp{Slot: slot})
			continue
		}

		set.Ops = append(set.Ops, domain.ChangeOp{
			Slot: slot,
			Record: &domain.Record{
				Slot:        slot,
				Location:    filepath.Join(root, slot.Filename()),
				Title:       ExtractTitle(content),
				Body:        content,
				WordCount:   WordCount(content),
				CharCount:   len([]rune(content)),
				UpdatedUnix: updated,
			},
		})
	}

	return set
}

// ExtractTitle derives a page title from its content: the first line
// that is non-blank after stripping leading heading markers and
// whitespace, truncated to 120 characters. Returns "" when no line
// qualifies.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if title == "" {
			continue
		}
		runes := []rune(title)
		if len(runes) > titleLimit {
			return string(runes[:titleLimit])
		}
		return title
	}
	return ""
}

// WordCount counts whitespace-delimited non-empty tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
