package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

const (
	// metaDir is the hidden metadata directory under a workspace root.
	metaDir = ".hermes"
	// dbFile is the index store file name.
	dbFile = "index.sqlite"
)

// Store is the SQLite-backed page index for one workspace root.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the index store for the given
// workspace root at {root}/.hermes/index.sqlite.
func NewStore(root string) (*Store, error) {
	dir := filepath.Join(root, metaDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating metadata directory %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", dbPath, err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Open is a driven.IndexOpener for production wiring.
func Open(root string) (driven.IndexStore, error) {
	return NewStore(root)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the record table, recency index and FTS5 shadow
// if absent. Idempotent. Rows for slot keys outside the current
// enumeration (left behind by a slot-set change between versions) are
// pruned here, so the index never answers for retired slots.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS note_index (
			slot_key TEXT PRIMARY KEY,
			file_path TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			char_count INTEGER NOT NULL,
			updated_unix INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_note_index_updated ON note_index(updated_unix DESC);
		CREATE VIRTUAL TABLE IF NOT EXISTS note_fts USING fts5(slot_key UNINDEXED, title, body);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema in %s: %w", s.path, err)
	}

	return s.pruneRetiredSlots(ctx)
}

// pruneRetiredSlots deletes record and shadow rows whose slot key is
// not part of the current enumeration.
func (s *Store) pruneRetiredSlots(ctx context.Context) error {
	slots := domain.Slots()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(slots)), ", ")
	args := make([]any, len(slots))
	for i, slot := range slots {
		args[i] = string(slot)
	}

	for _, table := range []string{"note_index", "note_fts"} {
		stmt := fmt.Sprintf("DELETE FROM %s WHERE slot_key NOT IN (%s)", table, placeholders)
		if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("pruning retired slots from %s: %w", table, err)
		}
	}
	return nil
}

// Apply executes one reconciliation pass as a single transaction.
// Either every operation commits or none do; a rejected statement
// leaves the index at its pre-pass state. All values are bound
// parameters: content cannot terminate a statement or touch another
// slot's rows.
func (s *Store) Apply(ctx context.Context, set domain.ChangeSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction on %s: %w", s.path, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, op := range set.Ops {
		if op.Record == nil {
			if err := deleteSlot(ctx, tx, op.Slot); err != nil {
				return fmt.Errorf("deleting %s in %s: %w", op.Slot, s.path, err)
			}
			continue
		}
		if err := upsertRecord(ctx, tx, op.Record); err != nil {
			return fmt.Errorf("upserting %s in %s: %w", op.Slot, s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing pass on %s: %w", s.path, err)
	}
	return nil
}

// deleteSlot removes a slot's record and shadow rows. No-op if absent.
func deleteSlot(ctx context.Context, tx *sql.Tx, slot domain.Slot) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_index WHERE slot_key = ?", string(slot)); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DELETE FROM note_fts WHERE slot_key = ?", string(slot))
	return err
}

// upsertRecord replaces a slot's record and shadow rows. The shadow is
// deleted before reinsertion so a slot never carries duplicate or
// stale FTS rows.
func upsertRecord(ctx context.Context, tx *sql.Tx, rec *domain.Record) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO note_index (slot_key, file_path, title, body, word_count, char_count, updated_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET
			file_path = excluded.file_path,
			title = excluded.title,
			body = excluded.body,
			word_count = excluded.word_count,
			char_count = excluded.char_count,
			updated_unix = excluded.updated_unix
	`, string(rec.Slot), rec.Location, rec.Title, rec.Body, rec.WordCount, rec.CharCount, rec.UpdatedUnix)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM note_fts WHERE slot_key = ?", string(rec.Slot)); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO note_fts (slot_key, title, body) VALUES (?, ?, ?)
	`, string(rec.Slot), rec.Title, rec.Body)
	return err
}

// Search performs a full-text query over titles and bodies, best
// matches first. The user query is passed as a bound parameter and
// quoted per token, so FTS operator characters in it cannot change the
// match expression.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot_key, title, snippet(note_fts, 2, '[', ']', '…', 12)
		FROM note_fts
		WHERE note_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", s.path, err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.SearchResult
		var slotKey string
		if err := rows.Scan(&slotKey, &r.Title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		slot, err := domain.ParseSlot(slotKey)
		if err != nil {
			return nil, fmt.Errorf("search result for %q: %w", slotKey, err)
		}
		r.Slot = slot
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}

// ftsQuery turns free text into an FTS5 match expression: each token
// becomes a quoted string term, joined implicitly as AND.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " ")
}

// Recent lists records most recently updated first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot_key, file_path, title, body, word_count, char_count, updated_unix
		FROM note_index
		ORDER BY updated_unix DESC, slot_key
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing records in %s: %w", s.path, err)
	}
	defer rows.Close()

	var records []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.Record
		var slotKey string
		if err := rows.Scan(&slotKey, &rec.Location, &rec.Title, &rec.Body,
			&rec.WordCount, &rec.CharCount, &rec.UpdatedUnix); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		slot, err := domain.ParseSlot(slotKey)
		if err != nil {
			return nil, fmt.Errorf("record for %q: %w", slotKey, err)
		}
		rec.Slot = slot
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
