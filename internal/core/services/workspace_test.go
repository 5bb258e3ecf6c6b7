package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/storage/memory"
	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/workspace"
	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/logger"
)

// setupWorkspace wires a workspace service over the real filesystem
// page store and an in-memory index.
func setupWorkspace(t *testing.T) (*WorkspaceService, *memory.IndexStore, string) {
	t.Helper()
	index := memory.NewIndexStore()
	pages := workspace.NewPageStore()
	svc := NewWorkspaceService(pages, pages, index.Open)
	t.Cleanup(func() { assert.NoError(t, svc.Close()) })
	return svc, index, t.TempDir()
}

func TestSavePages_ReconcilesIndex(t *testing.T) {
	svc, index, root := setupWorkspace(t)
	ctx := context.Background()

	err := svc.SavePages(ctx, root, domain.Snapshot{
		domain.SlotCoral: "# Hello\nworld",
		domain.SlotAmber: "   ", // blank
	})
	require.NoError(t, err)

	records := index.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Hello", records[domain.SlotCoral].Title)
	assert.Equal(t, 1, index.Applied)
}

func TestLoadPages_ReconcilesIndex(t *testing.T) {
	svc, _, root := setupWorkspace(t)
	ctx := context.Background()

	require.NoError(t, svc.SavePages(ctx, root, domain.Snapshot{domain.SlotSage: "on disk"}))

	// A fresh index observing only the load still converges, since
	// every pass is computed from the complete snapshot.
	fresh := memory.NewIndexStore()
	pages := workspace.NewPageStore()
	svc2 := NewWorkspaceService(pages, pages, fresh.Open)
	defer svc2.Close() //nolint:errcheck

	got, err := svc2.LoadPages(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "on disk", got[domain.SlotSage])
	assert.Len(t, fresh.Records(), 1)
}

func TestSavePages_IndexFailureIsSwallowedAndLogged(t *testing.T) {
	svc, index, root := setupWorkspace(t)
	index.FailApply = errors.New("disk full")

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	err := svc.SavePages(context.Background(), root, domain.Snapshot{domain.SlotCoral: "content"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "disk full")

	// The page file was written regardless.
	got, err := svc.LoadPages(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "content", got[domain.SlotCoral])
}

func TestResync_SurfacesIndexError(t *testing.T) {
	svc, index, root := setupWorkspace(t)
	index.FailApply = errors.New("locked")

	err := svc.Resync(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestResync_RebuildsFromDisk(t *testing.T) {
	svc, index, root := setupWorkspace(t)
	ctx := context.Background()

	require.NoError(t, svc.SavePages(ctx, root, domain.Snapshot{domain.SlotSky: "page"}))
	before := index.Applied

	require.NoError(t, svc.Resync(ctx, root))
	assert.Equal(t, before+1, index.Applied)
	assert.Len(t, index.Records(), 1)
}

func TestRunPass_LogsCorrelatedPassID(t *testing.T) {
	svc, _, root := setupWorkspace(t)

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)
	logger.SetVerbose(true)
	defer logger.SetVerbose(false)

	err := svc.SavePages(context.Background(), root, domain.Snapshot{domain.SlotCoral: "x"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "index pass ")
	assert.Contains(t, buf.String(), "applied")
}

func TestRunPass_StaleGenerationSkipped(t *testing.T) {
	svc, index, root := setupWorkspace(t)

	// Pretend a newer pass already committed; the next pass is planned
	// from an older snapshot and must not clobber it.
	state := svc.rootState(root)
	state.applied = 5

	err := svc.runPass(context.Background(), root, domain.Snapshot{domain.SlotCoral: "stale"})
	require.NoError(t, err)
	assert.Equal(t, 0, index.Applied)
}

func TestChat_Passthrough(t *testing.T) {
	svc, _, root := setupWorkspace(t)
	ctx := context.Background()

	transcript, err := svc.LoadChat(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "[]", transcript)

	require.NoError(t, svc.SaveChat(ctx, root, `[{"role":"assistant"}]`))
	transcript, err = svc.LoadChat(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, `[{"role":"assistant"}]`, transcript)
}

func TestQueryService_SearchAndRecent(t *testing.T) {
	svc, _, root := setupWorkspace(t)
	ctx := context.Background()

	require.NoError(t, svc.SavePages(ctx, root, domain.Snapshot{
		domain.SlotCoral: "# Groceries\nmilk eggs",
	}))

	q := NewQueryService(svc)
	results, err := q.Search(ctx, root, "milk", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.SlotCoral, results[0].Slot)

	records, err := q.Recent(ctx, root, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Groceries", records[0].Title)
}

func TestQueryService_EmptyQueryRejected(t *testing.T) {
	svc, _, _ := setupWorkspace(t)
	q := NewQueryService(svc)
	_, err := q.Search(context.Background(), "root", "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
