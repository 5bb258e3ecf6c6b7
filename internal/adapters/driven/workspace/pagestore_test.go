package workspace

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

func TestPageStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewPageStore()
	ctx := context.Background()

	pages := domain.Snapshot{
		domain.SlotCoral: "# Notes\n\ncontent",
		domain.SlotSage:  "second page",
		domain.SlotSky:   "   \n",
	}
	require.NoError(t, store.Save(ctx, root, pages))

	got, err := store.Load(ctx, root)
	require.NoError(t, err)

	// Blank entries are absent: the load result equals the snapshot
	// restricted to non-blank pages.
	assert.Equal(t, domain.Snapshot{
		domain.SlotCoral: "# Notes\n\ncontent",
		domain.SlotSage:  "second page",
	}, got)
}

func TestPageStore_SaveBlankDeletesFile(t *testing.T) {
	root := t.TempDir()
	store := NewPageStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, root, domain.Snapshot{domain.SlotAmber: "text"}))
	path := filepath.Join(root, "amber.md")
	require.FileExists(t, path)

	require.NoError(t, store.Save(ctx, root, domain.Snapshot{domain.SlotAmber: "  \n "}))
	assert.NoFileExists(t, path)
}

func TestPageStore_SaveLeavesAbsentSlotsUntouched(t *testing.T) {
	root := t.TempDir()
	store := NewPageStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, root, domain.Snapshot{domain.SlotAmber: "existing"}))

	// A snapshot that says nothing about amber must not delete it.
	require.NoError(t, store.Save(ctx, root, domain.Snapshot{domain.SlotCoral: "new"}))
	assert.FileExists(t, filepath.Join(root, "amber.md"))
	assert.FileExists(t, filepath.Join(root, "coral.md"))
}

func TestPageStore_SaveCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "workspace")
	store := NewPageStore()

	err := store.Save(context.Background(), root, domain.Snapshot{domain.SlotCoral: "x"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "coral.md"))
}

func TestPageStore_LoadMissingRoot(t *testing.T) {
	store := NewPageStore()
	got, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPageStore_LoadSkipsUnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}

	root := t.TempDir()
	store := NewPageStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, root, domain.Snapshot{
		domain.SlotCoral: "readable",
		domain.SlotSage:  "unreadable",
	}))
	badPath := filepath.Join(root, "sage.md")
	require.NoError(t, os.Chmod(badPath, 0o000))
	defer os.Chmod(badPath, 0o644) //nolint:errcheck

	got, err := store.Load(ctx, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), badPath)

	// The readable page still loads.
	assert.Equal(t, "readable", got[domain.SlotCoral])
	_, ok := got[domain.SlotSage]
	assert.False(t, ok)
}

func TestPageStore_Chat(t *testing.T) {
	root := t.TempDir()
	store := NewPageStore()
	ctx := context.Background()

	transcript, err := store.LoadChat(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "[]", transcript)

	require.NoError(t, store.SaveChat(ctx, root, `[{"role":"user"}]`))
	transcript, err = store.LoadChat(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, `[{"role":"user"}]`, transcript)
}

func TestListProjects(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "beta"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alpha"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hermes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "coral.md"), []byte("x"), 0o644))

	projects, err := ListProjects(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, projects)
}

func TestListProjects_MissingRoot(t *testing.T) {
	projects, err := ListProjects(filepath.Join(t.TempDir(), "gone"))
	require.NoError(t, err)
	assert.Nil(t, projects)
}
