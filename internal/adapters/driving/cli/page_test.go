package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
)

// breakPage makes one page file unreadable and restores it on cleanup.
func breakPage(t *testing.T, slot domain.Slot) string {
	t.Helper()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	path := filepath.Join(workspaceRoot, slot.Filename())
	require.NoError(t, os.WriteFile(path, []byte("unreadable"), 0o644))
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { os.Chmod(path, 0o644) }) //nolint:errcheck
	return path
}

func TestSetCmd_ThenGetCmd(t *testing.T) {
	index := setupTestServices(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("# CLI Title\n\nbody from stdin"))
	rootCmd.SetArgs([]string{"set", "coral"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Page coral updated.")

	// The save reconciled the index.
	records := index.Records()
	require.Contains(t, records, domain.SlotCoral)
	assert.Equal(t, "CLI Title", records[domain.SlotCoral].Title)

	buf.Reset()
	rootCmd.SetArgs([]string{"get", "coral"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "# CLI Title\n\nbody from stdin", buf.String())
}

func TestSetCmd_BlankClearsPage(t *testing.T) {
	index := setupTestServices(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader("content"))
	rootCmd.SetArgs([]string{"set", "amber"})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, index.Records(), domain.SlotAmber)

	rootCmd.SetIn(strings.NewReader("   \n"))
	rootCmd.SetArgs([]string{"set", "amber"})
	require.NoError(t, rootCmd.Execute())
	assert.NotContains(t, index.Records(), domain.SlotAmber)
}

func TestGetCmd_ReadableSlotSurvivesPartialLoad(t *testing.T) {
	setupTestServices(t)

	require.NoError(t, os.WriteFile(
		filepath.Join(workspaceRoot, "coral.md"), []byte("still here"), 0o644))
	breakPage(t, domain.SlotSage)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"get", "coral"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "still here", buf.String())
}

func TestGetCmd_UnreadableSlotReportsLoadError(t *testing.T) {
	setupTestServices(t)
	badPath := breakPage(t, domain.SlotSage)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"get", "sage"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), badPath)
}

func TestSetCmd_PartialLoadPreservesUnreadablePage(t *testing.T) {
	setupTestServices(t)
	badPath := breakPage(t, domain.SlotSage)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader("new amber content"))
	rootCmd.SetArgs([]string{"set", "amber"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(workspaceRoot, "amber.md"))

	// The page that failed to load was not deleted by the save.
	assert.FileExists(t, badPath)
}

func TestGetCmd_UnknownSlot(t *testing.T) {
	setupTestServices(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"get", "teal"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}

func TestGetCmd_EmptyPage(t *testing.T) {
	setupTestServices(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"get", "sage"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
