package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the page index from the workspace files",
	Long: `Forces a full index reconciliation pass from the pages currently on
disk. The index is rebuilt from scratch-equivalent state: every pass is
computed from the complete snapshot, so a stale or corrupted index
converges after one successful sync.`,
	RunE: runSyncCmd,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	if err := workspaceService.Resync(context.Background(), workspaceRoot); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Workspace %s indexed.\n", workspaceRoot)
	return nil
}
