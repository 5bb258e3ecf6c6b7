package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hermes-labs/hermes-cli/internal/core/domain"
	"github.com/hermes-labs/hermes-cli/internal/logger"
)

var getCmd = &cobra.Command{
	Use:   "get [slot]",
	Short: "Print a page's content",
	Long: `Prints the content of one page. Valid slots: coral, amber, sage,
sky, lavender. Loading also reconciles the search index.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set [slot] [file]",
	Short: "Replace a page's content",
	Long: `Replaces the content of one page from a file, or from stdin when
the file argument is "-" or omitted. Blank content deletes the page.
Saving also reconciles the search index.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	slot, err := domain.ParseSlot(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}

	pages, loadErr := workspaceService.LoadPages(context.Background(), workspaceRoot)

	content, ok := pages[slot]
	if !ok {
		// Unreadable pages are absent from the snapshot, so the load
		// error is the better explanation when there is one.
		if loadErr != nil {
			return fmt.Errorf("load failed: %w", loadErr)
		}
		return fmt.Errorf("%w: page %s is empty", domain.ErrNotFound, slot)
	}
	if loadErr != nil {
		logger.Warn("some pages failed to load: %v", loadErr)
	}

	cmd.Print(content)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	slot, err := domain.ParseSlot(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}

	var content []byte
	if len(args) < 2 || args[1] == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	ctx := context.Background()

	// Load current pages first so the other slots are preserved. A slot
	// that failed to read is absent from the snapshot, and Save leaves
	// absent slots untouched, so saving the rest is still safe.
	pages, loadErr := workspaceService.LoadPages(ctx, workspaceRoot)
	if loadErr != nil {
		logger.Warn("some pages failed to load: %v", loadErr)
	}
	pages[slot] = string(content)

	if err := workspaceService.SavePages(ctx, workspaceRoot, pages); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	if domain.IsBlank(string(content)) {
		cmd.Printf("Page %s cleared.\n", slot)
	} else {
		cmd.Printf("Page %s updated.\n", slot)
	}
	return nil
}
