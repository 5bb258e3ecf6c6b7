package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages, most recently updated first",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "maximum number of pages")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	records, err := queryService.Recent(context.Background(), workspaceRoot, listLimit)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No pages indexed. Run 'hermes sync' after editing pages.")
		return nil
	}

	for _, rec := range records {
		title := rec.Title
		if title == "" {
			title = "(untitled)"
		}
		updated := time.Unix(rec.UpdatedUnix, 0).Format("2006-01-02 15:04")
		cmd.Printf("  %-10s %-40s %5d words  %s\n", rec.Slot, title, rec.WordCount, updated)
	}
	return nil
}
