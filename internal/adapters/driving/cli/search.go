package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search page titles and bodies",
	Long: `Performs a full-text search over the page index and prints the
matching pages with a snippet around the matched terms.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	results, err := queryService.Search(context.Background(), workspaceRoot, args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("  [%d] %s (%s)\n", i+1, title, r.Slot)
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
	}
	return nil
}
