package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/workspace"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List project directories in the workspace",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	projects, err := workspace.ListProjects(workspaceRoot)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	if len(projects) == 0 {
		cmd.Println("No projects found.")
		return nil
	}
	for _, p := range projects {
		cmd.Println(p)
	}
	return nil
}
