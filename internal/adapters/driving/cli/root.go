// Package cli implements the cobra command surface for Hermes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/hermes-labs/hermes-cli/internal/adapters/driven/config/file"
	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/storage/sqlite"
	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/workspace"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driven"
	"github.com/hermes-labs/hermes-cli/internal/core/ports/driving"
	"github.com/hermes-labs/hermes-cli/internal/core/services"
	"github.com/hermes-labs/hermes-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands; assigned in initServices and
// replaceable in tests.
var (
	workspaceService driving.WorkspaceService
	queryService     driving.QueryService
	configStore      driven.ConfigStore
	workspaceRoot    string
)

var (
	flagWorkspace string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "hermes",
	Short: "Hermes workspace pages and search index",
	Long: `Hermes keeps a small fixed set of markdown pages as the source of
truth in a workspace directory and maintains a derived SQLite index
(records plus full-text search) reconciled on every load and save.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "",
		"workspace root directory (defaults to configured or ~/Documents/Hermes)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the adapters and core services. Tests bypass this
// by assigning the package-level services directly.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if workspaceService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	root := flagWorkspace
	if root == "" {
		root = cfg.GetString("workspace.path")
	}
	if root == "" {
		root, err = workspace.DefaultRoot()
		if err != nil {
			return fmt.Errorf("resolving workspace: %w", err)
		}
	}
	workspaceRoot = root

	pages := workspace.NewPageStore()
	ws := services.NewWorkspaceService(pages, pages, sqlite.Open)
	workspaceService = ws
	queryService = services.NewQueryService(ws)

	return nil
}
