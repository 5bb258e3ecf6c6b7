package cli

import (
	"testing"

	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/storage/memory"
	"github.com/hermes-labs/hermes-cli/internal/adapters/driven/workspace"
	"github.com/hermes-labs/hermes-cli/internal/core/services"
)

// setupTestServices wires the commands to real services over a temp
// workspace and an in-memory index, bypassing initServices.
func setupTestServices(t *testing.T) *memory.IndexStore {
	t.Helper()

	index := memory.NewIndexStore()
	pages := workspace.NewPageStore()
	ws := services.NewWorkspaceService(pages, pages, index.Open)

	origWorkspace := workspaceService
	origQuery := queryService
	origRoot := workspaceRoot

	workspaceService = ws
	queryService = services.NewQueryService(ws)
	workspaceRoot = t.TempDir()

	t.Cleanup(func() {
		workspaceService = origWorkspace
		queryService = origQuery
		workspaceRoot = origRoot
		ws.Close() //nolint:errcheck
	})

	return index
}
