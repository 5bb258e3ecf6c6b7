package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListProjects returns the sorted names of non-hidden subdirectories of
// root. Hidden directories such as .hermes are metadata, not projects.
// A missing root yields an empty list.
func ListProjects(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading workspace directory %s: %w", root, err)
	}

	var projects []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		projects = append(projects, entry.Name())
	}
	sort.Strings(projects)
	return projects, nil
}

// DefaultRoot returns the default workspace directory
// (~/Documents/Hermes), creating it if absent.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	root := filepath.Join(home, "Documents", "Hermes")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("creating default workspace %s: %w", root, err)
	}
	return root, nil
}
