// Package domain defines the core business entities for Hermes.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Slot: One of the fixed page identities in a workspace
//   - Snapshot: The current content of every page
//   - Record: The indexed summary of one page's saved content
//   - ChangeSet: One reconciliation pass worth of index operations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
