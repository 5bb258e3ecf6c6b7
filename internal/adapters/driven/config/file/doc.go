// Package file provides the TOML-backed configuration store.
// Configuration lives at ~/.hermes/config.toml and holds CLI
// preferences such as the default workspace root.
package file
