// Package workspace implements the filesystem adapters for a Hermes
// workspace root: page files ({root}/{slot}.md), the chat transcript
// ({root}/chat.json) and workspace discovery helpers. The page files
// are the durable source of truth; everything else is derived.
package workspace
