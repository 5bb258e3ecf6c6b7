// Package sqlite implements the page index store on SQLite via the
// pure-Go modernc.org/sqlite driver.
//
// The index lives at {root}/.hermes/index.sqlite and holds one
// relational record per non-blank page (note_index) plus an FTS5
// shadow over titles and bodies (note_fts). It is a derived cache:
// fully rebuildable from the page files, applied one atomic
// transaction per reconciliation pass, and queried with parameterized
// statements only, so page content can never alter statement
// structure.
package sqlite
