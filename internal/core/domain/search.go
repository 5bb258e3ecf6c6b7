package domain

// SearchResult is a single full-text hit against the page index.
type SearchResult struct {
	// Slot is the matched page.
	Slot Slot

	// Title is the indexed title of the matched page.
	Title string

	// Snippet is a short excerpt around the matched terms.
	Snippet string
}
