package domain

// Record is the relational summary of one page's current saved content.
// A record exists for a slot iff the page content is non-blank; absence
// of a record is authoritative evidence the page is empty.
type Record struct {
	// Slot is the page identity.
	Slot Slot

	// Location is the absolute path of the page file.
	Location string

	// Title is derived from the first non-blank content line.
	Title string

	// Body is the full page content.
	Body string

	// WordCount is the number of whitespace-delimited tokens.
	WordCount int

	// CharCount is the number of characters (runes, not bytes).
	CharCount int

	// UpdatedUnix is the wall-clock second of the reconciliation
	// pass that produced this record. All records upserted in one
	// pass share the same value.
	UpdatedUnix int64
}

// ChangeOp is a single index operation for one slot. A nil Record
// deletes the slot's row and search shadow; a non-nil Record replaces
// both with fresh values.
type ChangeOp struct {
	Slot   Slot
	Record *Record
}

// ChangeSet is the ordered operation list for one reconciliation pass.
// It is computed as a pure function of a content snapshot and applied
// as a single atomic transaction.
type ChangeSet struct {
	// Ops holds one operation per slot, in enumeration order.
	Ops []ChangeOp
}
