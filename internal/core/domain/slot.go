package domain

import "strings"

// Slot identifies one of the fixed pages in a workspace.
// The set of slots is versioned: adding or removing one is a
// data-migrating change handled by the index store on schema ensure.
type Slot string

const (
	// SlotCoral is the first page.
	SlotCoral Slot = "coral"
	// SlotAmber is the second page.
	SlotAmber Slot = "amber"
	// SlotSage is the third page.
	SlotSage Slot = "sage"
	// SlotSky is the fourth page.
	SlotSky Slot = "sky"
	// SlotLavender is the fifth page.
	SlotLavender Slot = "lavender"
)

// slots holds the canonical enumeration order.
var slots = []Slot{SlotCoral, SlotAmber, SlotSage, SlotSky, SlotLavender}

// Slots returns every slot in canonical order.
// Callers must not mutate the returned slice.
func Slots() []Slot {
	return slots
}

// ParseSlot validates a slot key.
func ParseSlot(key string) (Slot, error) {
	for _, s := range slots {
		if string(s) == key {
			return s, nil
		}
	}
	return "", ErrInvalidSlot
}

// Filename returns the page file name for the slot.
func (s Slot) Filename() string {
	return string(s) + ".md"
}

// String returns the slot key.
func (s Slot) String() string {
	return string(s)
}

// Snapshot maps each slot to its current page content.
// Slots absent from the map are treated as empty downstream.
type Snapshot map[Slot]string

// IsBlank reports whether content is empty after trimming whitespace.
// Blank content means the page does not exist: its file is removed
// and its index rows are deleted.
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}
