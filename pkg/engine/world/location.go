package world

import "fmt"

// Location is a check that holds at most one item.
type Location struct {
	Name   string
	World  int
	Region *Region
	Rule   Rule
	Item   *Item

	// Internal marks abstract logic events. They are needed for correctness
	// but never displayed.
	Internal bool
	// Locked marks a fixed placement that is never a hint candidate.
	Locked bool
}

// Place puts item at the location, replacing whatever was there.
func (l *Location) Place(item *Item) {
	l.Item = item
	if item != nil {
		item.Location = l
	}
}

// Filled returns true if the location holds an item
func (l *Location) Filled() bool {
	return l.Item != nil
}

// HasAdvancement returns true if the location holds an advancement item
func (l *Location) HasAdvancement() bool {
	return l.Item != nil && l.Item.Advancement
}

// String returns the location name qualified with its world
func (l *Location) String() string {
	return fmt.Sprintf("%s (world %d)", l.Name, l.World+1)
}
