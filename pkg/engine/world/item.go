package world

// ItemType classifies items for hint and sphere bookkeeping.
type ItemType string

// Item types known to the solver. Unknown types are treated like ItemTypeItem
// for advancement purposes but are never noteworthy.
const (
	ItemTypeItem          ItemType = "Item"
	ItemTypeSong          ItemType = "Song"
	ItemTypeDungeonReward ItemType = "DungeonReward"
	ItemTypeEvent         ItemType = "Event"
	ItemTypeToken         ItemType = "Token"
	ItemTypeShop          ItemType = "Shop"
)

// Item represents an item placed at a location. The item is owned by (and
// collected into the state of) World, which may differ from the world of the
// location that holds it in multiworld games.
type Item struct {
	Name string
	// Kind is the solver identity. Progressive copies share one kind so
	// their counts add up. Defaults to Name.
	Kind string
	Type ItemType

	World int

	Advancement bool
	MajorItem   bool

	// Location is the location currently holding this item, if any.
	Location *Location
}

// NewItem creates a new item with the given name owned by the given world
func NewItem(name string, worldID int) *Item {
	return &Item{
		Name:  name,
		Kind:  name,
		Type:  ItemTypeItem,
		World: worldID,
	}
}

// NewAdvancementItem creates an item flagged as advancement and major
func NewAdvancementItem(name string, worldID int) *Item {
	item := NewItem(name, worldID)
	item.Advancement = true
	item.MajorItem = true
	return item
}

// NewEvent creates an internal event item. Events advance logic but are never
// shown to the player.
func NewEvent(name string, worldID int) *Item {
	item := NewItem(name, worldID)
	item.Type = ItemTypeEvent
	item.Advancement = true
	return item
}

// SolverKind returns the kind used for counting, falling back to the name.
func (i *Item) SolverKind() string {
	if i.Kind == "" {
		return i.Name
	}
	return i.Kind
}

// String returns the item name
func (i *Item) String() string {
	if i == nil {
		return "<nothing>"
	}
	return i.Name
}

// clone returns a detached copy of the item (no location back-pointer).
func (i *Item) clone() *Item {
	c := *i
	c.Location = nil
	return &c
}
