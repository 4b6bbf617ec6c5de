// Package world provides the world graph primitives: regions linked by
// entrances, locations holding items, and the access rules gating them.
// Several worlds coexist in multiworld generation; each is identified by its
// index in the worlds slice.
package world

import (
	"errors"
	"fmt"
)

// DefaultGoalItem is the goal item kind used when a world does not set one.
const DefaultGoalItem = "Triforce"

// World represents one player's game graph with encapsulated storage
type World struct {
	ID int

	// Modes are the traversal mode names; empty means a single default mode.
	Modes []string
	// StartModes are the modes in which Root is initially reached; empty means all.
	StartModes []Mode

	Root *Region

	// GoalItem and GoalCount form the win condition: the world is won once
	// GoalCount items of kind GoalItem are collected.
	GoalItem  string
	GoalCount int

	// StartingItems are granted before any search begins.
	StartingItems []*Item
	// SkippedLocations are pseudo-starting locations whose items are granted
	// up front (sphere -1).
	SkippedLocations []string

	// MaxProgressions caps how many copies of a kind can matter. Missing
	// kinds are filled by CountProgressions.
	MaxProgressions map[string]int

	// MiscHintItems maps a hint type to the item name it points at.
	MiscHintItems map[string]string
	// MiscHintLocations records where each misc hint item was first found.
	MiscHintLocations map[string]*Location

	// DungeonRewardsHinted enables recording where this world's dungeon
	// rewards are, keyed by item name.
	DungeonRewardsHinted  bool
	HintedRewardLocations map[string]*Location

	regions   []*Region
	locations []*Location
	entrances []*Entrance

	regionDir   map[string]*Region
	locationDir map[string]*Location
	entranceDir map[string]*Entrance
}

// New creates a new empty world with the given id
func New(id int) *World {
	return &World{
		ID:                    id,
		GoalItem:              DefaultGoalItem,
		GoalCount:             1,
		MaxProgressions:       make(map[string]int),
		MiscHintItems:         make(map[string]string),
		MiscHintLocations:     make(map[string]*Location),
		HintedRewardLocations: make(map[string]*Location),
		regionDir:             make(map[string]*Region),
		locationDir:           make(map[string]*Location),
		entranceDir:           make(map[string]*Entrance),
	}
}

// AddRegion adds a region. The first region added becomes Root.
// Returns the existing region if the name is already taken.
func (w *World) AddRegion(name string) *Region {
	if r, ok := w.regionDir[name]; ok {
		return r
	}
	r := NewRegion(name, w.ID)
	w.regions = append(w.regions, r)
	w.regionDir[name] = r
	if w.Root == nil {
		w.Root = r
	}
	return r
}

// AddLocation adds a location to region gated by rule
func (w *World) AddLocation(region *Region, name string, rule Rule) *Location {
	if rule == nil {
		rule = Always
	}
	loc := &Location{
		Name:   name,
		World:  w.ID,
		Region: region,
		Rule:   rule,
	}
	region.Locations = append(region.Locations, loc)
	w.locations = append(w.locations, loc)
	w.locationDir[name] = loc
	return loc
}

// AddEvent adds an internal location holding a fresh event item of the same name
func (w *World) AddEvent(region *Region, name string, rule Rule) *Location {
	loc := w.AddLocation(region, name, rule)
	loc.Internal = true
	loc.Locked = true
	loc.Place(NewEvent(name, w.ID))
	return loc
}

// Connect adds an entrance from one region to another gated by rule
func (w *World) Connect(name string, from, to *Region, rule Rule) *Entrance {
	if rule == nil {
		rule = Always
	}
	e := &Entrance{
		Name:   name,
		World:  w.ID,
		Source: from,
		Target: to,
		Rule:   rule,
	}
	from.Exits = append(from.Exits, e)
	w.entrances = append(w.entrances, e)
	w.entranceDir[name] = e
	return e
}

// Region returns a region by name, or nil if not found
func (w *World) Region(name string) *Region {
	return w.regionDir[name]
}

// Location returns a location by name, or nil if not found
func (w *World) Location(name string) *Location {
	return w.locationDir[name]
}

// Entrance returns an entrance by name, or nil if not found
func (w *World) Entrance(name string) *Entrance {
	return w.entranceDir[name]
}

// Regions returns all regions in declaration order
func (w *World) Regions() []*Region {
	return w.regions
}

// Locations returns all locations in declaration order
func (w *World) Locations() []*Location {
	return w.locations
}

// Entrances returns all entrances in declaration order
func (w *World) Entrances() []*Entrance {
	return w.entrances
}

// FilledLocations returns all locations holding an item
func (w *World) FilledLocations() []*Location {
	var out []*Location
	for _, loc := range w.locations {
		if loc.Filled() {
			out = append(out, loc)
		}
	}
	return out
}

// ShuffledEntrances returns the entrances whose targets are randomized
func (w *World) ShuffledEntrances() []*Entrance {
	var out []*Entrance
	for _, e := range w.entrances {
		if e.Shuffled {
			out = append(out, e)
		}
	}
	return out
}

// EntranceShuffle returns true if any entrance in the world is shuffled
func (w *World) EntranceShuffle() bool {
	for _, e := range w.entrances {
		if e.Shuffled {
			return true
		}
	}
	return false
}

// MaxProgression returns how many copies of kind can still matter.
func (w *World) MaxProgression(kind string) int {
	return w.MaxProgressions[kind]
}

// IsGoalItem returns true if item counts towards this world's win condition
func (w *World) IsGoalItem(item *Item) bool {
	return item != nil && item.SolverKind() == w.goalItem()
}

func (w *World) goalItem() string {
	if w.GoalItem == "" {
		return DefaultGoalItem
	}
	return w.GoalItem
}

// Goal returns the goal item kind and the number needed
func (w *World) Goal() (string, int) {
	count := w.GoalCount
	if count <= 0 {
		count = 1
	}
	return w.goalItem(), count
}

// StartsIn returns true if Root is initially reached in mode m
func (w *World) StartsIn(m Mode) bool {
	if len(w.StartModes) == 0 {
		return w.IsValidMode(m)
	}
	for _, sm := range w.StartModes {
		if sm == m {
			return true
		}
	}
	return false
}

// Validation errors
var (
	ErrNoRoot          = errors.New("world has no root region")
	ErrUnknownRegion   = errors.New("unknown region")
	ErrUnknownLocation = errors.New("unknown location")
	ErrTooManyModes    = errors.New("too many traversal modes")
	ErrWorldID         = errors.New("world id does not match position")
)

// Validate checks the world for structural issues
func (w *World) Validate() error {
	if w.Root == nil {
		return ErrNoRoot
	}
	if len(w.Modes) > MaxModes {
		return fmt.Errorf("%w: %d > %d", ErrTooManyModes, len(w.Modes), MaxModes)
	}
	for _, m := range w.StartModes {
		if !w.IsValidMode(m) {
			return fmt.Errorf("start mode %d is not declared", m)
		}
	}
	for _, e := range w.entrances {
		if e.Target != nil && w.regionDir[e.Target.Name] != e.Target {
			return fmt.Errorf("entrance %q: %w %q", e.Name, ErrUnknownRegion, e.Target.Name)
		}
		if e.ModeSwitch != nil && !w.IsValidMode(*e.ModeSwitch) {
			return fmt.Errorf("entrance %q switches to undeclared mode %d", e.Name, *e.ModeSwitch)
		}
	}
	for _, name := range w.SkippedLocations {
		if w.locationDir[name] == nil {
			return fmt.Errorf("skipped location: %w %q", ErrUnknownLocation, name)
		}
	}
	return nil
}

// ValidateAll validates every world and checks that ids match positions,
// since per-world state is kept in arenas indexed by world id.
func ValidateAll(worlds []*World) error {
	for i, w := range worlds {
		if w.ID != i {
			return fmt.Errorf("%w: world %d at index %d", ErrWorldID, w.ID, i)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("world %d: %w", i, err)
		}
	}
	return nil
}

// CountProgressions fills in MaxProgressions for every advancement kind not
// explicitly set, counting the starting copies and the placed copies owned by
// each world across all worlds.
func CountProgressions(worlds []*World) {
	counts := make([]map[string]int, len(worlds))
	for i := range counts {
		counts[i] = make(map[string]int)
	}
	for _, w := range worlds {
		for _, item := range w.StartingItems {
			if item.Advancement {
				counts[w.ID][item.SolverKind()]++
			}
		}
		for _, loc := range w.locations {
			item := loc.Item
			if item == nil || !item.Advancement || item.World < 0 || item.World >= len(worlds) {
				continue
			}
			counts[item.World][item.SolverKind()]++
		}
	}
	for i, w := range worlds {
		if w.MaxProgressions == nil {
			w.MaxProgressions = make(map[string]int)
		}
		for kind, n := range counts[i] {
			if _, ok := w.MaxProgressions[kind]; !ok {
				w.MaxProgressions[kind] = n
			}
		}
	}
}
