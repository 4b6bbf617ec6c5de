// Package search provides the reachability search over one or more world
// graphs. A Search owns one collection state per world and tracks which
// regions have been reached in each traversal mode and which locations have
// been visited. It supports checkpoint/rewind so that callers can test
// counterfactuals (remove an item, unvisit its location, ask whether the game
// is still beatable) and then restore.
//
// A Search is single-threaded.
package search

import (
	"iter"
	"log/slog"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"seedsolver/pkg/engine/logging"
	"seedsolver/pkg/engine/state"
	"seedsolver/pkg/engine/world"
)

// Search drives fixed-point reachability exploration over a set of worlds
type Search struct {
	worlds   []*world.World
	states   []*state.CollectionState
	cache    *sphereCache
	contexts []*ruleContext

	checkpoints *stack.Stack[*checkpoint]

	logger *slog.Logger
}

// Option configures a Search
type Option func(*Search)

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(s *Search) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a search over worlds. Each world's state starts with its
// starting items; the regions reachable with those items are expanded and
// recorded as the base checkpoint that Reset returns to.
// worlds[i].ID must equal i.
func New(worlds []*world.World, opts ...Option) *Search {
	s := &Search{
		worlds: worlds,
		states: make([]*state.CollectionState, len(worlds)),
		logger: logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, w := range worlds {
		st := state.New(w.ID)
		for _, item := range w.StartingItems {
			st.Collect(item)
		}
		s.states[i] = st
	}
	s.cache = s.rootCache()
	s.bindContexts()
	s.expand()

	s.checkpoints = stack.New[*checkpoint]()
	s.checkpoints.Push(s.snapshot())
	return s
}

// Copy returns an independent search starting from the current state. The
// copy has no rewind history: its base checkpoint is the current state.
func (s *Search) Copy() *Search {
	c := &Search{
		worlds: s.worlds,
		states: make([]*state.CollectionState, len(s.states)),
		cache:  s.cache.copy(),
		logger: s.logger,
	}
	for i, st := range s.states {
		c.states[i] = st.Copy()
	}
	c.bindContexts()
	c.checkpoints = stack.New[*checkpoint]()
	c.checkpoints.Push(c.snapshot())
	return c
}

// Worlds returns the worlds being searched
func (s *Search) Worlds() []*world.World {
	return s.worlds
}

// State returns the collection state of the given world
func (s *Search) State(worldID int) *state.CollectionState {
	return s.states[worldID]
}

// Collect adds item to the state of the world that owns it
func (s *Search) Collect(item *world.Item) {
	if item == nil || item.World < 0 || item.World >= len(s.states) {
		return
	}
	s.states[item.World].Collect(item)
}

// Remove takes item away from the state of the world that owns it
func (s *Search) Remove(item *world.Item) {
	if item == nil || item.World < 0 || item.World >= len(s.states) {
		return
	}
	s.states[item.World].Remove(item)
}

// Visit marks loc as visited without collecting its item
func (s *Search) Visit(loc *world.Location) {
	s.cache.visited.Put(loc)
}

// Visited returns true if loc has been visited
func (s *Search) Visited(loc *world.Location) bool {
	return s.cache.visited.Has(loc)
}

// NextSphere expands the reached regions of every world and mode as far as
// the current state allows, without collecting anything.
func (s *Search) NextSphere() *Frontier {
	s.expand()
	return &Frontier{s: s}
}

// CanReach returns true if region has been reached in mode m
func (s *Search) CanReach(region *world.Region, m world.Mode) bool {
	if region == nil {
		return false
	}
	return s.cache.reached(region.World, m, region)
}

// LocationAccessible returns true if loc's region is reached in some mode in
// which loc's access rule holds. Nothing is expanded or collected.
func (s *Search) LocationAccessible(loc *world.Location) bool {
	if loc.Region == nil {
		return false
	}
	w := s.worlds[loc.World]
	ctx := s.contexts[loc.World]
	for _, m := range w.AllModes() {
		if s.cache.reached(loc.World, m, loc.Region) && world.Evaluate(loc.Rule, ctx, m) {
			return true
		}
	}
	return false
}

// SpotAccess returns true if e's source region is reached in some mode in
// which e's rule holds. Nothing is collected.
func (s *Search) SpotAccess(e *world.Entrance) bool {
	if e.Source == nil {
		return false
	}
	w := s.worlds[e.World]
	ctx := s.contexts[e.World]
	for _, m := range w.AllModes() {
		if s.cache.reached(e.World, m, e.Source) && world.Evaluate(e.Rule, ctx, m) {
			return true
		}
	}
	return false
}

// IterReachableLocations yields every location in candidates that is
// reachable, marking each one visited before it is yielded. After a full
// pass the regions are expanded again and the candidates rescanned, until a
// pass yields nothing. Callers may collect items between yields; collecting
// is what lets later passes find more.
//
// Calling it again starts a fresh scan from the current state.
func (s *Search) IterReachableLocations(candidates []*world.Location) iter.Seq[*world.Location] {
	return func(yield func(*world.Location) bool) {
		for found := true; found; {
			s.expand()
			found = false
			for _, loc := range candidates {
				if s.cache.visited.Has(loc) || !s.LocationAccessible(loc) {
					continue
				}
				found = true
				s.cache.visited.Put(loc)
				if !yield(loc) {
					return
				}
			}
		}
	}
}

// CollectLocations collects the items of every reachable location in
// locations, or of every progression location when locations is nil.
func (s *Search) CollectLocations(locations []*world.Location) {
	if locations == nil {
		locations = s.ProgressionLocations()
	}
	for loc := range s.IterReachableLocations(locations) {
		s.Collect(loc.Item)
	}
}

// ProgressionLocations returns every location, across all worlds, currently
// holding an advancement item.
func (s *Search) ProgressionLocations() []*world.Location {
	var out []*world.Location
	for _, w := range s.worlds {
		for _, loc := range w.Locations() {
			if loc.HasAdvancement() {
				out = append(out, loc)
			}
		}
	}
	return out
}

// Won returns true if every world's win condition already holds.
func (s *Search) Won() bool {
	for i, w := range s.worlds {
		if !s.states[i].Won(w) {
			return false
		}
	}
	return true
}

// CanBeatGame returns true if every world can reach its win condition from
// the current state. Exploration happens on a disposable copy, so it is safe
// to call in the middle of IterReachableLocations.
func (s *Search) CanBeatGame() bool {
	if s.Won() {
		return true
	}
	c := s.Copy()
	c.CollectLocations(nil)
	return c.Won()
}

// IterPseudoStartingLocations yields each world's skipped locations, marking
// them visited. Their items are granted regardless of logic.
func (s *Search) IterPseudoStartingLocations() iter.Seq[*world.Location] {
	return func(yield func(*world.Location) bool) {
		for _, w := range s.worlds {
			for _, name := range w.SkippedLocations {
				loc := w.Location(name)
				if loc == nil {
					continue
				}
				s.cache.visited.Put(loc)
				if !yield(loc) {
					return
				}
			}
		}
	}
}

// CollectPseudoStartingItems visits every skipped location and collects its
// item. Returns the locations in order; they form sphere -1.
func (s *Search) CollectPseudoStartingItems() []*world.Location {
	var out []*world.Location
	for loc := range s.IterPseudoStartingLocations() {
		s.Collect(loc.Item)
		out = append(out, loc)
	}
	return out
}

// expand propagates reachability through connected entrances until no
// region set changes. Rules may depend on other regions being reached, so
// every world and mode is revisited until a full pass adds nothing.
func (s *Search) expand() {
	for changed := true; changed; {
		changed = false
		for _, w := range s.worlds {
			ctx := s.contexts[w.ID]
			reached := s.cache.regions[w.ID]
			for _, m := range w.AllModes() {
				for _, r := range w.Regions() {
					if !reached[m].Has(r) {
						continue
					}
					for _, e := range r.Exits {
						if e.Target == nil {
							continue
						}
						tm := e.TargetMode(m)
						if !w.IsValidMode(tm) || reached[tm].Has(e.Target) {
							continue
						}
						if world.Evaluate(e.Rule, ctx, m) {
							reached[tm].Put(e.Target)
							changed = true
						}
					}
				}
			}
		}
	}
}

func (s *Search) rootCache() *sphereCache {
	c := &sphereCache{
		visited: mapset.New[*world.Location](),
		regions: make([][]mapset.Set[*world.Region], len(s.worlds)),
	}
	for i, w := range s.worlds {
		c.regions[i] = make([]mapset.Set[*world.Region], w.NumModes())
		for _, m := range w.AllModes() {
			set := mapset.New[*world.Region]()
			if w.Root != nil && w.StartsIn(m) {
				set.Put(w.Root)
			}
			c.regions[i][m] = set
		}
	}
	return c
}

func (s *Search) bindContexts() {
	s.contexts = make([]*ruleContext, len(s.worlds))
	for i := range s.worlds {
		s.contexts[i] = &ruleContext{s: s, world: i}
	}
}

// ruleContext exposes one world's state and reached regions to access rules.
type ruleContext struct {
	s     *Search
	world int
}

func (c *ruleContext) ItemCount(kind string) int {
	return c.s.states[c.world].ItemCount(kind)
}

func (c *ruleContext) CanReach(name string, m world.Mode) bool {
	r := c.s.worlds[c.world].Region(name)
	if r == nil {
		return false
	}
	return c.s.cache.reached(c.world, m, r)
}
