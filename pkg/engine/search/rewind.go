package search

import (
	"github.com/zyedidia/generic/mapset"

	"seedsolver/pkg/engine/state"
	"seedsolver/pkg/engine/world"
)

// sphereCache holds the visitation bookkeeping of a search: visited
// locations and, per world and mode, the reached regions.
type sphereCache struct {
	visited mapset.Set[*world.Location]
	regions [][]mapset.Set[*world.Region]
}

func (c *sphereCache) reached(worldID int, m world.Mode, r *world.Region) bool {
	if worldID < 0 || worldID >= len(c.regions) || int(m) >= len(c.regions[worldID]) {
		return false
	}
	return c.regions[worldID][m].Has(r)
}

func (c *sphereCache) copy() *sphereCache {
	return &sphereCache{
		visited: copySet(c.visited),
		regions: copyRegions(c.regions),
	}
}

func copyRegions(regions [][]mapset.Set[*world.Region]) [][]mapset.Set[*world.Region] {
	out := make([][]mapset.Set[*world.Region], len(regions))
	for i, modes := range regions {
		out[i] = make([]mapset.Set[*world.Region], len(modes))
		for m, set := range modes {
			out[i][m] = copySet(set)
		}
	}
	return out
}

func copySet[K comparable](s mapset.Set[K]) mapset.Set[K] {
	out := mapset.New[K]()
	s.Each(func(k K) {
		out.Put(k)
	})
	return out
}

// checkpoint is an immutable snapshot of everything a search can mutate.
type checkpoint struct {
	cache  *sphereCache
	states []state.Snapshot
}

func (s *Search) snapshot() *checkpoint {
	cp := &checkpoint{
		cache:  s.cache.copy(),
		states: make([]state.Snapshot, len(s.states)),
	}
	for i, st := range s.states {
		cp.states[i] = st.Snapshot()
	}
	return cp
}

func (s *Search) restore(cp *checkpoint) {
	s.cache = cp.cache.copy()
	for i, snap := range cp.states {
		s.states[i].Restore(snap)
	}
}

// Checkpoint pushes a snapshot of every world's collection state, the
// visited locations and the reached regions.
func (s *Search) Checkpoint() {
	s.checkpoints.Push(s.snapshot())
}

// Depth returns the number of checkpoints, including the base one
func (s *Search) Depth() int {
	return s.checkpoints.Size()
}

// Rewind restores the most recent checkpoint and drops it. The base
// checkpoint is restored but never dropped.
func (s *Search) Rewind() {
	if s.checkpoints.Size() > 1 {
		s.restore(s.checkpoints.Pop())
		return
	}
	s.restore(s.checkpoints.Peek())
}

// Reset drops every checkpoint but the base one and restores it wholesale.
// Reached regions are then derived again from the roots, since entrances may
// have been disconnected or reconnected after the base snapshot was taken.
func (s *Search) Reset() {
	for s.checkpoints.Size() > 1 {
		s.checkpoints.Pop()
	}
	s.restore(s.checkpoints.Peek())
	s.cache.regions = s.rootCache().regions
	s.expand()
	s.logger.Debug("search reset to base checkpoint")
}

// Unvisit is the inverse of visiting loc. The location is removed from the
// visited set, checkpoints taken after loc was visited are dropped, and the
// reached regions are rewound to the newest remaining checkpoint, which was
// taken before loc's item could have opened anything. Collection state is
// left alone; pair Unvisit with Remove.
func (s *Search) Unvisit(loc *world.Location) {
	s.cache.visited.Remove(loc)
	for s.checkpoints.Size() > 1 && s.checkpoints.Peek().cache.visited.Has(loc) {
		s.checkpoints.Pop()
	}
	s.cache.regions = copyRegions(s.checkpoints.Peek().cache.regions)
}

// Frontier is a view of the regions and locations a search has reached.
type Frontier struct {
	s *Search
}

// Reached returns true if region has been reached in mode m
func (f *Frontier) Reached(region *world.Region, m world.Mode) bool {
	return f.s.CanReach(region, m)
}

// Visited returns true if loc has been visited
func (f *Frontier) Visited(loc *world.Location) bool {
	return f.s.Visited(loc)
}

// Regions returns the regions of a world reached in mode m, in declaration order
func (f *Frontier) Regions(worldID int, m world.Mode) []*world.Region {
	var out []*world.Region
	for _, r := range f.s.worlds[worldID].Regions() {
		if f.s.cache.reached(worldID, m, r) {
			out = append(out, r)
		}
	}
	return out
}
