package spoiler

import (
	"github.com/zyedidia/generic/mapset"

	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
)

// UpdateRequiredItems is a single-pass approximation of the required
// locations, used when no playthrough is built. Reachable locations are
// visited once in discovery order; each candidate's item is taken away,
// beatability is tested, and the item is put back and collected whatever the
// outcome.
//
// Candidates are unlocked locations holding major items that are not goal
// items. When a playthrough exists, candidates are limited to its locations
// and misc hint items are not recorded, since the playthrough already did.
func (s *Spoiler) UpdateRequiredItems() {
	worlds := s.Worlds
	all := filledLocations(worlds)

	filtered := s.HasPlaythrough()
	keys := s.playthroughKeys()
	candidates := mapset.New[*world.Location]()
	for _, loc := range all {
		item := loc.Item
		if !item.MajorItem || loc.Locked || worlds[item.World].IsGoalItem(item) {
			continue
		}
		if filtered && !keys.Has(keyOf(loc)) {
			continue
		}
		candidates.Put(loc)
	}

	required := make([][]*world.Location, len(worlds))
	srch := search.New(worlds, search.WithLogger(s.logger))
	srch.CollectPseudoStartingItems()
	for loc := range srch.IterReachableLocations(all) {
		if candidates.Has(loc) {
			item := loc.Item
			loc.Item = nil
			if !srch.CanBeatGame() {
				required[loc.World] = append(required[loc.World], loc)
			}
			loc.Item = item
			if !filtered {
				recordHints(worlds, loc)
			}
		}
		srch.Collect(loc.Item)
	}
	s.RequiredLocations = required
}
