package spoiler

import (
	"github.com/zyedidia/generic/mapset"

	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
)

// recordHints notes loc on its item owner's world if the item is a misc
// hint item or a hinted dungeon reward. The first location found wins.
func recordHints(worlds []*world.World, loc *world.Location) {
	item := loc.Item
	if item == nil || item.World < 0 || item.World >= len(worlds) {
		return
	}
	owner := worlds[item.World]
	if owner.DungeonRewardsHinted && item.Type == world.ItemTypeDungeonReward {
		if _, ok := owner.HintedRewardLocations[item.Name]; !ok {
			owner.HintedRewardLocations[item.Name] = loc
		}
	}
	for hint, name := range owner.MiscHintItems {
		if name != item.Name {
			continue
		}
		if _, ok := owner.MiscHintLocations[hint]; !ok {
			owner.MiscHintLocations[hint] = loc
		}
	}
}

// FindMiscHintItems records the locations of misc hint items and hinted
// dungeon rewards without building a playthrough. Reachable locations are
// considered first, in discovery order, then unreachable ones.
func (s *Spoiler) FindMiscHintItems() {
	srch := search.New(s.Worlds, search.WithLogger(s.logger))
	all := filledLocations(s.Worlds)
	found := mapset.New[*world.Location]()
	for _, loc := range srch.CollectPseudoStartingItems() {
		recordHints(s.Worlds, loc)
		found.Put(loc)
	}
	for loc := range srch.IterReachableLocations(all) {
		srch.Collect(loc.Item)
		recordHints(s.Worlds, loc)
		found.Put(loc)
	}
	for _, loc := range all {
		if !found.Has(loc) {
			recordHints(s.Worlds, loc)
		}
	}
}

// copyHints carries hint locations found on copied worlds over to the
// spoiler's own worlds.
func (s *Spoiler) copyHints(copies []*world.World) {
	for _, c := range copies {
		own := s.Worlds[c.ID]
		for hint, loc := range c.MiscHintLocations {
			own.MiscHintLocations[hint] = s.location(loc)
		}
		for name, loc := range c.HintedRewardLocations {
			own.HintedRewardLocations[name] = s.location(loc)
		}
	}
}
