package spoiler

import (
	"slices"

	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
)

// isNoteworthy returns true for songs and for advancement items outside the
// exclusion list. Only noteworthy items open a new coarse sphere.
func (s *Spoiler) isNoteworthy(item *world.Item) bool {
	switch item.Type {
	case world.ItemTypeSong:
		return true
	case world.ItemTypeItem:
		return item.Advancement && !slices.Contains(s.exclusions, item.Name)
	}
	return false
}

// ComputeCoarseSpheres groups placements into hint spheres. Ordinary items
// are collected as soon as they are reached and never open a sphere; once a
// round finds nothing ordinary, the noteworthy items it buffered are
// collected together and the next sphere opens.
//
// Only noteworthy items and dungeon rewards are logged, and only those in
// the playthrough when one has been computed. Sphere -1 holds the
// skipped-location grants. Trailing empty spheres are dropped.
func (s *Spoiler) ComputeCoarseSpheres() {
	worlds := world.CopyWorlds(s.Worlds)
	all := filledLocations(worlds)

	filtered := s.HasPlaythrough()
	keys := s.playthroughKeys()
	inSpoiler := func(loc *world.Location) bool {
		return !filtered || keys.Has(keyOf(loc))
	}

	srch := search.New(worlds, search.WithLogger(s.logger))

	spheres := [][]*world.Location{nil}
	for loc := range srch.IterPseudoStartingLocations() {
		srch.Collect(loc.Item)
		spheres[0] = append(spheres[0], loc)
	}

	var delayed, ordinary []*world.Location
	hadReachable, openSphere := true, true
	for hadReachable {
		srch.NextSphere()
		if openSphere {
			spheres = append(spheres, nil)
			hadReachable = false
		}

		for _, loc := range all {
			if srch.Visited(loc) || !srch.LocationAccessible(loc) {
				continue
			}
			hadReachable = true
			srch.Visit(loc)
			if s.isNoteworthy(loc.Item) {
				delayed = append(delayed, loc)
			} else {
				ordinary = append(ordinary, loc)
			}
		}

		current := len(spheres) - 1
		if len(ordinary) > 0 {
			for _, loc := range ordinary {
				srch.Collect(loc.Item)
				if loc.Item.Type == world.ItemTypeDungeonReward && inSpoiler(loc) {
					spheres[current] = append(spheres[current], loc)
				}
			}
			ordinary = nil
			openSphere = false
			hadReachable = true
		} else {
			for _, loc := range delayed {
				srch.Collect(loc.Item)
				if inSpoiler(loc) {
					spheres[current] = append(spheres[current], loc)
				}
			}
			delayed = nil
			openSphere = true
		}
	}

	for len(spheres) > 0 && len(spheres[len(spheres)-1]) == 0 {
		spheres = spheres[:len(spheres)-1]
	}

	s.CoarseSpheres = make([]Sphere, len(spheres))
	for i, sphere := range spheres {
		s.CoarseSpheres[i] = s.sphere(i-1, sphere)
	}
	s.logger.Debug("computed coarse spheres", "count", len(s.CoarseSpheres))
}
