package spoiler

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"seedsolver/pkg/engine/random"
	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
)

// CreatePlaythrough computes the minimized playthrough and the required
// locations and entrances.
//
// Spheres are first built by collecting everything reachable round by round.
// Items are then removed one at a time, latest sphere first, and kept only if
// the game cannot be beaten without them; shuffled entrances are tested the
// same way with a fresh search each. The remaining path is resphered from
// scratch, since it may be walked differently after pruning.
//
// The placement must be beatable; otherwise ErrUnbeatable is returned. The
// order of removals is greedy, so the required set is minimal only with
// respect to that order.
func (s *Spoiler) CreatePlaythrough() error {
	if !beatable(s.Worlds) {
		return ErrUnbeatable
	}
	worlds := world.CopyWorlds(s.Worlds)
	if !beatable(worlds) {
		return ErrCopyMismatch
	}

	srch := search.New(worlds, search.WithLogger(s.logger))
	s.logger.Debug("initial search", "items", srch.State(0).ProgItems())
	itemLocations := srch.ProgressionLocations()

	var remaining []*world.Entrance
	for _, w := range worlds {
		for _, e := range w.ShuffledEntrances() {
			if e.Connected() {
				remaining = append(remaining, e)
			}
		}
	}

	srch.Checkpoint()
	srch.CollectPseudoStartingItems()
	s.logger.Debug("with pseudo starting items", "items", srch.State(0).ProgItems())

	var spheres [][]*world.Location
	var entranceSpheres [][]*world.Entrance
	for {
		srch.Checkpoint()
		// Collecting only after the scan keeps one sphere from feeding itself.
		collected := slices.Collect(srch.IterReachableLocations(itemLocations))
		if len(collected) == 0 {
			break
		}
		random.Shuffle(s.rng, collected)
		spheres = append(spheres, collected)

		var accessed []*world.Entrance
		accessed, remaining = partition(remaining, srch.SpotAccess)
		entranceSpheres = append(entranceSpheres, accessed)

		for _, loc := range collected {
			srch.Collect(loc.Item)
			recordHints(worlds, loc)
		}
	}
	s.logger.Info("collected spheres", "count", len(spheres))

	s.FullPlaythrough = make([]map[string]int, len(worlds))
	for i := range s.FullPlaythrough {
		s.FullPlaythrough[i] = make(map[string]int)
	}
	for i, sphere := range spheres {
		for _, loc := range sphere {
			s.FullPlaythrough[loc.World][loc.Name] = i + 1
		}
	}
	s.MaxSphere = len(spheres)

	path := s.minimizeItems(srch, worlds, spheres)
	requiredEntrances := s.minimizeEntrances(worlds, entranceSpheres)
	finalSpheres, finalEntrances := s.resphere(srch, worlds, path, requiredEntrances)

	s.Playthrough = make([]Sphere, len(finalSpheres))
	for i, sphere := range finalSpheres {
		s.Playthrough[i] = s.sphere(i-1, sphere)
	}

	s.EntrancePlaythrough = nil
	if slices.ContainsFunc(worlds, (*world.World).EntranceShuffle) {
		for i, sphere := range finalEntrances {
			es := EntranceSphere{Number: i}
			for _, e := range sphere {
				es.Entrances = append(es.Entrances, s.entrance(e))
			}
			s.EntrancePlaythrough = append(s.EntrancePlaythrough, es)
		}
	}

	s.setRequiredLocations(worlds, finalSpheres, path)
	s.setRequiredEntrances(finalEntrances, requiredEntrances)
	s.copyHints(worlds)
	return nil
}

// minimizeItems walks the spheres backwards and drops every item the game
// can be beaten without. It returns the path: the required locations plus
// the internal and goal locations that are kept untested.
func (s *Spoiler) minimizeItems(srch *search.Search, worlds []*world.World, spheres [][]*world.Location) []*world.Location {
	var path []*world.Location
	for _, sphere := range slices.Backward(spheres) {
		random.Shuffle(s.rng, sphere)
		for _, loc := range sphere {
			item := loc.Item
			owner := worlds[item.World]

			srch.Remove(item)
			srch.Unvisit(loc)

			// Events never show up in the output, but the final pass
			// needs them.
			if loc.Internal || isSoleGoal(owner, item) {
				path = append(path, loc)
				continue
			}

			loc.Item = nil

			// A copy past the useful count of its kind is never required.
			kind := item.SolverKind()
			if srch.State(item.World).ItemCount(kind) >= owner.MaxProgression(kind) {
				continue
			}
			s.logger.Debug("checking if item is required", "item", item.Name, "location", loc.Name)
			if !srch.CanBeatGame() {
				loc.Item = item
				path = append(path, loc)
			}
		}
	}
	return path
}

// minimizeEntrances disconnects shuffled entrances one at a time, latest
// sphere first, and reconnects those the game cannot be beaten without.
func (s *Spoiler) minimizeEntrances(worlds []*world.World, entranceSpheres [][]*world.Entrance) []*world.Entrance {
	var required []*world.Entrance
	for _, sphere := range slices.Backward(entranceSpheres) {
		random.Shuffle(s.rng, sphere)
		for _, e := range sphere {
			target := e.Disconnect()

			// A fresh search cannot have reached anything through e.
			sub := search.New(worlds)
			sub.CollectPseudoStartingItems()

			s.logger.Debug("checking if entrance is required", "entrance", e.Name, "target", target.Name)
			if !sub.CanBeatGame() {
				e.Connect(target)
				required = append(required, e)
			}
		}
	}
	return required
}

// resphere rebuilds the spheres from the base state using only the path.
// Internal locations are collected as soon as they are reached without
// opening a sphere. The first returned sphere is sphere -1.
func (s *Spoiler) resphere(srch *search.Search, worlds []*world.World, path []*world.Location, requiredEntrances []*world.Entrance) ([][]*world.Location, [][]*world.Entrance) {
	srch.Reset()

	var pseudo []*world.Location
	for _, loc := range srch.CollectPseudoStartingItems() {
		item := loc.Item
		if item != nil && item.Advancement && worlds[item.World].MaxProgression(item.SolverKind()) > 0 {
			pseudo = append(pseudo, loc)
		}
	}
	spheres := [][]*world.Location{pseudo}

	var entranceSpheres [][]*world.Entrance
	remaining := slices.Clone(requiredEntrances)
	var pending []*world.Location
	for {
		pending = append(pending, slices.Collect(srch.IterReachableLocations(path))...)
		if len(pending) == 0 {
			break
		}
		internal, rest := partition(pending, func(loc *world.Location) bool { return loc.Internal })
		if len(internal) > 0 {
			for _, loc := range internal {
				srch.Collect(loc.Item)
			}
			pending = rest
			continue
		}

		spheres = append(spheres, pending)
		var accessed []*world.Entrance
		accessed, remaining = partition(remaining, srch.SpotAccess)
		entranceSpheres = append(entranceSpheres, accessed)
		for _, loc := range pending {
			srch.Collect(loc.Item)
		}
		pending = nil
	}
	s.logger.Info("collected final spheres", "count", len(spheres)-1)

	s.Contradiction = !srch.Won()
	if s.Contradiction {
		s.logger.Error("playthrough could not beat the game")
	}
	return spheres, entranceSpheres
}

func (s *Spoiler) setRequiredLocations(worlds []*world.World, spheres [][]*world.Location, path []*world.Location) {
	s.RequiredLocations = make([][]*world.Location, len(s.Worlds))
	seen := mapset.New[*world.Location]()
	add := func(loc *world.Location) {
		if seen.Has(loc) {
			return
		}
		seen.Put(loc)
		if loc.Internal || loc.Item == nil || worlds[loc.Item.World].IsGoalItem(loc.Item) {
			return
		}
		s.RequiredLocations[loc.World] = append(s.RequiredLocations[loc.World], s.location(loc))
	}
	for _, sphere := range spheres[1:] {
		for _, loc := range sphere {
			add(loc)
		}
	}
	// Only a contradiction leaves path locations out of the spheres.
	for _, loc := range path {
		add(loc)
	}
}

func (s *Spoiler) setRequiredEntrances(spheres [][]*world.Entrance, required []*world.Entrance) {
	s.RequiredEntrances = make([][]*world.Entrance, len(s.Worlds))
	seen := mapset.New[*world.Entrance]()
	add := func(e *world.Entrance) {
		if seen.Has(e) {
			return
		}
		seen.Put(e)
		s.RequiredEntrances[e.World] = append(s.RequiredEntrances[e.World], s.entrance(e))
	}
	for _, sphere := range spheres {
		for _, e := range sphere {
			add(e)
		}
	}
	for _, e := range required {
		add(e)
	}
}

// isSoleGoal returns true if item alone completes its owner's goal
func isSoleGoal(owner *world.World, item *world.Item) bool {
	_, count := owner.Goal()
	return count == 1 && owner.IsGoalItem(item)
}
