package spoiler

import (
	"path/filepath"
	"slices"
	"testing"

	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
	"seedsolver/pkg/game/worldfile"
)

// scenarioWorld builds B (Item2) opening the region holding A (Item1), and
// C holding the goal behind both.
func scenarioWorld(id int) *world.World {
	w := world.New(id)
	root := w.AddRegion("Root")
	back := w.AddRegion("Back")
	w.Connect("Root -> Back", root, back, world.Has("Item2"))
	w.AddLocation(root, "B", nil).Place(world.NewAdvancementItem("Item2", id))
	w.AddLocation(back, "A", nil).Place(world.NewAdvancementItem("Item1", id))
	w.AddLocation(root, "C", world.All(world.Has("Item1"), world.Has("Item2"))).
		Place(world.NewAdvancementItem(world.DefaultGoalItem, id))
	return w
}

// eventWorld gates the goal region behind an event triggered by Key.
func eventWorld() *world.World {
	w := world.New(0)
	root := w.AddRegion("Root")
	yard := w.AddRegion("Yard")
	w.AddLocation(root, "L1", nil).Place(world.NewAdvancementItem("Key", 0))
	w.AddEvent(root, "Gate Open", world.Has("Key"))
	w.Connect("Gate", root, yard, world.Has("Gate Open"))
	w.AddLocation(yard, "L2", nil).Place(world.NewAdvancementItem(world.DefaultGoalItem, 0))
	return w
}

// shopWorld has two shuffled entrances, only one of them needed.
func shopWorld() *world.World {
	w := world.New(0)
	root := w.AddRegion("Root")
	dungeon := w.AddRegion("Dungeon")
	shop := w.AddRegion("Shop")
	w.AddLocation(root, "Key Chest", nil).Place(world.NewAdvancementItem("Key", 0))
	w.Connect("Dungeon Door", root, dungeon, world.Has("Key")).Shuffled = true
	w.Connect("Shop Door", root, shop, nil).Shuffled = true
	w.Connect("Dungeon Back", dungeon, root, nil)
	w.AddLocation(dungeon, "Boss", nil).Place(world.NewAdvancementItem(world.DefaultGoalItem, 0))
	w.AddLocation(shop, "Counter", nil).Place(world.NewItem("Rupee", 0))
	return w
}

func loadTestdata(t *testing.T, name string) []*world.World {
	t.Helper()
	f, err := worldfile.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return f.Worlds
}

func placementNames(sp Sphere) []string {
	out := make([]string, len(sp.Placements))
	for i, p := range sp.Placements {
		out[i] = p.Location.Name
	}
	return out
}

func locationNames(locs []*world.Location) []string {
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = loc.Name
	}
	return out
}

func sorted(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}

// internalLocations returns every event location across worlds
func internalLocations(worlds []*world.World) []*world.Location {
	var out []*world.Location
	for _, w := range worlds {
		for _, loc := range w.Locations() {
			if loc.Internal {
				out = append(out, loc)
			}
		}
	}
	return out
}

// walkPlaythrough replays the playthrough on a fresh search, collecting
// events as they become reachable. It fails if a sphere location is not
// accessible when its sphere comes up and returns whether the game was won.
func walkPlaythrough(t *testing.T, s *Spoiler) bool {
	t.Helper()
	srch := search.New(s.Worlds)
	srch.CollectPseudoStartingItems()
	events := internalLocations(s.Worlds)
	var reached []*world.Location
	for _, sp := range s.Playthrough {
		if sp.Number < 0 {
			continue
		}
		for loc := range srch.IterReachableLocations(events) {
			srch.Collect(loc.Item)
		}
		srch.NextSphere()
		for _, loc := range reached {
			if !srch.LocationAccessible(loc) {
				t.Errorf("%s became unreachable by sphere %d", loc.Name, sp.Number)
			}
		}
		for _, p := range sp.Placements {
			if !srch.LocationAccessible(p.Location) {
				t.Errorf("sphere %d: %s not accessible", sp.Number, p.Location.Name)
			}
		}
		for _, p := range sp.Placements {
			srch.Visit(p.Location)
			srch.Collect(p.Item)
			reached = append(reached, p.Location)
		}
	}
	return srch.Won()
}
