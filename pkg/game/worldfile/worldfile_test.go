package worldfile

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
)

func TestLoadScenario(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "scenario.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Seed != "SCENARIO" {
		t.Errorf("Seed = %q", f.Seed)
	}
	if len(f.Worlds) != 1 {
		t.Fatalf("len(Worlds) = %d, want 1", len(f.Worlds))
	}
	w := f.Worlds[0]
	if w.Root == nil || w.Root.Name != "Root" {
		t.Errorf("Root = %v", w.Root)
	}
	a := w.Location("A")
	if a == nil || a.Item == nil || a.Item.Name != "Item1" || !a.Item.Advancement {
		t.Fatalf("A = %+v", a)
	}
	if a.Region != w.Region("Back") {
		t.Errorf("A is in %v, want Back", a.Region)
	}
	if got := w.MaxProgression("Item1"); got != 1 {
		t.Errorf("MaxProgression(Item1) = %d, want 1", got)
	}
	if !search.New(f.Worlds).CanBeatGame() {
		t.Error("scenario world not beatable")
	}
}

func TestLoadTimeTravel(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "time_travel.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w := f.Worlds[0]

	if w.NumModes() != 2 || len(w.StartModes) != 1 || w.StartModes[0] != 0 {
		t.Errorf("modes = %v start = %v", w.Modes, w.StartModes)
	}
	if len(w.StartingItems) != 1 || w.StartingItems[0].Name != "Kokiri Sword" {
		t.Errorf("StartingItems = %v", w.StartingItems)
	}
	if w.MiscHintItems["ganondorf"] != "Light Arrows" {
		t.Errorf("MiscHintItems = %v", w.MiscHintItems)
	}

	hook := w.Location("Pedestal Chest").Item
	if hook.SolverKind() != "Progressive Hookshot" {
		t.Errorf("Hookshot kind = %q", hook.SolverKind())
	}
	if got := w.MaxProgression("Progressive Hookshot"); got != 2 {
		t.Errorf("MaxProgression(Progressive Hookshot) = %d, want 2", got)
	}
	if w.Location("Altar").Item.Type != world.ItemTypeSong {
		t.Error("Song of Time not typed as a song")
	}
	if w.Location("Bed").Item.Advancement {
		t.Error("Recovery Heart flagged as advancement")
	}
	if !w.Location("Rauru").Locked {
		t.Error("Rauru not locked")
	}
	event := w.Location("Door of Time Open")
	if !event.Internal || event.Item == nil {
		t.Error("Door of Time Open is not an event")
	}

	pull := w.Entrance("Pull Sword")
	if pull.ModeSwitch == nil || *pull.ModeSwitch != 1 {
		t.Errorf("Pull Sword ModeSwitch = %v", pull.ModeSwitch)
	}
	if !w.Entrance("Tower Door").Shuffled {
		t.Error("Tower Door not shuffled")
	}
	if w.Entrance("Links House -> Temple of Time") == nil {
		t.Error("unnamed exit did not get a default name")
	}

	if !search.New(f.Worlds).CanBeatGame() {
		t.Error("time travel world not beatable")
	}
}

func TestParseMultiworldOwner(t *testing.T) {
	doc := `
items:
  Bow: {advancement: true, major: true}
worlds:
  - regions:
      - name: Root
        locations:
          - name: Gift
            item: {name: Bow, world: 1}
  - regions:
      - name: Root
`
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	item := f.Worlds[0].Location("Gift").Item
	if item.World != 1 {
		t.Errorf("item owner = %d, want 1", item.World)
	}
	if f.Worlds[1].MaxProgression("Bow") != 1 || f.Worlds[0].MaxProgression("Bow") != 0 {
		t.Error("progressions not counted for the owner")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no worlds", `seed: x`, "no worlds defined"},
		{"bad yaml", "worlds: [", "invalid yaml"},
		{"unknown target", `
worlds:
  - regions:
      - name: Root
        exits:
          - to: Nowhere
`, "unknown region"},
		{"unknown operator", `
worlds:
  - regions:
      - name: Root
        locations:
          - name: X
            rule: {xor: [a, b]}
`, "unknown rule operator"},
		{"unknown mode", `
worlds:
  - modes: [child]
    regions:
      - name: Root
        locations:
          - name: X
            rule: {mode: adult}
`, "unknown mode"},
		{"duplicate region", `
worlds:
  - regions:
      - name: Root
      - name: Root
`, "duplicate region"},
		{"bad owner", `
worlds:
  - regions:
      - name: Root
        locations:
          - name: X
            item: {name: Bow, world: 3}
`, "unknown world"},
		{"bad skipped location", `
worlds:
  - skipped_locations: [Nowhere]
    regions:
      - name: Root
`, "unknown location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadSetsPath(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	if err == nil {
		t.Fatal("Load of a missing file succeeded")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := writeFile(path, "worlds: []"); err != nil {
		t.Fatal(err)
	}
	_, err = Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != path {
		t.Errorf("Load error = %v, want ParseError with path", err)
	}
}
