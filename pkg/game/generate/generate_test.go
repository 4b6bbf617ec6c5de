package generate

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"seedsolver/pkg/engine/random"
	"seedsolver/pkg/engine/world"
	"seedsolver/pkg/game/config"
	"seedsolver/pkg/game/spoiler"
)

// scenarioLoader builds B (Item2) opening the region holding A (Item1), and
// C holding the goal behind both.
type scenarioLoader struct {
	calls int
	err   error
}

func (l *scenarioLoader) Load(context.Context) ([]*world.World, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	w := world.New(0)
	root := w.AddRegion("Root")
	back := w.AddRegion("Back")
	w.Connect("Root -> Back", root, back, world.Has("Item2"))
	w.AddLocation(root, "B", nil).Place(world.NewAdvancementItem("Item2", 0))
	w.AddLocation(back, "A", nil).Place(world.NewAdvancementItem("Item1", 0))
	w.AddLocation(root, "C", world.All(world.Has("Item1"), world.Has("Item2"))).
		Place(world.NewAdvancementItem(world.DefaultGoalItem, 0))
	w.MiscHintItems["ganondorf"] = "Item1"
	return []*world.World{w}, nil
}

// flakyFiller fails the first failures attempts, then accepts the placement
type flakyFiller struct {
	failures int
	calls    int
	draws    []int64
}

func (f *flakyFiller) Fill(ctx context.Context, worlds []*world.World, rng *rand.Rand) error {
	f.calls++
	f.draws = append(f.draws, rng.Int63())
	if f.calls <= f.failures {
		return &ShuffleError{Reason: "no room left"}
	}
	return Preplaced{}.Fill(ctx, worlds, rng)
}

func settings(maxAttempts int) *config.Settings {
	s := config.DefaultSettings()
	s.Seed = "GENERATE"
	s.MaxAttempts = maxAttempts
	return s
}

func TestGenerateFirstAttempt(t *testing.T) {
	loader := &scenarioLoader{}
	filler := &flakyFiller{}

	s, err := New(settings(3), loader, filler).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !s.HasPlaythrough() {
		t.Error("no playthrough built")
	}
	if s.Seed != "GENERATE" {
		t.Errorf("Seed = %q", s.Seed)
	}
	if loader.calls != 1 || filler.calls != 1 {
		t.Errorf("calls = %d loads, %d fills, want 1, 1", loader.calls, filler.calls)
	}
}

func TestGenerateRetriesShuffleErrors(t *testing.T) {
	loader := &scenarioLoader{}
	filler := &flakyFiller{failures: 2}

	if _, err := New(settings(3), loader, filler).Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if loader.calls != 3 || filler.calls != 3 {
		t.Errorf("calls = %d loads, %d fills, want 3, 3", loader.calls, filler.calls)
	}
	if filler.draws[0] != random.New("GENERATE").Int63() {
		t.Error("first attempt does not use the seed's random source")
	}
	if filler.draws[0] == filler.draws[1] || filler.draws[1] == filler.draws[2] {
		t.Errorf("attempts share a random source: %v", filler.draws)
	}
}

func TestGenerateGivesUp(t *testing.T) {
	filler := &flakyFiller{failures: 100}

	_, err := New(settings(2), &scenarioLoader{}, filler).Generate(context.Background())
	if !errors.Is(err, ErrNoAttempts) {
		t.Fatalf("Generate() error = %v, want ErrNoAttempts", err)
	}
	var shuffleErr *ShuffleError
	if !errors.As(err, &shuffleErr) {
		t.Errorf("last ShuffleError not wrapped: %v", err)
	}
	if filler.calls != 2 {
		t.Errorf("fills = %d, want 2", filler.calls)
	}
}

func TestGenerateStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	loader := &scenarioLoader{err: boom}

	_, err := New(settings(5), loader, &flakyFiller{}).Generate(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Generate() error = %v, want boom", err)
	}
	if loader.calls != 1 {
		t.Errorf("loads = %d, want 1", loader.calls)
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &scenarioLoader{}
	_, err := New(settings(5), loader, &flakyFiller{}).Generate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
	if loader.calls != 0 {
		t.Errorf("loads = %d, want 0", loader.calls)
	}
}

func TestGenerateRandomSeed(t *testing.T) {
	cfg := settings(1)
	cfg.Seed = ""

	s, err := New(cfg, &scenarioLoader{}, Preplaced{}).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(s.Seed) != 10 {
		t.Errorf("Seed = %q, want a 10 character seed", s.Seed)
	}
}

func TestPreplacedRejectsEmptyLocation(t *testing.T) {
	worlds, _ := (&scenarioLoader{}).Load(context.Background())
	worlds[0].Location("A").Item = nil

	err := Preplaced{}.Fill(context.Background(), worlds, random.New("X"))
	var shuffleErr *ShuffleError
	if !errors.As(err, &shuffleErr) {
		t.Fatalf("Fill() error = %v, want *ShuffleError", err)
	}
}

func TestPreplacedRejectsUnbeatable(t *testing.T) {
	worlds, _ := (&scenarioLoader{}).Load(context.Background())
	worlds[0].Location("A").Item = world.NewItem("Rupee", 0)

	err := Preplaced{}.Fill(context.Background(), worlds, random.New("X"))
	if !errors.Is(err, spoiler.ErrUnbeatable) {
		t.Fatalf("Fill() error = %v, want ErrUnbeatable", err)
	}
}

func TestMakeSpoilerModes(t *testing.T) {
	tests := []struct {
		name         string
		spoiler      bool
		hints        bool
		noMiscHints  bool
		playthrough  bool
		coarse       bool
		required     []string
		miscRecorded bool
	}{
		{name: "spoiler", spoiler: true, playthrough: true, coarse: true, required: []string{"B", "A"}, miscRecorded: true},
		{name: "hints only", hints: true, coarse: true, required: []string{"B", "A"}, miscRecorded: true},
		{name: "misc hints only", miscRecorded: true},
		{name: "nothing", noMiscHints: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := settings(1)
			cfg.CreateSpoiler = tt.spoiler
			cfg.Hints = tt.hints
			worlds, _ := (&scenarioLoader{}).Load(context.Background())
			if tt.noMiscHints {
				clear(worlds[0].MiscHintItems)
			}

			g := New(cfg, &scenarioLoader{}, Preplaced{})
			s, err := g.MakeSpoiler(worlds, cfg.Seed, random.New(cfg.Seed))
			if err != nil {
				t.Fatalf("MakeSpoiler() error = %v", err)
			}
			if s.HasPlaythrough() != tt.playthrough {
				t.Errorf("HasPlaythrough() = %v", s.HasPlaythrough())
			}
			if (len(s.CoarseSpheres) > 0) != tt.coarse {
				t.Errorf("CoarseSpheres = %v", s.CoarseSpheres)
			}
			var got []string
			if len(s.RequiredLocations) > 0 {
				for _, loc := range s.RequiredLocations[0] {
					got = append(got, loc.Name)
				}
			}
			if !sameSet(got, tt.required) {
				t.Errorf("RequiredLocations = %v, want %v", got, tt.required)
			}
			_, recorded := worlds[0].MiscHintLocations["ganondorf"]
			if recorded != tt.miscRecorded {
				t.Errorf("misc hint recorded = %v, want %v", recorded, tt.miscRecorded)
			}
		})
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int)
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}

func TestFileLoader(t *testing.T) {
	loader := FileLoader{Path: "../worldfile/testdata/time_travel.yaml"}
	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first[0] == second[0] {
		t.Error("attempts share worlds")
	}
	if err := (Preplaced{}).Fill(context.Background(), first, random.New("X")); err != nil {
		t.Errorf("Fill() error = %v", err)
	}
}
