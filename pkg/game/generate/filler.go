package generate

import (
	"context"
	"fmt"
	"math/rand"

	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
	"seedsolver/pkg/game/spoiler"
	"seedsolver/pkg/game/worldfile"
)

// Loader builds a fresh set of worlds for one generation attempt
type Loader interface {
	Load(ctx context.Context) ([]*world.World, error)
}

// Filler places items into freshly loaded worlds. It returns a
// *ShuffleError when the placement should be retried.
type Filler interface {
	Fill(ctx context.Context, worlds []*world.World, rng *rand.Rand) error
}

// FileLoader loads worlds from a world file
type FileLoader struct {
	Path string
}

// Load parses the world file again so each attempt starts from clean worlds
func (l FileLoader) Load(context.Context) ([]*world.World, error) {
	f, err := worldfile.Load(l.Path)
	if err != nil {
		return nil, err
	}
	return f.Worlds, nil
}

// Preplaced accepts the placement the worlds were loaded with
type Preplaced struct{}

// Fill checks that every location holds an item and that the game can be
// beaten with the placement as is.
func (Preplaced) Fill(_ context.Context, worlds []*world.World, _ *rand.Rand) error {
	for _, w := range worlds {
		for _, loc := range w.Locations() {
			if !loc.Filled() {
				return &ShuffleError{Reason: fmt.Sprintf("location %q in world %d is empty", loc.Name, w.ID+1)}
			}
		}
	}
	srch := search.New(worlds)
	srch.CollectPseudoStartingItems()
	if !srch.CanBeatGame() {
		return &ShuffleError{Reason: "placement", Err: spoiler.ErrUnbeatable}
	}
	return nil
}
