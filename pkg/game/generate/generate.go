// Package generate runs the generation loop: load worlds, place items and
// derive the spoiler data the settings ask for, retrying failed placements.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"seedsolver/pkg/engine/logging"
	"seedsolver/pkg/engine/random"
	"seedsolver/pkg/engine/world"
	"seedsolver/pkg/game/config"
	"seedsolver/pkg/game/spoiler"
)

// Generator produces spoilers from a loader and a filler
type Generator struct {
	settings *config.Settings
	loader   Loader
	filler   Filler
	logger   *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator
func New(settings *config.Settings, loader Loader, filler Filler, opts ...Option) *Generator {
	g := &Generator{
		settings: settings,
		loader:   loader,
		filler:   filler,
		logger:   logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs up to MaxAttempts attempts. A *ShuffleError moves on to the
// next attempt with a fresh random source; any other error is returned as is.
func (g *Generator) Generate(ctx context.Context) (*spoiler.Spoiler, error) {
	seed := g.settings.Seed
	if seed == "" {
		seed = random.RandomSeed()
	}
	maxAttempts := max(g.settings.MaxAttempts, 1)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := g.attempt(ctx, seed, attempt)
		if err == nil {
			g.logger.Info("Generated seed", "seed", seed, "attempt", attempt)
			return s, nil
		}
		var shuffleErr *ShuffleError
		if !errors.As(err, &shuffleErr) {
			return nil, err
		}
		g.logger.Warn("Failed attempt", "attempt", attempt, "max_attempts", maxAttempts, "error", err)
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrNoAttempts, maxAttempts, err)
		}
		g.logger.Info("Retrying")
	}
}

func (g *Generator) attempt(ctx context.Context, seed string, attempt int) (*spoiler.Spoiler, error) {
	rng := random.ForAttempt(seed, attempt)
	worlds, err := g.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading worlds: %w", err)
	}
	if err := g.filler.Fill(ctx, worlds, rng); err != nil {
		return nil, err
	}
	return g.MakeSpoiler(worlds, seed, rng)
}

// MakeSpoiler derives the spoiler data for a completed placement. A spoiler
// gets a playthrough; a spoiler or hints get coarse spheres; hints without a
// playthrough get the required item approximation. Otherwise only the misc
// hint items are located, and only if some world asks for them.
func (g *Generator) MakeSpoiler(worlds []*world.World, seed string, rng *rand.Rand) (*spoiler.Spoiler, error) {
	s := spoiler.New(worlds, seed,
		spoiler.WithLogger(g.logger),
		spoiler.WithRand(rng),
		spoiler.WithNoteworthyExclusions(g.settings.NoteworthyExclusions),
	)
	if g.settings.CreateSpoiler {
		g.logger.Info("Calculating playthrough")
		if err := s.CreatePlaythrough(); err != nil {
			return nil, fmt.Errorf("calculating playthrough: %w", err)
		}
	}
	if g.settings.CreateSpoiler || g.settings.Hints {
		g.logger.Info("Calculating coarse spheres")
		s.ComputeCoarseSpheres()
		if g.settings.Hints && !s.HasPlaythrough() {
			g.logger.Info("Calculating required items")
			s.UpdateRequiredItems()
		}
	} else if hintsConfigured(worlds) {
		s.FindMiscHintItems()
	}
	return s, nil
}

func hintsConfigured(worlds []*world.World) bool {
	for _, w := range worlds {
		if w.DungeonRewardsHinted || len(w.MiscHintItems) > 0 {
			return true
		}
	}
	return false
}
