// Package spoiler derives the analytics of a completed placement: the
// minimized playthrough, the required locations and entrances, coarse hint
// spheres, and the locations of misc hint items.
//
// Every builder works on deep copies of the worlds where it needs to mutate
// them, and translates its results back onto the spoiler's own worlds by
// world id and name.
package spoiler

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"seedsolver/pkg/engine/logging"
	"seedsolver/pkg/engine/random"
	"seedsolver/pkg/engine/search"
	"seedsolver/pkg/engine/world"
)

var (
	// ErrUnbeatable means the placement cannot reach every world's goal.
	ErrUnbeatable = errors.New("game unbeatable after placing all items")
	// ErrCopyMismatch means the original worlds are beatable but their deep
	// copies are not.
	ErrCopyMismatch = errors.New("original worlds beatable but copied worlds are not")
)

// DefaultNoteworthyExclusions are advancement items that never open a coarse sphere
var DefaultNoteworthyExclusions = []string{"Deliver Letter", "Gerudo Membership Card", "Magic Bean"}

// Placement is an item at a location
type Placement struct {
	Location *world.Location
	Item     *world.Item
}

// Sphere is a numbered group of placements. Sphere -1 holds the items
// granted before the search starts.
type Sphere struct {
	Number     int
	Placements []Placement
}

// EntranceSphere is a numbered group of shuffled entrances, aligned with the
// playthrough sphere in which they became reachable.
type EntranceSphere struct {
	Number    int
	Entrances []*world.Entrance
}

// Spoiler holds the analytics of one generated seed
type Spoiler struct {
	Worlds []*world.World
	Seed   string

	Playthrough         []Sphere
	EntrancePlaythrough []EntranceSphere
	// FullPlaythrough maps, per world, location name to its 1-indexed
	// sphere before minimization.
	FullPlaythrough []map[string]int
	MaxSphere       int

	RequiredLocations [][]*world.Location
	RequiredEntrances [][]*world.Entrance

	CoarseSpheres []Sphere

	// Contradiction is set when the minimized path could not beat the game.
	Contradiction bool

	rng        *rand.Rand
	logger     *slog.Logger
	exclusions []string
}

// Option configures a Spoiler
type Option func(*Spoiler)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spoiler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the random source used for every shuffle
func WithRand(rng *rand.Rand) Option {
	return func(s *Spoiler) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithNoteworthyExclusions replaces the advancement items that never open a
// coarse sphere
func WithNoteworthyExclusions(names []string) Option {
	return func(s *Spoiler) {
		s.exclusions = append([]string(nil), names...)
	}
}

// New creates a spoiler for a completed placement. Missing MaxProgressions
// are counted from the placement.
func New(worlds []*world.World, seed string, opts ...Option) *Spoiler {
	s := &Spoiler{
		Worlds:     worlds,
		Seed:       seed,
		logger:     logging.NewDiscardLogger(),
		exclusions: DefaultNoteworthyExclusions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = random.New(seed)
	}
	world.CountProgressions(worlds)
	return s
}

// HasPlaythrough returns true once CreatePlaythrough has produced output
func (s *Spoiler) HasPlaythrough() bool {
	return len(s.Playthrough) > 0
}

// location returns the spoiler's own location matching loc from a copy
func (s *Spoiler) location(loc *world.Location) *world.Location {
	return s.Worlds[loc.World].Location(loc.Name)
}

func (s *Spoiler) entrance(e *world.Entrance) *world.Entrance {
	return s.Worlds[e.World].Entrance(e.Name)
}

// sphere translates copied locations into a numbered sphere of the
// spoiler's own placements. Internal locations are never shown.
func (s *Spoiler) sphere(number int, locs []*world.Location) Sphere {
	sp := Sphere{Number: number}
	for _, loc := range locs {
		if loc.Internal {
			continue
		}
		own := s.location(loc)
		sp.Placements = append(sp.Placements, Placement{Location: own, Item: own.Item})
	}
	return sp
}

type locKey struct {
	world int
	name  string
}

func keyOf(loc *world.Location) locKey {
	return locKey{world: loc.World, name: loc.Name}
}

// playthroughKeys returns the locations appearing in the playthrough
func (s *Spoiler) playthroughKeys() mapset.Set[locKey] {
	keys := mapset.New[locKey]()
	for _, sp := range s.Playthrough {
		for _, p := range sp.Placements {
			keys.Put(keyOf(p.Location))
		}
	}
	return keys
}

// beatable reports whether worlds can be beaten from their starting items
// and skipped-location grants.
func beatable(worlds []*world.World) bool {
	srch := search.New(worlds)
	srch.CollectPseudoStartingItems()
	return srch.CanBeatGame()
}

func filledLocations(worlds []*world.World) []*world.Location {
	var out []*world.Location
	for _, w := range worlds {
		out = append(out, w.FilledLocations()...)
	}
	return out
}

func partition[T any](items []T, pred func(T) bool) (match, rest []T) {
	for _, item := range items {
		if pred(item) {
			match = append(match, item)
		} else {
			rest = append(rest, item)
		}
	}
	return match, rest
}
