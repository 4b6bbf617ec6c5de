// Package renderer turns a spoiler into a human readable report. Backends
// implement Renderer; the report layout lives here and is shared by all of
// them.
package renderer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"seedsolver/pkg/engine/world"
	"seedsolver/pkg/game/spoiler"
)

const indent = "  "

// report accumulates the rendered text of one spoiler
type report struct {
	r Renderer
	s *spoiler.Spoiler
	b strings.Builder
}

// Write renders s through r and writes the report to w
func Write(w io.Writer, r Renderer, s *spoiler.Spoiler) error {
	rep := &report{r: r, s: s}
	rep.header()
	if s.Contradiction {
		rep.line(r.StyleText(r.Translate("CONTRADICTION"), StyleDenied))
		rep.blank()
	}
	if s.HasPlaythrough() {
		rep.playthrough()
		rep.entrancePlaythrough()
		rep.requiredLocations()
		rep.requiredEntrances()
	} else {
		rep.line(r.StyleText(r.Translate("NO_PLAYTHROUGH"), StyleSubtle))
		rep.blank()
	}
	rep.coarseSpheres()
	rep.miscHints()

	_, err := io.WriteString(w, rep.b.String())
	return err
}

func (rep *report) line(s string) {
	rep.b.WriteString(s)
	rep.b.WriteByte('\n')
}

func (rep *report) blank() {
	rep.b.WriteByte('\n')
}

func (rep *report) heading(key string) {
	title := rep.r.Translate(key)
	rep.line(rep.r.StyleText(title, StyleHeading))
	rep.line(rep.r.StyleText(strings.Repeat("-", utf8.RuneCountInString(title)), StyleSubtle))
}

func (rep *report) header() {
	rep.line(rep.r.FormatText("GT{SEED}: ITEM{%s}", rep.s.Seed))
	rep.line(rep.r.FormatText("GT{WORLD_COUNT}: %d", len(rep.s.Worlds)))
	rep.blank()
}

// pair writes "left ..... right" filling the report width with a dotted leader
func (rep *report) pair(depth int, left string, leftStyle TextStyle, right string, rightStyle TextStyle) {
	prefix := strings.Repeat(indent, depth)
	used := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(left) + utf8.RuneCountInString(right) + 2
	dots := rep.r.Width() - used
	if dots < 3 {
		dots = 3
	}
	rep.line(prefix + rep.r.StyleText(left, leftStyle) + " " +
		rep.r.StyleText(strings.Repeat(".", dots), StyleSubtle) + " " +
		rep.r.StyleText(right, rightStyle))
}

func (rep *report) placements(spheres []spoiler.Sphere) {
	for _, sp := range spheres {
		rep.line(indent + rep.r.StyleText(rep.r.Translate("SPHERE", sp.Number), StyleSphere))
		for _, p := range sp.Placements {
			rep.pair(2, rep.s.LocationName(p.Location), StyleLocation, rep.s.ItemName(p.Item), StyleItem)
		}
	}
	rep.blank()
}

func (rep *report) playthrough() {
	rep.heading("PLAYTHROUGH")
	rep.placements(rep.s.Playthrough)
}

func (rep *report) entrancePlaythrough() {
	if len(rep.s.EntrancePlaythrough) == 0 {
		return
	}
	rep.heading("ENTRANCE_PLAYTHROUGH")
	for _, sp := range rep.s.EntrancePlaythrough {
		rep.line(indent + rep.r.StyleText(rep.r.Translate("SPHERE", sp.Number), StyleSphere))
		for _, e := range sp.Entrances {
			rep.line(indent + indent + rep.r.StyleText(rep.s.EntranceName(e), StyleEntrance))
		}
	}
	rep.blank()
}

// perWorld writes one block per world, or a single note when every world is empty
func (rep *report) perWorld(count func(id int) int, body func(id int)) {
	total := 0
	for id := range rep.s.Worlds {
		total += count(id)
	}
	if total == 0 {
		rep.line(indent + rep.r.StyleText(rep.r.Translate("NOTHING_REQUIRED"), StyleSubtle))
		rep.blank()
		return
	}
	for id := range rep.s.Worlds {
		if count(id) == 0 {
			continue
		}
		if len(rep.s.Worlds) > 1 {
			rep.line(indent + rep.r.StyleText(rep.r.Translate("WORLD", id+1), StyleSphere))
		}
		body(id)
	}
	rep.blank()
}

func (rep *report) requiredLocations() {
	rep.heading("WAY_OF_THE_HERO")
	rep.perWorld(
		func(id int) int { return len(rep.required(id)) },
		func(id int) {
			for _, loc := range rep.required(id) {
				rep.pair(2, rep.s.LocationName(loc), StyleLocation, rep.s.ItemName(loc.Item), StyleItem)
			}
		},
	)
}

func (rep *report) required(id int) []*world.Location {
	if id >= len(rep.s.RequiredLocations) {
		return nil
	}
	return rep.s.RequiredLocations[id]
}

func (rep *report) requiredEntrances() {
	if len(rep.s.EntrancePlaythrough) == 0 {
		return
	}
	entrances := func(id int) []*world.Entrance {
		if id >= len(rep.s.RequiredEntrances) {
			return nil
		}
		return rep.s.RequiredEntrances[id]
	}
	rep.heading("REQUIRED_ENTRANCES")
	rep.perWorld(
		func(id int) int { return len(entrances(id)) },
		func(id int) {
			for _, e := range entrances(id) {
				rep.line(indent + indent + rep.r.StyleText(rep.s.EntranceName(e), StyleEntrance))
			}
		},
	)
}

func (rep *report) coarseSpheres() {
	if len(rep.s.CoarseSpheres) == 0 {
		return
	}
	rep.heading("COARSE_SPHERES")
	rep.placements(rep.s.CoarseSpheres)
}

func (rep *report) miscHints() {
	var misc, rewards int
	for _, w := range rep.s.Worlds {
		misc += len(w.MiscHintLocations)
		rewards += len(w.HintedRewardLocations)
	}
	if misc > 0 {
		rep.heading("MISC_HINTS")
		rep.hintTable(func(w *world.World) map[string]*world.Location { return w.MiscHintLocations }, true)
	}
	if rewards > 0 {
		rep.heading("DUNGEON_REWARDS")
		rep.hintTable(func(w *world.World) map[string]*world.Location { return w.HintedRewardLocations }, false)
	}
}

// hintTable lists a per-world hint map in key order. Misc hints are keyed by
// hint type and also show the hinted item.
func (rep *report) hintTable(table func(*world.World) map[string]*world.Location, showItem bool) {
	for _, w := range rep.s.Worlds {
		hints := table(w)
		if len(hints) == 0 {
			continue
		}
		if len(rep.s.Worlds) > 1 {
			rep.line(indent + rep.r.StyleText(rep.r.Translate("WORLD", w.ID+1), StyleSphere))
		}
		for _, key := range slices.Sorted(maps.Keys(hints)) {
			loc := hints[key]
			left := key
			if showItem {
				left = fmt.Sprintf("%s (%s)", key, rep.s.ItemName(loc.Item))
			}
			rep.pair(2, left, StyleItem, rep.s.LocationName(loc), StyleLocation)
		}
	}
	rep.blank()
}
