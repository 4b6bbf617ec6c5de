// Package worldfile loads world graphs and their completed item placement
// from YAML documents.
//
// A document lists an item catalogue and one entry per world. Worlds are
// numbered by position starting at 0; item references may name another world
// to express multiworld placements.
package worldfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"seedsolver/pkg/engine/world"
)

// File is a parsed world document
type File struct {
	Seed   string
	Worlds []*world.World
}

type document struct {
	Seed   string              `yaml:"seed"`
	Items  map[string]itemSpec `yaml:"items"`
	Worlds []worldSpec         `yaml:"worlds"`
}

type itemSpec struct {
	Kind        string `yaml:"kind"`
	Type        string `yaml:"type"`
	Advancement bool   `yaml:"advancement"`
	Major       bool   `yaml:"major"`
}

type goalSpec struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

type worldSpec struct {
	Modes            []string          `yaml:"modes"`
	StartModes       []string          `yaml:"start_modes"`
	Goal             goalSpec          `yaml:"goal"`
	StartingItems    []itemRef         `yaml:"starting_items"`
	SkippedLocations []string          `yaml:"skipped_locations"`
	MaxProgressions  map[string]int    `yaml:"max_progressions"`
	MiscHintItems    map[string]string `yaml:"misc_hint_items"`
	HintRewards      bool              `yaml:"dungeon_rewards_hinted"`
	Regions          []regionSpec      `yaml:"regions"`
}

type regionSpec struct {
	Name      string         `yaml:"name"`
	Exits     []exitSpec     `yaml:"exits"`
	Locations []locationSpec `yaml:"locations"`
	line      int
}

type exitSpec struct {
	Name       string    `yaml:"name"`
	To         string    `yaml:"to"`
	Rule       yaml.Node `yaml:"rule"`
	Shuffled   bool      `yaml:"shuffled"`
	SwitchMode string    `yaml:"switch_mode"`
}

type locationSpec struct {
	Name   string    `yaml:"name"`
	Rule   yaml.Node `yaml:"rule"`
	Item   *itemRef  `yaml:"item"`
	Event  bool      `yaml:"event"`
	Locked bool      `yaml:"locked"`
}

// itemRef is either a bare item name or {name, world}.
type itemRef struct {
	Name  string
	World *int
	line  int
}

func (r *itemRef) UnmarshalYAML(node *yaml.Node) error {
	r.line = node.Line
	if node.Kind == yaml.ScalarNode {
		r.Name = node.Value
		return nil
	}
	var full struct {
		Name  string `yaml:"name"`
		World *int   `yaml:"world"`
	}
	if err := node.Decode(&full); err != nil {
		return err
	}
	r.Name = full.Name
	r.World = full.World
	return nil
}

func (r *regionSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain regionSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = regionSpec(p)
	r.line = node.Line
	return nil
}

// Load reads and parses the world document at path
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return f, nil
}

// Parse builds worlds from a YAML document. Missing MaxProgressions are
// counted from the placement.
func Parse(data []byte) (*File, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: "invalid yaml", Err: err}
	}
	if len(doc.Worlds) == 0 {
		return nil, &ParseError{Msg: "no worlds defined"}
	}

	b := &builder{doc: &doc}
	worlds := make([]*world.World, len(doc.Worlds))
	for i := range doc.Worlds {
		worlds[i] = world.New(i)
	}
	b.worlds = worlds
	for i := range doc.Worlds {
		if err := b.buildWorld(worlds[i], &doc.Worlds[i]); err != nil {
			return nil, err
		}
	}
	if err := world.ValidateAll(worlds); err != nil {
		return nil, &ParseError{Msg: "invalid world graph", Err: err}
	}
	world.CountProgressions(worlds)
	return &File{Seed: strings.TrimSpace(doc.Seed), Worlds: worlds}, nil
}

type builder struct {
	doc    *document
	worlds []*world.World
}

func (b *builder) buildWorld(w *world.World, spec *worldSpec) error {
	w.Modes = append(w.Modes, spec.Modes...)
	for _, name := range spec.StartModes {
		m, ok := w.ModeByName(name)
		if !ok {
			return &ParseError{World: w.ID, Msg: fmt.Sprintf("unknown start mode %q", name)}
		}
		w.StartModes = append(w.StartModes, m)
	}
	if spec.Goal.Item != "" {
		w.GoalItem = spec.Goal.Item
	}
	if spec.Goal.Count > 0 {
		w.GoalCount = spec.Goal.Count
	}
	w.SkippedLocations = append(w.SkippedLocations, spec.SkippedLocations...)
	for kind, n := range spec.MaxProgressions {
		w.MaxProgressions[kind] = n
	}
	w.DungeonRewardsHinted = spec.HintRewards
	for hint, item := range spec.MiscHintItems {
		w.MiscHintItems[hint] = item
	}
	for _, ref := range spec.StartingItems {
		item, err := b.item(ref, w.ID)
		if err != nil {
			return err
		}
		w.StartingItems = append(w.StartingItems, item)
	}

	// Regions first so exits may point forward.
	for _, rs := range spec.Regions {
		if rs.Name == "" {
			return &ParseError{World: w.ID, Line: rs.line, Msg: "region without a name"}
		}
		if w.Region(rs.Name) != nil {
			return &ParseError{World: w.ID, Line: rs.line, Msg: fmt.Sprintf("duplicate region %q", rs.Name)}
		}
		w.AddRegion(rs.Name)
	}
	for _, rs := range spec.Regions {
		region := w.Region(rs.Name)
		for _, ls := range rs.Locations {
			if err := b.addLocation(w, region, ls); err != nil {
				return err
			}
		}
		for _, es := range rs.Exits {
			if err := b.addExit(w, region, es); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) addLocation(w *world.World, region *world.Region, ls locationSpec) error {
	if ls.Name == "" {
		return &ParseError{World: w.ID, Line: ls.Rule.Line, Msg: fmt.Sprintf("location without a name in %q", region.Name)}
	}
	if w.Location(ls.Name) != nil {
		return &ParseError{World: w.ID, Msg: fmt.Sprintf("duplicate location %q", ls.Name)}
	}
	rule, err := compileRule(w, &ls.Rule)
	if err != nil {
		return err
	}
	if ls.Event {
		w.AddEvent(region, ls.Name, rule)
		return nil
	}
	loc := w.AddLocation(region, ls.Name, rule)
	loc.Locked = ls.Locked
	if ls.Item != nil {
		item, err := b.item(*ls.Item, w.ID)
		if err != nil {
			return err
		}
		loc.Place(item)
	}
	return nil
}

func (b *builder) addExit(w *world.World, region *world.Region, es exitSpec) error {
	name := es.Name
	if name == "" {
		name = region.Name + " -> " + es.To
	}
	if w.Entrance(name) != nil {
		return &ParseError{World: w.ID, Msg: fmt.Sprintf("duplicate entrance %q", name)}
	}
	var target *world.Region
	if es.To != "" {
		target = w.Region(es.To)
		if target == nil {
			return &ParseError{World: w.ID, Msg: fmt.Sprintf("entrance %q leads to unknown region %q", name, es.To)}
		}
	}
	rule, err := compileRule(w, &es.Rule)
	if err != nil {
		return err
	}
	e := w.Connect(name, region, target, rule)
	e.Shuffled = es.Shuffled
	if es.SwitchMode != "" {
		m, ok := w.ModeByName(es.SwitchMode)
		if !ok {
			return &ParseError{World: w.ID, Msg: fmt.Sprintf("entrance %q switches to unknown mode %q", name, es.SwitchMode)}
		}
		e.ModeSwitch = &m
	}
	return nil
}

// item instantiates a catalogue item. Names missing from the catalogue are
// plain junk items.
func (b *builder) item(ref itemRef, defaultWorld int) (*world.Item, error) {
	if ref.Name == "" {
		return nil, &ParseError{World: defaultWorld, Line: ref.line, Msg: "item without a name"}
	}
	owner := defaultWorld
	if ref.World != nil {
		owner = *ref.World
	}
	if owner < 0 || owner >= len(b.worlds) {
		return nil, &ParseError{World: defaultWorld, Line: ref.line, Msg: fmt.Sprintf("item %q owned by unknown world %d", ref.Name, owner)}
	}
	item := world.NewItem(ref.Name, owner)
	if spec, ok := b.doc.Items[ref.Name]; ok {
		if spec.Kind != "" {
			item.Kind = spec.Kind
		}
		if spec.Type != "" {
			item.Type = world.ItemType(spec.Type)
		}
		item.Advancement = spec.Advancement
		item.MajorItem = spec.Major
	}
	return item, nil
}
