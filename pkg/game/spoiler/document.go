package spoiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"seedsolver/pkg/engine/world"
)

// Document is the serialized form of a spoiler
type Document struct {
	Seed                string                       `json:"seed"`
	WorldCount          int                          `json:"world_count"`
	Contradiction       bool                         `json:"contradiction,omitempty"`
	Playthrough         OrderedMap                   `json:"playthrough,omitempty"`
	EntrancePlaythrough OrderedMap                   `json:"entrance_playthrough,omitempty"`
	MaxSphere           int                          `json:"max_sphere,omitempty"`
	FullPlaythrough     map[string]map[string]int    `json:"full_playthrough,omitempty"`
	RequiredLocations   map[string][]string          `json:"required_locations,omitempty"`
	RequiredEntrances   map[string][]string          `json:"required_entrances,omitempty"`
	CoarseSpheres       OrderedMap                   `json:"coarse_spheres,omitempty"`
	MiscHintLocations   map[string]map[string]string `json:"misc_hint_locations,omitempty"`
	HintedRewards       map[string]map[string]string `json:"hinted_dungeon_reward_locations,omitempty"`
}

// Entry is one key/value pair of an OrderedMap
type Entry struct {
	Key   string
	Value any
}

// OrderedMap is a JSON object that keeps its keys in insertion order
type OrderedMap []Entry

// MarshalJSON writes the entries as an object in order
func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value stored under key
func (m OrderedMap) Get(key string) (any, bool) {
	i := slices.IndexFunc(m, func(e Entry) bool { return e.Key == key })
	if i < 0 {
		return nil, false
	}
	return m[i].Value, true
}

// Keys returns the keys in order
func (m OrderedMap) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Document builds the serializable form of the spoiler
func (s *Spoiler) Document() *Document {
	doc := &Document{
		Seed:          s.Seed,
		WorldCount:    len(s.Worlds),
		Contradiction: s.Contradiction,
		MaxSphere:     s.MaxSphere,
	}

	doc.Playthrough = s.sphereMap(s.Playthrough)
	doc.CoarseSpheres = s.sphereMap(s.CoarseSpheres)
	for _, es := range s.EntrancePlaythrough {
		names := make([]string, 0, len(es.Entrances))
		for _, e := range es.Entrances {
			names = append(names, s.EntranceName(e))
		}
		doc.EntrancePlaythrough = append(doc.EntrancePlaythrough, Entry{Key: strconv.Itoa(es.Number), Value: names})
	}

	if len(s.FullPlaythrough) > 0 {
		doc.FullPlaythrough = make(map[string]map[string]int)
		for i, m := range s.FullPlaythrough {
			if len(m) > 0 {
				doc.FullPlaythrough[worldKey(i)] = m
			}
		}
	}
	if len(s.RequiredLocations) > 0 {
		doc.RequiredLocations = make(map[string][]string)
		for i, locs := range s.RequiredLocations {
			names := make([]string, 0, len(locs))
			for _, loc := range locs {
				names = append(names, loc.Name)
			}
			doc.RequiredLocations[worldKey(i)] = names
		}
	}
	if len(s.RequiredEntrances) > 0 {
		doc.RequiredEntrances = make(map[string][]string)
		for i, entrances := range s.RequiredEntrances {
			if len(entrances) == 0 {
				continue
			}
			names := make([]string, 0, len(entrances))
			for _, e := range entrances {
				names = append(names, s.EntranceName(e))
			}
			doc.RequiredEntrances[worldKey(i)] = names
		}
	}

	for _, w := range s.Worlds {
		if len(w.MiscHintLocations) > 0 {
			if doc.MiscHintLocations == nil {
				doc.MiscHintLocations = make(map[string]map[string]string)
			}
			hints := make(map[string]string)
			for hint, loc := range w.MiscHintLocations {
				hints[hint] = s.LocationName(loc)
			}
			doc.MiscHintLocations[worldKey(w.ID)] = hints
		}
		if len(w.HintedRewardLocations) > 0 {
			if doc.HintedRewards == nil {
				doc.HintedRewards = make(map[string]map[string]string)
			}
			rewards := make(map[string]string)
			for name, loc := range w.HintedRewardLocations {
				rewards[name] = s.LocationName(loc)
			}
			doc.HintedRewards[worldKey(w.ID)] = rewards
		}
	}
	return doc
}

func (s *Spoiler) sphereMap(spheres []Sphere) OrderedMap {
	var out OrderedMap
	for _, sp := range spheres {
		placements := make(OrderedMap, 0, len(sp.Placements))
		for _, p := range sp.Placements {
			placements = append(placements, Entry{Key: s.LocationName(p.Location), Value: s.ItemName(p.Item)})
		}
		out = append(out, Entry{Key: strconv.Itoa(sp.Number), Value: placements})
	}
	return out
}

// LocationName returns the display name of loc, qualified with its world
// in multiworld games
func (s *Spoiler) LocationName(loc *world.Location) string {
	if len(s.Worlds) > 1 {
		return fmt.Sprintf("%s [W%d]", loc.Name, loc.World+1)
	}
	return loc.Name
}

// ItemName returns the display name of item, qualified with its owner in
// multiworld games
func (s *Spoiler) ItemName(item *world.Item) string {
	if item != nil && len(s.Worlds) > 1 {
		return fmt.Sprintf("%s [W%d]", item.Name, item.World+1)
	}
	return item.String()
}

// EntranceName returns "entrance -> target", qualified with its world in
// multiworld games
func (s *Spoiler) EntranceName(e *world.Entrance) string {
	target := "<disconnected>"
	if e.Target != nil {
		target = e.Target.Name
	}
	if len(s.Worlds) > 1 {
		return fmt.Sprintf("%s -> %s [W%d]", e.Name, target, e.World+1)
	}
	return e.Name + " -> " + target
}

func worldKey(id int) string {
	return fmt.Sprintf("World %d", id+1)
}
