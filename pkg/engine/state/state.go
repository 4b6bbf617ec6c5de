// Package state tracks which items a world has collected and how many.
package state

import (
	"maps"

	"seedsolver/pkg/engine/world"
)

// CollectionState is the per-world record of collected item counts.
// It is not safe for concurrent use.
type CollectionState struct {
	world  int
	counts map[string]int
}

// Snapshot is an immutable copy of a CollectionState
type Snapshot struct {
	world  int
	counts map[string]int
}

// New creates an empty collection state for the given world
func New(worldID int) *CollectionState {
	return &CollectionState{
		world:  worldID,
		counts: make(map[string]int),
	}
}

// World returns the id of the world this state belongs to
func (s *CollectionState) World() int {
	return s.world
}

// Collect adds one copy of item
func (s *CollectionState) Collect(item *world.Item) {
	if item == nil {
		return
	}
	s.counts[item.SolverKind()]++
}

// Remove takes away one copy of item. Counts never go below zero.
func (s *CollectionState) Remove(item *world.Item) {
	if item == nil {
		return
	}
	kind := item.SolverKind()
	switch n := s.counts[kind]; {
	case n > 1:
		s.counts[kind] = n - 1
	case n == 1:
		delete(s.counts, kind)
	}
}

// ItemCount returns how many items of kind are held
func (s *CollectionState) ItemCount(kind string) int {
	return s.counts[kind]
}

// Has returns true if at least count items of kind are held
func (s *CollectionState) Has(kind string, count int) bool {
	return s.counts[kind] >= count
}

// Won returns true if w's win condition holds in this state
func (s *CollectionState) Won(w *world.World) bool {
	kind, count := w.Goal()
	return s.Has(kind, count)
}

// ProgItems returns a copy of the held counts, for logging
func (s *CollectionState) ProgItems() map[string]int {
	return maps.Clone(s.counts)
}

// Copy returns an independent copy of the state
func (s *CollectionState) Copy() *CollectionState {
	return &CollectionState{
		world:  s.world,
		counts: maps.Clone(s.counts),
	}
}

// Snapshot captures the current state
func (s *CollectionState) Snapshot() Snapshot {
	return Snapshot{
		world:  s.world,
		counts: maps.Clone(s.counts),
	}
}

// Restore replaces the state wholesale with a snapshot
func (s *CollectionState) Restore(snap Snapshot) {
	s.world = snap.world
	s.counts = maps.Clone(snap.counts)
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
}

// ItemCount returns how many items of kind the snapshot holds
func (snap Snapshot) ItemCount(kind string) int {
	return snap.counts[kind]
}
