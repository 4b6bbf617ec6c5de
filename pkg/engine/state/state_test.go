package state

import (
	"testing"

	"seedsolver/pkg/engine/world"
)

func TestCollectAndRemove(t *testing.T) {
	s := New(0)
	hookshot := world.NewAdvancementItem("Progressive Hookshot", 0)

	s.Collect(hookshot)
	s.Collect(hookshot)
	if got := s.ItemCount("Progressive Hookshot"); got != 2 {
		t.Errorf("ItemCount after two collects = %d, want 2", got)
	}

	s.Remove(hookshot)
	if got := s.ItemCount("Progressive Hookshot"); got != 1 {
		t.Errorf("ItemCount after remove = %d, want 1", got)
	}

	s.Remove(hookshot)
	s.Remove(hookshot)
	if got := s.ItemCount("Progressive Hookshot"); got != 0 {
		t.Errorf("ItemCount after removing past zero = %d, want 0", got)
	}
}

func TestCollectUsesSolverKind(t *testing.T) {
	s := New(0)
	first := world.NewAdvancementItem("Hookshot", 0)
	first.Kind = "Progressive Hookshot"
	second := world.NewAdvancementItem("Longshot", 0)
	second.Kind = "Progressive Hookshot"

	s.Collect(first)
	s.Collect(second)
	if !s.Has("Progressive Hookshot", 2) {
		t.Errorf("Has(Progressive Hookshot, 2) = false, want true")
	}
	if s.Has("Hookshot", 1) {
		t.Errorf("Has(Hookshot, 1) = true, want false (counted by kind)")
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := New(3)
	bow := world.NewAdvancementItem("Bow", 3)
	s.Collect(bow)

	snap := s.Snapshot()
	s.Collect(bow)
	s.Collect(world.NewAdvancementItem("Hammer", 3))

	if snap.ItemCount("Bow") != 1 {
		t.Errorf("snapshot changed after collect: Bow = %d, want 1", snap.ItemCount("Bow"))
	}

	s.Restore(snap)
	if got := s.ItemCount("Bow"); got != 1 {
		t.Errorf("ItemCount(Bow) after restore = %d, want 1", got)
	}
	if got := s.ItemCount("Hammer"); got != 0 {
		t.Errorf("ItemCount(Hammer) after restore = %d, want 0", got)
	}

	// Mutating after restore must not leak into the snapshot.
	s.Collect(bow)
	if snap.ItemCount("Bow") != 1 {
		t.Errorf("snapshot aliased live state: Bow = %d, want 1", snap.ItemCount("Bow"))
	}
}

func TestWon(t *testing.T) {
	w := world.New(0)
	w.GoalItem = "Triforce Piece"
	w.GoalCount = 2

	s := New(0)
	piece := world.NewAdvancementItem("Triforce Piece", 0)
	s.Collect(piece)
	if s.Won(w) {
		t.Error("Won with 1 of 2 pieces = true, want false")
	}
	s.Collect(piece)
	if !s.Won(w) {
		t.Error("Won with 2 of 2 pieces = false, want true")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := New(0)
	s.Collect(world.NewAdvancementItem("Bow", 0))
	c := s.Copy()
	c.Collect(world.NewAdvancementItem("Bow", 0))
	if s.ItemCount("Bow") != 1 {
		t.Errorf("original ItemCount(Bow) = %d, want 1", s.ItemCount("Bow"))
	}
	if c.ItemCount("Bow") != 2 {
		t.Errorf("copy ItemCount(Bow) = %d, want 2", c.ItemCount("Bow"))
	}
}
