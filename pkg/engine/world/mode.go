package world

import "fmt"

// Mode is a traversal mode: an alternate form of the player under which
// regions are reached independently (for example a child and an adult form).
// A Mode indexes into World.Modes.
type Mode uint8

// MaxModes is the number of traversal modes a world may declare.
const MaxModes = 8

// DefaultModeName is used when a world declares no modes of its own.
const DefaultModeName = "default"

// String returns the string representation of a mode
func (m Mode) String() string {
	return fmt.Sprintf("mode#%d", uint8(m))
}

// ModeName returns the declared name of m in this world, or its index form
// when m is out of range.
func (w *World) ModeName(m Mode) string {
	if int(m) < len(w.Modes) {
		return w.Modes[m]
	}
	return m.String()
}

// ModeByName looks up a mode by its declared name.
func (w *World) ModeByName(name string) (Mode, bool) {
	for i, n := range w.Modes {
		if n == name {
			return Mode(i), true
		}
	}
	return 0, false
}

// NumModes returns how many traversal modes the world declares (at least one).
func (w *World) NumModes() int {
	if len(w.Modes) == 0 {
		return 1
	}
	return len(w.Modes)
}

// AllModes returns every mode of the world in declaration order.
func (w *World) AllModes() []Mode {
	modes := make([]Mode, w.NumModes())
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// IsValidMode returns true if the mode is declared by the world
func (w *World) IsValidMode(m Mode) bool {
	return int(m) < w.NumModes()
}
