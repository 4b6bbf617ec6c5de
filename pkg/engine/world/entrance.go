package world

// Entrance is a directed link between two regions. Shuffled entrances have a
// randomized target and are subject to requirement analysis.
type Entrance struct {
	Name   string
	World  int
	Source *Region
	Target *Region
	Rule   Rule

	Shuffled bool

	// ModeSwitch, when set, means the target is reached in that mode
	// regardless of the mode used to traverse the entrance.
	ModeSwitch *Mode
}

// Connect points the entrance at target
func (e *Entrance) Connect(target *Region) {
	e.Target = target
}

// Disconnect detaches the entrance and returns the previous target
func (e *Entrance) Disconnect() *Region {
	previous := e.Target
	e.Target = nil
	return previous
}

// Connected returns true if the entrance currently leads somewhere
func (e *Entrance) Connected() bool {
	return e.Target != nil
}

// TargetMode returns the mode in which the target is reached when the
// entrance is traversed in mode m.
func (e *Entrance) TargetMode(m Mode) Mode {
	if e.ModeSwitch != nil {
		return *e.ModeSwitch
	}
	return m
}

// String returns the entrance name
func (e *Entrance) String() string {
	return e.Name
}
