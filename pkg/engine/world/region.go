package world

// Region is a node of the world graph. Regions are reached per traversal mode.
type Region struct {
	Name  string
	World int

	// Exits are the entrances leading out of this region, in declaration order
	Exits []*Entrance
	// Locations in this region, in declaration order
	Locations []*Location
}

// NewRegion creates a new empty region
func NewRegion(name string, worldID int) *Region {
	return &Region{
		Name:  name,
		World: worldID,
	}
}

// String returns the region name
func (r *Region) String() string {
	return r.Name
}
