package world

// Copy returns a deep copy of the world. Regions, locations, entrances and
// placed items are duplicated; rules are shared since they only refer to
// regions by name. Discovered hint locations start out empty on the copy.
func (w *World) Copy() *World {
	c := New(w.ID)
	c.Modes = append([]string(nil), w.Modes...)
	c.StartModes = append([]Mode(nil), w.StartModes...)
	c.GoalItem = w.GoalItem
	c.GoalCount = w.GoalCount
	c.DungeonRewardsHinted = w.DungeonRewardsHinted
	c.SkippedLocations = append([]string(nil), w.SkippedLocations...)
	for _, item := range w.StartingItems {
		c.StartingItems = append(c.StartingItems, item.clone())
	}
	for k, v := range w.MaxProgressions {
		c.MaxProgressions[k] = v
	}
	for k, v := range w.MiscHintItems {
		c.MiscHintItems[k] = v
	}

	for _, r := range w.regions {
		c.AddRegion(r.Name)
	}
	if w.Root != nil {
		c.Root = c.regionDir[w.Root.Name]
	}
	for _, loc := range w.locations {
		cl := c.AddLocation(c.regionDir[loc.Region.Name], loc.Name, loc.Rule)
		cl.Internal = loc.Internal
		cl.Locked = loc.Locked
		if loc.Item != nil {
			cl.Place(loc.Item.clone())
		}
	}
	for _, e := range w.entrances {
		var target *Region
		if e.Target != nil {
			target = c.regionDir[e.Target.Name]
		}
		ce := c.Connect(e.Name, c.regionDir[e.Source.Name], target, e.Rule)
		ce.Shuffled = e.Shuffled
		if e.ModeSwitch != nil {
			m := *e.ModeSwitch
			ce.ModeSwitch = &m
		}
	}
	return c
}

// CopyWorlds deep-copies every world, preserving ids and order.
func CopyWorlds(worlds []*World) []*World {
	out := make([]*World, len(worlds))
	for i, w := range worlds {
		out[i] = w.Copy()
	}
	return out
}
