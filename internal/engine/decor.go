package engine

// Decoration marks a grid cell hosting a secondary scene element.
type Decoration struct {
	Col   int
	Row   int
	Point TrailPoint
}

// PlaceCampfires selects up to max high-intensity cells to host campfires.
// The top intensity tier is preferred; if it yields too few sites, the next
// tier down backfills. Within a tier the most recent days win, and a grid
// position is never used twice. Level-0 days never qualify.
func PlaceCampfires(cells []GridCell, max int) []Decoration {
	if max <= 0 {
		return nil
	}

	taken := make(map[[2]int]bool, max)
	var fires []Decoration

	for level := 4; level >= 1 && len(fires) < max; level-- {
		// Walk backwards so later (more recent) days are preferred.
		for i := len(cells) - 1; i >= 0 && len(fires) < max; i-- {
			c := cells[i]
			if c.Level != level {
				continue
			}
			pos := [2]int{c.Col, c.Row}
			if taken[pos] {
				continue
			}
			taken[pos] = true
			fires = append(fires, Decoration{Col: c.Col, Row: c.Row, Point: CellCenter(c.Col, c.Row)})
		}
	}
	return fires
}

// TentSite returns the terminal decoration position: the tent always pitches
// at the end of the trail, whatever the intensity of that cell.
func TentSite(trail []TrailPoint) TrailPoint {
	if len(trail) == 0 {
		// BuildTrail never returns an empty trail; this is a guard for
		// callers composing scenes by hand.
		return CellCenter(0, 0)
	}
	return trail[len(trail)-1]
}
