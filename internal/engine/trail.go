package engine

import (
	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

// TrailPoint is a pixel-space coordinate on the canvas. Trail points sit at
// cell centers so the animated caravan drives over the middle of each day.
type TrailPoint struct {
	X int
	Y int
}

// CellOrigin returns the pixel position of the top-left corner of a grid cell.
func CellOrigin(col, row int) (x, y int) {
	return config.PaddingX + col*config.CellPitch, config.PaddingTop + row*config.CellPitch
}

// CellCenter returns the trail point at the center of a grid cell.
func CellCenter(col, row int) TrailPoint {
	x, y := CellOrigin(col, row)
	return TrailPoint{X: x + config.CellSize/2, Y: y + config.CellSize/2}
}

// BuildTrail produces the ordered sequence of points the caravan follows.
// Mode selects between the full covering walk and the recent-activity trail;
// both substitute a fixed closed loop when fewer than two points exist, since
// a motion animation over an empty or single-point path is undefined in the
// rendering target.
func BuildTrail(cal Calendar, cells []GridCell, mode string) []TrailPoint {
	var points []TrailPoint
	switch mode {
	case config.TrailModeRecent:
		points = recentTrail(cells)
	default:
		points = snakeTrail(cal)
	}
	if len(points) < 2 {
		return fallbackLoop()
	}
	return points
}

// snakeTrail builds a boustrophedon covering walk over every present day:
// even columns are visited top to bottom, odd columns bottom to top, columns
// left to right. Adjacent points always differ by exactly one cell step, so
// the caravan never teleports. Absent slots occur only at the calendar
// boundaries (start of the first week, end of the last), where skipping them
// keeps the walk connected.
func snakeTrail(cal Calendar) []TrailPoint {
	var points []TrailPoint
	for col, week := range cal.Weeks {
		if col%2 == 0 {
			for row := 0; row < config.GridRows; row++ {
				if week.Days[row] != nil {
					points = append(points, CellCenter(col, row))
				}
			}
		} else {
			for row := config.GridRows - 1; row >= 0; row-- {
				if week.Days[row] != nil {
					points = append(points, CellCenter(col, row))
				}
			}
		}
	}
	return points
}

// recentTrail visits only days with positive activity, in chronological
// order, capped to the most recent entries. The result is a highlights trail
// rather than a full covering walk.
func recentTrail(cells []GridCell) []TrailPoint {
	var active []GridCell
	for _, c := range cells {
		if c.Day.Count > 0 {
			active = append(active, c)
		}
	}
	if len(active) > config.MaxRecentTrail {
		active = active[len(active)-config.MaxRecentTrail:]
	}

	points := make([]TrailPoint, 0, len(active))
	for _, c := range active {
		points = append(points, CellCenter(c.Col, c.Row))
	}
	return points
}

// fallbackLoop is a small closed rectangle around the first grid cell. It
// keeps the animation primitives well-defined on degenerate calendars.
func fallbackLoop() []TrailPoint {
	origin := CellCenter(0, 0)
	return []TrailPoint{
		origin,
		{X: origin.X + config.CellPitch, Y: origin.Y},
		{X: origin.X + config.CellPitch, Y: origin.Y + config.CellPitch},
		{X: origin.X, Y: origin.Y + config.CellPitch},
	}
}
