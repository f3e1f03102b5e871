package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

// Point is a pixel coordinate on the canvas.
type Point struct {
	X int
	Y int
}

// Cell is one day square, already projected to pixel space and classified.
// Label is the localized accessible description (count + date); the SVG
// writer escapes it on output.
type Cell struct {
	X     int
	Y     int
	Level int
	Label string
}

// Scene carries everything the renderer needs. It is theme-independent: the
// same scene is rendered once per theme.
type Scene struct {
	Width  int
	Height int

	Title      string
	Cells      []Cell
	Trail      []Point
	Campfires  []Point
	Tent       Point
	LegendLess string
	LegendMore string
}

const (
	idTrail     = "trail"
	idTrailDash = "trail-dash"
	idCaravan   = "caravan"

	labelFont = "font-family:-apple-system,'Segoe UI',Helvetica,Arial,sans-serif;font-size:10px"

	sceneDesc = "Animated camping caravan touring a year of daily activity."

	// flickerCSS drives the campfire glow. Kept as a stylesheet rather than
	// per-element SMIL so all flames share one clock.
	flickerCSS = `.flame { animation: flicker 1.1s ease-in-out infinite alternate; }
@keyframes flicker { from { opacity: 0.7; } to { opacity: 1; } }`
)

// Render produces a complete standalone SVG document for one theme. The
// output is deterministic: the same scene and theme always produce identical
// bytes.
func Render(s Scene, th Theme) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	canvas.Start(s.Width, s.Height)
	canvas.Title(s.Title)
	canvas.Desc(sceneDesc)
	canvas.Style("text/css", flickerCSS)

	drawBackdrop(canvas, s, th)
	drawCells(canvas, s, th)
	drawLegend(canvas, s, th)
	drawTrail(canvas, s, th)
	drawCampfires(canvas, s, th)
	drawTent(canvas, s.Tent, th)
	drawCaravan(canvas, s, th)

	canvas.End()
	return buf.Bytes()
}

// drawBackdrop paints the sky, an optional star field, the celestial body,
// and the ground strip the campsite sits on.
func drawBackdrop(canvas *svg.SVG, s Scene, th Theme) {
	canvas.Rect(0, 0, s.Width, s.Height, "fill:"+th.Background)

	if th.StarFill != "" {
		// Fixed pseudo-random star positions, a function of the canvas width
		// only, so re-renders of the same calendar are byte-identical.
		for i := 0; i < s.Width/48; i++ {
			x := (i*97 + 23) % s.Width
			y := (i*53+11)%(config.PaddingTop+8) + 2
			canvas.Circle(x, y, 1, "fill:"+th.StarFill)
		}
	}

	canvas.Circle(s.Width-36, 18, 9, "fill:"+th.Celestial)
	canvas.Rect(0, s.Height-config.FooterHeight, s.Width, config.FooterHeight, "fill:"+th.Ground)
}

// drawCells emits one rounded rect per present day, each wrapped in a group
// with a <title> child so screen readers announce the date and count.
func drawCells(canvas *svg.SVG, s Scene, th Theme) {
	for _, c := range s.Cells {
		canvas.Group()
		canvas.Title(c.Label)
		canvas.Roundrect(c.X, c.Y, config.CellSize, config.CellSize,
			config.CellRound, config.CellRound,
			`class="cell"`, "fill:"+th.Levels[c.Level])
		canvas.Gend()
	}
}

// drawLegend places the Less/More intensity ramp in the footer.
func drawLegend(canvas *svg.SVG, s Scene, th Theme) {
	y := s.Height - config.FooterHeight/2 - config.CellSize/2
	textY := y + config.CellSize - 2
	x := config.PaddingX

	canvas.Text(x, textY, s.LegendLess, labelFont+";fill:"+th.TextFill)
	x += 34
	for _, fill := range th.Levels {
		canvas.Roundrect(x, y, config.CellSize, config.CellSize,
			config.CellRound, config.CellRound, "fill:"+fill)
		x += config.CellPitch
	}
	canvas.Text(x+4, textY, s.LegendMore, labelFont+";fill:"+th.TextFill)
}

// drawTrail emits the static context path, the animated dashed overlay, and
// the dash offset animation that makes the overlay crawl along the route.
func drawTrail(canvas *svg.SVG, s Scene, th Theme) {
	d := pathData(s.Trail)

	canvas.Path(d, fmt.Sprintf(`id="%s"`, idTrail),
		"fill:none;stroke:"+th.TrailStroke+";stroke-width:2;stroke-linecap:round;stroke-linejoin:round;opacity:0.6")
	canvas.Path(d, fmt.Sprintf(`id="%s"`, idTrailDash),
		"fill:none;stroke:"+th.DashStroke+";stroke-width:2;stroke-dasharray:5,9;stroke-linecap:round")

	offset := int(math.Round(pathLength(s.Trail)))
	canvas.Animate("#"+idTrailDash, "stroke-dashoffset", offset, 0, TrailDuration(s.Trail), 0)
}

// drawCampfires places a small fire at each chosen high-intensity cell.
func drawCampfires(canvas *svg.SVG, s Scene, th Theme) {
	for _, p := range s.Campfires {
		canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", p.X, p.Y))

		logStyle := "stroke:" + th.LogStroke + ";stroke-width:2;stroke-linecap:round"
		canvas.Line(-5, 6, 5, 4, logStyle)
		canvas.Line(-5, 4, 5, 6, logStyle)

		canvas.Group(`class="flame"`)
		canvas.Polygon([]int{-4, 0, 4}, []int{4, -7, 4}, "fill:"+th.FlameOuter)
		canvas.Polygon([]int{-2, 0, 2}, []int{4, -2, 4}, "fill:"+th.FlameInner)
		canvas.Gend()

		canvas.Gend()
	}
}

// drawTent pitches the terminal tent at the end of the trail.
func drawTent(canvas *svg.SVG, p Point, th Theme) {
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", p.X, p.Y))
	canvas.Polygon([]int{-9, 0, 9}, []int{7, -8, 7}, "fill:"+th.TentFill)
	canvas.Polygon([]int{-3, 0, 3}, []int{7, 0, 7}, "fill:"+th.TentDoor)
	canvas.Gend()
}

// drawCaravan draws the marker at the origin and binds it to the trail with a
// looping motion animation sharing the dash overlay's duration.
func drawCaravan(canvas *svg.SVG, s Scene, th Theme) {
	canvas.Gid(idCaravan)
	canvas.Roundrect(-10, -9, 20, 13, 3, 3, "fill:"+th.BodyFill)
	canvas.Line(-10, -9, 10, -9, "stroke:"+th.RoofFill+";stroke-width:2;stroke-linecap:round")
	canvas.Roundrect(-6, -6, 6, 5, 1, 1, "fill:"+th.WindowFill)
	canvas.Circle(-5, 5, 3, "fill:"+th.WheelFill)
	canvas.Circle(5, 5, 3, "fill:"+th.WheelFill)
	canvas.Line(10, 2, 14, 4, "stroke:"+th.RoofFill+";stroke-width:2;stroke-linecap:round")
	canvas.Gend()

	canvas.AnimateMotion("#"+idCaravan, "#"+idTrail, TrailDuration(s.Trail), 0)
}

// TrailDuration scales the loop duration with the trail length and clamps it
// to a watchable range.
func TrailDuration(trail []Point) float64 {
	dur := float64(len(trail)) * config.TrailSecondsPerPoint
	if dur < config.MinTrailSeconds {
		return config.MinTrailSeconds
	}
	if dur > config.MaxTrailSeconds {
		return config.MaxTrailSeconds
	}
	return dur
}

// pathData builds the SVG path description visiting every trail point.
func pathData(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M%d,%d", points[0].X, points[0].Y)
	for _, p := range points[1:] {
		fmt.Fprintf(&b, " L%d,%d", p.X, p.Y)
	}
	return b.String()
}

// pathLength sums the segment lengths of the trail, used as the dash offset
// sweep so one animation cycle shifts the pattern across the whole route.
func pathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		dx := float64(points[i].X - points[i-1].X)
		dy := float64(points[i].Y - points[i-1].Y)
		total += math.Hypot(dx, dy)
	}
	return total
}
