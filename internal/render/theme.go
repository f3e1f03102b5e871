package render

// Theme is a complete color palette for one rendition of the scene. The two
// outputs share all computed data and differ only in these fills.
type Theme struct {
	Name string

	// Background and ground strip.
	Background string
	Ground     string

	// Levels is the 5-step intensity ramp, index 0 for inactive days.
	Levels [5]string

	// Trail strokes: the static context path and the animated dashed overlay.
	TrailStroke string
	DashStroke  string

	// Caravan marker.
	BodyFill   string
	RoofFill   string
	WheelFill  string
	WindowFill string

	// Campfire and tent.
	FlameOuter string
	FlameInner string
	LogStroke  string
	TentFill   string
	TentDoor   string

	// Celestial body (moon or sun) and optional star field.
	Celestial string
	StarFill  string

	// Legend text.
	TextFill string
}

// Dark is the midnight campsite palette. The cell ramp matches the GitHub
// dark contribution colors so the grid reads as a familiar heatmap.
var Dark = Theme{
	Name:        "dark",
	Background:  "#0d1117",
	Ground:      "#010409",
	Levels:      [5]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
	TrailStroke: "#30363d",
	DashStroke:  "#f0883e",
	BodyFill:    "#d29922",
	RoofFill:    "#8b949e",
	WheelFill:   "#484f58",
	WindowFill:  "#ffd33d",
	FlameOuter:  "#f0883e",
	FlameInner:  "#ffd33d",
	LogStroke:   "#8b5a2b",
	TentFill:    "#1f6feb",
	TentDoor:    "#0d419d",
	Celestial:   "#e6edf3",
	StarFill:    "#8b949e",
	TextFill:    "#8b949e",
}

// Light is the daylight palette.
var Light = Theme{
	Name:        "light",
	Background:  "#ffffff",
	Ground:      "#f6f8fa",
	Levels:      [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	TrailStroke: "#d0d7de",
	DashStroke:  "#fb8500",
	BodyFill:    "#bf8700",
	RoofFill:    "#57606a",
	WheelFill:   "#6e7781",
	WindowFill:  "#eac54f",
	FlameOuter:  "#fb8500",
	FlameInner:  "#eac54f",
	LogStroke:   "#8b5a2b",
	TentFill:    "#0969da",
	TentDoor:    "#0a3069",
	Celestial:   "#eac54f",
	StarFill:    "",
	TextFill:    "#57606a",
}

// Themes lists the renditions produced by every run, in output order.
var Themes = []Theme{Dark, Light}
