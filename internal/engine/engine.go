package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
	"github.com/lakisicaslt/lakisicaslt/internal/render"
)

// Options contains all parameters required to perform one generation run.
// Passing them explicitly keeps the transform logic free of ambient state.
type Options struct {
	Username  string // GitHub login
	Token     string // API credential; required before any network call
	TrailMode string // config.TrailModeSnake or config.TrailModeRecent
}

// Summary reports what a run computed, for logging and tests.
type Summary struct {
	Weeks       int
	TotalDays   int
	ActiveDays  int
	MaxCount    int
	Thresholds  Thresholds
	TrailPoints int
	Campfires   int
}

// Generator is the core service turning a contribution calendar into themed
// SVG documents.
type Generator struct {
	Fetcher ContributionFetcher

	// FormatLabel and FormatTitle let the caller inject localized strings
	// into the rendered output. Nil falls back to English.
	FormatLabel func(date string, count int) string
	FormatTitle func(user string) string

	// Legend text, injected the same way.
	LegendLess string
	LegendMore string
}

// Run executes the fetch, classification, path construction, and rendering
// pipeline. It returns one rendered SVG per theme, keyed by theme name.
func (g *Generator) Run(ctx context.Context, opts Options) (map[string][]byte, Summary, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyUser, opts.Username,
		config.LogKeyMode, opts.TrailMode,
	)

	// Preconditions. The credential check must come before any network
	// activity: a misconfigured run refuses immediately.
	if opts.Username == "" {
		return nil, Summary{}, errors.New(config.ErrUserEmpty)
	}
	if opts.Token == "" {
		return nil, Summary{}, errors.New(config.ErrTokenMissing)
	}
	if opts.TrailMode != config.TrailModeSnake && opts.TrailMode != config.TrailModeRecent {
		return nil, Summary{}, fmt.Errorf("%s: %q", config.ErrTrailMode, opts.TrailMode)
	}
	if g.Fetcher == nil {
		return nil, Summary{}, errors.New(config.ErrFetcherMissing)
	}

	log.InfoContext(ctx, config.MsgRunStarted)

	cal, err := g.Fetcher.FetchCalendar(ctx, opts.Username, opts.Token)
	if err != nil {
		if ctx.Err() != nil {
			return nil, Summary{}, ctx.Err()
		}
		return nil, Summary{}, err
	}

	// All remaining work is pure and in-memory.
	thresholds := BuildThresholds(cal.Counts())
	cells := cal.Cells(thresholds)
	trail := BuildTrail(cal, cells, opts.TrailMode)
	fires := PlaceCampfires(cells, config.MaxCampfires)

	scene := g.buildScene(opts.Username, cal, cells, trail, fires)

	outputs := make(map[string][]byte, len(render.Themes))
	for _, th := range render.Themes {
		outputs[th.Name] = render.Render(scene, th)
	}

	summary := summarize(cal, cells, thresholds, trail, fires)
	g.logSuccess(log, summary, time.Since(start))
	return outputs, summary, nil
}

// buildScene projects the computed model into the renderer's pixel-space
// input. Labels are formatted (and localized) here so the renderer stays a
// pure drawing backend.
func (g *Generator) buildScene(user string, cal Calendar, cells []GridCell, trail []TrailPoint, fires []Decoration) render.Scene {
	weeks := len(cal.Weeks)
	// Keep room for the fallback loop on degenerate calendars.
	if weeks < 2 {
		weeks = 2
	}

	scene := render.Scene{
		Width:      2*config.PaddingX + weeks*config.CellPitch - config.CellGap,
		Height:     config.PaddingTop + config.GridRows*config.CellPitch - config.CellGap + config.FooterHeight,
		Title:      g.title(user),
		LegendLess: g.legendLess(),
		LegendMore: g.legendMore(),
	}

	for _, c := range cells {
		x, y := CellOrigin(c.Col, c.Row)
		scene.Cells = append(scene.Cells, render.Cell{
			X:     x,
			Y:     y,
			Level: c.Level,
			Label: g.label(c.Day.Date, c.Day.Count),
		})
	}
	for _, p := range trail {
		scene.Trail = append(scene.Trail, render.Point{X: p.X, Y: p.Y})
	}
	for _, f := range fires {
		scene.Campfires = append(scene.Campfires, render.Point{X: f.Point.X, Y: f.Point.Y})
	}
	tent := TentSite(trail)
	scene.Tent = render.Point{X: tent.X, Y: tent.Y}

	return scene
}

func (g *Generator) label(date string, count int) string {
	if g.FormatLabel != nil {
		return g.FormatLabel(date, count)
	}
	return fmt.Sprintf(config.FallbackCellLabel, count, date)
}

func (g *Generator) title(user string) string {
	if g.FormatTitle != nil {
		return g.FormatTitle(user)
	}
	return fmt.Sprintf(config.FallbackTitle, user)
}

func (g *Generator) legendLess() string {
	if g.LegendLess != "" {
		return g.LegendLess
	}
	return config.FallbackLegendLess
}

func (g *Generator) legendMore() string {
	if g.LegendMore != "" {
		return g.LegendMore
	}
	return config.FallbackLegendMore
}

func summarize(cal Calendar, cells []GridCell, t Thresholds, trail []TrailPoint, fires []Decoration) Summary {
	s := Summary{
		Weeks:       len(cal.Weeks),
		TotalDays:   len(cells),
		Thresholds:  t,
		TrailPoints: len(trail),
		Campfires:   len(fires),
	}
	for _, c := range cells {
		if c.Day.Count > 0 {
			s.ActiveDays++
		}
		if c.Day.Count > s.MaxCount {
			s.MaxCount = c.Day.Count
		}
	}
	return s
}

func (g *Generator) logSuccess(log *slog.Logger, s Summary, elapsed time.Duration) {
	log.Info(config.MsgRunSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyWeeks, s.Weeks),
			slog.Int(config.LogKeyDays, s.TotalDays),
			slog.Int(config.LogKeyActive, s.ActiveDays),
			slog.Int(config.LogKeyMax, s.MaxCount),
			slog.Int(config.LogKeyTrailPts, s.TrailPoints),
			slog.Int(config.LogKeyFires, s.Campfires),
		),
		config.LogKeyDuration, elapsed.Milliseconds(),
	)
}
