package engine_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
	"github.com/lakisicaslt/lakisicaslt/internal/engine"
	"github.com/lakisicaslt/lakisicaslt/internal/render"
)

// mockFetcher returns a canned calendar and records how often it was called.
type mockFetcher struct {
	cal   engine.Calendar
	err   error
	calls int
}

func (m *mockFetcher) FetchCalendar(_ context.Context, _, _ string) (engine.Calendar, error) {
	m.calls++
	if m.err != nil {
		return engine.Calendar{}, m.err
	}
	return m.cal, nil
}

// testCalendar builds a full grid of the given width; counts come from the
// supplied function of (col, row).
func testCalendar(weeks int, count func(col, row int) int) engine.Calendar {
	cal := engine.Calendar{}
	for col := 0; col < weeks; col++ {
		var week engine.Week
		for row := 0; row < config.GridRows; row++ {
			week.Days[row] = &engine.CalendarDay{
				Date:  fmt.Sprintf("2026-02-%02d", col*config.GridRows+row+1),
				Count: count(col, row),
			}
			cal.Total += week.Days[row].Count
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

func defaultOptions() engine.Options {
	return engine.Options{
		Username:  "octocat",
		Token:     "test-token",
		TrailMode: config.TrailModeSnake,
	}
}

func TestGenerator_Run_Preconditions(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*engine.Options)
		nilFetcher  bool
		expectedErr string
		desc        string
	}{
		{
			name:        "Missing username",
			mutate:      func(o *engine.Options) { o.Username = "" },
			expectedErr: config.ErrUserEmpty,
			desc:        "An empty login is rejected before any work happens",
		},
		{
			name:        "Missing token",
			mutate:      func(o *engine.Options) { o.Token = "" },
			expectedErr: config.ErrTokenMissing,
			desc:        "The credential check fires before the fetch",
		},
		{
			name:        "Unknown trail mode",
			mutate:      func(o *engine.Options) { o.TrailMode = "spiral" },
			expectedErr: config.ErrTrailMode,
			desc:        "Only the two known modes are accepted",
		},
		{
			name:        "No fetcher wired",
			mutate:      func(o *engine.Options) {},
			nilFetcher:  true,
			expectedErr: config.ErrFetcherMissing,
			desc:        "A generator without a fetcher cannot run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &mockFetcher{cal: testCalendar(2, func(int, int) int { return 1 })}
			gen := &engine.Generator{Fetcher: fetcher}
			if tt.nilFetcher {
				gen.Fetcher = nil
			}

			opts := defaultOptions()
			tt.mutate(&opts)

			outputs, _, err := gen.Run(context.Background(), opts)
			require.Error(t, err, tt.desc)
			assert.Contains(t, err.Error(), tt.expectedErr)
			assert.Nil(t, outputs)
			assert.Zero(t, fetcher.calls, "no network call may happen on a failed precondition")
		})
	}
}

func TestGenerator_Run_FetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("upstream unavailable")
	gen := &engine.Generator{Fetcher: &mockFetcher{err: fetchErr}}

	outputs, _, err := gen.Run(context.Background(), defaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Nil(t, outputs)
}

func TestGenerator_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &engine.Generator{Fetcher: &mockFetcher{err: errors.New("request aborted")}}

	_, _, err := gen.Run(ctx, defaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_Run_QuietCalendar(t *testing.T) {
	cal := testCalendar(3, func(int, int) int { return 0 })
	gen := &engine.Generator{Fetcher: &mockFetcher{cal: cal}}

	outputs, summary, err := gen.Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Weeks)
	assert.Equal(t, 21, summary.TotalDays)
	assert.Zero(t, summary.ActiveDays)
	assert.Zero(t, summary.MaxCount)
	assert.Equal(t, engine.Thresholds{1, 2, 3, 4}, summary.Thresholds,
		"a calendar with no activity uses default thresholds")
	assert.Equal(t, 21, summary.TrailPoints, "the covering walk still visits every day")
	assert.Zero(t, summary.Campfires, "no campfire without activity")

	require.Len(t, outputs, len(render.Themes))
	dark := string(outputs[render.Dark.Name])
	assert.Equal(t, 21, strings.Count(dark, `class="cell"`))
	// Every cell plus the first legend swatch uses the level-0 fill.
	assert.Equal(t, 22, strings.Count(dark, "fill:"+render.Dark.Levels[0]))
}

func TestGenerator_Run_SaturatedWeek(t *testing.T) {
	counts := []int{0, 1, 2, 5, 10, 10, 10}
	cal := testCalendar(1, func(_, row int) int { return counts[row] })
	gen := &engine.Generator{Fetcher: &mockFetcher{cal: cal}}

	outputs, summary, err := gen.Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, engine.Thresholds{3, 8, 10, 11}, summary.Thresholds)
	assert.Equal(t, 4, summary.Thresholds.LevelFor(10),
		"the busiest day reaches the maximum intensity")
	assert.Equal(t, 10, summary.MaxCount)
	assert.Equal(t, 6, summary.ActiveDays)
	assert.Equal(t, 7, summary.TrailPoints)
	assert.Equal(t, config.MaxCampfires, summary.Campfires)

	doc := string(outputs[render.Dark.Name])
	// Seven points stay under the minimum duration, so the loop clamps.
	assert.Contains(t, doc, `dur="10s"`)
	assert.Contains(t, doc, "fill:"+render.Dark.Levels[4], "the top-tier fill must appear in the dark theme")
}

func TestGenerator_Run_RecentMode(t *testing.T) {
	cal := testCalendar(2, func(col, row int) int {
		if row < 3 {
			return 2
		}
		return 0
	})
	gen := &engine.Generator{Fetcher: &mockFetcher{cal: cal}}

	opts := defaultOptions()
	opts.TrailMode = config.TrailModeRecent

	_, summary, err := gen.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.TrailPoints, "the recent trail visits only active days")
}

func TestGenerator_Run_LocalizedStrings(t *testing.T) {
	cal := testCalendar(1, func(int, int) int { return 1 })
	gen := &engine.Generator{
		Fetcher: &mockFetcher{cal: cal},
		FormatLabel: func(date string, count int) string {
			return fmt.Sprintf("%d choses le %s", count, date)
		},
		FormatTitle: func(user string) string { return "Caravane de " + user },
		LegendLess:  "Moins",
		LegendMore:  "Plus",
	}

	outputs, _, err := gen.Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	doc := string(outputs[render.Light.Name])
	assert.Contains(t, doc, "Caravane de octocat")
	assert.Contains(t, doc, "1 choses le 2026-02-01")
	assert.Contains(t, doc, "Moins")
	assert.Contains(t, doc, "Plus")
}

func TestGenerator_Run_OutputsPerTheme(t *testing.T) {
	cal := testCalendar(2, func(col, row int) int { return row })
	gen := &engine.Generator{Fetcher: &mockFetcher{cal: cal}}

	outputs, _, err := gen.Run(context.Background(), defaultOptions())
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	dark, ok := outputs[render.Dark.Name]
	require.True(t, ok)
	light, ok := outputs[render.Light.Name]
	require.True(t, ok)

	assert.Contains(t, string(dark), "fill:"+render.Dark.Background)
	assert.Contains(t, string(light), "fill:"+render.Light.Background)
	assert.NotEqual(t, dark, light, "themes must produce distinct documents")
}

func TestGenerator_Run_Deterministic(t *testing.T) {
	cal := testCalendar(4, func(col, row int) int { return (col*7 + row) % 5 })
	gen := &engine.Generator{Fetcher: &mockFetcher{cal: cal}}

	first, _, err := gen.Run(context.Background(), defaultOptions())
	require.NoError(t, err)
	second, _, err := gen.Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first[render.Dark.Name], second[render.Dark.Name],
		"re-running on the same calendar must be byte-identical")
	assert.Equal(t, first[render.Light.Name], second[render.Light.Name])
}
