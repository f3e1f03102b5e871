package engine

import (
	"log/slog"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

// CalendarDay is a single day record from the contribution calendar.
type CalendarDay struct {
	// Date is the ISO calendar date (YYYY-MM-DD) as reported by the API.
	Date string

	// Count is the non-negative contribution count for that day.
	Count int
}

// Week is one column of the calendar. Days is indexed by weekday (0=Sunday).
// A nil slot means the calendar has no record for that weekday, which happens
// at the boundaries of the range; absent slots are rendered as empty space.
type Week struct {
	Days [config.GridRows]*CalendarDay
}

// Calendar is the full contribution calendar, weeks in chronological order.
type Calendar struct {
	Weeks []Week
	Total int
}

// GridCell projects a present day onto its grid position with the computed
// intensity level. Cells returns them in chronological order.
type GridCell struct {
	Col   int
	Row   int
	Day   CalendarDay
	Level int
}

// Counts returns every present day's contribution count, zeros included,
// in chronological order. This is the input to the threshold builder.
func (c Calendar) Counts() []int {
	var counts []int
	for _, w := range c.Weeks {
		for _, d := range w.Days {
			if d != nil {
				counts = append(counts, d.Count)
			}
		}
	}
	return counts
}

// Cells classifies every present day against the thresholds and returns the
// resulting grid cells in chronological order.
func (c Calendar) Cells(t Thresholds) []GridCell {
	var cells []GridCell
	for col, w := range c.Weeks {
		for row, d := range w.Days {
			if d == nil {
				continue
			}
			cells = append(cells, GridCell{
				Col:   col,
				Row:   row,
				Day:   *d,
				Level: t.LevelFor(d.Count),
			})
		}
	}
	return cells
}

// -----------------------------------------------------------------------------
// GitHub GraphQL DTOs
// -----------------------------------------------------------------------------

// graphQLRequest is the POST body for the GitHub GraphQL API.
type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

// graphQLResponse mirrors the subset of the API response we consume.
// Pointer fields distinguish "absent" from "zero value" so malformed or
// missing records can be tolerated instead of misread.
type graphQLResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int       `json:"totalContributions"`
					Weeks              []weekDTO `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type weekDTO struct {
	ContributionDays []dayDTO `json:"contributionDays"`
}

type dayDTO struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
	Weekday           *int   `json:"weekday"`
}

// mapCalendar converts the decoded API payload into the domain model.
// Day records with a missing date or an out-of-range weekday are skipped with
// a warning; the surrounding week keeps a nil slot for them.
func mapCalendar(resp *graphQLResponse) Calendar {
	cal := Calendar{
		Total: resp.Data.User.ContributionsCollection.ContributionCalendar.TotalContributions,
	}

	for _, wd := range resp.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		var week Week
		for _, dd := range wd.ContributionDays {
			if dd.Date == "" || dd.Weekday == nil || *dd.Weekday < 0 || *dd.Weekday >= config.GridRows {
				slog.Warn(config.MsgSkippedDay,
					config.LogKeyComponent, config.CompFetcher,
					config.LogKeyValue, dd.Date,
				)
				continue
			}
			count := dd.ContributionCount
			if count < 0 {
				count = 0
			}
			week.Days[*dd.Weekday] = &CalendarDay{Date: dd.Date, Count: count}
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}
