// Package stats is the aggregation engine: pure functions deriving dashboard
// views (weekly grids, monthly rollups, leaderboards, balances) from a user's
// full record set. Functions here never perform I/O, never mutate their
// inputs, and degrade to zero/empty outputs on empty collections.
package stats

import (
	"time"

	"wealthfolio/internal/core"
)

// WeekOf returns the Monday-anchored 7-day window containing ref, as ordered
// ISO YYYY-MM-DD strings. Sunday counts as the 7th day of the week, not the
// 0th, so the window for a Sunday still starts on the preceding Monday.
func WeekOf(ref time.Time) []string {
	offset := int(ref.Weekday()) - 1
	if ref.Weekday() == time.Sunday {
		offset = 6
	}
	monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -offset)

	days := make([]string, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i).Format(core.DayLayout)
	}
	return days
}

// PrevWeek and NextWeek shift a reference date by one week for grid
// navigation. There is no bound on how far navigation may go.
func PrevWeek(ref time.Time) time.Time { return ref.AddDate(0, 0, -7) }
func NextWeek(ref time.Time) time.Time { return ref.AddDate(0, 0, 7) }

// WeekDayCount is one day of the weekly grid with the number of habits
// completed on it.
type WeekDayCount struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
}

// WeeklyCounts maps the week window around ref to per-day completion counts
// across all habits.
func WeeklyCounts(habits []core.Habit, ref time.Time) []WeekDayCount {
	days := WeekOf(ref)
	out := make([]WeekDayCount, len(days))
	for i, day := range days {
		n := 0
		for _, h := range habits {
			if h.CompletedOn(day) {
				n++
			}
		}
		out[i] = WeekDayCount{Day: day, Completed: n}
	}
	return out
}
