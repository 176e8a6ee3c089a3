package stats

import (
	"sort"
	"strings"
	"time"

	"wealthfolio/internal/core"
)

// DefaultTopN is the leaderboard and decline-audit cutoff when the caller
// does not supply one.
const DefaultTopN = 10

// LeaderboardEntry ranks one habit within a selected month.
type LeaderboardEntry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MonthlyCount int    `json:"monthlyCount"`
	Consistency  int    `json:"consistency"`
}

// DeclineEntry compares a habit's consistency across two adjacent months.
type DeclineEntry struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	PrevConsistency int    `json:"prevConsistency"`
	CurrConsistency int    `json:"currConsistency"`
	Diff            int    `json:"diff"`
}

// monthlyCount counts a habit's completions whose day falls in the month
// named by prefix (string-prefix match on the ISO day).
func monthlyCount(h core.Habit, prefix string) int {
	n := 0
	for _, d := range h.CompletedDates {
		if strings.HasPrefix(d, prefix+"-") {
			n++
		}
	}
	return n
}

// Leaderboard ranks habits by completion count within the selected month,
// descending, and truncates to limit (DefaultTopN when limit <= 0). Ties
// break by title, then ID, to keep the ordering deterministic. Consistency
// is measured against the full calendar length of the month.
func Leaderboard(habits []core.Habit, year, month, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultTopN
	}
	prefix := MonthPrefix(year, month)
	days := DaysInMonth(year, month)

	out := make([]LeaderboardEntry, 0, len(habits))
	for _, h := range habits {
		count := monthlyCount(h, prefix)
		out = append(out, LeaderboardEntry{
			ID:           h.ID,
			Title:        h.Title,
			MonthlyCount: count,
			Consistency:  percent(count, days),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MonthlyCount != out[j].MonthlyCount {
			return out[i].MonthlyCount > out[j].MonthlyCount
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DeclineAudit identifies habits whose consistency dropped versus the prior
// month, judged at the reference date ref (normally "now").
//
// The previous month is measured over its full calendar length; the current
// month only over the days elapsed up to ref, since the current month is
// incomplete. Only habits with diff < 0 are
// listed, most declined first; improving habits never appear even when fewer
// than limit declined.
func DeclineAudit(habits []core.Habit, ref time.Time, limit int) []DeclineEntry {
	if limit <= 0 {
		limit = DefaultTopN
	}

	currPrefix := MonthPrefix(ref.Year(), int(ref.Month()))
	prev := ref.AddDate(0, 0, -ref.Day()) // last day of the previous month
	prevPrefix := MonthPrefix(prev.Year(), int(prev.Month()))
	prevDays := DaysInMonth(prev.Year(), int(prev.Month()))
	elapsed := ref.Day()

	out := make([]DeclineEntry, 0, len(habits))
	for _, h := range habits {
		prevC := percent(monthlyCount(h, prevPrefix), prevDays)
		currC := percent(monthlyCount(h, currPrefix), elapsed)
		if diff := currC - prevC; diff < 0 {
			out = append(out, DeclineEntry{
				ID:              h.ID,
				Title:           h.Title,
				PrevConsistency: prevC,
				CurrConsistency: currC,
				Diff:            diff,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Diff != out[j].Diff {
			return out[i].Diff < out[j].Diff
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
