package stats

import (
	"fmt"
	"math"
	"time"

	"wealthfolio/internal/core"
)

// DayStat is one row of the monthly progress table.
//
// DailyGoal is the number of active habits on that day, a uniform daily
// target. It is unrelated to a habit's personal Target (the "21 days" goal);
// the two concepts share a name in the UI but not here.
type DayStat struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	DailyGoal int    `json:"dailyGoal"`
	Left      int    `json:"left"`
	Percent   int    `json:"percent"`
}

// MonthPrefix formats a year and month as the ISO prefix shared by every day
// in that month (e.g. "2024-03").
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDays enumerates every day of the month as ISO strings, from the 1st to
// the last calendar day, independent of how many days carry data.
func MonthDays(year, month int) []string {
	n := DaysInMonth(year, month)
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = fmt.Sprintf("%s-%02d", MonthPrefix(year, month), i+1)
	}
	return days
}

// MonthlyRollup computes per-day completion stats for every calendar day of
// the month. With zero habits every percentage is 0, never undefined.
func MonthlyRollup(habits []core.Habit, year, month int) []DayStat {
	days := MonthDays(year, month)
	out := make([]DayStat, len(days))
	goal := len(habits)
	for i, day := range days {
		completed := 0
		for _, h := range habits {
			if h.CompletedOn(day) {
				completed++
			}
		}
		out[i] = DayStat{
			Day:       day,
			Completed: completed,
			DailyGoal: goal,
			Left:      goal - completed,
			Percent:   percent(completed, goal),
		}
	}
	return out
}

// AverageConsistency is the mean day-level percentage across the rollup,
// rounded. An empty rollup yields 0.
func AverageConsistency(rollup []DayStat) int {
	if len(rollup) == 0 {
		return 0
	}
	sum := 0
	for _, d := range rollup {
		sum += d.Percent
	}
	return int(math.Round(float64(sum) / float64(len(rollup))))
}

// percent is round(n/total*100), with 0 when total is 0.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
