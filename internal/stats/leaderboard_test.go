package stats

import (
	"fmt"
	"testing"
	"time"

	"wealthfolio/internal/core"
)

// daysOf generates the first n ISO days of a month.
func daysOf(year, month, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = fmt.Sprintf("%s-%02d", MonthPrefix(year, month), i+1)
	}
	return out
}

func TestLeaderboard(t *testing.T) {
	// April 2024 has 30 days.
	habits := []core.Habit{
		{ID: "a", Title: "Read", CompletedDates: daysOf(2024, 4, 18)},
		{ID: "b", Title: "Run", CompletedDates: daysOf(2024, 4, 30)},
		{ID: "c", Title: "Meditate"},
	}

	board := Leaderboard(habits, 2024, 4, 10)
	if len(board) != 3 {
		t.Fatalf("leaderboard has %d entries, want 3", len(board))
	}

	wantOrder := []struct {
		id          string
		count       int
		consistency int
	}{
		{"b", 30, 100},
		{"a", 18, 60},
		{"c", 0, 0},
	}
	for i, want := range wantOrder {
		got := board[i]
		if got.ID != want.id || got.MonthlyCount != want.count || got.Consistency != want.consistency {
			t.Errorf("rank %d = {%s %d %d%%}, want {%s %d %d%%}",
				i+1, got.ID, got.MonthlyCount, got.Consistency, want.id, want.count, want.consistency)
		}
	}
}

func TestLeaderboard_CountsOnlySelectedMonth(t *testing.T) {
	h := core.Habit{ID: "a", Title: "Read", CompletedDates: []string{
		"2024-03-31", "2024-04-01", "2024-04-15", "2024-05-01",
	}}
	board := Leaderboard([]core.Habit{h}, 2024, 4, 10)
	if board[0].MonthlyCount != 2 {
		t.Errorf("monthlyCount = %d, want 2 (only April days)", board[0].MonthlyCount)
	}
}

func TestLeaderboard_TieBreakAndCutoff(t *testing.T) {
	habits := []core.Habit{
		{ID: "2", Title: "Zebra", CompletedDates: daysOf(2024, 4, 5)},
		{ID: "1", Title: "Alpha", CompletedDates: daysOf(2024, 4, 5)},
		{ID: "3", Title: "Mid", CompletedDates: daysOf(2024, 4, 9)},
	}
	board := Leaderboard(habits, 2024, 4, 2)
	if len(board) != 2 {
		t.Fatalf("cutoff ignored: got %d entries, want 2", len(board))
	}
	if board[0].ID != "3" {
		t.Errorf("rank 1 = %s, want 3", board[0].ID)
	}
	if board[1].Title != "Alpha" {
		t.Errorf("tie-break by title failed: rank 2 = %s, want Alpha", board[1].Title)
	}
}

func TestDeclineAudit(t *testing.T) {
	// Reference date: 10 May 2024, so 10 days elapsed in the current month
	// and April (30 days) is the full previous month.
	ref := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	declining := core.Habit{ID: "d", Title: "Journal",
		// April: 24/30 = 80%. May so far: 5/10 = 50%. diff = -30.
		CompletedDates: append(daysOf(2024, 4, 24), daysOf(2024, 5, 5)...)}
	improving := core.Habit{ID: "i", Title: "Stretch",
		// April: 12/30 = 40%. May so far: 7/10 = 70%. diff = +30.
		CompletedDates: append(daysOf(2024, 4, 12), daysOf(2024, 5, 7)...)}

	audit := DeclineAudit([]core.Habit{improving, declining}, ref, 10)
	if len(audit) != 1 {
		t.Fatalf("audit has %d entries, want 1 (improvers filtered out)", len(audit))
	}
	got := audit[0]
	if got.ID != "d" || got.PrevConsistency != 80 || got.CurrConsistency != 50 || got.Diff != -30 {
		t.Errorf("decline entry = %+v, want prev=80 curr=50 diff=-30", got)
	}
}

func TestDeclineAudit_JanuaryLooksAtDecember(t *testing.T) {
	ref := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	h := core.Habit{ID: "a", Title: "Read",
		// December 2023: 31/31 = 100%. January so far: 0/10 = 0%.
		CompletedDates: daysOf(2023, 12, 31)}
	audit := DeclineAudit([]core.Habit{h}, ref, 10)
	if len(audit) != 1 {
		t.Fatalf("audit has %d entries, want 1", len(audit))
	}
	if audit[0].PrevConsistency != 100 || audit[0].Diff != -100 {
		t.Errorf("entry = %+v, want prev=100 diff=-100", audit[0])
	}
}

func TestDeclineAudit_MostDeclinedFirst(t *testing.T) {
	ref := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mild := core.Habit{ID: "m", Title: "Mild",
		CompletedDates: append(daysOf(2024, 4, 15), daysOf(2024, 5, 4)...)} // 50% -> 40%
	steep := core.Habit{ID: "s", Title: "Steep",
		CompletedDates: daysOf(2024, 4, 30)} // 100% -> 0%
	audit := DeclineAudit([]core.Habit{mild, steep}, ref, 10)
	if len(audit) != 2 || audit[0].ID != "s" || audit[1].ID != "m" {
		t.Fatalf("order = %+v, want steepest decline first", audit)
	}
}

func TestDeclineAudit_EmptyHabits(t *testing.T) {
	if audit := DeclineAudit(nil, time.Now(), 10); len(audit) != 0 {
		t.Errorf("audit of no habits = %+v, want empty", audit)
	}
}
