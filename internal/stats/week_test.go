package stats

import (
	"testing"
	"time"

	"wealthfolio/internal/core"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantFirst string
		wantLast  string
	}{
		{
			name:      "midweek wednesday",
			ref:       time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC),
			wantFirst: "2024-03-11",
			wantLast:  "2024-03-17",
		},
		{
			name:      "monday anchors itself",
			ref:       time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			wantFirst: "2024-03-11",
			wantLast:  "2024-03-17",
		},
		{
			name:      "sunday belongs to the preceding monday",
			ref:       time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC),
			wantFirst: "2024-03-11",
			wantLast:  "2024-03-17",
		},
		{
			name:      "window crosses a month boundary",
			ref:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantFirst: "2024-02-26",
			wantLast:  "2024-03-03",
		},
		{
			name:      "window crosses a year boundary",
			ref:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantFirst: "2024-12-30",
			wantLast:  "2025-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := WeekOf(tt.ref)
			if len(days) != 7 {
				t.Fatalf("WeekOf returned %d days, want 7", len(days))
			}
			if days[0] != tt.wantFirst {
				t.Errorf("first day = %s, want %s", days[0], tt.wantFirst)
			}
			if days[6] != tt.wantLast {
				t.Errorf("last day = %s, want %s", days[6], tt.wantLast)
			}
			for i := 1; i < len(days); i++ {
				if days[i] <= days[i-1] {
					t.Errorf("days not chronologically ordered: %s then %s", days[i-1], days[i])
				}
			}
			first, err := time.Parse(core.DayLayout, days[0])
			if err != nil {
				t.Fatalf("first day unparseable: %v", err)
			}
			if first.Weekday() != time.Monday {
				t.Errorf("window starts on %s, want Monday", first.Weekday())
			}
		})
	}
}

func TestWeekNavigation(t *testing.T) {
	ref := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	prev := WeekOf(PrevWeek(ref))
	next := WeekOf(NextWeek(ref))
	if prev[0] != "2024-03-04" {
		t.Errorf("previous week starts %s, want 2024-03-04", prev[0])
	}
	if next[0] != "2024-03-18" {
		t.Errorf("next week starts %s, want 2024-03-18", next[0])
	}
}

func TestWeeklyCounts(t *testing.T) {
	habits := []core.Habit{
		{ID: "a", Title: "Read", CompletedDates: []string{"2024-03-11", "2024-03-12"}},
		{ID: "b", Title: "Run", CompletedDates: []string{"2024-03-12"}},
	}
	counts := WeeklyCounts(habits, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC))
	if len(counts) != 7 {
		t.Fatalf("got %d days, want 7", len(counts))
	}
	if counts[0].Completed != 1 {
		t.Errorf("monday completed = %d, want 1", counts[0].Completed)
	}
	if counts[1].Completed != 2 {
		t.Errorf("tuesday completed = %d, want 2", counts[1].Completed)
	}
	if counts[2].Completed != 0 {
		t.Errorf("wednesday completed = %d, want 0", counts[2].Completed)
	}
}
