package core

import (
	"testing"
)

func TestHabit_ToggleDate(t *testing.T) {
	h := Habit{Title: "Read", Target: 21, CompletedDates: []string{"2024-01-01", "2024-01-02"}}

	if present := h.ToggleDate("2024-01-03"); !present {
		t.Error("toggling an absent day should report present=true")
	}
	if !h.CompletedOn("2024-01-03") {
		t.Error("day should be in the set after first toggle")
	}

	if present := h.ToggleDate("2024-01-03"); present {
		t.Error("toggling a present day should report present=false")
	}
	if h.CompletedOn("2024-01-03") {
		t.Error("day should be gone after second toggle")
	}
	if got, want := len(h.CompletedDates), 2; got != want {
		t.Errorf("CompletedDates length = %d, want %d (double toggle must round-trip)", got, want)
	}
}

func TestHabit_ToggleDate_NoDuplicates(t *testing.T) {
	h := Habit{Title: "Run", Target: 30}
	for i := 0; i < 5; i++ {
		h.ToggleDate("2024-06-15")
	}
	// Five toggles: present, absent, present, absent, present.
	count := 0
	for _, d := range h.CompletedDates {
		if d == "2024-06-15" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("day stored %d times, want exactly 1", count)
	}
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		Title:         "Groceries",
		Amount:        MoneyFromInt(50),
		Kind:          Expense,
		PaymentSource: Bank,
		Category:      "Food",
		Date:          NewDate(2024, 3, 10),
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*Transaction) {}, wantErr: nil},
		{name: "empty title", mutate: func(tx *Transaction) { tx.Title = "  " }, wantErr: ErrEmptyTitle},
		{name: "bad kind", mutate: func(tx *Transaction) { tx.Kind = "loan" }, wantErr: ErrInvalidKind},
		{name: "bad source", mutate: func(tx *Transaction) { tx.PaymentSource = "Wallet" }, wantErr: ErrInvalidSource},
		{name: "empty category", mutate: func(tx *Transaction) { tx.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = Date{} }, wantErr: ErrInvalidDate},
		{name: "bad transfer destination", mutate: func(tx *Transaction) { tx.TransferTo = "Sofa" }, wantErr: ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_Destination(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want PaymentSource
	}{
		{
			name: "explicit transferTo wins",
			tx:   Transaction{Kind: Transfer, Category: "To Cash", TransferTo: Cash},
			want: Cash,
		},
		{
			name: "falls back to category",
			tx:   Transaction{Kind: Transfer, Category: "Cash"},
			want: Cash,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.Destination(); got != tt.want {
				t.Errorf("Destination() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGoal_Validate(t *testing.T) {
	g := Goal{Title: "Emergency fund", Horizon: LongTerm, Deadline: NewDate(2025, 12, 31)}
	if err := g.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}
	g.Deadline = Date{}
	if err := g.Validate(); err != ErrMissingDeadline {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingDeadline)
	}
	g.Horizon = "Mid Term"
	if err := g.Validate(); err != ErrInvalidHorizon {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidHorizon)
	}
}

func TestNote_Validate(t *testing.T) {
	if err := (Note{Title: "idea", Color: "Mint"}).Validate(); err != nil {
		t.Errorf("valid note rejected: %v", err)
	}
	if err := (Note{}).Validate(); err != ErrEmptyNote {
		t.Errorf("empty note: got %v, want %v", err, ErrEmptyNote)
	}
	if err := (Note{Title: "idea", Color: "Chartreuse"}).Validate(); err != ErrInvalidColor {
		t.Errorf("bad color: got %v, want %v", err, ErrInvalidColor)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 11, 27)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != `"2024-11-27"` {
		t.Errorf("MarshalJSON = %s, want %q", b, `"2024-11-27"`)
	}

	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back.Day() != "2024-11-27" {
		t.Errorf("round trip = %q, want 2024-11-27", back.Day())
	}

	var fromTimestamp Date
	if err := fromTimestamp.UnmarshalJSON([]byte(`"2024-11-27T18:30:00Z"`)); err != nil {
		t.Fatalf("UnmarshalJSON RFC3339: %v", err)
	}
	if fromTimestamp.Day() != "2024-11-27" {
		t.Errorf("RFC3339 input truncated to %q, want 2024-11-27", fromTimestamp.Day())
	}
}
