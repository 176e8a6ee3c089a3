package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income   TransactionKind = "income"
	Expense  TransactionKind = "expense"
	Transfer TransactionKind = "transfer"
)

const (
	Cash       PaymentSource = "Cash"
	Bank       PaymentSource = "Bank"
	Investment PaymentSource = "Investment"
)

const (
	ShortTerm GoalHorizon = "Short Term"
	LongTerm  GoalHorizon = "Long Term"
)

// DefaultHabitTarget is the personal day target applied when a habit is
// created without one ("21 days to build a habit"). It is a per-habit
// attribute, distinct from the daily goal count used by the monthly rollup.
const DefaultHabitTarget = 21

// InvestmentCategory is the synthetic expense category treated as asset
// allocation rather than consumption in the dashboard totals.
const InvestmentCategory = "Investment"

// DayLayout is the calendar-day wire format used for habit completions and
// transaction dates.
const DayLayout = "2006-01-02"

type (
	TransactionKind string
	PaymentSource   string
	GoalHorizon     string

	Date struct {
		time.Time
	}

	// Transaction is a single financial record owned by one user.
	// For transfers, TransferTo names the destination source; older records
	// carry the destination in Category instead.
	Transaction struct {
		ID            string          `json:"id"`
		Owner         string          `json:"owner"`
		Title         string          `json:"title"`
		Amount        Money           `json:"amount"`
		Kind          TransactionKind `json:"type"`
		PaymentSource PaymentSource   `json:"paymentSource"`
		Category      string          `json:"category"`
		TransferTo    PaymentSource   `json:"transferTo,omitempty"`
		Date          Date            `json:"date"`
	}

	// Habit tracks daily completions. CompletedDates holds ISO YYYY-MM-DD
	// strings with set semantics: each day appears at most once.
	Habit struct {
		ID             string   `json:"id"`
		Owner          string   `json:"owner"`
		Title          string   `json:"title"`
		Target         int      `json:"target"`
		CompletedDates []string `json:"completedDates"`
	}

	Goal struct {
		ID          string      `json:"id"`
		Owner       string      `json:"owner"`
		Title       string      `json:"title"`
		Horizon     GoalHorizon `json:"horizon"`
		Deadline    Date        `json:"deadline"`
		IsCompleted bool        `json:"isCompleted"`
		CompletedAt *time.Time  `json:"completedAt,omitempty"`
	}

	Note struct {
		ID        string    `json:"id"`
		Owner     string    `json:"owner"`
		Title     string    `json:"title"`
		Content   string    `json:"content"`
		Color     string    `json:"color"`
		IsPinned  bool      `json:"isPinned"`
		CreatedAt time.Time `json:"createdAt"`
	}

	User struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		PasswordHash string `json:"-"`
	}
)

// NoteColors is the allowed swatch palette. An empty color defaults to White.
var NoteColors = []string{"White", "Cream", "Mint", "Azure", "Lavender", "Rose"}

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidKind     = errors.New("invalid transaction type")
	ErrInvalidSource   = errors.New("invalid payment source")
	ErrInvalidHorizon  = errors.New("invalid goal horizon")
	ErrInvalidTarget   = errors.New("invalid habit target")
	ErrInvalidColor    = errors.New("invalid note color")
	ErrEmptyNote       = errors.New("empty note")
	ErrMissingDeadline = errors.New("missing deadline")
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses an ISO YYYY-MM-DD string.
func ParseDay(s string) (Date, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Day returns the date as its ISO YYYY-MM-DD string.
func (d Date) Day() string {
	return d.Format(DayLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DayLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	// Accept plain days and full RFC3339 timestamps from older clients.
	if t, err := time.Parse(DayLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (k TransactionKind) Valid() bool {
	switch k {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

func (p PaymentSource) Valid() bool {
	switch p {
	case Cash, Bank, Investment:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.PaymentSource.Valid() {
		return ErrInvalidSource
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.TransferTo != "" && !t.TransferTo.Valid() {
		return ErrInvalidSource
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Destination returns the payment source a transfer moves money into:
// TransferTo when present, else the Category (older record shape).
func (t Transaction) Destination() PaymentSource {
	if t.TransferTo != "" {
		return t.TransferTo
	}
	return PaymentSource(t.Category)
}

func (h Habit) Validate() error {
	if len(strings.TrimSpace(h.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(h.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if h.Target <= 0 {
		return ErrInvalidTarget
	}
	return nil
}

// CompletedOn reports whether day is in the habit's completion set.
func (h Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleDate flips membership of day in CompletedDates and reports whether
// the day is present afterwards. Toggling the same day twice restores the
// original set; a day is never stored more than once.
func (h *Habit) ToggleDate(day string) bool {
	for i, d := range h.CompletedDates {
		if d == day {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			return false
		}
	}
	h.CompletedDates = append(h.CompletedDates, day)
	return true
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	switch g.Horizon {
	case ShortTerm, LongTerm:
	default:
		return ErrInvalidHorizon
	}
	if g.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	return nil
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		return ErrEmptyNote
	}
	if n.Color == "" {
		return nil
	}
	for _, c := range NoteColors {
		if n.Color == c {
			return nil
		}
	}
	return ErrInvalidColor
}
