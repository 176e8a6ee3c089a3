package records

import (
	"context"
	"errors"
	"time"

	"wealthfolio/internal/core"
)

// Store errors. The API layer maps these onto HTTP statuses; stores return
// them verbatim so handlers can use errors.Is.
var (
	ErrNotFound       = errors.New("record not found")
	ErrNotOwner       = errors.New("record not owned by caller")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Ports for record storage backends. Every read and write is owner-scoped:
// mutations verify the caller's id against the stored owner id and return
// ErrNotOwner on mismatch. Create operations mint the record ID and return
// the full stored document.
type (
	UserStore interface {
		CreateUser(ctx context.Context, u core.User) (core.User, error)
		UserByEmail(ctx context.Context, email string) (core.User, error)
		UserByID(ctx context.Context, id string) (core.User, error)
	}

	TransactionStore interface {
		// ListTransactions returns the owner's transactions, newest date first.
		ListTransactions(ctx context.Context, owner string) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, owner, id string) (core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// UpdateTransaction replaces every field of the record (full-field
		// replace, last write wins).
		UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, owner, id string) error
	}

	HabitStore interface {
		// ListHabits returns the owner's habits, newest first.
		ListHabits(ctx context.Context, owner string) ([]core.Habit, error)
		CreateHabit(ctx context.Context, h core.Habit) (core.Habit, error)
		// UpdateHabit replaces title and target only; completions are managed
		// exclusively through ToggleHabitDate.
		UpdateHabit(ctx context.Context, owner, id, title string, target int) (core.Habit, error)
		// ToggleHabitDate flips the membership of day in the habit's
		// completion set and returns the updated habit. Two toggles of the
		// same day restore the original set.
		ToggleHabitDate(ctx context.Context, owner, id, day string) (core.Habit, error)
		DeleteHabit(ctx context.Context, owner, id string) error
	}

	GoalStore interface {
		// ListGoals returns the owner's goals sorted by deadline ascending.
		ListGoals(ctx context.Context, owner string) ([]core.Goal, error)
		CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		// ToggleGoal flips completion; at stamps CompletedAt when completing.
		ToggleGoal(ctx context.Context, owner, id string, at time.Time) (core.Goal, error)
		DeleteGoal(ctx context.Context, owner, id string) error
	}

	NoteStore interface {
		// ListNotes returns the owner's notes, pinned first, then newest.
		ListNotes(ctx context.Context, owner string) ([]core.Note, error)
		CreateNote(ctx context.Context, n core.Note) (core.Note, error)
		UpdateNote(ctx context.Context, n core.Note) (core.Note, error)
		DeleteNote(ctx context.Context, owner, id string) error
	}

	// Store is the full record-store surface a backend must provide.
	Store interface {
		UserStore
		TransactionStore
		HabitStore
		GoalStore
		NoteStore
	}
)
