package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"wealthfolio/internal/core"
	"wealthfolio/internal/records"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestUser(t *testing.T, repo *SQLiteRepository, email string) core.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), core.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, repo, "dup@example.com")
	_, err := repo.CreateUser(ctx, core.User{Name: "Other", Email: "dup@example.com", PasswordHash: "hash"})
	if !errors.Is(err, records.ErrDuplicateEmail) {
		t.Errorf("second CreateUser error = %v, want ErrDuplicateEmail", err)
	}
}

func TestTransactions_CRUDAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "tx@example.com")

	mk := func(title string, date core.Date) core.Transaction {
		tx, err := repo.CreateTransaction(ctx, core.Transaction{
			Owner:         u.ID,
			Title:         title,
			Amount:        core.MoneyFromInt(100),
			Kind:          core.Expense,
			PaymentSource: core.Bank,
			Category:      "Food",
			Date:          date,
		})
		if err != nil {
			t.Fatalf("CreateTransaction(%s): %v", title, err)
		}
		return tx
	}

	older := mk("older", core.NewDate(2026, 3, 1))
	newer := mk("newer", core.NewDate(2026, 3, 15))
	mk("middle", core.NewDate(2026, 3, 10))

	list, err := repo.ListTransactions(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	gotTitles := []string{list[0].Title, list[1].Title, list[2].Title}
	wantTitles := []string{"newer", "middle", "older"}
	for i := range wantTitles {
		if gotTitles[i] != wantTitles[i] {
			t.Errorf("list[%d].Title = %q, want %q", i, gotTitles[i], wantTitles[i])
		}
	}

	// Update replaces every field.
	newer.Title = "renamed"
	newer.Amount = core.MoneyFromInt(250)
	if _, err := repo.UpdateTransaction(ctx, newer); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	got, err := repo.GetTransaction(ctx, u.ID, newer.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Title != "renamed" || !got.Amount.Equal(core.MoneyFromInt(250)) {
		t.Errorf("after update got %q/%s, want renamed/250", got.Title, got.Amount)
	}

	if err := repo.DeleteTransaction(ctx, u.ID, older.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, u.ID, older.ID); !errors.Is(err, records.ErrNotFound) {
		t.Errorf("GetTransaction after delete error = %v, want ErrNotFound", err)
	}
}

func TestTransactions_OwnershipEnforced(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	alice := newTestUser(t, repo, "alice@example.com")
	bob := newTestUser(t, repo, "bob@example.com")

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		Owner:         alice.ID,
		Title:         "private",
		Amount:        core.MoneyFromInt(50),
		Kind:          core.Income,
		PaymentSource: core.Cash,
		Category:      "Salary",
		Date:          core.NewDate(2026, 1, 1),
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if _, err := repo.GetTransaction(ctx, bob.ID, tx.ID); !errors.Is(err, records.ErrNotOwner) {
		t.Errorf("foreign GetTransaction error = %v, want ErrNotOwner", err)
	}
	if err := repo.DeleteTransaction(ctx, bob.ID, tx.ID); !errors.Is(err, records.ErrNotOwner) {
		t.Errorf("foreign DeleteTransaction error = %v, want ErrNotOwner", err)
	}

	list, err := repo.ListTransactions(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("bob sees %d of alice's transactions, want 0", len(list))
	}
}

func TestHabits_ToggleRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "habit@example.com")

	h, err := repo.CreateHabit(ctx, core.Habit{Owner: u.ID, Title: "Read"})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if h.Target != core.DefaultHabitTarget {
		t.Errorf("default target = %d, want %d", h.Target, core.DefaultHabitTarget)
	}

	h, err = repo.ToggleHabitDate(ctx, u.ID, h.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("ToggleHabitDate on: %v", err)
	}
	if !h.CompletedOn("2026-03-10") {
		t.Error("day missing after first toggle")
	}

	h, err = repo.ToggleHabitDate(ctx, u.ID, h.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("ToggleHabitDate off: %v", err)
	}
	if h.CompletedOn("2026-03-10") {
		t.Error("day still present after second toggle")
	}
	if len(h.CompletedDates) != 0 {
		t.Errorf("CompletedDates = %v, want empty", h.CompletedDates)
	}
}

func TestHabits_UpdateKeepsCompletions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "habit2@example.com")

	h, _ := repo.CreateHabit(ctx, core.Habit{Owner: u.ID, Title: "Run"})
	if _, err := repo.ToggleHabitDate(ctx, u.ID, h.ID, "2026-03-01"); err != nil {
		t.Fatalf("ToggleHabitDate: %v", err)
	}

	h, err := repo.UpdateHabit(ctx, u.ID, h.ID, "Run 5k", 30)
	if err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	if h.Title != "Run 5k" || h.Target != 30 {
		t.Errorf("after update got %q/%d, want Run 5k/30", h.Title, h.Target)
	}
	if !h.CompletedOn("2026-03-01") {
		t.Error("completion lost across update")
	}
}

func TestGoals_ToggleAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "goal@example.com")

	late, _ := repo.CreateGoal(ctx, core.Goal{Owner: u.ID, Title: "late", Horizon: core.LongTerm, Deadline: core.NewDate(2027, 1, 1)})
	early, _ := repo.CreateGoal(ctx, core.Goal{Owner: u.ID, Title: "early", Horizon: core.ShortTerm, Deadline: core.NewDate(2026, 6, 1)})

	list, err := repo.ListGoals(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(list) != 2 || list[0].ID != early.ID || list[1].ID != late.ID {
		t.Errorf("goals not sorted by deadline ascending: %+v", list)
	}

	at := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)
	g, err := repo.ToggleGoal(ctx, u.ID, early.ID, at)
	if err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if !g.IsCompleted || g.CompletedAt == nil || !g.CompletedAt.Equal(at) {
		t.Errorf("after toggle got completed=%v at=%v, want true at %v", g.IsCompleted, g.CompletedAt, at)
	}

	g, err = repo.ToggleGoal(ctx, u.ID, early.ID, at.Add(time.Hour))
	if err != nil {
		t.Fatalf("ToggleGoal back: %v", err)
	}
	if g.IsCompleted || g.CompletedAt != nil {
		t.Errorf("after second toggle got completed=%v at=%v, want false/nil", g.IsCompleted, g.CompletedAt)
	}
}

func TestNotes_PinnedFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "note@example.com")

	plain, _ := repo.CreateNote(ctx, core.Note{Owner: u.ID, Title: "plain", Content: "x"})
	pinned, _ := repo.CreateNote(ctx, core.Note{Owner: u.ID, Title: "pinned", Content: "y", IsPinned: true})
	newest, _ := repo.CreateNote(ctx, core.Note{Owner: u.ID, Title: "newest", Content: "z"})

	list, err := repo.ListNotes(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].ID != pinned.ID {
		t.Errorf("list[0] = %q, want pinned note first", list[0].Title)
	}
	if list[1].ID != newest.ID || list[2].ID != plain.ID {
		t.Errorf("unpinned notes not newest first: %q, %q", list[1].Title, list[2].Title)
	}
	if list[0].Color != "White" {
		t.Errorf("default color = %q, want White", list[0].Color)
	}
}

func TestSyncBookkeeping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "sync@example.com")

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		Owner:         u.ID,
		Title:         "groceries",
		Amount:        core.MoneyFromInt(42),
		Kind:          core.Expense,
		PaymentSource: core.Bank,
		Category:      "Food",
		Date:          core.NewDate(2026, 3, 5),
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	pending, err := repo.PendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("PendingSyncTransactions: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != tx.ID {
		t.Fatalf("pending = %+v, want the new transaction", pending)
	}

	if err := repo.MarkSynced(ctx, tx.ID); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, _ = repo.PendingSyncTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("pending after MarkSynced = %d, want 0", len(pending))
	}

	// Editing a synced transaction queues it again.
	tx.Title = "groceries edited"
	if _, err := repo.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	pending, _ = repo.PendingSyncTransactions(ctx, 10)
	if len(pending) != 1 {
		t.Errorf("pending after update = %d, want 1", len(pending))
	}
}
