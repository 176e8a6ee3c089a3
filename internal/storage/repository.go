// Package storage provides the SQLite record store. Amounts are stored as
// decimal strings, dates as ISO YYYY-MM-DD text, timestamps as RFC 3339 text.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"wealthfolio/internal/core"
	"wealthfolio/internal/records"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ records.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ownerOf resolves the owner of a record in table, mapping missing rows to
// records.ErrNotFound and owner mismatches to records.ErrNotOwner.
func (r *SQLiteRepository) ownerOf(ctx context.Context, table, owner, id string) error {
	var got string
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM "+table+" WHERE id = ?", id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return records.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup %s owner: %w", table, err)
	}
	if got != owner {
		return records.ErrNotOwner
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseStamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Users

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	u.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Name, u.Email, u.PasswordHash, now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return core.User{}, records.ErrDuplicateEmail
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User saved to SQLite", "id", u.ID, "email", u.Email)
	return u, nil
}

func (r *SQLiteRepository) UserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash FROM users WHERE email = ?", email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, records.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) UserByID(ctx context.Context, id string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, records.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("user by id: %w", err)
	}
	return u, nil
}

// Transactions

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t          core.Transaction
		amount     string
		transferTo string
		day        string
	)
	if err := row.Scan(&t.ID, &t.Owner, &t.Title, &amount, &t.Kind, &t.PaymentSource, &t.Category, &transferTo, &day); err != nil {
		return core.Transaction{}, err
	}
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	t.Amount = m
	t.TransferTo = core.PaymentSource(transferTo)
	d, err := core.ParseDay(day)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", day, err)
	}
	t.Date = d
	return t, nil
}

const transactionColumns = "id, owner_id, title, amount, kind, payment_source, category, transfer_to, tx_date"

func (r *SQLiteRepository) ListTransactions(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE owner_id = ? ORDER BY tx_date DESC, rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, owner, id string) (core.Transaction, error) {
	if err := r.ownerOf(ctx, "transactions", owner, id); err != nil {
		return core.Transaction{}, err
	}
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner_id, title, amount, kind, payment_source, category, transfer_to, tx_date, sync_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?)`,
		t.ID, t.Owner, t.Title, t.Amount.String(), string(t.Kind), string(t.PaymentSource), t.Category, string(t.TransferTo), t.Date.Day(), now())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"title", t.Title,
		"amount", t.Amount.String(),
		"type", t.Kind,
		"date", t.Date.Day())
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := r.ownerOf(ctx, "transactions", t.Owner, t.ID); err != nil {
		return core.Transaction{}, err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET title = ?, amount = ?, kind = ?, payment_source = ?, category = ?, transfer_to = ?, tx_date = ?, sync_status = 'pending', synced_at = NULL
		 WHERE id = ?`,
		t.Title, t.Amount.String(), string(t.Kind), string(t.PaymentSource), t.Category, string(t.TransferTo), t.Date.Day(), t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, owner, id string) error {
	if err := r.ownerOf(ctx, "transactions", owner, id); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Habits

func (r *SQLiteRepository) loadHabit(ctx context.Context, id string) (core.Habit, error) {
	var h core.Habit
	err := r.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, target FROM habits WHERE id = ?", id).
		Scan(&h.ID, &h.Owner, &h.Title, &h.Target)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Habit{}, records.ErrNotFound
	}
	if err != nil {
		return core.Habit{}, fmt.Errorf("load habit: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT day FROM habit_completions WHERE habit_id = ? ORDER BY day", id)
	if err != nil {
		return core.Habit{}, fmt.Errorf("load habit completions: %w", err)
	}
	defer rows.Close()

	h.CompletedDates = []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return core.Habit{}, fmt.Errorf("scan completion: %w", err)
		}
		h.CompletedDates = append(h.CompletedDates, day)
	}
	return h, rows.Err()
}

func (r *SQLiteRepository) ListHabits(ctx context.Context, owner string) ([]core.Habit, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM habits WHERE owner_id = ? ORDER BY rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan habit id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]core.Habit, 0, len(ids))
	for _, id := range ids {
		h, err := r.loadHabit(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateHabit(ctx context.Context, h core.Habit) (core.Habit, error) {
	h.ID = uuid.NewString()
	if h.Target <= 0 {
		h.Target = core.DefaultHabitTarget
	}
	h.CompletedDates = []string{}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO habits (id, owner_id, title, target, created_at) VALUES (?, ?, ?, ?, ?)",
		h.ID, h.Owner, h.Title, h.Target, now())
	if err != nil {
		return core.Habit{}, fmt.Errorf("create habit: %w", err)
	}

	slog.InfoContext(ctx, "Habit saved to SQLite", "id", h.ID, "title", h.Title, "target", h.Target)
	return h, nil
}

func (r *SQLiteRepository) UpdateHabit(ctx context.Context, owner, id, title string, target int) (core.Habit, error) {
	if err := r.ownerOf(ctx, "habits", owner, id); err != nil {
		return core.Habit{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE habits SET title = ?, target = ? WHERE id = ?", title, target, id); err != nil {
		return core.Habit{}, fmt.Errorf("update habit: %w", err)
	}
	return r.loadHabit(ctx, id)
}

func (r *SQLiteRepository) ToggleHabitDate(ctx context.Context, owner, id, day string) (core.Habit, error) {
	if err := r.ownerOf(ctx, "habits", owner, id); err != nil {
		return core.Habit{}, err
	}

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM habit_completions WHERE habit_id = ? AND day = ?", id, day)
	if err != nil {
		return core.Habit{}, fmt.Errorf("toggle habit date: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Habit{}, fmt.Errorf("toggle habit date: %w", err)
	}
	if n == 0 {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO habit_completions (habit_id, day) VALUES (?, ?)", id, day); err != nil {
			return core.Habit{}, fmt.Errorf("toggle habit date: %w", err)
		}
	}
	return r.loadHabit(ctx, id)
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, owner, id string) error {
	if err := r.ownerOf(ctx, "habits", owner, id); err != nil {
		return err
	}
	// Completions cascade with the habit row.
	if _, err := r.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// Goals

func scanGoal(row interface{ Scan(...any) error }) (core.Goal, error) {
	var (
		g           core.Goal
		deadline    string
		completed   int64
		completedAt sql.NullString
	)
	if err := row.Scan(&g.ID, &g.Owner, &g.Title, &g.Horizon, &deadline, &completed, &completedAt); err != nil {
		return core.Goal{}, err
	}
	d, err := core.ParseDay(deadline)
	if err != nil {
		return core.Goal{}, fmt.Errorf("stored deadline %q: %w", deadline, err)
	}
	g.Deadline = d
	g.IsCompleted = completed != 0
	if completedAt.Valid {
		at := parseStamp(completedAt.String)
		g.CompletedAt = &at
	}
	return g, nil
}

const goalColumns = "id, owner_id, title, horizon, deadline, is_completed, completed_at"

func (r *SQLiteRepository) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE owner_id = ? ORDER BY deadline ASC, rowid ASC", owner)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	out := []core.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.ID = uuid.NewString()
	g.IsCompleted = false
	g.CompletedAt = nil
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO goals (id, owner_id, title, horizon, deadline, is_completed, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)",
		g.ID, g.Owner, g.Title, string(g.Horizon), g.Deadline.Day(), now())
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal saved to SQLite", "id", g.ID, "title", g.Title, "deadline", g.Deadline.Day())
	return g, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := r.ownerOf(ctx, "goals", g.Owner, g.ID); err != nil {
		return core.Goal{}, err
	}
	// Completion state is managed by ToggleGoal; updates keep the stored value.
	if _, err := r.db.ExecContext(ctx,
		"UPDATE goals SET title = ?, horizon = ?, deadline = ? WHERE id = ?",
		g.Title, string(g.Horizon), g.Deadline.Day(), g.ID); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	row := r.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", g.ID)
	out, err := scanGoal(row)
	if err != nil {
		return core.Goal{}, fmt.Errorf("reload goal: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) ToggleGoal(ctx context.Context, owner, id string, at time.Time) (core.Goal, error) {
	if err := r.ownerOf(ctx, "goals", owner, id); err != nil {
		return core.Goal{}, err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE goals
		 SET is_completed = 1 - is_completed,
		     completed_at = CASE WHEN is_completed = 0 THEN ? ELSE NULL END
		 WHERE id = ?`,
		at.UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("toggle goal: %w", err)
	}
	row := r.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	out, err := scanGoal(row)
	if err != nil {
		return core.Goal{}, fmt.Errorf("reload goal: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, owner, id string) error {
	if err := r.ownerOf(ctx, "goals", owner, id); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// Notes

func scanNote(row interface{ Scan(...any) error }) (core.Note, error) {
	var (
		n         core.Note
		pinned    int64
		createdAt string
	)
	if err := row.Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.Color, &pinned, &createdAt); err != nil {
		return core.Note{}, err
	}
	n.IsPinned = pinned != 0
	n.CreatedAt = parseStamp(createdAt)
	return n, nil
}

const noteColumns = "id, owner_id, title, content, color, is_pinned, created_at"

func (r *SQLiteRepository) ListNotes(ctx context.Context, owner string) ([]core.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE owner_id = ? ORDER BY is_pinned DESC, rowid DESC", owner)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	out := []core.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateNote(ctx context.Context, n core.Note) (core.Note, error) {
	n.ID = uuid.NewString()
	if n.Color == "" {
		n.Color = core.NoteColors[0]
	}
	n.CreatedAt = time.Now().UTC()
	pinned := 0
	if n.IsPinned {
		pinned = 1
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (id, owner_id, title, content, color, is_pinned, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		n.ID, n.Owner, n.Title, n.Content, n.Color, pinned, n.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.Note{}, fmt.Errorf("create note: %w", err)
	}

	slog.InfoContext(ctx, "Note saved to SQLite", "id", n.ID, "pinned", n.IsPinned)
	return n, nil
}

func (r *SQLiteRepository) UpdateNote(ctx context.Context, n core.Note) (core.Note, error) {
	if err := r.ownerOf(ctx, "notes", n.Owner, n.ID); err != nil {
		return core.Note{}, err
	}
	if n.Color == "" {
		n.Color = core.NoteColors[0]
	}
	pinned := 0
	if n.IsPinned {
		pinned = 1
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, color = ?, is_pinned = ? WHERE id = ?",
		n.Title, n.Content, n.Color, pinned, n.ID); err != nil {
		return core.Note{}, fmt.Errorf("update note: %w", err)
	}
	row := r.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", n.ID)
	out, err := scanNote(row)
	if err != nil {
		return core.Note{}, fmt.Errorf("reload note: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteNote(ctx context.Context, owner, id string) error {
	if err := r.ownerOf(ctx, "notes", owner, id); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Sheets sync bookkeeping

// PendingSyncTransaction is the minimal row shape the sync worker needs to
// build queue messages.
type PendingSyncTransaction struct {
	ID        string
	Owner     string
	CreatedAt time.Time
}

// PendingSyncTransactions returns transactions not yet mirrored to the sheet,
// oldest first.
func (r *SQLiteRepository) PendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, owner_id, created_at FROM transactions WHERE sync_status = 'pending' ORDER BY rowid ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	out := []PendingSyncTransaction{}
	for rows.Next() {
		var (
			p         PendingSyncTransaction
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Owner, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		p.CreatedAt = parseStamp(createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced marks a transaction as successfully mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET sync_status = 'synced', synced_at = ? WHERE id = ?", now(), id)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a transaction whose mirror attempt failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET sync_status = 'error' WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}

	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

// TransactionByID fetches a transaction regardless of owner. The sync worker
// uses it to build sheet rows from queue messages.
func (r *SQLiteRepository) TransactionByID(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, records.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction by id: %w", err)
	}
	return t, nil
}
