// Package memory is an in-process record store used as the default
// DATA_BACKEND and by handler tests. It mirrors the SQLite backend's
// ownership and ordering semantics without any persistence.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wealthfolio/internal/core"
	"wealthfolio/internal/records"
)

type Store struct {
	mu           sync.Mutex
	users        map[string]core.User
	transactions map[string]core.Transaction
	habits       map[string]core.Habit
	goals        map[string]core.Goal
	notes        map[string]core.Note
	seq          map[string]int // insertion order per record id
	next         int
}

var _ records.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:        make(map[string]core.User),
		transactions: make(map[string]core.Transaction),
		habits:       make(map[string]core.Habit),
		goals:        make(map[string]core.Goal),
		notes:        make(map[string]core.Note),
		seq:          make(map[string]int),
	}
}

func (s *Store) nextSeq(id string) {
	s.next++
	s.seq[id] = s.next
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return core.User{}, records.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, records.ErrNotFound
}

func (s *Store) UserByID(_ context.Context, id string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, records.ErrNotFound
	}
	return u, nil
}

// --- transactions ---

func (s *Store) ListTransactions(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, owner, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, records.ErrNotFound
	}
	if t.Owner != owner {
		return core.Transaction{}, records.ErrNotOwner
	}
	return t, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.transactions[t.ID] = t
	s.nextSeq(t.ID)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.transactions[t.ID]
	if !ok {
		return core.Transaction{}, records.ErrNotFound
	}
	if existing.Owner != t.Owner {
		return core.Transaction{}, records.ErrNotOwner
	}
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return records.ErrNotFound
	}
	if t.Owner != owner {
		return records.ErrNotOwner
	}
	delete(s.transactions, id)
	return nil
}

// --- habits ---

func (s *Store) ListHabits(_ context.Context, owner string) ([]core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Habit
	for _, h := range s.habits {
		if h.Owner == owner {
			out = append(out, cloneHabit(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] > s.seq[out[j].ID] })
	return out, nil
}

func (s *Store) CreateHabit(_ context.Context, h core.Habit) (core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Target <= 0 {
		h.Target = core.DefaultHabitTarget
	}
	h.CompletedDates = nil
	s.habits[h.ID] = h
	s.nextSeq(h.ID)
	return cloneHabit(h), nil
}

func (s *Store) UpdateHabit(_ context.Context, owner, id, title string, target int) (core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return core.Habit{}, records.ErrNotFound
	}
	if h.Owner != owner {
		return core.Habit{}, records.ErrNotOwner
	}
	h.Title = title
	h.Target = target
	s.habits[id] = h
	return cloneHabit(h), nil
}

func (s *Store) ToggleHabitDate(_ context.Context, owner, id, day string) (core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return core.Habit{}, records.ErrNotFound
	}
	if h.Owner != owner {
		return core.Habit{}, records.ErrNotOwner
	}
	h = cloneHabit(h)
	h.ToggleDate(day)
	s.habits[id] = h
	return cloneHabit(h), nil
}

func (s *Store) DeleteHabit(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[id]
	if !ok {
		return records.ErrNotFound
	}
	if h.Owner != owner {
		return records.ErrNotOwner
	}
	delete(s.habits, id)
	return nil
}

// --- goals ---

func (s *Store) ListGoals(_ context.Context, owner string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Goal
	for _, g := range s.goals {
		if g.Owner == owner {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Deadline.Equal(out[j].Deadline.Time) {
			return out[i].Deadline.Before(out[j].Deadline.Time)
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

func (s *Store) CreateGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	s.goals[g.ID] = g
	s.nextSeq(g.ID)
	return g, nil
}

func (s *Store) UpdateGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.goals[g.ID]
	if !ok {
		return core.Goal{}, records.ErrNotFound
	}
	if existing.Owner != g.Owner {
		return core.Goal{}, records.ErrNotOwner
	}
	// Completion state survives edits; it only changes through ToggleGoal.
	g.IsCompleted = existing.IsCompleted
	g.CompletedAt = existing.CompletedAt
	s.goals[g.ID] = g
	return g, nil
}

func (s *Store) ToggleGoal(_ context.Context, owner, id string, at time.Time) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return core.Goal{}, records.ErrNotFound
	}
	if g.Owner != owner {
		return core.Goal{}, records.ErrNotOwner
	}
	if g.IsCompleted {
		g.IsCompleted = false
		g.CompletedAt = nil
	} else {
		g.IsCompleted = true
		g.CompletedAt = &at
	}
	s.goals[id] = g
	return g, nil
}

func (s *Store) DeleteGoal(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return records.ErrNotFound
	}
	if g.Owner != owner {
		return records.ErrNotOwner
	}
	delete(s.goals, id)
	return nil
}

// --- notes ---

func (s *Store) ListNotes(_ context.Context, owner string) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Note
	for _, n := range s.notes {
		if n.Owner == owner {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateNote(_ context.Context, n core.Note) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Color == "" {
		n.Color = core.NoteColors[0]
	}
	s.notes[n.ID] = n
	s.nextSeq(n.ID)
	return n, nil
}

func (s *Store) UpdateNote(_ context.Context, n core.Note) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.notes[n.ID]
	if !ok {
		return core.Note{}, records.ErrNotFound
	}
	if existing.Owner != n.Owner {
		return core.Note{}, records.ErrNotOwner
	}
	n.CreatedAt = existing.CreatedAt
	s.notes[n.ID] = n
	return n, nil
}

func (s *Store) DeleteNote(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return records.ErrNotFound
	}
	if n.Owner != owner {
		return records.ErrNotOwner
	}
	delete(s.notes, id)
	return nil
}

func cloneHabit(h core.Habit) core.Habit {
	h.CompletedDates = append([]string(nil), h.CompletedDates...)
	return h
}
