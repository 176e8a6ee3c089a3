// Package memory is an in-process Mirror used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"wealthfolio/internal/core"
	ports "wealthfolio/internal/sheets"
)

type Mirror struct {
	mu   sync.Mutex
	rows map[string]core.Transaction
}

var _ ports.Mirror = (*Mirror)(nil)

func NewMirror() *Mirror {
	return &Mirror{rows: make(map[string]core.Transaction)}
}

func (m *Mirror) Append(ctx context.Context, t core.Transaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[t.ID] = t
	return fmt.Sprintf("memory!%s", t.ID), nil
}

func (m *Mirror) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

// Row returns the mirrored transaction for id, if present.
func (m *Mirror) Row(id string) (core.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	return t, ok
}

// Len returns the number of mirrored rows.
func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
