// Package worker mirrors transactions from SQLite to a spreadsheet, driven
// by AMQP messages with a periodic sweep as backup.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wealthfolio/internal/amqp"
	"wealthfolio/internal/records"
	"wealthfolio/internal/sheets"
	"wealthfolio/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	mirror    sheets.Mirror
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, mirror sheets.Mirror, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID, "op", msg.Op)

	if msg.Op == amqp.OpDelete {
		if err := w.mirror.Remove(ctx, msg.ID); err != nil {
			return fmt.Errorf("remove from sheet: %w", err)
		}
		return nil
	}

	return w.syncTransaction(ctx, msg.ID)
}

// ProcessPendingTransactions mirrors transactions the queue missed.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	pending, err := w.storage.PendingSyncTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		if err := w.syncTransaction(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction", "id", p.ID, "error", err)
		}
	}

	return nil
}

// StartupSyncCheck mirrors any backlog left over from worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.PendingSyncTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		if err := w.syncTransaction(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncTransaction(ctx context.Context, id string) error {
	t, err := w.storage.TransactionByID(ctx, id)
	if errors.Is(err, records.ErrNotFound) {
		// Deleted before the worker got to it; the delete message handles
		// the sheet row.
		slog.InfoContext(ctx, "Transaction gone before sync, dropping", "id", id)
		return nil
	}
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.mirror.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		// The sheet write succeeded; the sweep will retry the bookkeeping.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Synced transaction",
		"id", id,
		"sheet_ref", ref,
		"title", t.Title,
		"amount", t.Amount.String())

	return nil
}
