// Package services orchestrates record writes with the outbound sync queue.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"wealthfolio/internal/core"
	"wealthfolio/internal/records"
)

// SyncPublisher queues mirror work for the sheet worker. amqp.Client
// implements it; tests substitute a fake.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id string) error
	PublishTransactionDelete(ctx context.Context, id string) error
}

// TransactionService writes transactions to the record store and queues
// spreadsheet sync messages. The store write is authoritative: publish
// failures are logged, never surfaced to the caller.
type TransactionService struct {
	store     records.TransactionStore
	publisher SyncPublisher
}

func NewTransactionService(store records.TransactionStore, publisher SyncPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSync(ctx, saved.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", saved.ID, "error", err)
	}
	return saved, nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.store.UpdateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, err
	}

	if err := s.publishSync(ctx, saved.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", saved.ID, "error", err)
	}
	return saved, nil
}

func (s *TransactionService) Delete(ctx context.Context, owner, id string) error {
	if err := s.store.DeleteTransaction(ctx, owner, id); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishTransactionDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message", "id", id, "error", err)
	}
	return nil
}

func (s *TransactionService) publishSync(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Sync publisher not configured, skipping message")
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id)
}
