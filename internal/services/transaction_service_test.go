package services

import (
	"context"
	"errors"
	"testing"

	"wealthfolio/internal/core"
	"wealthfolio/internal/records/memory"
)

type fakePublisher struct {
	syncIDs   []string
	deleteIDs []string
	fail      bool
}

func (f *fakePublisher) PublishTransactionSync(ctx context.Context, id string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.syncIDs = append(f.syncIDs, id)
	return nil
}

func (f *fakePublisher) PublishTransactionDelete(ctx context.Context, id string) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.deleteIDs = append(f.deleteIDs, id)
	return nil
}

func newTx(owner string) core.Transaction {
	return core.Transaction{
		Owner:         owner,
		Title:         "coffee",
		Amount:        core.MoneyFromInt(3),
		Kind:          core.Expense,
		PaymentSource: core.Cash,
		Category:      "Food",
		Date:          core.NewDate(2026, 4, 1),
	}
}

func TestTransactionService_PublishesOnWrite(t *testing.T) {
	store := memory.New()
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub)
	ctx := context.Background()

	saved, err := svc.Create(ctx, newTx("user-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(pub.syncIDs) != 1 || pub.syncIDs[0] != saved.ID {
		t.Errorf("sync messages = %v, want [%s]", pub.syncIDs, saved.ID)
	}

	saved.Title = "espresso"
	if _, err := svc.Update(ctx, saved); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(pub.syncIDs) != 2 {
		t.Errorf("sync messages after update = %d, want 2", len(pub.syncIDs))
	}

	if err := svc.Delete(ctx, "user-1", saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(pub.deleteIDs) != 1 || pub.deleteIDs[0] != saved.ID {
		t.Errorf("delete messages = %v, want [%s]", pub.deleteIDs, saved.ID)
	}
}

func TestTransactionService_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, &fakePublisher{fail: true})
	ctx := context.Background()

	saved, err := svc.Create(ctx, newTx("user-1"))
	if err != nil {
		t.Fatalf("Create with failing publisher: %v", err)
	}
	if saved.ID == "" {
		t.Error("transaction not saved")
	}

	got, err := store.GetTransaction(ctx, "user-1", saved.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Title != "coffee" {
		t.Errorf("stored title = %q, want coffee", got.Title)
	}
}

func TestTransactionService_NilPublisher(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, nil)
	ctx := context.Background()

	saved, err := svc.Create(ctx, newTx("user-1"))
	if err != nil {
		t.Fatalf("Create without publisher: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", saved.ID); err != nil {
		t.Fatalf("Delete without publisher: %v", err)
	}
}
