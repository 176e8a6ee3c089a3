package amqp

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Sync operations carried on the queue.
const (
	OpSync   = "sync"
	OpDelete = "delete"
)

// TransactionSyncMessage asks the worker to mirror one transaction to the
// spreadsheet. It carries only the ID and operation; for sync ops the worker
// fetches the full transaction from the database.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionSyncMessage creates a message for a created or updated
// transaction.
func NewTransactionSyncMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{ID: id, Op: OpSync, Timestamp: time.Now()}
}

// NewTransactionDeleteMessage creates a message for a deleted transaction.
func NewTransactionDeleteMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{ID: id, Op: OpDelete, Timestamp: time.Now()}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("message without transaction id")
	}
	switch msg.Op {
	case OpSync, OpDelete:
	default:
		return nil, fmt.Errorf("unknown sync op %q", msg.Op)
	}
	return &msg, nil
}
