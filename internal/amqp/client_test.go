package amqp

import (
	"testing"
	"time"
)

func TestNewTransactionSyncMessage(t *testing.T) {
	msg := NewTransactionSyncMessage("tx-123")

	if msg.ID != "tx-123" {
		t.Errorf("NewTransactionSyncMessage() ID = %v, want tx-123", msg.ID)
	}
	if msg.Op != OpSync {
		t.Errorf("NewTransactionSyncMessage() Op = %v, want %v", msg.Op, OpSync)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewTransactionSyncMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewTransactionSyncMessage() Timestamp should be recent")
	}

	del := NewTransactionDeleteMessage("tx-123")
	if del.Op != OpDelete {
		t.Errorf("NewTransactionDeleteMessage() Op = %v, want %v", del.Op, OpDelete)
	}
}

func TestTransactionSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &TransactionSyncMessage{
		ID:        "tx-123",
		Op:        OpSync,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := TransactionSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionSyncMessageFromJSON() error = %v", err)
	}

	if parsedMsg.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsedMsg.ID, msg.ID)
	}
	if parsedMsg.Op != msg.Op {
		t.Errorf("Parsed Op = %v, want %v", parsedMsg.Op, msg.Op)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestTransactionSyncMessage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"id": 42`},
		{name: "missing id", data: `{"op": "sync"}`},
		{name: "unknown op", data: `{"id": "tx-123", "op": "replicate"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TransactionSyncMessageFromJSON([]byte(tt.data)); err == nil {
				t.Errorf("TransactionSyncMessageFromJSON(%q) error = nil, want error", tt.data)
			}
		})
	}
}
