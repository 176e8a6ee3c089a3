// Package backend wires the configured data layer: the record store, the
// optional AMQP sync publisher, and the transaction service on top of them.
package backend

import (
	"wealthfolio/internal/records"
	"wealthfolio/internal/services"
)

// CleanupFunc releases the resources a backend holds open.
type CleanupFunc func() error

// Result contains the wired backend and its cleanup function. Cleanup is
// always non-nil.
type Result struct {
	Store        records.Store
	Transactions *services.TransactionService
	Cleanup      CleanupFunc
}
