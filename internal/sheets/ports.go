package sheets

import (
	"context"

	"wealthfolio/internal/core"
)

// Ports for outbound spreadsheet mirrors.
type (
	// TransactionAppender upserts a transaction row keyed by its record ID.
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// TransactionRemover removes the row mirroring the given record ID.
	TransactionRemover interface {
		Remove(ctx context.Context, id string) error
	}

	// Mirror is the full surface the sync worker writes through.
	Mirror interface {
		TransactionAppender
		TransactionRemover
	}
)
