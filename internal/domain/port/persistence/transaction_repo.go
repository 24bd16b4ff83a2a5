package persistence

import (
	"context"

	"github.com/auctionly/auction-processor/internal/domain/entity"
)

// TransactionRepository defines operations for payment transaction persistence
type TransactionRepository interface {
	// Create persists a new transaction record
	Create(ctx context.Context, txn *entity.Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// GetByProviderSessionID retrieves the transaction referencing a checkout session
	GetByProviderSessionID(ctx context.Context, sessionID string) (*entity.Transaction, error)

	// CompletedExistsForAuction reports whether a completed transaction already
	// exists for the auction. Backs the at-most-one-payment invariant.
	CompletedExistsForAuction(ctx context.Context, auctionID string) (bool, error)
}
