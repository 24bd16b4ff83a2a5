package persistence

import (
	"context"

	"github.com/auctionly/auction-processor/internal/domain/entity"
)

// ConnectAccountRepository defines operations for payout account persistence
type ConnectAccountRepository interface {
	// GetByUserID retrieves the connect account owned by the user.
	// Returns errs.ErrAccountNotFound when none exists.
	GetByUserID(ctx context.Context, userID string) (*entity.ConnectAccount, error)

	// Create persists a new connect account record
	Create(ctx context.Context, account *entity.ConnectAccount) error

	// Update persists changes to an existing connect account record
	Update(ctx context.Context, account *entity.ConnectAccount) error
}
