package persistence

import (
	"context"
	"time"

	"github.com/auctionly/auction-processor/internal/domain/entity"
)

// AuctionRepository defines operations for auction persistence
type AuctionRepository interface {
	// GetByID retrieves an auction by its ID
	GetByID(ctx context.Context, id string) (*entity.Auction, error)

	// GetByIDForUpdate retrieves an auction and takes a row lock for the
	// remainder of the surrounding transaction. Must only be called with a
	// transactional context obtained from UnitOfWork.Begin.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Auction, error)

	// Update persists the auction's mutable fields
	Update(ctx context.Context, auction *entity.Auction) error

	// ListExpired returns up to limit active auctions whose end time has passed
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*entity.Auction, error)

	// ListDueToStart returns up to limit scheduled auctions whose start time has passed
	ListDueToStart(ctx context.Context, now time.Time, limit int) ([]*entity.Auction, error)
}
