package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	errs "github.com/auctionly/auction-processor/internal/domain/error"
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuctionRepository implements persistence.AuctionRepository using GORM
type AuctionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAuctionRepository creates a new AuctionRepository instance
func NewAuctionRepository(db *gorm.DB, logger coreport.Logger) *AuctionRepository {
	return &AuctionRepository{
		db:     db,
		logger: logger,
	}
}

// auctionModelToEntity converts an auction model to an entity
func auctionModelToEntity(m *model.Auction) *entity.Auction {
	return &entity.Auction{
		ID:                m.ID,
		SellerID:          m.SellerID,
		Title:             m.Title,
		Category:          m.Category,
		StartingPrice:     m.StartingPrice,
		CurrentBid:        m.CurrentBid,
		BidIncrement:      m.BidIncrement,
		ReservePrice:      m.ReservePrice,
		BidsCount:         m.BidsCount,
		WatchersCount:     m.WatchersCount,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		Status:            entity.AuctionStatus(m.Status),
		HighestBidderID:   m.HighestBidderID,
		HighestBidderName: m.HighestBidderName,
		WinnerID:          m.WinnerID,
		WinnerName:        m.WinnerName,
		FinalPrice:        m.FinalPrice,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AuctionRepository) handleDatabaseError(operation string, err error, auctionID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Auction not found", map[string]any{
			"auction_id": auctionID,
		})
		return errs.ErrAuctionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"auction_id": auctionID,
		"error":      err.Error(),
	})

	if isSerializationConflict(err) {
		return errs.ErrTransitionConflict
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an auction by its ID
func (r *AuctionRepository) GetByID(ctx context.Context, id string) (*entity.Auction, error) {
	var auctionModel model.Auction
	result := r.db.WithContext(ctx).First(&auctionModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting auction", result.Error, id)
	}

	return auctionModelToEntity(&auctionModel), nil
}

// GetByIDForUpdate retrieves an auction and takes an exclusive row lock.
// Concurrent finalizers serialize here; whichever loses the race observes
// the already-updated status and backs off.
func (r *AuctionRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Auction, error) {
	var auctionModel model.Auction
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&auctionModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking auction", result.Error, id)
	}

	return auctionModelToEntity(&auctionModel), nil
}

// Update persists the auction's mutable fields
func (r *AuctionRepository) Update(ctx context.Context, auction *entity.Auction) error {
	result := r.db.WithContext(ctx).Model(&model.Auction{}).
		Where("id = ?", auction.ID).
		Updates(map[string]interface{}{
			"status":      string(auction.Status),
			"current_bid": auction.CurrentBid,
			"winner_id":   auction.WinnerID,
			"winner_name": auction.WinnerName,
			"final_price": auction.FinalPrice,
			"updated_at":  auction.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating auction", result.Error, auction.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Auction not found during update", map[string]any{
			"auction_id": auction.ID,
		})
		return errs.ErrAuctionNotFound
	}

	return nil
}

// ListExpired returns up to limit active auctions whose end time has passed
func (r *AuctionRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*entity.Auction, error) {
	var models []model.Auction
	result := r.db.WithContext(ctx).
		Where("status = ? AND end_time <= ?", string(entity.StatusActive), now).
		Order("end_time asc").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing expired auctions", result.Error, "")
	}

	auctions := make([]*entity.Auction, 0, len(models))
	for i := range models {
		auctions = append(auctions, auctionModelToEntity(&models[i]))
	}
	return auctions, nil
}

// ListDueToStart returns up to limit scheduled auctions whose start time has passed
func (r *AuctionRepository) ListDueToStart(ctx context.Context, now time.Time, limit int) ([]*entity.Auction, error) {
	var models []model.Auction
	result := r.db.WithContext(ctx).
		Where("status = ? AND start_time <= ?", string(entity.StatusScheduled), now).
		Order("start_time asc").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing due auctions", result.Error, "")
	}

	auctions := make([]*entity.Auction, 0, len(models))
	for i := range models {
		auctions = append(auctions, auctionModelToEntity(&models[i]))
	}
	return auctions, nil
}
