package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	errs "github.com/auctionly/auction-processor/internal/domain/error"
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// userModelToEntity converts a user model to an entity
func userModelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Stats: entity.UserStats{
			AuctionsWon:  m.AuctionsWon,
			AuctionsSold: m.AuctionsSold,
			TotalSpent:   m.TotalSpent,
			TotalEarned:  m.TotalEarned,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if isDuplicateKey(err) {
		return errs.ErrInvalidRequest
	}
	if isSerializationConflict(err) {
		return errs.ErrTransitionConflict
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}

	return userModelToEntity(&userModel), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		AuctionsWon:  user.Stats.AuctionsWon,
		AuctionsSold: user.Stats.AuctionsSold,
		TotalSpent:   user.Stats.TotalSpent,
		TotalEarned:  user.Stats.TotalEarned,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)

	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
	})
	return nil
}

// IncrementStats applies the delta as SQL-side increments. The counters are
// never read back and rewritten, so overlapping settlements cannot clobber
// each other's updates.
func (r *UserRepository) IncrementStats(ctx context.Context, userID string, delta entity.StatsDelta) error {
	if delta.IsZero() {
		return nil
	}

	updates := map[string]interface{}{
		"updated_at": r.timeProvider.Now(),
	}
	if delta.AuctionsWon != 0 {
		updates["auctions_won"] = gorm.Expr("auctions_won + ?", delta.AuctionsWon)
	}
	if delta.AuctionsSold != 0 {
		updates["auctions_sold"] = gorm.Expr("auctions_sold + ?", delta.AuctionsSold)
	}
	if delta.TotalSpent != 0 {
		updates["total_spent"] = gorm.Expr("total_spent + ?", delta.TotalSpent)
	}
	if delta.TotalEarned != 0 {
		updates["total_earned"] = gorm.Expr("total_earned + ?", delta.TotalEarned)
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(updates)

	if result.Error != nil {
		return r.handleDatabaseError("incrementing user stats", result.Error, userID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during stats increment", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Debug("User stats incremented", map[string]any{
		"user_id":       userID,
		"auctions_won":  delta.AuctionsWon,
		"auctions_sold": delta.AuctionsSold,
		"total_spent":   delta.TotalSpent,
		"total_earned":  delta.TotalEarned,
	})
	return nil
}
