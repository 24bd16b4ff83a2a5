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

// ConnectAccountRepository implements persistence.ConnectAccountRepository using GORM
type ConnectAccountRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewConnectAccountRepository creates a new ConnectAccountRepository instance
func NewConnectAccountRepository(db *gorm.DB, logger coreport.Logger) *ConnectAccountRepository {
	return &ConnectAccountRepository{
		db:     db,
		logger: logger,
	}
}

// accountModelToEntity converts a connect account model to an entity
func accountModelToEntity(m *model.ConnectAccount) *entity.ConnectAccount {
	return &entity.ConnectAccount{
		UserID:            m.UserID,
		ProviderAccountID: m.ProviderAccountID,
		Status:            m.Status,
		ChargesEnabled:    m.ChargesEnabled,
		PayoutsEnabled:    m.PayoutsEnabled,
		DetailsSubmitted:  m.DetailsSubmitted,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *ConnectAccountRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if isDuplicateKey(err) {
		return errs.ErrInvalidRequest
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves the connect account owned by the user
func (r *ConnectAccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.ConnectAccount, error) {
	var accountModel model.ConnectAccount
	result := r.db.WithContext(ctx).First(&accountModel, "user_id = ?", userID)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting connect account", result.Error, userID)
	}

	return accountModelToEntity(&accountModel), nil
}

// Create persists a new connect account record
func (r *ConnectAccountRepository) Create(ctx context.Context, account *entity.ConnectAccount) error {
	accountModel := model.ConnectAccount{
		UserID:            account.UserID,
		ProviderAccountID: account.ProviderAccountID,
		Status:            account.Status,
		ChargesEnabled:    account.ChargesEnabled,
		PayoutsEnabled:    account.PayoutsEnabled,
		DetailsSubmitted:  account.DetailsSubmitted,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)

	if result.Error != nil {
		return r.handleDatabaseError("creating connect account", result.Error, account.UserID)
	}

	return nil
}

// Update persists changes to an existing connect account record
func (r *ConnectAccountRepository) Update(ctx context.Context, account *entity.ConnectAccount) error {
	result := r.db.WithContext(ctx).Model(&model.ConnectAccount{}).
		Where("user_id = ?", account.UserID).
		Updates(map[string]interface{}{
			"provider_account_id": account.ProviderAccountID,
			"status":              account.Status,
			"charges_enabled":     account.ChargesEnabled,
			"payouts_enabled":     account.PayoutsEnabled,
			"details_submitted":   account.DetailsSubmitted,
			"updated_at":          account.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating connect account", result.Error, account.UserID)
	}

	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}
