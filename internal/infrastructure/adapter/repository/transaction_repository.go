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

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// txnModelToEntity converts a transaction model to an entity
func txnModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:                 m.ID,
		AuctionID:          m.AuctionID,
		BuyerID:            m.BuyerID,
		SellerID:           m.SellerID,
		Amount:             m.Amount,
		Currency:           m.Currency,
		PlatformFee:        m.PlatformFee,
		SellerAmount:       m.SellerAmount,
		Provider:           m.Provider,
		ProviderSessionID:  m.ProviderSessionID,
		ProviderPaymentID:  m.ProviderPaymentID,
		ProviderTransferID: m.ProviderTransferID,
		Status:             entity.TransactionStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error, txnID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"transaction_id": txnID,
		"error":          err.Error(),
	})

	if isDuplicateKey(err) {
		// The partial unique index on completed transactions makes a second
		// settlement surface here.
		return errs.ErrAlreadyPaid
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new transaction record
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnModel := model.Transaction{
		ID:                 txn.ID,
		AuctionID:          txn.AuctionID,
		BuyerID:            txn.BuyerID,
		SellerID:           txn.SellerID,
		Amount:             txn.Amount,
		Currency:           txn.Currency,
		PlatformFee:        txn.PlatformFee,
		SellerAmount:       txn.SellerAmount,
		Provider:           txn.Provider,
		ProviderSessionID:  txn.ProviderSessionID,
		ProviderPaymentID:  txn.ProviderPaymentID,
		ProviderTransferID: txn.ProviderTransferID,
		Status:             string(txn.Status),
		CreatedAt:          txn.CreatedAt,
		UpdatedAt:          txn.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&txnModel)

	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, txn.ID)
	}

	r.logger.Info("Transaction record created", map[string]any{
		"transaction_id": txn.ID,
		"auction_id":     txn.AuctionID,
		"status":         string(txn.Status),
	})
	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).First(&txnModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, id)
	}

	return txnModelToEntity(&txnModel), nil
}

// GetByProviderSessionID retrieves the transaction referencing a checkout session
func (r *TransactionRepository) GetByProviderSessionID(ctx context.Context, sessionID string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).First(&txnModel, "provider_session_id = ?", sessionID)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction by session", result.Error, sessionID)
	}

	return txnModelToEntity(&txnModel), nil
}

// CompletedExistsForAuction reports whether a completed transaction already
// exists for the auction.
func (r *TransactionRepository) CompletedExistsForAuction(ctx context.Context, auctionID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("auction_id = ? AND status = ?", auctionID, string(entity.TxnStatusCompleted)).
		Count(&count)

	if result.Error != nil {
		return false, r.handleDatabaseError("checking completed transactions", result.Error, auctionID)
	}

	return count > 0, nil
}
