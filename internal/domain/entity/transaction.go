package entity

import (
	"time"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
)

// TransactionStatus defines possible status values for a payment transaction
type TransactionStatus string

// TransactionStatus constants. A transaction is created pending by the
// settlement initiator and advanced by provider events; at most one
// completed transaction may exist per auction.
const (
	TxnStatusPending    TransactionStatus = "pending"
	TxnStatusProcessing TransactionStatus = "processing"
	TxnStatusCompleted  TransactionStatus = "completed"
	TxnStatusFailed     TransactionStatus = "failed"
	TxnStatusRefunded   TransactionStatus = "refunded"
	TxnStatusCancelled  TransactionStatus = "cancelled"
)

// Transaction represents a payment for a won auction
type Transaction struct {
	ID        string
	AuctionID string
	BuyerID   string
	SellerID  string

	Amount       float64
	Currency     string
	PlatformFee  float64
	SellerAmount float64

	Provider           string
	ProviderSessionID  string
	ProviderPaymentID  string
	ProviderTransferID string

	Status    TransactionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransactionParams carries the values required to record a pending payment
type TransactionParams struct {
	ID        string
	AuctionID string
	BuyerID   string
	SellerID  string

	Amount       float64
	Currency     string
	PlatformFee  float64
	SellerAmount float64

	Provider          string
	ProviderSessionID string
}

// NewPendingTransaction creates a transaction in pending state with basic validation
func NewPendingTransaction(params TransactionParams, now time.Time) (*Transaction, error) {
	if params.ID == "" || params.AuctionID == "" || params.BuyerID == "" || params.SellerID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if params.Amount <= 0 {
		return nil, errs.ErrInvalidRequest
	}
	if params.ProviderSessionID == "" {
		return nil, errs.ErrInvalidRequest
	}

	return &Transaction{
		ID:                params.ID,
		AuctionID:         params.AuctionID,
		BuyerID:           params.BuyerID,
		SellerID:          params.SellerID,
		Amount:            params.Amount,
		Currency:          params.Currency,
		PlatformFee:       params.PlatformFee,
		SellerAmount:      params.SellerAmount,
		Provider:          params.Provider,
		ProviderSessionID: params.ProviderSessionID,
		Status:            TxnStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
