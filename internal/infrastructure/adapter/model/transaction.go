package model

import (
	"time"
)

// Transaction represents the database model for payment transactions.
// The partial unique index on auction_id (completed rows only) is created
// by the migration manager; AutoMigrate cannot express it.
type Transaction struct {
	ID        string `gorm:"primaryKey;size:64"`
	AuctionID string `gorm:"not null;size:64;index"`
	BuyerID   string `gorm:"not null;size:64;index"`
	SellerID  string `gorm:"not null;size:64"`

	Amount       float64 `gorm:"not null"`
	Currency     string  `gorm:"not null;size:3"`
	PlatformFee  float64 `gorm:"not null;default:0"`
	SellerAmount float64 `gorm:"not null;default:0"`

	Provider           string `gorm:"not null;size:32"`
	ProviderSessionID  string `gorm:"size:255;index"`
	ProviderPaymentID  string `gorm:"size:255"`
	ProviderTransferID string `gorm:"size:255"`

	Status    string    `gorm:"not null;size:16;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
