package model

import (
	"time"
)

// ConnectAccount represents the database model for seller payout accounts
type ConnectAccount struct {
	UserID            string `gorm:"primaryKey;size:64"`
	ProviderAccountID string `gorm:"not null;size:255;index"`
	Status            string `gorm:"not null;size:16"`
	ChargesEnabled    bool   `gorm:"not null;default:false"`
	PayoutsEnabled    bool   `gorm:"not null;default:false"`
	DetailsSubmitted  bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ConnectAccount
func (ConnectAccount) TableName() string {
	return "connect_accounts"
}
