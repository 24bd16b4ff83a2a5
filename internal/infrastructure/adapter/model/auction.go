package model

import (
	"time"
)

// Auction represents the database model for auctions
type Auction struct {
	ID       string `gorm:"primaryKey;size:64"`
	SellerID string `gorm:"not null;size:64;index"`

	Title    string `gorm:"not null"`
	Category string `gorm:"size:64"`

	StartingPrice float64  `gorm:"not null"`
	CurrentBid    float64  `gorm:"not null;default:0"`
	BidIncrement  float64  `gorm:"not null;default:0"`
	ReservePrice  *float64 `gorm:""`

	BidsCount     int `gorm:"not null;default:0"`
	WatchersCount int `gorm:"not null;default:0"`

	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;size:16;index"`

	HighestBidderID   *string `gorm:"size:64"`
	HighestBidderName *string `gorm:"size:128"`

	WinnerID   *string  `gorm:"size:64"`
	WinnerName *string  `gorm:"size:128"`
	FinalPrice *float64 `gorm:""`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Auction
func (Auction) TableName() string {
	return "auctions"
}
