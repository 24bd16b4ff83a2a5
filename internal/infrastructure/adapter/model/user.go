package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID          string `gorm:"primaryKey;size:64"`
	Email       string `gorm:"size:255"`
	DisplayName string `gorm:"size:128"`

	AuctionsWon  int64   `gorm:"not null;default:0"`
	AuctionsSold int64   `gorm:"not null;default:0"`
	TotalSpent   float64 `gorm:"not null;default:0"`
	TotalEarned  float64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
