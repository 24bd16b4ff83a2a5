package entity

import "time"

// UserStats holds the per-user counters mutated when auctions settle.
// Each counter reflects exactly one increment per completed auction outcome;
// increments are applied only through atomic deltas inside the closing
// transaction, never by rewriting a cached value.
type UserStats struct {
	AuctionsWon  int64
	AuctionsSold int64
	TotalSpent   float64
	TotalEarned  float64
}

// User represents a marketplace participant's profile
type User struct {
	ID          string
	Email       string
	DisplayName string
	Stats       UserStats
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatsDelta is a commutative, order-independent increment applied to UserStats
type StatsDelta struct {
	AuctionsWon  int64
	AuctionsSold int64
	TotalSpent   float64
	TotalEarned  float64
}

// IsZero reports whether the delta would change nothing
func (d StatsDelta) IsZero() bool {
	return d.AuctionsWon == 0 && d.AuctionsSold == 0 && d.TotalSpent == 0 && d.TotalEarned == 0
}

// WinnerDelta returns the stats increment for a winning bidder
func WinnerDelta(finalPrice float64) StatsDelta {
	return StatsDelta{AuctionsWon: 1, TotalSpent: finalPrice}
}

// SellerDelta returns the stats increment for the seller of a won auction
func SellerDelta(finalPrice float64) StatsDelta {
	return StatsDelta{AuctionsSold: 1, TotalEarned: finalPrice}
}
