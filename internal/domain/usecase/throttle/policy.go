package throttle

import (
	"fmt"
	"time"
)

// Default limits for the composed bid policy and the contact policy
const (
	DefaultBidPerAuctionMax    = 5
	DefaultBidPerAuctionWindow = 60 * time.Second
	DefaultBidGlobalMax        = 20
	DefaultBidGlobalWindow     = 60 * time.Second

	DefaultContactMax    = 3
	DefaultContactWindow = 300 * time.Second
)

// BidPolicy layers a per-(user, auction) limit under a per-user global
// limit; a bid must pass both. When the per-auction check passes but the
// global one denies, the event already recorded against the per-auction key
// is kept: the limiter is advisory, and a minor over-count is acceptable.
type BidPolicy struct {
	limiter *SlidingWindowLimiter

	PerAuctionMax    int
	PerAuctionWindow time.Duration
	GlobalMax        int
	GlobalWindow     time.Duration
}

// NewBidPolicy creates a bid policy with the default limits
func NewBidPolicy(limiter *SlidingWindowLimiter) *BidPolicy {
	return &BidPolicy{
		limiter:          limiter,
		PerAuctionMax:    DefaultBidPerAuctionMax,
		PerAuctionWindow: DefaultBidPerAuctionWindow,
		GlobalMax:        DefaultBidGlobalMax,
		GlobalWindow:     DefaultBidGlobalWindow,
	}
}

// CheckBid applies both limits and returns the most restrictive result
func (p *BidPolicy) CheckBid(userID, auctionID string) Result {
	perAuction := p.limiter.Check(
		fmt.Sprintf("bid:%s:%s", userID, auctionID),
		p.PerAuctionMax, p.PerAuctionWindow,
	)
	if !perAuction.Allowed {
		return perAuction
	}

	global := p.limiter.Check(
		fmt.Sprintf("bid:%s", userID),
		p.GlobalMax, p.GlobalWindow,
	)
	if !global.Allowed {
		return global
	}

	if global.Remaining < perAuction.Remaining {
		return global
	}
	return perAuction
}

// ContactPolicy throttles contact-form submissions per opaque key
type ContactPolicy struct {
	limiter *SlidingWindowLimiter

	Max    int
	Window time.Duration
}

// NewContactPolicy creates a contact policy with the default limits
func NewContactPolicy(limiter *SlidingWindowLimiter) *ContactPolicy {
	return &ContactPolicy{
		limiter: limiter,
		Max:     DefaultContactMax,
		Window:  DefaultContactWindow,
	}
}

// CheckContact applies the contact limit for the key
func (p *ContactPolicy) CheckContact(key string) Result {
	return p.limiter.Check(fmt.Sprintf("contact:%s", key), p.Max, p.Window)
}
