package entity

import (
	"fmt"
	"time"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
)

// AuctionStatus represents the lifecycle state of an auction
type AuctionStatus string

// Auction lifecycle states. Status only ever advances forward; ended and
// cancelled are terminal.
const (
	StatusDraft     AuctionStatus = "draft"
	StatusScheduled AuctionStatus = "scheduled"
	StatusActive    AuctionStatus = "active"
	StatusEnded     AuctionStatus = "ended"
	StatusCancelled AuctionStatus = "cancelled"
)

// auctionTransitions lists the legal forward transitions per state
var auctionTransitions = map[AuctionStatus][]AuctionStatus{
	StatusDraft:     {StatusScheduled},
	StatusScheduled: {StatusActive, StatusCancelled},
	StatusActive:    {StatusEnded, StatusCancelled},
	StatusEnded:     {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to next is legal
func (s AuctionStatus) CanTransitionTo(next AuctionStatus) bool {
	for _, allowed := range auctionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s AuctionStatus) IsTerminal() bool {
	return len(auctionTransitions[s]) == 0
}

// Auction represents a single listing moving through the auction lifecycle.
// Winner fields and FinalPrice are set at most once, by the transition that
// closes the auction, and are immutable afterwards. Optional fields use
// pointers: nil means "absent", distinct from the zero value.
type Auction struct {
	ID       string
	SellerID string

	Title    string
	Category string

	StartingPrice float64
	CurrentBid    float64
	BidIncrement  float64
	ReservePrice  *float64

	BidsCount     int
	WatchersCount int

	StartTime time.Time
	EndTime   time.Time
	Status    AuctionStatus

	HighestBidderID   *string
	HighestBidderName *string

	WinnerID   *string
	WinnerName *string
	FinalPrice *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDueToStart reports whether the scheduled auction's start time has passed
func (a *Auction) IsDueToStart(now time.Time) bool {
	return a.Status == StatusScheduled && !a.StartTime.After(now)
}

// IsExpired reports whether the active auction's end time has passed
func (a *Auction) IsExpired(now time.Time) bool {
	return a.Status == StatusActive && !a.EndTime.After(now)
}

// Activate moves a scheduled auction to active. The only data change besides
// the status is the update timestamp.
func (a *Auction) Activate(now time.Time) error {
	if a.Status != StatusScheduled {
		return fmt.Errorf("%w: cannot activate auction in status %q", errs.ErrInvalidState, a.Status)
	}
	a.Status = StatusActive
	a.UpdatedAt = now
	return nil
}

// ClosingOutcome summarizes the result of closing an auction, used to drive
// the statistics increments that must land in the same atomic unit.
type ClosingOutcome struct {
	AuctionID  string
	SellerID   string
	WinnerID   *string
	WinnerName *string
	FinalPrice float64
}

// HasWinner reports whether a bidder won the auction
func (o *ClosingOutcome) HasWinner() bool {
	return o.WinnerID != nil
}

// Close ends an active auction. If a highest bidder exists it becomes the
// winner and the current bid becomes the final price; with no bidder the
// auction ends with no winner. Callers must hold the auction inside an
// atomic transaction so the status precondition and the write cannot be
// split by a concurrent trigger.
func (a *Auction) Close(now time.Time) (*ClosingOutcome, error) {
	if a.Status != StatusActive {
		return nil, fmt.Errorf("%w: cannot close auction in status %q", errs.ErrInvalidState, a.Status)
	}

	a.Status = StatusEnded
	a.UpdatedAt = now

	outcome := &ClosingOutcome{
		AuctionID: a.ID,
		SellerID:  a.SellerID,
	}

	if a.HighestBidderID != nil {
		winnerID := *a.HighestBidderID
		finalPrice := a.CurrentBid

		a.WinnerID = &winnerID
		a.FinalPrice = &finalPrice
		if a.HighestBidderName != nil {
			winnerName := *a.HighestBidderName
			a.WinnerName = &winnerName
		}

		outcome.WinnerID = a.WinnerID
		outcome.WinnerName = a.WinnerName
		outcome.FinalPrice = finalPrice
	}

	return outcome, nil
}
