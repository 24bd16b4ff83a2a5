package entity

import (
	"testing"
	"time"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("Allowed transitions", func(t *testing.T) {
		testCases := []struct {
			from AuctionStatus
			to   AuctionStatus
		}{
			{StatusDraft, StatusScheduled},
			{StatusScheduled, StatusActive},
			{StatusScheduled, StatusCancelled},
			{StatusActive, StatusEnded},
			{StatusActive, StatusCancelled},
		}

		for _, tc := range testCases {
			t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
				assert.True(t, tc.from.CanTransitionTo(tc.to))
			})
		}
	})

	t.Run("Forbidden transitions", func(t *testing.T) {
		testCases := []struct {
			from AuctionStatus
			to   AuctionStatus
		}{
			{StatusDraft, StatusActive},
			{StatusDraft, StatusEnded},
			{StatusScheduled, StatusEnded},
			{StatusActive, StatusScheduled},
			{StatusEnded, StatusActive},
			{StatusEnded, StatusCancelled},
			{StatusCancelled, StatusActive},
			{StatusCancelled, StatusEnded},
		}

		for _, tc := range testCases {
			t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
				assert.False(t, tc.from.CanTransitionTo(tc.to))
			})
		}
	})

	t.Run("Terminal states", func(t *testing.T) {
		assert.True(t, StatusEnded.IsTerminal())
		assert.True(t, StatusCancelled.IsTerminal())
		assert.False(t, StatusDraft.IsTerminal())
		assert.False(t, StatusScheduled.IsTerminal())
		assert.False(t, StatusActive.IsTerminal())
	})
}

func newActiveAuction(now time.Time) *Auction {
	return &Auction{
		ID:            "auction-1",
		SellerID:      "seller-1",
		Title:         "Vintage camera",
		StartingPrice: 50,
		CurrentBid:    120,
		Status:        StatusActive,
		StartTime:     now.Add(-time.Hour),
		EndTime:       now.Add(time.Hour),
	}
}

func TestClose(t *testing.T) {
	now := time.Now()

	t.Run("With highest bidder sets winner and final price", func(t *testing.T) {
		auction := newActiveAuction(now)
		bidderID := "bidder-7"
		bidderName := "Dana"
		auction.HighestBidderID = &bidderID
		auction.HighestBidderName = &bidderName

		outcome, err := auction.Close(now)
		require.NoError(t, err)

		assert.Equal(t, StatusEnded, auction.Status)
		require.NotNil(t, auction.WinnerID)
		assert.Equal(t, bidderID, *auction.WinnerID)
		require.NotNil(t, auction.WinnerName)
		assert.Equal(t, bidderName, *auction.WinnerName)
		require.NotNil(t, auction.FinalPrice)
		assert.Equal(t, 120.0, *auction.FinalPrice)

		assert.True(t, outcome.HasWinner())
		assert.Equal(t, "seller-1", outcome.SellerID)
		assert.Equal(t, 120.0, outcome.FinalPrice)
	})

	t.Run("Without bidder ends with no winner", func(t *testing.T) {
		auction := newActiveAuction(now)

		outcome, err := auction.Close(now)
		require.NoError(t, err)

		assert.Equal(t, StatusEnded, auction.Status)
		assert.Nil(t, auction.WinnerID)
		assert.Nil(t, auction.FinalPrice)
		assert.False(t, outcome.HasWinner())
	})

	t.Run("Closing a non-active auction fails", func(t *testing.T) {
		for _, status := range []AuctionStatus{StatusDraft, StatusScheduled, StatusEnded, StatusCancelled} {
			auction := newActiveAuction(now)
			auction.Status = status

			_, err := auction.Close(now)
			assert.ErrorIs(t, err, errs.ErrInvalidState, "status %s", status)
		}
	})

	t.Run("Closing twice fails the second time", func(t *testing.T) {
		auction := newActiveAuction(now)

		_, err := auction.Close(now)
		require.NoError(t, err)

		_, err = auction.Close(now)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestActivate(t *testing.T) {
	now := time.Now()

	t.Run("Scheduled auction becomes active", func(t *testing.T) {
		auction := newActiveAuction(now)
		auction.Status = StatusScheduled

		require.NoError(t, auction.Activate(now))
		assert.Equal(t, StatusActive, auction.Status)
	})

	t.Run("Non-scheduled auction cannot be activated", func(t *testing.T) {
		auction := newActiveAuction(now)

		err := auction.Activate(now)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestTimeWindows(t *testing.T) {
	now := time.Now()

	t.Run("IsExpired", func(t *testing.T) {
		auction := newActiveAuction(now)
		auction.EndTime = now.Add(-time.Minute)
		assert.True(t, auction.IsExpired(now))

		auction.EndTime = now.Add(time.Minute)
		assert.False(t, auction.IsExpired(now))

		// Only active auctions expire
		auction.EndTime = now.Add(-time.Minute)
		auction.Status = StatusEnded
		assert.False(t, auction.IsExpired(now))
	})

	t.Run("IsDueToStart", func(t *testing.T) {
		auction := newActiveAuction(now)
		auction.Status = StatusScheduled
		auction.StartTime = now.Add(-time.Minute)
		assert.True(t, auction.IsDueToStart(now))

		auction.StartTime = now.Add(time.Minute)
		assert.False(t, auction.IsDueToStart(now))
	})
}
