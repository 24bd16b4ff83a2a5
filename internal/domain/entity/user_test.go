package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsDelta(t *testing.T) {
	t.Run("IsZero", func(t *testing.T) {
		assert.True(t, StatsDelta{}.IsZero())
		assert.False(t, StatsDelta{AuctionsWon: 1}.IsZero())
		assert.False(t, StatsDelta{TotalEarned: 0.01}.IsZero())
	})

	t.Run("WinnerDelta", func(t *testing.T) {
		delta := WinnerDelta(120.00)
		assert.Equal(t, int64(1), delta.AuctionsWon)
		assert.Equal(t, 120.00, delta.TotalSpent)
		assert.Zero(t, delta.AuctionsSold)
		assert.Zero(t, delta.TotalEarned)
	})

	t.Run("SellerDelta", func(t *testing.T) {
		delta := SellerDelta(120.00)
		assert.Equal(t, int64(1), delta.AuctionsSold)
		assert.Equal(t, 120.00, delta.TotalEarned)
		assert.Zero(t, delta.AuctionsWon)
		assert.Zero(t, delta.TotalSpent)
	})
}

func TestConnectAccountStatus(t *testing.T) {
	now := time.Now()

	account := NewConnectAccount("seller-1", "acct_1", now)
	assert.Equal(t, "onboarding", account.Status)
	assert.False(t, account.IsChargeable())

	account.SyncProviderState("acct_1", false, false, true, now)
	assert.Equal(t, "pending", account.Status)
	assert.False(t, account.IsChargeable())

	account.SyncProviderState("acct_1", true, true, true, now)
	assert.Equal(t, "active", account.Status)
	assert.True(t, account.IsChargeable())

	// Healing path points the record at a replacement account
	account.SyncProviderState("acct_2", false, false, false, now)
	assert.Equal(t, "acct_2", account.ProviderAccountID)
	assert.Equal(t, "onboarding", account.Status)
}
