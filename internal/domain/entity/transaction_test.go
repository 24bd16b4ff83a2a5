package entity

import (
	"testing"
	"time"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransactionParams() TransactionParams {
	return TransactionParams{
		ID:                "txn-1",
		AuctionID:         "auction-1",
		BuyerID:           "buyer-1",
		SellerID:          "seller-1",
		Amount:            120.00,
		Currency:          "usd",
		PlatformFee:       12.00,
		SellerAmount:      108.00,
		Provider:          "stripe",
		ProviderSessionID: "cs_123",
	}
}

func TestNewPendingTransaction(t *testing.T) {
	now := time.Now()

	t.Run("Valid params create a pending transaction", func(t *testing.T) {
		txn, err := NewPendingTransaction(validTransactionParams(), now)
		require.NoError(t, err)

		assert.Equal(t, TxnStatusPending, txn.Status)
		assert.Equal(t, "auction-1", txn.AuctionID)
		assert.Equal(t, 120.00, txn.Amount)
		assert.Equal(t, 12.00, txn.PlatformFee)
		assert.Equal(t, 108.00, txn.SellerAmount)
		assert.Equal(t, "cs_123", txn.ProviderSessionID)
		assert.Equal(t, now, txn.CreatedAt)
	})

	t.Run("Missing identifiers are rejected", func(t *testing.T) {
		mutations := map[string]func(*TransactionParams){
			"no id":         func(p *TransactionParams) { p.ID = "" },
			"no auction":    func(p *TransactionParams) { p.AuctionID = "" },
			"no buyer":      func(p *TransactionParams) { p.BuyerID = "" },
			"no seller":     func(p *TransactionParams) { p.SellerID = "" },
			"no session id": func(p *TransactionParams) { p.ProviderSessionID = "" },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				params := validTransactionParams()
				mutate(&params)

				_, err := NewPendingTransaction(params, now)
				assert.ErrorIs(t, err, errs.ErrInvalidRequest)
			})
		}
	})

	t.Run("Non-positive amounts are rejected", func(t *testing.T) {
		for _, amount := range []float64{0, -1} {
			params := validTransactionParams()
			params.Amount = amount

			_, err := NewPendingTransaction(params, now)
			assert.ErrorIs(t, err, errs.ErrInvalidRequest, "amount %v", amount)
		}
	})
}
