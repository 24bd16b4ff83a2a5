package entity

import (
	"testing"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestValidateCurrency(t *testing.T) {
	t.Run("Valid codes", func(t *testing.T) {
		for _, code := range []string{"usd", "USD", "eur", "jpy", "Gbp"} {
			assert.NoError(t, ValidateCurrency(code), code)
		}
	})

	t.Run("Invalid codes", func(t *testing.T) {
		for _, code := range []string{"", "us", "usdd", "u$d", "12x"} {
			assert.ErrorIs(t, ValidateCurrency(code), errs.ErrInvalidCurrency, code)
		}
	})
}

func TestToMinorUnit(t *testing.T) {
	testCases := []struct {
		amount   float64
		currency string
		expected int64
	}{
		{15.00, "usd", 1500},
		{15.99, "usd", 1599},
		{0.01, "eur", 1},
		{10.005, "usd", 1001}, // rounds half up
		{1500, "jpy", 1500},
		{1500, "clp", 1500},
		{1500.4, "krw", 1500},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ToMinorUnit(tc.amount, tc.currency),
			"%v %s", tc.amount, tc.currency)
	}
}

func TestIsZeroDecimalCurrency(t *testing.T) {
	assert.True(t, IsZeroDecimalCurrency("jpy"))
	assert.True(t, IsZeroDecimalCurrency("JPY"))
	assert.True(t, IsZeroDecimalCurrency("clp"))
	assert.False(t, IsZeroDecimalCurrency("usd"))
	assert.False(t, IsZeroDecimalCurrency("eur"))
}

func TestSplitAmount(t *testing.T) {
	testCases := []struct {
		amount       float64
		feePercent   float64
		platformFee  float64
		sellerAmount float64
	}{
		{100.00, 10, 10.00, 90.00},
		{99.99, 10, 10.00, 89.99},
		{0.01, 10, 0.00, 0.01},
		{250.00, 12.5, 31.25, 218.75},
		{100.00, 0, 0.00, 100.00},
	}

	for _, tc := range testCases {
		fee, seller := SplitAmount(tc.amount, tc.feePercent)
		assert.Equal(t, tc.platformFee, fee, "fee of %v at %v%%", tc.amount, tc.feePercent)
		assert.Equal(t, tc.sellerAmount, seller, "seller share of %v at %v%%", tc.amount, tc.feePercent)
		assert.Equal(t, tc.amount, RoundToCents(fee+seller), "parts must sum to whole")
	}
}
