package entity

import (
	"math"
	"strings"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
)

// zeroDecimalCurrencies are the ISO codes whose provider minor unit equals
// the major unit (no cents). Amounts in these currencies pass through to the
// provider unscaled.
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {},
	"krw": {}, "mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {},
	"vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// IsZeroDecimalCurrency reports whether the currency has no minor unit
func IsZeroDecimalCurrency(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToLower(currency)]
	return ok
}

// ValidateCurrency checks that the code is a three-letter ISO currency code
func ValidateCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.ErrInvalidCurrency
	}
	for _, r := range currency {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return errs.ErrInvalidCurrency
		}
	}
	return nil
}

// ToMinorUnit converts an amount to the payment provider's minor unit for
// the given currency: zero-decimal currencies are used as-is, all others are
// multiplied by 100 and rounded.
func ToMinorUnit(amount float64, currency string) int64 {
	if IsZeroDecimalCurrency(currency) {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

// RoundToCents rounds an amount to two decimal places
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// SplitAmount divides an amount into the platform fee and the seller's share,
// given the fee percentage. The two parts always sum to the original amount.
func SplitAmount(amount, feePercent float64) (platformFee, sellerAmount float64) {
	platformFee = RoundToCents(amount * feePercent / 100)
	sellerAmount = RoundToCents(amount - platformFee)
	return platformFee, sellerAmount
}
