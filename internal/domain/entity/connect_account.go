package entity

import "time"

// ConnectAccount links a seller to their payout destination at the payment
// provider. One active account per user, looked up by user id.
type ConnectAccount struct {
	UserID            string
	ProviderAccountID string
	Status            string
	ChargesEnabled    bool
	PayoutsEnabled    bool
	DetailsSubmitted  bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsChargeable reports whether the account can receive destination charges
func (a *ConnectAccount) IsChargeable() bool {
	return a.ChargesEnabled
}

// accountStatus derives the local status string from provider flags
func accountStatus(chargesEnabled, detailsSubmitted bool) string {
	switch {
	case chargesEnabled:
		return "active"
	case detailsSubmitted:
		return "pending"
	default:
		return "onboarding"
	}
}

// NewConnectAccount creates a local record for a freshly created provider account
func NewConnectAccount(userID, providerAccountID string, now time.Time) *ConnectAccount {
	return &ConnectAccount{
		UserID:            userID,
		ProviderAccountID: providerAccountID,
		Status:            "onboarding",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SyncProviderState overwrites the local flags from the provider's view of
// the account. Also used by the self-healing path to point the record at a
// replacement account when the remote one no longer exists.
func (a *ConnectAccount) SyncProviderState(providerAccountID string, chargesEnabled, payoutsEnabled, detailsSubmitted bool, now time.Time) {
	a.ProviderAccountID = providerAccountID
	a.ChargesEnabled = chargesEnabled
	a.PayoutsEnabled = payoutsEnabled
	a.DetailsSubmitted = detailsSubmitted
	a.Status = accountStatus(chargesEnabled, detailsSubmitted)
	a.UpdatedAt = now
}
