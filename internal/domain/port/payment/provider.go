package payment

import "context"

// CheckoutSessionParams describes a hosted checkout session to create.
// Amounts are in the provider's minor unit for the given currency.
type CheckoutSessionParams struct {
	AmountMinor int64
	Currency    string
	ProductName string
	Metadata    map[string]string

	// DestinationAccountID routes funds to a seller's connect account.
	// Empty means the platform account receives the charge.
	DestinationAccountID string
	// ApplicationFeeMinor is the platform's cut of a destination charge.
	// Ignored when DestinationAccountID is empty.
	ApplicationFeeMinor int64

	SuccessURL string
	CancelURL  string
}

// CheckoutSession is a created hosted checkout session
type CheckoutSession struct {
	ID  string
	URL string
}

// AccountParams describes a connect account to create for a seller
type AccountParams struct {
	Email   string
	Country string
}

// Account is the provider-side view of a connect account
type Account struct {
	ID               string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
}

// Provider defines the operations consumed from the external payment provider.
// Implementations wrap all failures in errs.ErrProvider; a retrieve of an
// account that no longer exists returns errs.ErrProviderAccountMissing.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	CreateAccount(ctx context.Context, params AccountParams) (*Account, error)
	RetrieveAccount(ctx context.Context, accountID string) (*Account, error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
}
