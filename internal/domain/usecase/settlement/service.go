package settlement

import (
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	identityport "github.com/auctionly/auction-processor/internal/domain/port/identity"
	"github.com/auctionly/auction-processor/internal/domain/port/payment"
	"github.com/auctionly/auction-processor/internal/domain/port/persistence"
)

// Config carries the settlement policy knobs
type Config struct {
	// ProviderName labels transaction records (e.g. "stripe")
	ProviderName string
	// FeePercent is the platform's cut of the final price
	FeePercent float64

	// Checkout redirect targets
	SuccessURL string
	CancelURL  string

	// Connect onboarding link targets
	OnboardingRefreshURL string
	OnboardingReturnURL  string

	// AccountCountry for newly created connect accounts
	AccountCountry string
}

// Service initiates payment settlement for won auctions and manages seller
// payout accounts. Idempotency comes from the uniqueness check against
// completed transactions, not from in-process coordination; provider errors
// never leave partially committed local state.
type Service struct {
	auctions     persistence.AuctionRepository
	transactions persistence.TransactionRepository
	accounts     persistence.ConnectAccountRepository
	provider     payment.Provider
	verifier     identityport.Verifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a settlement service
func NewService(
	auctions persistence.AuctionRepository,
	transactions persistence.TransactionRepository,
	accounts persistence.ConnectAccountRepository,
	provider payment.Provider,
	verifier identityport.Verifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.ProviderName == "" {
		cfg.ProviderName = "stripe"
	}
	return &Service{
		auctions:     auctions,
		transactions: transactions,
		accounts:     accounts,
		provider:     provider,
		verifier:     verifier,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}
