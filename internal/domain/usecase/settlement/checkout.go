package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	errs "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/auctionly/auction-processor/internal/domain/port/payment"
)

// CheckoutResult is the outcome of a successful checkout initiation
type CheckoutResult struct {
	SessionID     string
	SessionURL    string
	TransactionID string
}

// CreateCheckout establishes the payment intent for a won auction. The
// pending transaction record is written only after the provider confirms the
// checkout session, so a failed session creation cannot leave an orphaned
// record; the duplicate-payment check makes the whole operation idempotent
// per auction.
func (s *Service) CreateCheckout(ctx context.Context, auctionID, currency, token string) (*CheckoutResult, error) {
	ident, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if auctionID == "" {
		return nil, fmt.Errorf("%w: missing auction id", errs.ErrInvalidRequest)
	}
	if err := entity.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	currency = strings.ToLower(currency)

	auction, err := s.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	if auction.Status != entity.StatusEnded {
		return nil, fmt.Errorf("%w: auction is %q, not ended", errs.ErrInvalidState, auction.Status)
	}
	if auction.WinnerID == nil || *auction.WinnerID != ident.UID {
		return nil, fmt.Errorf("%w: only the winning bidder may pay for this auction", errs.ErrForbidden)
	}

	alreadyPaid, err := s.transactions.CompletedExistsForAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}
	if alreadyPaid {
		return nil, fmt.Errorf("%w: auction %s", errs.ErrAlreadyPaid, auctionID)
	}

	amount := *auction.FinalPrice
	platformFee, sellerAmount := entity.SplitAmount(amount, s.cfg.FeePercent)

	// A seller without a chargeable connect account routes to the platform
	// account; a missing record is expected, not an error.
	destination := ""
	account, err := s.accounts.GetByUserID(ctx, auction.SellerID)
	if err != nil && !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, fmt.Errorf("look up seller account: %w", err)
	}
	if account != nil && account.IsChargeable() {
		destination = account.ProviderAccountID
	}

	params := payment.CheckoutSessionParams{
		AmountMinor: entity.ToMinorUnit(amount, currency),
		Currency:    currency,
		ProductName: auction.Title,
		Metadata: map[string]string{
			"auction_id": auction.ID,
			"buyer_id":   ident.UID,
			"seller_id":  auction.SellerID,
		},
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	}
	if destination != "" {
		params.DestinationAccountID = destination
		params.ApplicationFeeMinor = entity.ToMinorUnit(platformFee, currency)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.logger.Error("Checkout session creation failed", map[string]any{
			"auction_id": auctionID,
			"buyer_id":   ident.UID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	txn, err := entity.NewPendingTransaction(entity.TransactionParams{
		ID:                uuid.NewString(),
		AuctionID:         auction.ID,
		BuyerID:           ident.UID,
		SellerID:          auction.SellerID,
		Amount:            amount,
		Currency:          currency,
		PlatformFee:       platformFee,
		SellerAmount:      sellerAmount,
		Provider:          s.cfg.ProviderName,
		ProviderSessionID: session.ID,
	}, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		// The session exists at the provider but is unreferenced locally; it
		// expires on its own and the buyer can retry.
		s.logger.Error("Checkout session created but transaction record write failed", map[string]any{
			"auction_id": auctionID,
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Checkout session created", map[string]any{
		"auction_id":     auctionID,
		"buyer_id":       ident.UID,
		"session_id":     session.ID,
		"transaction_id": txn.ID,
		"destination":    destination != "",
		"amount":         amount,
		"currency":       currency,
	})

	return &CheckoutResult{
		SessionID:     session.ID,
		SessionURL:    session.URL,
		TransactionID: txn.ID,
	}, nil
}
