package lifecycle

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
)

// EndEarly closes an active auction on the seller's request. Authorization
// and the status precondition are validated inside the same atomic
// transaction that writes the ended state and the winner/seller statistics,
// so two overlapping triggers can never both apply the side effects.
func (s *Service) EndEarly(ctx context.Context, auctionID, token string) error {
	if auctionID == "" {
		return fmt.Errorf("%w: missing auction id", errs.ErrInvalidRequest)
	}

	ident, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	auctions := s.uow.GetAuctionRepository(txCtx)

	auction, err := auctions.GetByIDForUpdate(txCtx, auctionID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if auction.SellerID != ident.UID {
		_ = s.uow.Rollback(txCtx)
		s.logger.Warn("Early end rejected: caller is not the seller", map[string]any{
			"auction_id": auctionID,
			"caller_id":  ident.UID,
		})
		return fmt.Errorf("%w: only the seller may end this auction", errs.ErrForbidden)
	}

	outcome, err := auction.Close(s.timeProvider.Now())
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		if errors.Is(err, errs.ErrInvalidState) {
			// Surfaced as an entitlement failure: the seller may only end
			// an auction while it is active.
			return fmt.Errorf("%w: auction is not active", errs.ErrForbidden)
		}
		return err
	}

	if err := auctions.Update(txCtx, auction); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := s.applyClosingStats(txCtx, outcome); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("commit early end: %w", err)
	}

	s.logger.Info("Auction ended early by seller", map[string]any{
		"auction_id": auctionID,
		"seller_id":  ident.UID,
		"has_winner": outcome.HasWinner(),
	})
	return nil
}
