package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	errs "github.com/auctionly/auction-processor/internal/domain/error"
)

// SweepResult reports how many auctions a sweep invocation advanced
type SweepResult struct {
	Finalized int
	Activated int
}

// Sweep advances auctions whose time window has elapsed: active auctions past
// their end time are finalized, scheduled auctions past their start time are
// activated. Both scans are bounded to the batch size. The sweep is safely
// re-entrant: any number of triggers may overlap, and the net effect equals
// running it exactly once per eligible auction. Per-item failures are logged
// and do not abort the rest of the batch.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	now := s.timeProvider.Now()
	result := &SweepResult{}
	auctions := s.uow.GetAuctionRepository(ctx)

	expired, err := auctions.ListExpired(ctx, now, s.batchSize)
	if err != nil {
		return result, fmt.Errorf("list expired auctions: %w", err)
	}

	for _, auction := range expired {
		if err := s.finalizeOne(ctx, auction.ID); err != nil {
			if errors.Is(err, errs.ErrTransitionConflict) {
				// Another trigger already closed it. Not a failure.
				s.logger.Debug("Skipping auction closed by concurrent sweep", map[string]any{
					"auction_id": auction.ID,
				})
				continue
			}
			s.logger.Error("Failed to finalize auction", map[string]any{
				"auction_id": auction.ID,
				"error":      err.Error(),
			})
			continue
		}
		result.Finalized++
	}

	due, err := auctions.ListDueToStart(ctx, now, s.batchSize)
	if err != nil {
		return result, fmt.Errorf("list due auctions: %w", err)
	}

	for _, auction := range due {
		if err := s.activateOne(ctx, auction.ID); err != nil {
			if errors.Is(err, errs.ErrTransitionConflict) {
				continue
			}
			s.logger.Error("Failed to activate auction", map[string]any{
				"auction_id": auction.ID,
				"error":      err.Error(),
			})
			continue
		}
		result.Activated++
	}

	s.logger.Info("Finalization sweep completed", map[string]any{
		"finalized": result.Finalized,
		"activated": result.Activated,
		"expired":   len(expired),
		"due":       len(due),
	})
	return result, nil
}

// finalizeOne closes a single expired auction in its own transaction. The
// status is re-checked under a row lock so a concurrent sweep or early end
// that already closed the auction turns this invocation into a no-op skip.
func (s *Service) finalizeOne(ctx context.Context, auctionID string) error {
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

	if auction.Status != entity.StatusActive {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrTransitionConflict
	}

	outcome, err := auction.Close(s.timeProvider.Now())
	if err != nil {
		_ = s.uow.Rollback(txCtx)
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
		return fmt.Errorf("commit finalization: %w", err)
	}

	s.logger.Info("Auction finalized", map[string]any{
		"auction_id": auctionID,
		"has_winner": outcome.HasWinner(),
	})
	return nil
}

// activateOne moves a single due auction from scheduled to active, with the
// same guarded-transaction shape as finalizeOne.
func (s *Service) activateOne(ctx context.Context, auctionID string) error {
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

	if auction.Status != entity.StatusScheduled {
		_ = s.uow.Rollback(txCtx)
		return errs.ErrTransitionConflict
	}

	if err := auction.Activate(s.timeProvider.Now()); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := auctions.Update(txCtx, auction); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("commit activation: %w", err)
	}
	return nil
}
