package lifecycle

import (
	"context"
	"fmt"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	identityport "github.com/auctionly/auction-processor/internal/domain/port/identity"
	"github.com/auctionly/auction-processor/internal/domain/port/persistence"
)

// DefaultBatchSize bounds each sweep scan so every invocation stays cheap
const DefaultBatchSize = 50

// Service drives auctions through their lifecycle: seller-initiated early
// closes and the finalization sweep. Correctness under concurrent invocation
// comes from transaction scoping, not from in-process mutual exclusion: every
// transition re-checks its status precondition under a row lock inside the
// same transaction that writes the new state and the statistics increments.
type Service struct {
	uow          persistence.UnitOfWork
	verifier     identityport.Verifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	batchSize    int
}

// NewService creates a lifecycle service
func NewService(
	uow persistence.UnitOfWork,
	verifier identityport.Verifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		verifier:     verifier,
		timeProvider: timeProvider,
		logger:       logger,
		batchSize:    DefaultBatchSize,
	}
}

// WithBatchSize overrides the sweep batch bound
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// applyClosingStats increments the winner's and seller's counters for a won
// auction. Must run inside the same transaction that flipped the auction to
// ended, so the increments land exactly once per auction.
func (s *Service) applyClosingStats(txCtx context.Context, outcome *entity.ClosingOutcome) error {
	if !outcome.HasWinner() {
		return nil
	}

	users := s.uow.GetUserRepository(txCtx)

	if err := users.IncrementStats(txCtx, *outcome.WinnerID, entity.WinnerDelta(outcome.FinalPrice)); err != nil {
		return fmt.Errorf("increment winner stats: %w", err)
	}
	if err := users.IncrementStats(txCtx, outcome.SellerID, entity.SellerDelta(outcome.FinalPrice)); err != nil {
		return fmt.Errorf("increment seller stats: %w", err)
	}
	return nil
}
