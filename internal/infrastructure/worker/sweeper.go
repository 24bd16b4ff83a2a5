package worker

import (
	"context"
	"time"

	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/domain/usecase/lifecycle"
	"github.com/auctionly/auction-processor/internal/infrastructure/observability"
)

// SweepRunner is the slice of the lifecycle usecase the worker drives
type SweepRunner interface {
	Sweep(ctx context.Context) (*lifecycle.SweepResult, error)
}

// Sweeper runs the finalization sweep on a fixed interval. The sweep itself
// is re-entrant, so the worker coexists safely with operator-triggered runs
// through the maintenance endpoint.
type Sweeper struct {
	runner   SweepRunner
	logger   coreport.Logger
	interval time.Duration
	timeout  time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewSweeper creates a sweep worker
func NewSweeper(runner SweepRunner, logger coreport.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		runner:   runner,
		logger:   logger,
		interval: interval,
		timeout:  interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticker loop. Call Stop to shut it down.
func (s *Sweeper) Start() {
	go s.run()
	s.logger.Info("Sweep worker started", map[string]any{
		"interval": s.interval.String(),
	})
}

// Stop signals the worker to exit and waits for the in-flight sweep to finish
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Info("Sweep worker stopped", nil)
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *Sweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.runner.Sweep(ctx)
	observability.SweepDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		observability.SweepFailures.Inc()
		s.logger.Error("Scheduled sweep failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	observability.AuctionsFinalized.Add(float64(result.Finalized))
	observability.AuctionsActivated.Add(float64(result.Activated))
}
