package throttle

import (
	"sync"
	"time"

	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
)

// Result is the outcome of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// SlidingWindowLimiter is a process-local sliding-window counter keyed by
// opaque strings. It is advisory throttling, not a transactional hard limit:
// state is in-memory with no persistence guarantee, and a multi-instance
// deployment would move it to a shared store. Access to the per-key windows
// is serialized by a mutex so concurrent checks are safe.
type SlidingWindowLimiter struct {
	mu           sync.Mutex
	events       map[string][]time.Time
	timeProvider coreport.TimeProvider
}

// NewSlidingWindowLimiter creates a limiter that takes time from the provider
func NewSlidingWindowLimiter(timeProvider coreport.TimeProvider) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		events:       make(map[string][]time.Time),
		timeProvider: timeProvider,
	}
}

// Check prunes events older than the window, then either records the event
// and allows, or denies with the duration until the oldest remaining event
// leaves the window.
func (l *SlidingWindowLimiter) Check(key string, maxEvents int, window time.Duration) Result {
	now := l.timeProvider.Now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := pruneBefore(l.events[key], cutoff)

	if len(kept) >= maxEvents {
		l.events[key] = kept
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: window - now.Sub(kept[0]),
		}
	}

	kept = append(kept, now)
	l.events[key] = kept
	return Result{
		Allowed:   true,
		Remaining: maxEvents - len(kept),
	}
}

// PruneStale discards every key whose newest event is older than the
// retention window, bounding memory. Returns the number of keys dropped.
func (l *SlidingWindowLimiter) PruneStale(retention time.Duration) int {
	cutoff := l.timeProvider.Now().Add(-retention)

	l.mu.Lock()
	defer l.mu.Unlock()

	dropped := 0
	for key, events := range l.events {
		if len(events) == 0 || events[len(events)-1].Before(cutoff) {
			delete(l.events, key)
			dropped++
		}
	}
	return dropped
}

// StartJanitor runs PruneStale on the given interval until the returned stop
// function is called.
func (l *SlidingWindowLimiter) StartJanitor(interval, retention time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.PruneStale(retention)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// pruneBefore drops timestamps strictly older than the cutoff, preserving order
func pruneBefore(events []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(events) && events[idx].Before(cutoff) {
		idx++
	}
	if idx == 0 {
		return events
	}
	kept := make([]time.Time, len(events)-idx)
	copy(kept, events[idx:])
	return kept
}
