package core

import "time"

// TimeProvider abstracts the clock. Auction expiry checks, rate-limit
// windows and record timestamps all read time through this port so tests
// can pin or advance it.
type TimeProvider interface {
	Now() time.Time
}
