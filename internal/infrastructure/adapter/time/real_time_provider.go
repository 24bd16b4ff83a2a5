package time

import (
	"time"

	"github.com/auctionly/auction-processor/internal/domain/port/core"
)

// RealTimeProvider reads the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates the production time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
