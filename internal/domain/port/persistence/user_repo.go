package persistence

import (
	"context"

	"github.com/auctionly/auction-processor/internal/domain/entity"
)

// UserRepository defines operations for user persistence
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// IncrementStats applies the delta to the user's statistics counters as an
	// atomic, commutative increment (never a read-then-add of a cached value),
	// so overlapping increments from unrelated operations cannot clobber each
	// other.
	IncrementStats(ctx context.Context, userID string, delta entity.StatsDelta) error
}
