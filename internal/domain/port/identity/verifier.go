package identity

import "context"

// Identity represents a verified caller
type Identity struct {
	UID   string
	Email string
}

// Verifier validates caller tokens against the identity provider.
// Implementations return errs.ErrUnauthenticated for any token that cannot
// be positively verified.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
