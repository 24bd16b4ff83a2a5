package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/auctionly/auction-processor/internal/domain/error"
	identityport "github.com/auctionly/auction-processor/internal/domain/port/identity"
)

// RevocationStore looks up the currently valid token for a user. A token
// that does not match the stored one has been revoked.
type RevocationStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// JWTVerifier validates HMAC-signed bearer tokens. Every verification
// failure collapses to ErrUnauthenticated so callers cannot distinguish a
// bad signature from a revoked token.
type JWTVerifier struct {
	secret     []byte
	revocation RevocationStore
}

// NewJWTVerifier creates a verifier. The revocation store is optional; pass
// nil to skip revocation checks.
func NewJWTVerifier(secret string, revocation RevocationStore) *JWTVerifier {
	return &JWTVerifier{
		secret:     []byte(secret),
		revocation: revocation,
	}
}

// VerifyToken parses and validates the token and extracts the caller identity
func (v *JWTVerifier) VerifyToken(ctx context.Context, tokenStr string) (*identityport.Identity, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: missing token", errs.ErrUnauthenticated)
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", errs.ErrUnauthenticated)
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return nil, fmt.Errorf("%w: token has no subject", errs.ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)

	if v.revocation != nil {
		redisKey := fmt.Sprintf("user:%s:token", uid)
		storedToken, err := v.revocation.Get(ctx, redisKey)
		if err != nil || storedToken != tokenStr {
			return nil, fmt.Errorf("%w: token revoked", errs.ErrUnauthenticated)
		}
	}

	return &identityport.Identity{
		UID:   uid,
		Email: email,
	}, nil
}
