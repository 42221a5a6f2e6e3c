package auth

import (
	"context"
	"time"
)

// JWTService verifies access tokens issued by the identity provider.
// Tokens are minted by the provider; this service never signs its own.
type JWTService interface {
	// ValidateToken checks signature, expiry and audience of tokenString and
	// returns its claims. Errors are ErrExpiredToken, ErrTokenNotYetValid,
	// ErrWrongAudience or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the subset of identity-provider token claims the API relies on.
type Claims struct {
	// UserID is the provider's user identifier (the "sub" claim).
	UserID    string
	Email     string
	Role      string
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
