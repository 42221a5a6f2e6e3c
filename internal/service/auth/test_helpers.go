package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/taskhub/taskhub-api/internal/config"
)

// TestJWTSecret is the signing secret used by DefaultJWTConfig.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// DefaultJWTConfig returns an auth configuration suitable for tests.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		SupabaseURL:    "http://localhost:54321",
		SupabaseAPIKey: "test-anon-key",
		JWTSecret:      TestJWTSecret,
		Audience:       "authenticated",
	}
}

// RequireTestJWTService creates a verifier from DefaultJWTConfig.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// TestToken describes a token to mint for tests, shaped like the identity
// provider's access tokens. Zero Lifetime means one hour.
type TestToken struct {
	Secret   string
	UserID   string
	Email    string
	Audience string
	Method   jwt.SigningMethod
	IssuedAt time.Time
	Lifetime time.Duration
}

// SignTestToken mints a signed token from spec, filling unset fields with
// values that DefaultJWTConfig accepts.
func SignTestToken(t *testing.T, spec TestToken) string {
	t.Helper()

	if spec.Secret == "" {
		spec.Secret = TestJWTSecret
	}
	if spec.Audience == "" {
		spec.Audience = "authenticated"
	}
	if spec.Method == nil {
		spec.Method = jwt.SigningMethodHS256
	}
	if spec.IssuedAt.IsZero() {
		spec.IssuedAt = time.Now()
	}
	if spec.Lifetime == 0 {
		spec.Lifetime = time.Hour
	}

	claims := providerClaims{
		Email:     spec.Email,
		Role:      "authenticated",
		SessionID: "test-session",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   spec.UserID,
			Audience:  jwt.ClaimStrings{spec.Audience},
			IssuedAt:  jwt.NewNumericDate(spec.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(spec.IssuedAt.Add(spec.Lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(spec.Method, claims).SignedString([]byte(spec.Secret))
	require.NoError(t, err, "Failed to sign test token")
	return signed
}

// GenerateAuthHeaderForTestingT returns "Bearer <token>" for userID.
func GenerateAuthHeaderForTestingT(t *testing.T, userID, email string) string {
	t.Helper()
	return "Bearer " + SignTestToken(t, TestToken{UserID: userID, Email: email})
}
