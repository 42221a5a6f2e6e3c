package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/mocks"
	"github.com/taskhub/taskhub-api/internal/service/auth"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	const userID = "8a4b6c1e-3f2d-4e5a-9b7c-1d2e3f4a5b6c"

	tests := []struct {
		name              string
		authHeader        string
		validateErr       error
		claims            *auth.Claims
		expectedStatus    int
		expectedMessage   string
		expectedPrincipal domain.Principal
	}{
		{
			name:              "valid token",
			authHeader:        "Bearer valid-token",
			claims:            &auth.Claims{UserID: userID, Email: "ash@example.com"},
			expectedStatus:    http.StatusOK,
			expectedPrincipal: domain.Principal{UserID: userID, Email: "ash@example.com"},
		},
		{
			name:              "lowercase scheme",
			authHeader:        "bearer valid-token",
			claims:            &auth.Claims{UserID: userID},
			expectedStatus:    http.StatusOK,
			expectedPrincipal: domain.Principal{UserID: userID},
		},
		{
			name:            "missing auth header",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authorization header required",
		},
		{
			name:            "invalid auth format",
			authHeader:      "InvalidFormat",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid authorization format",
		},
		{
			name:            "empty bearer token",
			authHeader:      "Bearer   ",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid authorization format",
		},
		{
			name:            "expired token",
			authHeader:      "Bearer expired-token",
			validateErr:     auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Token expired",
		},
		{
			name:            "invalid token",
			authHeader:      "Bearer invalid-token",
			validateErr:     auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "wrong audience",
			authHeader:      "Bearer service-token",
			validateErr:     auth.ErrWrongAudience,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "unexpected validation failure",
			authHeader:      "Bearer some-token",
			validateErr:     errors.New("key store offline"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Authentication error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      tt.claims,
			}
			middleware := NewAuthMiddleware(jwtService)

			var captured domain.Principal
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p, ok := GetPrincipal(r)
				require.True(t, ok)
				captured = p
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Add("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(nextHandler).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedPrincipal, captured)
				return
			}

			var body shared.ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.expectedMessage, body.Error)
		})
	}
}

func TestAuthMiddleware_PassesRawToken(t *testing.T) {
	t.Parallel()

	var seen string
	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			seen = token
			return &auth.Claims{UserID: "u-1"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()

	NewAuthMiddleware(jwtService).
		Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, req)

	assert.Equal(t, "abc.def.ghi", seen)
}

func TestAuthMiddleware_WithRealTokens(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(auth.RequireTestJWTService(t))
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := GetPrincipal(r)
		_, _ = w.Write([]byte(p.UserID))
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", auth.GenerateAuthHeaderForTestingT(t, "user-42", "misty@example.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", rec.Body.String())

	forged := auth.SignTestToken(t, auth.TestToken{
		Secret: "another-secret-that-is-32-characters",
		UserID: "user-42",
	})
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetPrincipal(t *testing.T) {
	t.Parallel()

	t.Run("context with principal", func(t *testing.T) {
		t.Parallel()
		want := domain.Principal{UserID: "u-1", Email: "a@example.com"}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(shared.WithPrincipal(req.Context(), want))

		got, ok := GetPrincipal(req)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("context without principal", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := GetPrincipal(req)
		assert.False(t, ok)
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"standard":    {header: "Bearer tok", token: "tok", ok: true},
		"mixed case":  {header: "BeArEr tok", token: "tok", ok: true},
		"basic":       {header: "Basic dXNlcjpwYXNz", ok: false},
		"no scheme":   {header: "tok", ok: false},
		"empty":       {header: "", ok: false},
		"blank token": {header: "Bearer  ", ok: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			token, ok := BearerToken(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}
