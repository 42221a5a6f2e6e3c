package mocks

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/service"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	RegisterFn func(ctx context.Context, email, password, username string) (*domain.Account, error)
	LoginFn    func(ctx context.Context, email, password string) (*domain.Session, error)
	LogoutFn   func(ctx context.Context, accessToken string) error

	// LastLogoutToken is the token passed to the most recent Logout call
	LastLogoutToken string
}

var _ service.AccountService = (*MockAccountService)(nil)

// Register implements service.AccountService
func (m *MockAccountService) Register(
	ctx context.Context,
	email, password, username string,
) (*domain.Account, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password, username)
	}
	return &domain.Account{ID: "mock-user", Email: email, Username: username}, nil
}

// Login implements service.AccountService
func (m *MockAccountService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return &domain.Session{
		AccessToken:  "mock-access-token",
		RefreshToken: "mock-refresh-token",
		Account:      domain.Account{ID: "mock-user", Email: email},
	}, nil
}

// Logout implements service.AccountService
func (m *MockAccountService) Logout(ctx context.Context, accessToken string) error {
	m.LastLogoutToken = accessToken
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, accessToken)
	}
	return nil
}
