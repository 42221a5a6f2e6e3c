package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskhub/taskhub-api/internal/domain"
)

// IdentityProvider is the external service that owns user credentials.
type IdentityProvider interface {
	// SignUp registers a new account. metadata is stored with the user.
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.Account, error)

	// SignIn exchanges an e-mail/password pair for a session.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, accessToken string) error
}

// AccountService provides registration and session use cases.
type AccountService interface {
	Register(ctx context.Context, email, password, username string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, accessToken string) error
}

type accountServiceImpl struct {
	provider IdentityProvider
	logger   *slog.Logger
}

// NewAccountService creates an AccountService delegating to provider.
func NewAccountService(provider IdentityProvider, logger *slog.Logger) (AccountService, error) {
	if provider == nil {
		return nil, &ServiceError{Service: "account", Operation: "create_service", Message: "identity provider cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &accountServiceImpl{
		provider: provider,
		logger:   logger.With(slog.String("component", "account_service")),
	}, nil
}

// Register creates an account and stores username as user metadata.
func (s *accountServiceImpl) Register(
	ctx context.Context,
	email, password, username string,
) (*domain.Account, error) {
	account, err := s.provider.SignUp(ctx, email, password, map[string]any{"username": username})
	if err != nil {
		if isExpectedAuthError(err) {
			s.logger.DebugContext(ctx, "registration rejected", slog.String("reason", err.Error()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "registration failed", slog.String("error", err.Error()))
		return nil, &ServiceError{Service: "account", Operation: "register", Message: "sign up failed", Err: err}
	}

	if account.Username == "" {
		account.Username = username
	}
	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", account.ID))
	return account, nil
}

func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if isExpectedAuthError(err) {
			s.logger.DebugContext(ctx, "login rejected", slog.String("reason", err.Error()))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "login failed", slog.String("error", err.Error()))
		return nil, &ServiceError{Service: "account", Operation: "login", Message: "sign in failed", Err: err}
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", session.Account.ID))
	return session, nil
}

func (s *accountServiceImpl) Logout(ctx context.Context, accessToken string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.logger.ErrorContext(ctx, "logout failed", slog.String("error", err.Error()))
		return &ServiceError{Service: "account", Operation: "logout", Message: "sign out failed", Err: err}
	}
	return nil
}

func isExpectedAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrEmailAlreadyRegistered) ||
		errors.Is(err, domain.ErrInvalidCredentials)
}
