package domain

import (
	"errors"
	"fmt"
)

// Identity-provider outcomes that callers are expected to handle.
var (
	// ErrEmailAlreadyRegistered is returned when signing up with an e-mail
	// address that already has an account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrWeakPassword is returned when the provider rejects a password policy.
	ErrWeakPassword = fmt.Errorf("%w: password too weak", ErrInvalidInput)

	// ErrInvalidEmail is returned when the provider rejects an e-mail address.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrInvalidInput)

	// ErrInvalidCredentials is returned when an e-mail/password pair is rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account is a user as known to the identity provider.
type Account struct {
	ID       string
	Email    string
	Username string
}

// Session is the token pair issued on a successful sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	Account      Account
}
