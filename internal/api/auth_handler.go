package api

import (
	"log/slog"
	"net/http"

	"github.com/taskhub/taskhub-api/internal/api/middleware"
	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/service"
)

// RegisterSuccessMessage is returned after a successful sign up.
const RegisterSuccessMessage = "User registered successfully. Please check your email for verification."

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		h.respondWithAuthError(w, r, err, "Error registering user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		UserID:  account.ID,
		Email:   account.Email,
		Message: RegisterSuccessMessage,
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondWithAuthError(w, r, err, "Invalid credentials")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		UserID:       session.Account.ID,
		Email:        session.Account.Email,
	})
}

// Logout handles the /auth/logout endpoint. It requires authentication.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := requirePrincipal(w, r, log); !ok {
		return
	}
	token, _ := middleware.BearerToken(r)

	if err := h.accounts.Logout(r.Context(), token); err != nil {
		h.respondWithAuthError(w, r, err, "Error logging out")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Logged out successfully")
}

// Me handles GET /auth/me and describes the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserProfileResponse{UserID: p.UserID, Email: p.Email})
}

func (h *AuthHandler) respondWithAuthError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	switch status {
	case http.StatusServiceUnavailable:
		message = "Network error, please try again"
	case http.StatusInternalServerError:
		message = fallback
	}

	// Failed logins and sign ups are worth seeing at WARN
	shared.RespondWithErrorAndLog(w, r, status, message, err, shared.WithElevatedLogLevel())
}
