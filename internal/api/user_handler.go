package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
)

// UserHandler serves the protected /api/user endpoints
type UserHandler struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		now:    time.Now,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Dashboard handles GET /api/user/dashboard requests
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DashboardResponse{
		Message:   "Welcome to your dashboard!",
		UserID:    p.UserID,
		Email:     p.Email,
		Timestamp: h.now().UTC(),
	})
}

// Settings handles GET /api/user/settings requests
func (h *UserHandler) Settings(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		UserID:   p.UserID,
		Settings: UserSettings{Theme: "dark", Notifications: true},
	})
}
