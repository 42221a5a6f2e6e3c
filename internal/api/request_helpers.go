package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
)

// getPrincipalFromContext extracts the authenticated caller from the request context.
// The principal is expected to be placed in the context by the authentication middleware.
//
// Parameters:
//   - r: The HTTP request containing the context
//
// Returns:
//   - (domain.Principal, true): The caller if present
//   - (domain.Principal{}, false): A zero principal and false if missing
func getPrincipalFromContext(r *http.Request) (domain.Principal, bool) {
	p, ok := shared.GetPrincipal(r.Context())
	if !ok || p.UserID == "" {
		return domain.Principal{}, false
	}
	return p, true
}

// requirePrincipal writes 401 and returns false when no caller is present.
func requirePrincipal(w http.ResponseWriter, r *http.Request, log *slog.Logger) (domain.Principal, bool) {
	p, ok := getPrincipalFromContext(r)
	if !ok {
		if log == nil {
			log = logger.FromContextOrDefault(r.Context(), slog.Default())
		}
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return domain.Principal{}, false
	}
	return p, true
}

// getPathParam extracts a non-blank path parameter.
//
// Parameters:
//   - r: The HTTP request
//   - paramName: The name of the path parameter to extract
//
// Returns:
//   - (string, nil): The trimmed value
//   - ("", error): A validation error wrapping domain.ErrInvalidInput if missing
func getPathParam(r *http.Request, paramName string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, paramName))
	if value == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidInput)
	}
	return value, nil
}

// getPathInt64 extracts a positive integer ID from the URL path parameters.
//
// Parameters:
//   - r: The HTTP request
//   - paramName: The name of the path parameter to extract
//
// Returns:
//   - (int64, nil): The parsed ID if valid
//   - (0, error): A validation error wrapping domain.ErrInvalidID if missing or malformed
func getPathInt64(r *http.Request, paramName string) (int64, error) {
	raw, err := getPathParam(r, paramName)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// queryInt parses an optional non-negative integer query parameter.
// Missing values yield def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(name, "must be a non-negative integer", domain.ErrInvalidInput)
	}
	return n, nil
}

// decodeAndValidate decodes a JSON body into req and validates it,
// writing a 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, log *slog.Logger) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		log.Debug("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
