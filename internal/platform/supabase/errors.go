package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

const maxErrorBody = 4 << 10

// Error is a failure reported by, or while talking to, the auth server.
// Unwrap yields the domain sentinel the failure corresponds to, if any.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("supabase auth")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil && e.Message == "" {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody covers both the current ({code,error_code,msg}) and the legacy
// OAuth style ({error,error_description}) GoTrue error shapes.
type errorBody struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func parseError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	_ = json.Unmarshal(raw, &body)

	e := &Error{Status: resp.StatusCode}
	e.Code = firstNonEmpty(body.ErrorCode, body.Error)
	e.Message = firstNonEmpty(body.Msg, body.Message, body.ErrorDescription)
	e.Err = classify(e.Status, e.Code, e.Message)
	return e
}

func newTransportError(cause error) *Error {
	return &Error{
		Message: "network error",
		Err:     fmt.Errorf("%w: %w", store.ErrUnavailable, cause),
	}
}

func classify(status int, code, message string) error {
	code = strings.ToLower(code)
	msg := strings.ToLower(message)

	switch {
	case code == "weak_password" || strings.Contains(msg, "password should be"):
		return domain.ErrWeakPassword
	case code == "email_exists" || code == "user_already_exists" || strings.Contains(msg, "already registered"):
		return domain.ErrEmailAlreadyRegistered
	case code == "email_address_invalid" || code == "invalid_email" || strings.Contains(msg, "invalid format"):
		return domain.ErrInvalidEmail
	case code == "invalid_credentials" || code == "invalid_grant" || strings.Contains(msg, "invalid login credentials"):
		return domain.ErrInvalidCredentials
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return store.ErrUnavailable
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
