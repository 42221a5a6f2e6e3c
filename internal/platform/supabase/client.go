package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/domain"
)

// DefaultTimeout bounds every call to the auth server.
const DefaultTimeout = 10 * time.Second

// HTTPDoer describes the HTTP client used by the GoTrue client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthClient calls the GoTrue endpoints under {SupabaseURL}/auth/v1.
// It satisfies service.IdentityProvider.
type AuthClient struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewAuthClient creates an AuthClient from the auth configuration.
func NewAuthClient(cfg config.AuthConfig, logger *slog.Logger) *AuthClient {
	return NewAuthClientWithDoer(cfg.SupabaseURL, cfg.SupabaseAPIKey, &http.Client{Timeout: DefaultTimeout}, logger)
}

// NewAuthClientWithDoer constructs an AuthClient over an arbitrary HTTPDoer.
func NewAuthClientWithDoer(projectURL, apiKey string, doer HTTPDoer, logger *slog.Logger) *AuthClient {
	if doer == nil {
		doer = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthClient{
		baseURL: strings.TrimRight(strings.TrimSpace(projectURL), "/") + "/auth/v1",
		apiKey:  strings.TrimSpace(apiKey),
		client:  doer,
		logger:  logger.With(slog.String("component", "supabase_auth")),
	}
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// sessionPayload is the token response. On sign up GoTrue returns either a
// session (auto-confirm) or the bare user (e-mail confirmation pending), so
// the user fields are embedded as well.
type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         *userPayload `json:"user"`
	userPayload
}

// SignUp registers a new user. metadata is stored as user_metadata.
func (c *AuthClient) SignUp(
	ctx context.Context,
	email, password string,
	metadata map[string]any,
) (*domain.Account, error) {
	var out sessionPayload
	body := signUpRequest{Email: email, Password: password, Data: metadata}
	if err := c.do(ctx, http.MethodPost, "/signup", "", body, &out); err != nil {
		return nil, err
	}

	user := out.User
	if user == nil {
		user = &out.userPayload
	}
	if user.ID == "" {
		return nil, &Error{Status: http.StatusOK, Message: "sign up response carried no user"}
	}
	return toAccount(user), nil
}

// SignIn performs the password grant.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	var out sessionPayload
	body := passwordGrantRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" || out.User == nil {
		return nil, &Error{Status: http.StatusOK, Message: "token response carried no session"}
	}

	return &domain.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
		Account:      *toAccount(out.User),
	}, nil
}

// SignOut revokes the session that accessToken belongs to.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (c *AuthClient) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode auth request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "auth server unreachable",
			slog.String("path", strings.SplitN(path, "?", 2)[0]),
			slog.String("error", err.Error()))
		return newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := parseError(resp)
		c.logger.DebugContext(ctx, "auth server rejected request",
			slog.String("path", strings.SplitN(path, "?", 2)[0]),
			slog.Int("status", apiErr.Status),
			slog.String("error_code", apiErr.Code))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	return nil
}

func toAccount(u *userPayload) *domain.Account {
	acc := &domain.Account{ID: u.ID, Email: u.Email}
	if name, ok := u.UserMetadata["username"].(string); ok {
		acc.Username = name
	}
	return acc
}
