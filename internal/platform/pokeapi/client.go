package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/taskhub/taskhub-api/internal/config"
)

// DefaultListLimit is large enough to cover the whole index in one page.
const DefaultListLimit = 1000

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 512

var (
	// ErrNotFound is returned when the upstream reports 404 for a creature.
	ErrNotFound = errors.New("creature not found")

	// ErrUpstream is returned for transport failures and unexpected statuses.
	ErrUpstream = errors.New("creature API request failed")
)

// HTTPDoer describes the HTTP client used by the PokeAPI client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the PokeAPI REST endpoints.
type Client struct {
	baseURL string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewClient builds a Client from configuration.
func NewClient(cfg config.PokeAPIConfig, logger *slog.Logger) *Client {
	return NewClientWithDoer(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout()}, logger)
}

// NewClientWithDoer constructs a Client over an arbitrary HTTPDoer.
func NewClientWithDoer(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  doer,
		logger:  logger.With(slog.String("component", "pokeapi_client")),
	}
}

// List fetches one page of the creature index.
func (c *Client) List(ctx context.Context, limit, offset int) (*ListResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out ListResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Details fetches a single creature by numeric id or name.
func (c *Client) Details(ctx context.Context, idOrName string) (*Details, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if key == "" {
		return nil, fmt.Errorf("%w: empty id or name", ErrNotFound)
	}

	var out Details
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NamesStartingWith returns index entries whose name starts with initial,
// compared case-insensitively. Only the first rune of initial is used.
func (c *Client) NamesStartingWith(ctx context.Context, initial string) ([]Entry, error) {
	prefix := firstRuneLower(initial)
	if prefix == "" {
		return []Entry{}, nil
	}

	page, err := c.List(ctx, DefaultListLimit, 0)
	if err != nil {
		return nil, err
	}

	matches := make([]Entry, 0)
	for _, e := range page.Results {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build pokeapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "pokeapi request failed",
			slog.String("url", target), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= http.StatusMultipleChoices:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.WarnContext(ctx, "pokeapi returned error status",
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	return nil
}

func firstRuneLower(s string) string {
	s = strings.TrimSpace(s)
	for _, r := range s {
		return strings.ToLower(string(r))
	}
	return ""
}
