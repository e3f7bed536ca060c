package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardapio/internal/application"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// RequestIDHeader carries a per-request UUID so client and server logs line up
const RequestIDHeader = "X-Request-ID"

// DefaultRetryDelay is the base delay between attempts of an idempotent request
const DefaultRetryDelay = 200 * time.Millisecond

// maxErrorBody caps how much of an error response is kept for messages
const maxErrorBody = 512

// Client implements ports.Backend over the REST API
type Client struct {
	base     *url.URL
	token    string
	http     *http.Client
	log      *zap.Logger
	attempts uint
	delay    time.Duration
}

// Ensure Client implements Backend
var _ ports.Backend = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRetry sets how many times idempotent requests are attempted and the
// base delay between attempts
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(1, attempts)
		c.delay = delay
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:     base,
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      zap.NewNop(),
		attempts: 3,
		delay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// ListItems implements ports.Backend
func (c *Client) ListItems(ctx context.Context, q ports.ListQuery) (*domain.Page, error) {
	vals := q.Filters.Values()
	vals.Set(domain.FilterPage, strconv.Itoa(max(1, q.Page)))
	if q.PerPage > 0 {
		vals.Set(domain.FilterPerPage, strconv.Itoa(q.PerPage))
	}

	var page domain.Page
	if err := c.get(ctx, "/api/"+q.Kind.Path(), vals, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []domain.ListItem{}
	}
	return &page, nil
}

// ListCategories implements ports.Backend
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var env listEnvelope[domain.Category]
	if err := c.get(ctx, "/api/categories", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListDietTags implements ports.Backend
func (c *Client) ListDietTags(ctx context.Context) ([]domain.DietTag, error) {
	var env listEnvelope[domain.DietTag]
	if err := c.get(ctx, "/api/diet-tags", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// FavoriteRequest is the body of the favorite endpoint
type FavoriteRequest struct {
	Favorited bool `json:"favorited"`
}

// SetFavorite implements ports.Backend. Mutations are not retried.
func (c *Client) SetFavorite(ctx context.Context, kind domain.Kind, id int64, favorited bool) error {
	body, err := json.Marshal(FavoriteRequest{Favorited: favorited})
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/api/%s/%d/favorite", kind.Path(), id)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// Delete implements ports.Backend
func (c *Client) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	path := fmt.Sprintf("/api/%s/%d", kind.Path(), id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return retry.Do(
		func() error {
			return c.do(ctx, http.MethodGet, path, query, nil, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying request", zap.String("path", path), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var backendErr *application.BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Retryable()
	}
	var decodeErr *decodeError
	return !errors.As(err, &decodeErr)
}

type decodeError struct {
	path string
	err  error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.path, e.err)
}

func (e *decodeError) Unwrap() error {
	return e.err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.String("request_id", reqID), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", reqID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &application.BackendError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &decodeError{path: path, err: err}
	}
	return nil
}
