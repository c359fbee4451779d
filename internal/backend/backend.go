// Package backend is the client for the Equibull recommendation backend.
//
// It wraps the two endpoints the site depends on:
//
//	GET  /api/news?limit=<n>         → {success, news[]} | {success:false, error}
//	POST /api/newsletter/subscribe   → {success, ...}    | {success:false, error}
//
// Every call issues exactly one request. Nothing is retried.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seenimoa/equibull/internal/infra"
	"github.com/seenimoa/equibull/pkg/models"
)

const (
	newsPath      = "/api/news"
	subscribePath = "/api/newsletter/subscribe"

	// maxBodyBytes caps how much of a response we are willing to decode.
	maxBodyBytes = 4 << 20

	defaultTimeout = 15 * time.Second
)

// ErrInvalidLimit is returned when FetchNews is called with a non-positive limit.
var ErrInvalidLimit = errors.New("news limit must be a positive integer")

// APIError is a failure reported by the backend, either through a non-2xx
// status or a success:false payload. Message is safe to show to users.
type APIError struct {
	Op         string // "news" or "subscribe"
	StatusCode int    // HTTP status of the response
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// statusError builds the error for a non-2xx response.
func statusError(op string, code int) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: code,
		Message:    fmt.Sprintf("HTTP error! status: %d", code),
	}
}

// envelope is the JSON shape shared by both endpoints.
type envelope struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	News    []models.NewsArticle `json:"news,omitempty"`
}

// Client talks to the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	cache   *infra.Cache[[]models.NewsArticle]
	newID   func() string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l.Named("backend") }
}

// WithNewsCache keeps news responses for ttl. Zero disables caching.
func WithNewsCache(ttl time.Duration) Option {
	return func(c *Client) { c.cache = infra.NewCache[[]models.NewsArticle](ttl) }
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     zap.NewNop(),
		cache:   infra.NewCache[[]models.NewsArticle](0),
		newID:   uuid.NewString,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = &http.Client{Timeout: c.timeout}
	return c
}

// FetchNews returns up to limit articles, served from the cache when possible.
func (c *Client) FetchNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if cached, ok := c.cache.Get(newsKey(limit)); ok {
		c.log.Debug("news served from cache", zap.Int("limit", limit), zap.Int("count", len(cached)))
		return slices.Clone(cached), nil
	}
	return c.fetchNews(ctx, limit)
}

// Refresh bypasses the cache, fetches news and stores the fresh result.
func (c *Client) Refresh(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	c.cache.Invalidate(newsKey(limit))
	return c.fetchNews(ctx, limit)
}

func (c *Client) fetchNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	endpoint := c.baseURL + newsPath + "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create news request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	env, err := c.do(req, "news")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, c.payloadError("news", env.Error, "Failed to fetch news")
	}

	news := env.News
	if news == nil {
		news = []models.NewsArticle{}
	}

	c.log.Info("news fetched", zap.Int("limit", limit), zap.Int("count", len(news)))
	c.cache.Set(newsKey(limit), slices.Clone(news))
	return news, nil
}

// Subscribe registers email for the recommendation newsletter.
// The address is sent as given; validation is the caller's job.
func (c *Client) Subscribe(ctx context.Context, email string) (*models.SubscribeResult, error) {
	body, err := json.Marshal(models.Subscription{Email: email})
	if err != nil {
		return nil, fmt.Errorf("encode subscription: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+subscribePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.newID())

	raw, err := c.send(req, "subscribe")
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode subscribe response: %w", err)
	}
	if !env.Success {
		return nil, c.payloadError("subscribe", env.Error, "Failed to subscribe to newsletter")
	}

	var result models.SubscribeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode subscribe response: %w", err)
	}

	c.log.Info("newsletter subscription accepted", zap.String("request_id", req.Header.Get("X-Request-ID")))
	return &result, nil
}

// do sends req and decodes the envelope.
func (c *Client) do(req *http.Request, op string) (*envelope, error) {
	raw, err := c.send(req, op)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op, err)
	}
	return &env, nil
}

// send performs the request and returns the body of a 2xx response.
func (c *Client) send(req *http.Request, op string) ([]byte, error) {
	c.log.Debug("backend request", zap.String("op", op), zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable", zap.String("op", op), zap.Error(err))
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend response", zap.String("op", op), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		c.log.Warn("backend returned error status", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return nil, statusError(op, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}
	return raw, nil
}

func (c *Client) payloadError(op, message, fallback string) *APIError {
	if message == "" {
		message = fallback
	}
	c.log.Warn("backend reported failure", zap.String("op", op), zap.String("error", message))
	return &APIError{Op: op, StatusCode: http.StatusOK, Message: message}
}

func newsKey(limit int) string {
	return "news:" + strconv.Itoa(limit)
}
