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
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	ErrUnauthorized = errors.New("backend: unauthorized")
	ErrNotFound     = errors.New("backend: not found")
)

const (
	DefaultCookieName = "session"
	DefaultTimeout    = 10 * time.Second
)

// APIError is returned for any response outside the statuses an operation accepts.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

type Options struct {
	BaseURL           string
	CookieName        string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
	Logger            *zerolog.Logger
}

// Client talks to the coaching REST backend on behalf of one browser session at a
// time; the caller passes that session's credential with every call. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "backend").Logger()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		cookieName: cookieName,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}
}

// LoginURL is where the browser goes to start the backend's redirect login flow.
func (c *Client) LoginURL(redirectURI string) string {
	if redirectURI == "" {
		return c.baseURL + "/login"
	}
	return c.baseURL + "/login?" + url.Values{"redirect_uri": {redirectURI}}.Encode()
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	token string,
	payload any,
	out any,
	accepted ...int,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s %s: wait for rate limiter: %w", method, path, err)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s %s: marshal payload: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(started)).
		Msg("backend request")

	if !statusAccepted(resp.StatusCode, accepted) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func statusAccepted(status int, accepted []int) bool {
	if len(accepted) == 0 {
		return status == http.StatusOK
	}
	for _, code := range accepted {
		if status == code {
			return true
		}
	}
	return false
}
