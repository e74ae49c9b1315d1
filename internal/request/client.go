// Package request is the client's single HTTP pipeline: outgoing requests get
// the session's bearer token, envelope replies are unwrapped, and every
// failure is classified, shown to the user and returned to the caller.
package request

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

	"github.com/myblog-dev/myblog/internal/notify"
	"github.com/myblog-dev/myblog/internal/session"
)

const DefaultTimeout = 10 * time.Second

// Config holds the injected HTTP boundary constants
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the request pipeline. It holds no per-call mutable state and is
// safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	notifier       notify.Notifier
	messages       Messages
	logger         zerolog.Logger
	requestStages  []RequestStage
	responseStages []ResponseStage
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func WithMessages(m Messages) Option {
	return func(c *Client) { c.messages = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUnauthorizedHandler sets what runs after a 401 cleared the session,
// typically a forced navigation to the login route.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithRequestStage appends an outgoing stage after the built-in ones
func WithRequestStage(s RequestStage) Option {
	return func(c *Client) { c.requestStages = append(c.requestStages, s) }
}

// WithResponseStage appends a response stage after envelope unwrapping
func WithResponseStage(s ResponseStage) Option {
	return func(c *Client) { c.responseStages = append(c.responseStages, s) }
}

// New creates the pipeline with its default stages:
// JSON content type and bearer auth out, envelope unwrapping in.
func New(cfg Config, store session.Store, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		notifier:   notify.Discard,
		messages:   EnglishMessages,
		logger:     zerolog.Nop(),
	}

	defaults := []RequestStage{JSONContentType(), BearerAuth(store)}
	for _, opt := range opts {
		opt(c)
	}

	c.requestStages = append(defaults, c.requestStages...)
	c.responseStages = append([]ResponseStage{UnwrapEnvelope(c.messages.Fallback)}, c.responseStages...)

	return c
}

// Get issues a GET request and decodes the normalized reply into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do runs one call through the pipeline. body is JSON-encoded when non-nil;
// out may be nil, *json.RawMessage or any JSON decoding target.
// Every failure is notified once and returned unchanged.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return c.fail(err)
	}

	if err := decode(resp.Body, out); err != nil {
		return c.fail(&LocalError{Err: err})
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, &LocalError{Err: err}
	}

	for _, stage := range c.requestStages {
		req, err = stage(req)
		if err != nil {
			return nil, &LocalError{Err: err}
		}
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: req.URL.String(), Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: req.URL.String(), Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", httpResp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: httpResp.StatusCode,
			Method:     method,
			URL:        req.URL.String(),
			Body:       data,
		}
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}
	for _, stage := range c.responseStages {
		resp, err = stage(resp)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// newRequest builds the request. Anything that fails here was never dispatched.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

func (c *Client) resolve(path string) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("API base URL is not configured")
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("invalid API base URL '%s': scheme must be http or https", c.baseURL)
	}
	if base.Host == "" {
		return "", fmt.Errorf("invalid API base URL '%s': missing host", c.baseURL)
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/"), nil
}

// fail notifies the user, tears down the session on 401 and hands the
// failure back to the caller.
func (c *Client) fail(err error) error {
	message := c.messages.Classify(err)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		if clearErr := c.store.ClearToken(); clearErr != nil {
			c.logger.Error().Err(clearErr).Msg("Failed to clear session token after 401")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	event := c.logger.Debug().Err(err).Str("notification", message)
	if statusErr != nil {
		event = event.Int("status", statusErr.StatusCode).Str("server_message", statusErr.ServerMessage())
	}
	event.Msg("Request failed")
	c.notifier.Notify(message)

	return err
}

func decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
