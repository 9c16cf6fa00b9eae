package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

// DefaultUserAgent identifies the client to the remote platform.
const DefaultUserAgent = "citric-client"

// ServerError represents an error payload from the REST API.
type ServerError struct {
	Error string `json:"error"`
}

// HTTPError represents a non-2xx response from the server.
type HTTPError struct {
	StatusCode int    // HTTP status code of the error
	Message    string // Error message or response body
}

// Error implements the error interface for HTTPError.
func (e *HTTPError) Error() string {
	return e.Message
}

// Transport is the HTTP transport shared by the RPC and REST clients. It owns
// the underlying *http.Client, injects the client identification header, and
// optionally retries exchanges that failed below the protocol layer (connection
// resets, DNS failures). Responses that decode but signal errors are never
// retried here.
type Transport struct {
	client    *http.Client
	userAgent string
	attempts  uint
	delay     time.Duration
	logger    zerolog.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the underlying *http.Client. The caller keeps ownership,
// e.g. for connection reuse across sessions.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		t.client = client
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		t.userAgent = ua
	}
}

// WithRetry enables retrying of transport-level failures. attempts is the
// total number of tries including the first one.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(t *Transport) {
		t.attempts = attempts
		t.delay = delay
	}
}

// WithLogger sets the structured logger for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// New creates a Transport with the given options. Without options it uses a
// plain *http.Client, the default user agent, and no retries.
func New(opts ...Option) *Transport {
	t := &Transport{
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
		attempts:  1,
		delay:     time.Second,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Post sends body to url with the given content type and returns the raw
// response body. Status codes are not inspected; the RPC protocol signals
// failures in the body, not the status line.
func (t *Transport) Post(ctx context.Context, url string, contentType string, body []byte) ([]byte, error) {
	var respBody []byte
	err := t.retryDo(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("User-Agent", t.userAgent)

		t.logger.Debug().Str("url", url).Int("body_bytes", len(body)).Msg("posting request")

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		return nil
	})
	return respBody, err
}

// RequestOptions contains options for REST requests. All fields are optional
// except Method and Path.
type RequestOptions struct {
	Method      string            // HTTP method (GET, POST, PUT, PATCH, DELETE)
	Path        string            // API endpoint path
	QueryParams map[string]string // Optional query parameters
	Body        []byte            // Optional request body
	Token       string            // Optional bearer token
}

// DoRequest makes a REST request against baseURL with the given options and
// returns the response body. Non-2xx responses are surfaced as *HTTPError,
// carrying the server's error message when the body decodes to one.
func (t *Transport) DoRequest(ctx context.Context, baseURL string, opts RequestOptions) ([]byte, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	u.Path = path.Join(u.Path, opts.Path)

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	var body []byte
	err = t.retryDo(func() error {
		req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bytes.NewReader(opts.Body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", t.userAgent)
		if opts.Token != "" {
			req.Header.Set("Authorization", "Bearer "+opts.Token)
		}

		t.logger.Debug().Str("method", opts.Method).Str("url", u.String()).Msg("sending request")

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			var serverErr ServerError
			if err := json.Unmarshal(body, &serverErr); err == nil && serverErr.Error != "" {
				return &HTTPError{
					StatusCode: resp.StatusCode,
					Message:    serverErr.Error,
				}
			}
			return &HTTPError{
				StatusCode: resp.StatusCode,
				Message:    string(body),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// retryDo runs fn up to the configured number of attempts. Only failures below
// the protocol layer are retried; server error responses are terminal because
// the idempotency of remote operations is unknown.
func (t *Transport) retryDo(fn func() error) error {
	return retry.Do(fn,
		retry.Attempts(t.attempts),
		retry.Delay(t.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var httpErr *HTTPError
			return !errors.As(err, &httpErr)
		}),
	)
}
