// Package apiclient performs guarded GET requests against the ippriv API:
// every call passes the client-side rate governor, runs under a fixed
// timeout and, when a validator is given, has its payload shape-checked
// before the caller sees it.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/ippriv/ippriv/internal/metrics"
	"github.com/ippriv/ippriv/internal/model"
	"github.com/ippriv/ippriv/internal/ratelimit"
	"github.com/ippriv/ippriv/internal/validate"
)

const DefaultTimeout = 10 * time.Second

var errMalformedJSON = errors.New("response body is not valid JSON")

// RetryPolicy is off unless Enabled is set. Only timeouts, transport
// failures and 5xx responses are retried.
type RetryPolicy struct {
	Enabled  bool
	Attempts uint
	Delay    time.Duration
}

type Client struct {
	http     *resty.Client
	baseURL  string
	governor *ratelimit.Governor
	timeout  time.Duration
	retry    RetryPolicy
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithRetry(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests. hc is
// copied, so the client timeout set by New does not leak back into it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = resty.NewWithClient(&cp)
	}
}

// New builds a client for baseURL. The governor is required and should be
// the single process-wide instance.
func New(baseURL string, governor *ratelimit.Governor, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL is required")
	}
	if governor == nil {
		return nil, errors.New("rate governor is required")
	}

	c := &Client{
		http:     resty.New(),
		baseURL:  strings.TrimRight(baseURL, "/"),
		governor: governor,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.
		SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)

	return c, nil
}

// Fetch issues a guarded GET for path (already interpolated) and returns the
// raw JSON body. A nil validator skips the shape check.
func (c *Client) Fetch(ctx context.Context, path string, validator validate.Func) ([]byte, error) {
	if !c.retry.Enabled || c.retry.Attempts <= 1 {
		return c.attempt(ctx, path, validator)
	}

	var body []byte
	err := retry.Do(
		func() error {
			b, err := c.attempt(ctx, path, validator)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retry.Attempts),
		retry.Delay(c.retry.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying API call", "component", "guard", "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			// retry.Do gave up on the caller's context between attempts.
			return nil, transportFailure(ctx, path, err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, path string, validator validate.Func) ([]byte, error) {
	endpoint := endpointLabel(path)

	rl := c.governor.CheckAndRecord()
	c.metrics.ObserveGovernor(rl.Allowed, rl.Remaining)
	if !rl.Allowed {
		c.metrics.ObserveFetch(endpoint, string(KindRateLimit), 0)
		c.logger.Warn("client-side rate limit reached", "component", "guard", "path", path)
		return nil, &Error{Kind: KindRateLimit, Path: path, Remaining: rl.Remaining}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(path)
	elapsed := time.Since(start)
	if err != nil {
		e := transportFailure(ctx, path, err)
		c.metrics.ObserveFetch(endpoint, string(e.Kind), elapsed)
		c.logger.Warn("API call failed", "component", "guard", "path", path, "kind", e.Kind, "error", err)
		return nil, e
	}

	if !resp.IsSuccess() {
		e := &Error{
			Kind:       KindHTTP,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Status:     statusText(resp),
		}
		c.metrics.ObserveFetch(endpoint, string(KindHTTP), elapsed)
		c.logger.Warn("API returned error status", "component", "guard", "path", path, "status", resp.StatusCode())
		return nil, e
	}

	body := resp.Body()
	if !json.Valid(body) {
		c.metrics.ObserveFetch(endpoint, string(KindTransport), elapsed)
		return nil, &Error{Kind: KindTransport, Path: path, Err: errMalformedJSON}
	}

	if validator != nil {
		if err := validator(body); err != nil {
			c.metrics.ObserveFetch(endpoint, string(KindValidation), elapsed)
			c.logger.Warn("API response failed validation", "component", "guard", "path", path, "reason", err)
			return nil, &Error{
				Kind: KindValidation,
				Path: path,
				Msg:  "invalid API response format: " + err.Error(),
				Err:  err,
			}
		}
	}

	c.metrics.ObserveFetch(endpoint, "ok", elapsed)
	c.logger.Debug("API call ok", "component", "guard", "path", path, "remaining", rl.Remaining, "took", elapsed)
	return body, nil
}

// GuardStats reports the governor state and client settings.
func (c *Client) GuardStats() model.GuardStats {
	return model.GuardStats{
		Limit:   c.governor.Limit(),
		Used:    c.governor.Used(),
		Window:  c.governor.Window().String(),
		RetryOn: c.retry.Enabled,
		BaseURL: c.baseURL,
	}
}

// statusText strips the numeric code from "503 Service Unavailable".
func statusText(resp *resty.Response) string {
	s := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(resp.StatusCode())))
	if s == "" {
		s = http.StatusText(resp.StatusCode())
	}
	return s
}

// endpointLabel maps "/api/geo/8.8.8.8" to "geo" for metric labels.
func endpointLabel(path string) string {
	p := strings.TrimPrefix(path, "/api/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == path {
		return "other"
	}
	return p
}
