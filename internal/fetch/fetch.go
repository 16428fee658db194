// Package fetch issues single outbound GET requests against the upstream
// weather and geocoding APIs and hands back the response body as data.
//
// The contract is deliberately asymmetric: a non-200 status still yields a
// Result carrying the parsed error payload, because callers detect upstream
// failure by inspecting the body for an expected section (that inspection is
// what triggers the One Call to legacy fallback on subscription errors).
// Only transport-level failures (timeout, DNS, connection refused) yield an
// error, and callers treat that error as "absent" rather than propagating it.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/observability"
)

// Result is the outcome of a completed HTTP exchange. Status may be any
// code; Body holds the raw response bytes, error payloads included.
type Result struct {
	Status int
	Body   []byte
}

// OK reports whether the exchange returned HTTP 200.
func (r *Result) OK() bool {
	return r != nil && r.Status == http.StatusOK
}

// Decode unmarshals the response body into v.
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Client issues GETs with a fixed User-Agent and per-call timeout. The
// OpenWeatherMap credential is injected on Get; GetPlain skips it for
// third-party services.
type Client struct {
	apiKey    string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func NewClient(apiKey, userAgent string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		apiKey:    apiKey,
		userAgent: userAgent,
		logger:    logger,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get issues a GET with the API credential appended to the query. The
// provider name labels metrics and log lines.
func (c *Client) Get(ctx context.Context, provider, rawURL string, params url.Values) (*Result, error) {
	return c.do(ctx, provider, rawURL, params, true)
}

// GetPlain issues a GET without the API credential, for services that take
// no key (Nominatim, ipinfo).
func (c *Client) GetPlain(ctx context.Context, provider, rawURL string, params url.Values) (*Result, error) {
	return c.do(ctx, provider, rawURL, params, false)
}

func (c *Client) do(ctx context.Context, provider, rawURL string, params url.Values, withKey bool) (*Result, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if params == nil {
		params = url.Values{}
	}
	if withKey {
		params.Set("appid", c.apiKey)
	}
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		observability.UpstreamRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
		c.logger.Warn("upstream request failed",
			zap.String("provider", provider),
			zap.Error(err),
			zap.Duration("duration", duration))
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	observability.UpstreamRequestsTotal.WithLabelValues(provider, observability.StatusLabel(resp.StatusCode)).Inc()
	observability.UpstreamRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("upstream body read failed",
			zap.String("provider", provider),
			zap.Error(err))
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Error payloads are returned as data; callers inspect the body.
		c.logger.Debug("upstream returned non-200",
			zap.String("provider", provider),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
	}

	return &Result{Status: resp.StatusCode, Body: body}, nil
}
