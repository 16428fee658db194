// Package weather fetches current conditions, forecasts and alerts from the
// OpenWeatherMap One Call 3.0 API, falling back to the legacy 2.5 endpoints
// when the primary response is unusable (most commonly a missing One Call
// subscription answering with an error payload).
package weather

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/fallback"
	"github.com/mindsightventures/mcp-server-example/internal/fetch"
)

// Exclusion lists for the One Call API: each operation requests only its
// own data category.
const (
	excludeForCurrent = "minutely,hourly,daily,alerts"
	excludeForDaily   = "minutely,hourly,current"
	excludeForHourly  = "minutely,daily,current"
	excludeForAlerts  = "minutely,hourly,daily"
)

// Endpoints are the weather service URLs, injectable for tests.
type Endpoints struct {
	OneCall        string
	LegacyWeather  string
	LegacyForecast string
}

// Client is the weather data client. All methods are single-shot per
// provider: a failed call triggers only the documented fallback, never a
// retry.
type Client struct {
	fetcher   *fetch.Client
	endpoints Endpoints
	logger    *zap.Logger
}

func NewClient(fetcher *fetch.Client, endpoints Endpoints, logger *zap.Logger) *Client {
	return &Client{
		fetcher:   fetcher,
		endpoints: endpoints,
		logger:    logger,
	}
}

// Current fetches current conditions, falling back to the legacy current
// weather endpoint when the One Call response is absent or lacks the
// "current" section. Returns false when both providers are absent.
func (c *Client) Current(ctx context.Context, lat, lon float64) (Snapshot, bool) {
	return fallback.First(ctx,
		func(ctx context.Context) (Snapshot, bool) {
			var resp oneCallResponse
			if !c.oneCall(ctx, lat, lon, excludeForCurrent, &resp) {
				return Snapshot{}, false
			}
			if resp.Current == nil {
				c.logger.Debug("one call response missing current section, falling back to legacy API",
					zap.Float64("lat", lat), zap.Float64("lon", lon))
				return Snapshot{}, false
			}
			return resp.snapshot(lat, lon), true
		},
		func(ctx context.Context) (Snapshot, bool) {
			result, err := c.fetcher.Get(ctx, "legacy_weather", c.endpoints.LegacyWeather, coordParams(lat, lon))
			if err != nil {
				return Snapshot{}, false
			}
			var resp legacyWeatherResponse
			if err := result.Decode(&resp); err != nil {
				return Snapshot{}, false
			}
			return resp.snapshot(lat, lon), true
		},
	)
}

// Daily fetches the daily forecast. The second return is false when the
// data could not be retrieved at all; a retrieved-but-empty forecast comes
// back as (nil, true) and renders as a no-data outcome.
func (c *Client) Daily(ctx context.Context, lat, lon float64) ([]DailyEntry, bool) {
	var resp oneCallResponse
	if !c.oneCall(ctx, lat, lon, excludeForDaily, &resp) {
		return nil, false
	}
	return resp.daily(), true
}

// Hourly fetches the hourly forecast, falling back to the legacy 3-hour
// forecast list when the One Call response is absent or lacks the "hourly"
// section. An empty slice means no data is available from either provider.
func (c *Client) Hourly(ctx context.Context, lat, lon float64) []HourlyEntry {
	entries, _ := fallback.First(ctx,
		func(ctx context.Context) ([]HourlyEntry, bool) {
			var resp oneCallResponse
			if !c.oneCall(ctx, lat, lon, excludeForHourly, &resp) {
				return nil, false
			}
			if len(resp.Hourly) == 0 {
				c.logger.Debug("one call response missing hourly section, falling back to legacy forecast",
					zap.Float64("lat", lat), zap.Float64("lon", lon))
				return nil, false
			}
			return resp.hourly(), true
		},
		func(ctx context.Context) ([]HourlyEntry, bool) {
			result, err := c.fetcher.Get(ctx, "legacy_forecast", c.endpoints.LegacyForecast, coordParams(lat, lon))
			if err != nil {
				return nil, false
			}
			var resp legacyForecastResponse
			if err := result.Decode(&resp); err != nil {
				return nil, false
			}
			if len(resp.List) == 0 {
				return nil, false
			}
			return resp.hourly(), true
		},
	)
	return entries
}

// Alerts fetches active weather alerts. The second return is false when
// the data could not be retrieved; (nil, true) means no active alerts.
func (c *Client) Alerts(ctx context.Context, lat, lon float64) ([]Alert, bool) {
	var resp oneCallResponse
	if !c.oneCall(ctx, lat, lon, excludeForAlerts, &resp) {
		return nil, false
	}
	return translateAlerts(resp.Alerts), true
}

// oneCall issues the primary request and decodes into resp. Returns false
// on transport failure or an undecodable body; error payloads with a JSON
// body decode into an empty response and are left for the caller's
// missing-section check to catch.
func (c *Client) oneCall(ctx context.Context, lat, lon float64, exclude string, resp *oneCallResponse) bool {
	params := coordParams(lat, lon)
	params.Set("exclude", exclude)

	result, err := c.fetcher.Get(ctx, "onecall", c.endpoints.OneCall, params)
	if err != nil {
		return false
	}
	if err := result.Decode(resp); err != nil {
		return false
	}
	return true
}

// RawOneCall issues an uninterpreted One Call request for the diagnostic
// tools, which pattern-match the raw status code.
func (c *Client) RawOneCall(ctx context.Context, lat, lon float64, exclude string) (*fetch.Result, error) {
	params := coordParams(lat, lon)
	if exclude != "" {
		params.Set("exclude", exclude)
	}
	return c.fetcher.Get(ctx, "onecall", c.endpoints.OneCall, params)
}

// RawLegacyWeather issues an uninterpreted legacy current-weather request
// by free-text query, e.g. "London,GB".
func (c *Client) RawLegacyWeather(ctx context.Context, query string) (*fetch.Result, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.fetcher.Get(ctx, "legacy_weather", c.endpoints.LegacyWeather, params)
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}
