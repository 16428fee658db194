package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/mindsightventures/mcp-server-example/internal/format"
	"github.com/mindsightventures/mcp-server-example/internal/weather"
)

// Known-good probe coordinates.
var (
	madridLat, madridLon = 40.4165, -3.7026
	londonLat, londonLon = 51.5074, -0.1278
)

const probeExclude = "minutely,hourly,daily,alerts"

// TestConnection probes the One Call API with a raw request against Madrid
// and reports what came back, status code included.
func (h *Handler) TestConnection(ctx context.Context) string {
	logger, done := h.begin("test_api_connection")

	result, err := h.weather.RawOneCall(ctx, madridLat, madridLon, probeExclude)
	if err != nil {
		done(outcomeError)
		return fmt.Sprintf("API connection test failed with error: %v", err)
	}
	if !result.OK() {
		done(outcomeError)
		return fmt.Sprintf("API request failed with status code: %d. Response: %s", result.Status, result.Body)
	}

	var payload map[string]json.RawMessage
	if err := result.Decode(&payload); err != nil {
		done(outcomeError)
		return fmt.Sprintf("API connection test failed with error: %v", err)
	}

	raw, ok := payload["current"]
	if !ok {
		logger.Debug("probe response missing current section")
		done(outcomeNoData)
		return fmt.Sprintf("API response received but missing 'current' data. Response keys: %s", joinKeys(payload))
	}

	var current struct {
		Temp *float64 `json:"temp"`
	}
	if err := json.Unmarshal(raw, &current); err != nil {
		done(outcomeError)
		return fmt.Sprintf("API connection test failed with error: %v", err)
	}
	temp := weather.DefaultKelvin
	if current.Temp != nil {
		temp = *current.Temp
	}

	done(outcomeOK)
	return fmt.Sprintf("API test successful! Current temperature in Madrid is %.1f°C",
		format.KelvinTo(temp, format.Celsius))
}

// CheckKeyAndSubscription verifies the API key against the legacy API
// (valid for any key), then probes One Call 3.0 access, which additionally
// requires an active subscription. Status codes 200, 401 and 429 each get
// a specific explanation.
func (h *Handler) CheckKeyAndSubscription(ctx context.Context) string {
	logger, done := h.begin("check_api_key_and_subscription")

	result, err := h.weather.RawLegacyWeather(ctx, "London,GB")
	if err != nil {
		done(outcomeError)
		return fmt.Sprintf("Error testing One Call API 3.0: %v", err)
	}
	if !result.OK() {
		done(outcomeError)
		return fmt.Sprintf("API key may be invalid. Regular API request failed with status code: %d. Response: %s",
			result.Status, result.Body)
	}
	logger.Debug("legacy API access confirmed, probing One Call subscription")

	oneCall, err := h.weather.RawOneCall(ctx, londonLat, londonLon, probeExclude)
	if err != nil {
		done(outcomeError)
		return fmt.Sprintf("Error testing One Call API 3.0: %v", err)
	}

	switch oneCall.Status {
	case http.StatusOK:
		var payload map[string]json.RawMessage
		if err := oneCall.Decode(&payload); err != nil {
			done(outcomeError)
			return fmt.Sprintf("Error testing One Call API 3.0: %v", err)
		}
		if _, ok := payload["current"]; ok {
			done(outcomeOK)
			return "API key is valid and One Call API 3.0 subscription is active!"
		}
		done(outcomeNoData)
		return fmt.Sprintf("API key is valid but One Call API 3.0 response is missing 'current' data. Response keys: %s",
			joinKeys(payload))
	case http.StatusUnauthorized:
		done(outcomeError)
		return "API key is valid but One Call API 3.0 subscription is not active. You need to subscribe to the 'One Call by Call' subscription plan."
	case http.StatusTooManyRequests:
		done(outcomeError)
		return "API key is valid but you've exceeded your One Call API 3.0 quota."
	default:
		done(outcomeError)
		return fmt.Sprintf("One Call API 3.0 request failed with status code: %d. Response: %s",
			oneCall.Status, oneCall.Body)
	}
}

func joinKeys(payload map[string]json.RawMessage) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
