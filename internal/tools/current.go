package tools

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/format"
)

// WeatherByCoordinates returns current conditions for a coordinate pair.
func (h *Handler) WeatherByCoordinates(ctx context.Context, lat, lon float64, units format.Unit) string {
	_, done := h.begin("get_weather_by_coordinates")

	text, ok := h.currentText(ctx, lat, lon, units)
	if !ok {
		done(outcomeNoData)
		return fmt.Sprintf("Could not retrieve weather data for coordinates (%v, %v).", lat, lon)
	}
	done(outcomeOK)
	return text
}

// CurrentWeather resolves a place name and returns current conditions with
// the requested place in the heading instead of raw coordinates.
func (h *Handler) CurrentWeather(ctx context.Context, place, countryCode, stateCode string, units format.Unit) string {
	logger, done := h.begin("get_current_weather")
	label := locationLabel(place, countryCode, stateCode)

	coord, ok := h.resolver.Resolve(ctx, place, countryCode, stateCode)
	if !ok {
		logger.Info("place not resolvable", zap.String("place", place))
		done(outcomeUnresolved)
		return unresolvedMessage(label)
	}

	text, ok := h.currentText(ctx, coord.Lat, coord.Lon, units)
	if !ok {
		done(outcomeNoData)
		return fmt.Sprintf("Could not retrieve weather data for %s.", label)
	}

	// Replace the coordinate heading with the place the caller asked about.
	lines := strings.Split(text, "\n")
	lines[0] = fmt.Sprintf("Current Weather for %s:", label)
	done(outcomeOK)
	return strings.Join(lines, "\n")
}

// currentText fetches and renders the current-conditions block shared by
// both current-weather tools.
func (h *Handler) currentText(ctx context.Context, lat, lon float64, units format.Unit) (string, bool) {
	snap, ok := h.weather.Current(ctx, lat, lon)
	if !ok {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current Weather for %s:\n", snap.LocationName)
	fmt.Fprintf(&b, "Temperature: %s\n", format.Temperature(format.KelvinTo(snap.Temp, units), units))
	fmt.Fprintf(&b, "Feels Like: %s\n", format.Temperature(format.KelvinTo(snap.FeelsLike, units), units))
	fmt.Fprintf(&b, "Conditions: %s\n", format.Capitalize(snap.Description))
	fmt.Fprintf(&b, "Humidity: %d%%\n", snap.Humidity)
	fmt.Fprintf(&b, "Wind: %.1f m/s %s\n", snap.WindSpeed, format.WindDirection(snap.WindDeg))

	if len(snap.Alerts) > 0 {
		b.WriteString("\nWeather Alerts:\n")
		for _, a := range snap.Alerts {
			b.WriteString(format.Alert(a))
		}
	}

	return b.String(), true
}
