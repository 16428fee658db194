package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/format"
)

// Forecast returns the daily forecast for a place, truncated to the
// requested number of days or however many the upstream supplied,
// whichever is smaller.
func (h *Handler) Forecast(ctx context.Context, place, countryCode, stateCode string, units format.Unit, days int) string {
	logger, done := h.begin("get_forecast")
	if days <= 0 {
		days = DefaultForecastDays
	}
	label := locationLabel(place, countryCode, stateCode)

	coord, ok := h.resolver.Resolve(ctx, place, countryCode, stateCode)
	if !ok {
		logger.Info("place not resolvable", zap.String("place", place))
		done(outcomeUnresolved)
		return unresolvedMessage(label)
	}

	entries, ok := h.weather.Daily(ctx, coord.Lat, coord.Lon)
	if !ok {
		done(outcomeNoData)
		return fmt.Sprintf("Could not retrieve forecast data for %s.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weather Forecast for %s\n", label)
	b.WriteString("---\n\n")

	if len(entries) == 0 {
		done(outcomeNoData)
		return b.String() + "No forecast data available."
	}

	show := days
	if len(entries) < show {
		show = len(entries)
	}
	for i := 0; i < show; i++ {
		day := entries[i]
		fmt.Fprintf(&b, "%s:\n", time.Unix(day.Time, 0).Format("2006-01-02"))
		fmt.Fprintf(&b, "Temperature: %s (Min: %s, Max: %s)\n",
			format.Temperature(format.KelvinTo(day.Temp, units), units),
			format.Temperature(format.KelvinTo(day.TempMin, units), units),
			format.Temperature(format.KelvinTo(day.TempMax, units), units))
		fmt.Fprintf(&b, "Conditions: %s\n", format.Capitalize(day.Description))
		fmt.Fprintf(&b, "Humidity: %d%%\n", day.Humidity)
		fmt.Fprintf(&b, "Wind Speed: %.1f m/s %s\n", day.WindSpeed, format.WindDirection(day.WindDeg))
		fmt.Fprintf(&b, "Chance of Rain: %d%%\n", format.Percent(day.Precipitation))

		if i < show-1 {
			b.WriteString("\n")
		}
	}

	done(outcomeOK)
	return b.String()
}

// HourlyForecast returns the hourly forecast for a place. When the primary
// API is unavailable the entries come from the legacy 3-hour list, one
// line per interval.
func (h *Handler) HourlyForecast(ctx context.Context, place, countryCode, stateCode string, units format.Unit, hours int) string {
	logger, done := h.begin("get_hourly_forecast")
	if hours <= 0 {
		hours = DefaultHourlyHours
	}
	label := locationLabel(place, countryCode, stateCode)

	coord, ok := h.resolver.Resolve(ctx, place, countryCode, stateCode)
	if !ok {
		logger.Info("place not resolvable", zap.String("place", place))
		done(outcomeUnresolved)
		return unresolvedMessage(label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hourly Weather Forecast for %s\n", label)

	entries := h.weather.Hourly(ctx, coord.Lat, coord.Lon)
	if len(entries) == 0 {
		done(outcomeNoData)
		return b.String() + "No hourly forecast data available."
	}

	show := hours
	if len(entries) < show {
		show = len(entries)
	}
	for i := 0; i < show; i++ {
		hour := entries[i]
		parts := []string{
			fmt.Sprintf("%s: %s",
				time.Unix(hour.Time, 0).Format("2006-01-02 15:04"),
				format.Temperature(format.KelvinTo(hour.Temp, units), units)),
			format.Capitalize(hour.Description),
			fmt.Sprintf("Wind: %.1f m/s %s", hour.WindSpeed, format.WindDirection(hour.WindDeg)),
			fmt.Sprintf("Chance of Rain: %d%%", format.Percent(hour.Precipitation)),
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	done(outcomeOK)
	return b.String()
}
