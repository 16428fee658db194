package tools

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/format"
)

// Alerts returns active weather alerts for a place, or a friendly notice
// when there are none.
func (h *Handler) Alerts(ctx context.Context, place, countryCode, stateCode string) string {
	logger, done := h.begin("get_alerts")
	label := locationLabel(place, countryCode, stateCode)

	coord, ok := h.resolver.Resolve(ctx, place, countryCode, stateCode)
	if !ok {
		logger.Info("place not resolvable", zap.String("place", place))
		done(outcomeUnresolved)
		return unresolvedMessage(label)
	}

	alerts, ok := h.weather.Alerts(ctx, coord.Lat, coord.Lon)
	if !ok {
		done(outcomeNoData)
		return fmt.Sprintf("Could not retrieve weather data for %s.", label)
	}
	if len(alerts) == 0 {
		done(outcomeOK)
		return fmt.Sprintf("No active alerts for %s.", label)
	}

	var b strings.Builder
	for _, a := range alerts {
		b.WriteString(format.Alert(a))
	}
	done(outcomeOK)
	return b.String()
}
