package tools

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// UserLocation reports the caller's approximate location from its public
// IP address.
func (h *Handler) UserLocation(ctx context.Context) string {
	logger, done := h.begin("get_user_location")

	loc, err := h.resolver.SelfLocate(ctx)
	if err != nil {
		logger.Warn("self-location failed", zap.Error(err))
		done(outcomeError)
		return "Could not determine your location due to an error."
	}
	if loc == nil {
		done(outcomeNoData)
		return "Your location: Unknown (Coordinates unavailable)"
	}

	locationStr := loc.City
	if loc.Region != "" {
		locationStr += ", " + loc.Region
	}
	locationStr += ", " + loc.Country

	if lat, lon, found := strings.Cut(loc.Loc, ","); found {
		done(outcomeOK)
		return fmt.Sprintf("Your location: %s (Coordinates: %s, %s)", locationStr, lat, lon)
	}

	done(outcomeOK)
	return fmt.Sprintf("Your location: %s (Coordinates unavailable)", locationStr)
}
