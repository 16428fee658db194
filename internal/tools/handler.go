// Package tools implements the externally invokable weather operations.
// Every handler takes plain values, never raises past its boundary, and
// returns a display string; all failure modes are user-visible text.
package tools

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/geocode"
	"github.com/mindsightventures/mcp-server-example/internal/observability"
	"github.com/mindsightventures/mcp-server-example/internal/weather"
)

// Default parameter values applied when the caller omits them.
const (
	DefaultForecastDays = 5
	DefaultHourlyHours  = 24
)

// Tool invocation outcomes for metrics.
const (
	outcomeOK         = "ok"
	outcomeUnresolved = "unresolved"
	outcomeNoData     = "no_data"
	outcomeError      = "error"
)

// Handler composes the geocoder, weather client and formatter into the
// tool surface. It is stateless; concurrent invocations are independent.
type Handler struct {
	resolver *geocode.Resolver
	weather  *weather.Client
	logger   *zap.Logger
}

func NewHandler(resolver *geocode.Resolver, weatherClient *weather.Client, logger *zap.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		weather:  weatherClient,
		logger:   logger,
	}
}

// begin opens an instrumented invocation scope: a request-scoped logger
// and a completion callback recording the outcome.
func (h *Handler) begin(tool string) (*zap.Logger, func(outcome string)) {
	logger := h.logger.With(
		zap.String("tool", tool),
		zap.String("request_id", uuid.NewString()),
	)
	start := time.Now()
	return logger, func(outcome string) {
		observability.ToolInvocationsTotal.WithLabelValues(tool, outcome).Inc()
		logger.Debug("tool invocation completed",
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)))
	}
}

// locationLabel composes the display label for a place. The trailing
// comma-space when no country code is given matches the established
// output format.
func locationLabel(place, countryCode, stateCode string) string {
	label := fmt.Sprintf("%s, %s", place, countryCode)
	if stateCode != "" {
		label += ", " + stateCode
	}
	return label
}

func unresolvedMessage(label string) string {
	return fmt.Sprintf("Unable to find coordinates for %s. Try providing a larger nearby city, postal code, or use coordinates directly.", label)
}
