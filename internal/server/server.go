// Package server exposes the weather tool surface over the Model Context
// Protocol. The server speaks JSON-RPC on stdio, which is why nothing in
// this process may write to stdout.
package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/mindsightventures/mcp-server-example/internal/format"
	"github.com/mindsightventures/mcp-server-example/internal/tools"
)

const serverName = "weather"

// placeInput identifies a location by name. Country and state narrow the
// lookup; state is only meaningful together with a country code.
type placeInput struct {
	Place       string `json:"place" jsonschema:"city name, place name or postal code"`
	CountryCode string `json:"country_code,omitempty" jsonschema:"two-letter country code, e.g. US"`
	StateCode   string `json:"state_code,omitempty" jsonschema:"state code, only used with a country code"`
}

type currentWeatherInput struct {
	placeInput
	Units string `json:"units,omitempty" jsonschema:"temperature units: celsius or fahrenheit"`
}

type coordinatesInput struct {
	Lat   float64 `json:"lat" jsonschema:"latitude in decimal degrees"`
	Lon   float64 `json:"lon" jsonschema:"longitude in decimal degrees"`
	Units string  `json:"units,omitempty" jsonschema:"temperature units: celsius or fahrenheit"`
}

type forecastInput struct {
	placeInput
	Units string `json:"units,omitempty" jsonschema:"temperature units: celsius or fahrenheit"`
	Days  int    `json:"days,omitempty" jsonschema:"number of forecast days, default 5"`
}

type hourlyForecastInput struct {
	placeInput
	Units string `json:"units,omitempty" jsonschema:"temperature units: celsius or fahrenheit"`
	Hours int    `json:"hours,omitempty" jsonschema:"number of forecast hours, default 24"`
}

type emptyInput struct{}

// Server wires the tool handlers into an MCP stdio server.
type Server struct {
	mcp    *mcp.Server
	logger *zap.Logger
}

// New registers every tool on a fresh MCP server. The handlers never
// return protocol errors for weather conditions the user can act on;
// failures come back as explanatory text.
func New(handler *tools.Handler, version string, logger *zap.Logger) *Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_user_location",
		Description: "Get the user's approximate location based on their IP address",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return textResult(handler.UserLocation(ctx)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_current_weather",
		Description: "Get current weather conditions for a place, with optional country and state codes",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in currentWeatherInput) (*mcp.CallToolResult, any, error) {
		text := handler.CurrentWeather(ctx, in.Place, in.CountryCode, in.StateCode, format.ParseUnit(in.Units))
		return textResult(text), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_weather_by_coordinates",
		Description: "Get current weather conditions for a latitude/longitude pair",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in coordinatesInput) (*mcp.CallToolResult, any, error) {
		text := handler.WeatherByCoordinates(ctx, in.Lat, in.Lon, format.ParseUnit(in.Units))
		return textResult(text), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get a daily weather forecast for a place",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in forecastInput) (*mcp.CallToolResult, any, error) {
		text := handler.Forecast(ctx, in.Place, in.CountryCode, in.StateCode, format.ParseUnit(in.Units), in.Days)
		return textResult(text), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_hourly_forecast",
		Description: "Get an hourly weather forecast for a place",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in hourlyForecastInput) (*mcp.CallToolResult, any, error) {
		text := handler.HourlyForecast(ctx, in.Place, in.CountryCode, in.StateCode, format.ParseUnit(in.Units), in.Hours)
		return textResult(text), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_alerts",
		Description: "Get active weather alerts for a place",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in placeInput) (*mcp.CallToolResult, any, error) {
		return textResult(handler.Alerts(ctx, in.Place, in.CountryCode, in.StateCode)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "test_api_connection",
		Description: "Test connectivity to the weather API with a known-good request",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return textResult(handler.TestConnection(ctx)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "check_api_key_and_subscription",
		Description: "Check whether the API key is valid and the One Call API 3.0 subscription is active",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return textResult(handler.CheckKeyAndSubscription(ctx)), nil, nil
	})

	return &Server{mcp: srv, logger: logger}
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio", zap.String("server", serverName))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
