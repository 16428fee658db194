package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default upstream endpoints. Overridable via YAML or env so tests can
// point the clients at local stubs.
const (
	DefaultOneCallURL        = "https://api.openweathermap.org/data/3.0/onecall"
	DefaultLegacyWeatherURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultLegacyForecastURL = "https://api.openweathermap.org/data/2.5/forecast"
	DefaultGeocodeDirectURL  = "https://api.openweathermap.org/geo/1.0/direct"
	DefaultGeocodeZipURL     = "http://api.openweathermap.org/geo/1.0/zip"
	DefaultNominatimURL      = "https://nominatim.openstreetmap.org/search"
	DefaultIPLocateURL       = "https://ipinfo.io/json"

	DefaultUserAgent      = "weather-app/1.0"
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds server configuration loaded from env and an optional YAML file.
type Config struct {
	// APIKey is the OpenWeatherMap credential. It may be empty; the server
	// starts anyway and upstream calls fail with error payloads.
	APIKey string

	OneCallURL        string
	LegacyWeatherURL  string
	LegacyForecastURL string
	GeocodeDirectURL  string
	GeocodeZipURL     string
	NominatimURL      string
	IPLocateURL       string

	UserAgent      string
	RequestTimeout time.Duration

	// MetricsAddr enables the metrics/health HTTP listener when non-empty,
	// e.g. ":9090". Disabled by default since the MCP transport is stdio.
	MetricsAddr string
}

type fileConfig struct {
	Upstream struct {
		OneCallURL        string `yaml:"one_call_url"`
		LegacyWeatherURL  string `yaml:"legacy_weather_url"`
		LegacyForecastURL string `yaml:"legacy_forecast_url"`
		GeocodeDirectURL  string `yaml:"geocode_direct_url"`
		GeocodeZipURL     string `yaml:"geocode_zip_url"`
		NominatimURL      string `yaml:"nominatim_url"`
		IPLocateURL       string `yaml:"ip_locate_url"`
		UserAgent         string `yaml:"user_agent"`
		Timeout           string `yaml:"timeout"`
	} `yaml:"upstream"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Load reads configuration from the environment, overlaid on an optional
// config/{ENV_NAME}.yaml file. A .env file in the working directory is
// loaded first if present. The API key comes from OPENWEATHER_API_KEY;
// its absence is not an error here, callers are expected to warn.
func Load() (*Config, error) {
	// Best effort; a missing .env file is the normal case.
	_ = godotenv.Load()

	var fc fileConfig
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
	}

	cfg := &Config{
		APIKey:            os.Getenv("OPENWEATHER_API_KEY"),
		OneCallURL:        firstNonEmpty(os.Getenv("ONE_CALL_URL"), fc.Upstream.OneCallURL, DefaultOneCallURL),
		LegacyWeatherURL:  firstNonEmpty(os.Getenv("LEGACY_WEATHER_URL"), fc.Upstream.LegacyWeatherURL, DefaultLegacyWeatherURL),
		LegacyForecastURL: firstNonEmpty(os.Getenv("LEGACY_FORECAST_URL"), fc.Upstream.LegacyForecastURL, DefaultLegacyForecastURL),
		GeocodeDirectURL:  firstNonEmpty(os.Getenv("GEOCODE_DIRECT_URL"), fc.Upstream.GeocodeDirectURL, DefaultGeocodeDirectURL),
		GeocodeZipURL:     firstNonEmpty(os.Getenv("GEOCODE_ZIP_URL"), fc.Upstream.GeocodeZipURL, DefaultGeocodeZipURL),
		NominatimURL:      firstNonEmpty(os.Getenv("NOMINATIM_URL"), fc.Upstream.NominatimURL, DefaultNominatimURL),
		IPLocateURL:       firstNonEmpty(os.Getenv("IP_LOCATE_URL"), fc.Upstream.IPLocateURL, DefaultIPLocateURL),
		UserAgent:         firstNonEmpty(fc.Upstream.UserAgent, DefaultUserAgent),
		RequestTimeout:    parseDuration(firstNonEmpty(os.Getenv("REQUEST_TIMEOUT"), fc.Upstream.Timeout), DefaultRequestTimeout),
		MetricsAddr:       firstNonEmpty(os.Getenv("METRICS_ADDR"), fc.Metrics.Addr),
	}

	return cfg, nil
}

// HasAPIKey reports whether a credential was configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseDuration parses a duration string, falling back to defaultVal on
// empty input, parse error, or non-positive result.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
