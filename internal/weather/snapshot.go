package weather

import (
	"fmt"
	"strconv"
)

// DefaultKelvin is the baseline substituted for missing temperatures (0°C).
const DefaultKelvin = 273.15

const (
	unknownValue  = "Unknown"
	noDescription = "No description available"
)

// Snapshot is the canonical current-conditions view. Upstream responses
// arrive with every field optional; translation applies the defaults so
// formatting code never has to.
type Snapshot struct {
	LocationName string
	Temp         float64 // Kelvin
	FeelsLike    float64 // Kelvin
	Humidity     int
	WindSpeed    float64 // m/s
	WindDeg      float64
	Description  string
	Alerts       []Alert
}

// Alert is a weather warning with all fields pre-defaulted to display
// placeholders. Start and End hold stringified unix timestamps.
type Alert struct {
	Event       string
	Sender      string
	Start       string
	End         string
	Description string
}

// DailyEntry is one day of forecast. Precipitation is the upstream 0-1
// fraction; scaling to a percentage happens at render time.
type DailyEntry struct {
	Time          int64
	Temp          float64 // Kelvin
	TempMin       float64 // Kelvin
	TempMax       float64 // Kelvin
	Humidity      int
	WindSpeed     float64
	WindDeg       float64
	Description   string
	Precipitation float64
}

// HourlyEntry is one hour (or 3-hour legacy interval) of forecast.
type HourlyEntry struct {
	Time          int64
	Temp          float64 // Kelvin
	WindSpeed     float64
	WindDeg       float64
	Description   string
	Precipitation float64
}

// --- One Call API 3.0 response shape (primary) ---

type weatherDescriptor struct {
	Description *string `json:"description"`
}

type oneCallCurrent struct {
	Temp      *float64            `json:"temp"`
	FeelsLike *float64            `json:"feels_like"`
	Humidity  *int                `json:"humidity"`
	WindSpeed *float64            `json:"wind_speed"`
	WindDeg   *float64            `json:"wind_deg"`
	Weather   []weatherDescriptor `json:"weather"`
}

type oneCallDailyTemp struct {
	Day *float64 `json:"day"`
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type oneCallDay struct {
	Dt        *int64              `json:"dt"`
	Temp      oneCallDailyTemp    `json:"temp"`
	Humidity  *int                `json:"humidity"`
	WindSpeed *float64            `json:"wind_speed"`
	WindDeg   *float64            `json:"wind_deg"`
	Weather   []weatherDescriptor `json:"weather"`
	Pop       *float64            `json:"pop"`
}

type oneCallHour struct {
	Dt        *int64              `json:"dt"`
	Temp      *float64            `json:"temp"`
	WindSpeed *float64            `json:"wind_speed"`
	WindDeg   *float64            `json:"wind_deg"`
	Weather   []weatherDescriptor `json:"weather"`
	Pop       *float64            `json:"pop"`
}

type oneCallAlert struct {
	Event       *string `json:"event"`
	SenderName  *string `json:"sender_name"`
	Start       *int64  `json:"start"`
	End         *int64  `json:"end"`
	Description *string `json:"description"`
}

type oneCallResponse struct {
	Current *oneCallCurrent `json:"current"`
	Daily   []oneCallDay    `json:"daily"`
	Hourly  []oneCallHour   `json:"hourly"`
	Alerts  []oneCallAlert  `json:"alerts"`
	Name    *string         `json:"name"`
}

// snapshot translates a One Call response into the canonical form. The
// One Call API carries no location name, so the coordinate pair stands in.
func (r *oneCallResponse) snapshot(lat, lon float64) Snapshot {
	cur := r.Current
	if cur == nil {
		cur = &oneCallCurrent{}
	}
	temp := floatOr(cur.Temp, DefaultKelvin)
	return Snapshot{
		LocationName: stringOr(r.Name, coordinateLabel(lat, lon)),
		Temp:         temp,
		FeelsLike:    floatOr(cur.FeelsLike, temp),
		Humidity:     intOr(cur.Humidity, 0),
		WindSpeed:    floatOr(cur.WindSpeed, 0),
		WindDeg:      floatOr(cur.WindDeg, 0),
		Description:  descriptionOf(cur.Weather),
		Alerts:       translateAlerts(r.Alerts),
	}
}

func (r *oneCallResponse) daily() []DailyEntry {
	entries := make([]DailyEntry, 0, len(r.Daily))
	for _, d := range r.Daily {
		entries = append(entries, DailyEntry{
			Time:          int64Or(d.Dt, 0),
			Temp:          floatOr(d.Temp.Day, DefaultKelvin),
			TempMin:       floatOr(d.Temp.Min, DefaultKelvin),
			TempMax:       floatOr(d.Temp.Max, DefaultKelvin),
			Humidity:      intOr(d.Humidity, 0),
			WindSpeed:     floatOr(d.WindSpeed, 0),
			WindDeg:       floatOr(d.WindDeg, 0),
			Description:   descriptionOf(d.Weather),
			Precipitation: floatOr(d.Pop, 0),
		})
	}
	return entries
}

func (r *oneCallResponse) hourly() []HourlyEntry {
	entries := make([]HourlyEntry, 0, len(r.Hourly))
	for _, h := range r.Hourly {
		entries = append(entries, HourlyEntry{
			Time:          int64Or(h.Dt, 0),
			Temp:          floatOr(h.Temp, DefaultKelvin),
			WindSpeed:     floatOr(h.WindSpeed, 0),
			WindDeg:       floatOr(h.WindDeg, 0),
			Description:   descriptionOf(h.Weather),
			Precipitation: floatOr(h.Pop, 0),
		})
	}
	return entries
}

func translateAlerts(alerts []oneCallAlert) []Alert {
	if len(alerts) == 0 {
		return nil
	}
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, Alert{
			Event:       stringOr(a.Event, unknownValue),
			Sender:      stringOr(a.SenderName, unknownValue),
			Start:       timestampOr(a.Start, unknownValue),
			End:         timestampOr(a.End, unknownValue),
			Description: stringOr(a.Description, noDescription),
		})
	}
	return out
}

// --- API 2.5 response shapes (legacy fallback) ---

type legacyMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Humidity  *int     `json:"humidity"`
}

type legacyWind struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
}

type legacyWeatherResponse struct {
	Name    *string             `json:"name"`
	Main    legacyMain          `json:"main"`
	Wind    legacyWind          `json:"wind"`
	Weather []weatherDescriptor `json:"weather"`
}

func (r *legacyWeatherResponse) snapshot(lat, lon float64) Snapshot {
	temp := floatOr(r.Main.Temp, DefaultKelvin)
	return Snapshot{
		LocationName: stringOr(r.Name, coordinateLabel(lat, lon)),
		Temp:         temp,
		FeelsLike:    floatOr(r.Main.FeelsLike, temp),
		Humidity:     intOr(r.Main.Humidity, 0),
		WindSpeed:    floatOr(r.Wind.Speed, 0),
		WindDeg:      floatOr(r.Wind.Deg, 0),
		Description:  descriptionOf(r.Weather),
	}
}

type legacyForecastEntry struct {
	Dt      *int64              `json:"dt"`
	Main    legacyMain          `json:"main"`
	Wind    legacyWind          `json:"wind"`
	Weather []weatherDescriptor `json:"weather"`
	Pop     *float64            `json:"pop"`
}

type legacyForecastResponse struct {
	List []legacyForecastEntry `json:"list"`
}

// hourly translates the 3-hour-interval list into hourly entries; callers
// treat each interval as one entry.
func (r *legacyForecastResponse) hourly() []HourlyEntry {
	entries := make([]HourlyEntry, 0, len(r.List))
	for _, e := range r.List {
		entries = append(entries, HourlyEntry{
			Time:          int64Or(e.Dt, 0),
			Temp:          floatOr(e.Main.Temp, DefaultKelvin),
			WindSpeed:     floatOr(e.Wind.Speed, 0),
			WindDeg:       floatOr(e.Wind.Deg, 0),
			Description:   descriptionOf(e.Weather),
			Precipitation: floatOr(e.Pop, 0),
		})
	}
	return entries
}

// --- defaulting helpers ---

func coordinateLabel(lat, lon float64) string {
	return fmt.Sprintf("coordinates (%v, %v)", lat, lon)
}

func descriptionOf(descriptors []weatherDescriptor) string {
	if len(descriptors) == 0 {
		return unknownValue
	}
	return stringOr(descriptors[0].Description, unknownValue)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func int64Or(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func timestampOr(v *int64, def string) string {
	if v == nil {
		return def
	}
	return strconv.FormatInt(*v, 10)
}
