package format

import (
	"testing"

	"github.com/mindsightventures/mcp-server-example/internal/weather"
)

func TestKelvinTo(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		unit Unit
		want float64
	}{
		{"freezing point to celsius", 273.15, Celsius, 0.0},
		{"freezing point to fahrenheit", 273.15, Fahrenheit, 32.0},
		{"unrecognized unit passes through", 273.15, Unit("anything-else"), 273.15},
		{"boiling point to celsius", 373.15, Celsius, 100.0},
		{"boiling point to fahrenheit", 373.15, Fahrenheit, 212.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KelvinTo(tt.temp, tt.unit)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("KelvinTo(%v, %q) = %v, want %v", tt.temp, tt.unit, got, tt.want)
			}
		})
	}
}

func TestTemperature(t *testing.T) {
	tests := []struct {
		temp float64
		unit Unit
		want string
	}{
		{25.123, Celsius, "25.1°C"},
		{72.987, Fahrenheit, "73.0°F"},
		{300.456, Unit("x"), "300.5K"},
		{0.0, Celsius, "0.0°C"},
		{-5.05, Celsius, "-5.0°C"},
	}

	for _, tt := range tests {
		if got := Temperature(tt.temp, tt.unit); got != tt.want {
			t.Errorf("Temperature(%v, %q) = %q, want %q", tt.temp, tt.unit, got, tt.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"", Celsius},
		{"   ", Celsius},
		{"celsius", Celsius},
		{"fahrenheit", Fahrenheit},
		{"kelvin", Unit("kelvin")},
	}

	for _, tt := range tests {
		if got := ParseUnit(tt.in); got != tt.want {
			t.Errorf("ParseUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindDirection(t *testing.T) {
	tests := []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{262, "W"},
		{270, "W"},
		{315, "NW"},
		{350, "N"}, // wraps back around
		{360, "N"},
	}

	for _, tt := range tests {
		if got := WindDirection(tt.degrees); got != tt.want {
			t.Errorf("WindDirection(%v) = %q, want %q", tt.degrees, got, tt.want)
		}
	}
}

func TestWindDirection_AlwaysInRose(t *testing.T) {
	valid := map[string]bool{
		"N": true, "NE": true, "E": true, "SE": true,
		"S": true, "SW": true, "W": true, "NW": true,
	}
	for deg := 0.0; deg < 720; deg += 0.5 {
		if got := WindDirection(deg); !valid[got] {
			t.Fatalf("WindDirection(%v) = %q, not an 8-point direction", deg, got)
		}
	}
}

func TestAlert(t *testing.T) {
	a := weather.Alert{
		Event:       "Flood Warning",
		Sender:      "NWS",
		Start:       "1700000000",
		End:         "1700086400",
		Description: "River flooding expected.",
	}

	want := "\nEvent: Flood Warning\nSender: NWS\nStart: 1700000000\nEnd: 1700086400\nDescription: River flooding expected.\n"
	if got := Alert(a); got != want {
		t.Errorf("Alert() = %q, want %q", got, want)
	}
}

func TestAlert_Placeholders(t *testing.T) {
	a := weather.Alert{
		Event:       "Unknown",
		Sender:      "Unknown",
		Start:       "Unknown",
		End:         "Unknown",
		Description: "No description available",
	}

	got := Alert(a)
	want := "\nEvent: Unknown\nSender: Unknown\nStart: Unknown\nEnd: Unknown\nDescription: No description available\n"
	if got != want {
		t.Errorf("Alert() = %q, want %q", got, want)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clear sky", "Clear sky"},
		{"light rain", "Light rain"},
		{"Unknown", "Unknown"},
		{"", ""},
		{"überwiegend bewölkt", "Überwiegend bewölkt"},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		fraction float64
		want     int
	}{
		{0, 0},
		{0.45, 45},
		{0.456, 46},
		{1, 100},
		{0.004, 0},
		{0.005, 1},
	}

	for _, tt := range tests {
		if got := Percent(tt.fraction); got != tt.want {
			t.Errorf("Percent(%v) = %d, want %d", tt.fraction, got, tt.want)
		}
	}
}
