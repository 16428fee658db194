// Package format renders weather values for display. Functions here are
// pure; temperatures arrive in Kelvin and are converted only at render time.
package format

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mindsightventures/mcp-server-example/internal/weather"
)

// Unit is the requested output unit. Anything other than Celsius or
// Fahrenheit renders as Kelvin.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// ParseUnit normalizes a units argument, defaulting empty input to Celsius.
// Unrecognized values pass through and render as Kelvin downstream.
func ParseUnit(s string) Unit {
	if strings.TrimSpace(s) == "" {
		return Celsius
	}
	return Unit(s)
}

// KelvinTo converts a Kelvin temperature into the given unit. Unrecognized
// units return the value unchanged.
func KelvinTo(temp float64, unit Unit) float64 {
	switch unit {
	case Celsius:
		return temp - 273.15
	case Fahrenheit:
		return (temp-273.15)*9/5 + 32
	default:
		return temp
	}
}

// Temperature renders an already-converted temperature with one decimal
// place and the unit suffix.
func Temperature(temp float64, unit Unit) string {
	switch unit {
	case Celsius:
		return fmt.Sprintf("%.1f°C", temp)
	case Fahrenheit:
		return fmt.Sprintf("%.1f°F", temp)
	default:
		return fmt.Sprintf("%.1fK", temp)
	}
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection maps degrees onto the 8-point compass rose.
func WindDirection(degrees float64) string {
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}

// Alert renders the fixed display block for one weather alert. Placeholder
// substitution for missing fields happens at translation time, so the
// fields render as-is.
func Alert(a weather.Alert) string {
	return fmt.Sprintf("\nEvent: %s\nSender: %s\nStart: %s\nEnd: %s\nDescription: %s\n",
		a.Event, a.Sender, a.Start, a.End, a.Description)
}

// Capitalize upper-cases the first letter only, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Percent converts an upstream 0-1 precipitation fraction into a rounded
// integer percentage.
func Percent(fraction float64) int {
	return int(math.Round(fraction * 100))
}
