// Package units provides pure presentation-time conversion and formatting
// helpers. Snapshot values stay metric; nothing here is ever persisted.
package units

import (
	"math"
	"time"
)

// kmhPerMph is the exact factor between the two wind speed units
const kmhPerMph = 1.609344

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit,
// rounded to the nearest whole degree for display.
func CelsiusToFahrenheit(c float64) float64 {
	return math.Round(c*9/5 + 32)
}

// FahrenheitToCelsius converts a Fahrenheit temperature to Celsius,
// rounded to the nearest whole degree for display.
func FahrenheitToCelsius(f float64) float64 {
	return math.Round((f - 32) * 5 / 9)
}

// KmhToMph converts a wind speed from km/h to mph, rounded to one decimal
func KmhToMph(kmh float64) float64 {
	return math.Round(kmh/kmhPerMph*10) / 10
}

// MphToKmh converts a wind speed from mph to km/h, rounded to one decimal
func MphToKmh(mph float64) float64 {
	return math.Round(mph*kmhPerMph*10) / 10
}

// DegreesToCompass maps a wind direction in degrees to a 16-wind compass point
func DegreesToCompass(degrees int) string {
	index := int(math.Round(float64(degrees)/22.5)) % 16
	if index < 0 {
		index += 16
	}
	return compassPoints[index]
}

// FormatDate renders a timestamp as e.g. "Monday, Mar 2"
func FormatDate(t time.Time) string {
	return t.Format("Monday, Jan 2")
}

// FormatTime renders a timestamp as e.g. "3:04 PM"
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatHour renders a timestamp as e.g. "3 PM"
func FormatHour(t time.Time) string {
	return t.Format("3 PM")
}

// DayOfWeek returns the full weekday name
func DayOfWeek(t time.Time) string {
	return t.Format("Monday")
}
