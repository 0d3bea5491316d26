// Package models defines data structures used throughout the application
package models

import (
	"time"

	"weatherdash.app/errors"
)

// Temperature and wind speed display units stored in session preferences
const (
	UnitCelsius    = "C"
	UnitFahrenheit = "F"
	UnitKmh        = "KMH"
	UnitMph        = "MPH"
)

// DefaultCityName is used when no session state has ever been persisted
const DefaultCityName = "New York"

// Coordinates is an immutable latitude/longitude pair created at resolution time
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolvedLocation is the canonical result of forward or reverse geocoding.
// Produced once per query and never mutated.
type ResolvedLocation struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
	CountryCode string  `json:"countryCode"`
}

// Coordinates returns the location's coordinate pair
func (l ResolvedLocation) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// CurrentConditions holds the normalized current-weather block.
// All temperatures are Celsius; unit conversion happens at presentation time.
type CurrentConditions struct {
	TemperatureC     float64 `json:"temperatureC"`
	FeelsLikeC       float64 `json:"feelsLikeC"`
	HumidityPct      int     `json:"humidityPct"`
	WindSpeedKmh     float64 `json:"windSpeedKmh"`
	WindDirectionDeg int     `json:"windDirectionDeg"`
	// WindCompass is "N/A" when neither wind direction field path was present
	WindCompass     string    `json:"windCompass"`
	PrecipitationMm float64   `json:"precipitationMm"`
	ConditionCode   Condition `json:"conditionCode"`
	IsDay           bool      `json:"isDay"`
}

// DailyEntry is one calendar day in the snapshot's chronological daily series
type DailyEntry struct {
	Date                        time.Time `json:"date"`
	TempMinC                    float64   `json:"tempMinC"`
	TempMaxC                    float64   `json:"tempMaxC"`
	ConditionCode               Condition `json:"conditionCode"`
	PrecipitationProbabilityPct int       `json:"precipitationProbabilityPct"`
	PrecipitationSumMm          float64   `json:"precipitationSumMm"`
	Sunrise                     time.Time `json:"sunrise,omitempty"`
	Sunset                      time.Time `json:"sunset,omitempty"`
}

// HourlyEntry is one hour in the snapshot's chronological hourly series
type HourlyEntry struct {
	Timestamp                   time.Time `json:"timestamp"`
	TempC                       float64   `json:"tempC"`
	ConditionCode               Condition `json:"conditionCode"`
	PrecipitationProbabilityPct int       `json:"precipitationProbabilityPct"`
}

// WeatherSnapshot is the canonical internal weather model for one resolved
// location at one point in time. The display layer only ever sees a fully
// populated snapshot, never a partial one.
type WeatherSnapshot struct {
	Location     ResolvedLocation  `json:"location"`
	ObservedAt   time.Time         `json:"observedAt"`
	Current      CurrentConditions `json:"current"`
	DailySeries  []DailyEntry      `json:"dailySeries"`
	HourlySeries []HourlyEntry     `json:"hourlySeries"`
	// TodayIndex is the position of calendar-today within DailySeries.
	// The request window includes trailing past days, so this equals the
	// number of past days requested, not 0.
	TodayIndex int `json:"todayIndex"`
}

// DailyForecast is a derived, read-only view over a snapshot's daily series
type DailyForecast struct {
	Date                        time.Time `json:"date"`
	DayLabel                    string    `json:"dayLabel"`
	TempMinC                    float64   `json:"tempMinC"`
	TempMaxC                    float64   `json:"tempMaxC"`
	ConditionCode               Condition `json:"conditionCode"`
	Description                 string    `json:"description"`
	Icon                        string    `json:"icon"`
	PrecipitationProbabilityPct int       `json:"precipitationProbabilityPct"`
}

// HourlyForecast is a derived, read-only view over a snapshot's hourly series
type HourlyForecast struct {
	Timestamp                   time.Time `json:"timestamp"`
	HourLabel                   string    `json:"hourLabel"`
	TempC                       float64   `json:"tempC"`
	ConditionCode               Condition `json:"conditionCode"`
	Icon                        string    `json:"icon"`
	PrecipitationProbabilityPct int       `json:"precipitationProbabilityPct"`
}

// PreferencesKey is the fixed storage key session preferences live under
const PreferencesKey = "session-preferences"

// SessionPreferences is the process-wide session state persisted across
// restarts: last successfully resolved city plus display units.
type SessionPreferences struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	StorageKey      string    `json:"-" gorm:"uniqueIndex;not null"`
	LastCityName    string    `json:"lastCityName" gorm:"not null"`
	TemperatureUnit string    `json:"temperatureUnit" gorm:"not null"`
	WindSpeedUnit   string    `json:"windSpeedUnit" gorm:"not null"`
	UpdatedAt       time.Time `json:"-"`
}

// Validate checks that the preference units are within the supported sets
func (p *SessionPreferences) Validate() error {
	if p.LastCityName == "" {
		return errors.NewValidationError("last city name cannot be empty")
	}
	if p.TemperatureUnit != UnitCelsius && p.TemperatureUnit != UnitFahrenheit {
		return errors.NewValidationError("temperature unit must be 'C' or 'F'")
	}
	if p.WindSpeedUnit != UnitKmh && p.WindSpeedUnit != UnitMph {
		return errors.NewValidationError("wind speed unit must be 'KMH' or 'MPH'")
	}
	return nil
}

// DefaultPreferences returns the documented defaults used when nothing is stored
func DefaultPreferences() *SessionPreferences {
	return &SessionPreferences{
		StorageKey:      PreferencesKey,
		LastCityName:    DefaultCityName,
		TemperatureUnit: UnitCelsius,
		WindSpeedUnit:   UnitKmh,
	}
}

// PreferencesRequest represents a preferences update from the display layer
type PreferencesRequest struct {
	LastCityName    string `json:"lastCityName" form:"lastCityName"`
	TemperatureUnit string `json:"temperatureUnit" form:"temperatureUnit" binding:"omitempty,oneof=C F"`
	WindSpeedUnit   string `json:"windSpeedUnit" form:"windSpeedUnit" binding:"omitempty,oneof=KMH MPH"`
}

// WeatherRequest represents the query parameters accepted by the weather endpoint
type WeatherRequest struct {
	City     string   `form:"city"`
	Lat      *float64 `form:"lat" binding:"omitempty,latitude_range"`
	Lon      *float64 `form:"lon" binding:"omitempty,longitude_range"`
	GeoError string   `form:"geo_error" binding:"omitempty,oneof=denied unavailable"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
