package service

import (
	"weatherdash.app/models"
	"weatherdash.app/providers"
)

// WeatherServiceInterface is the façade surface the HTTP layer depends on
type WeatherServiceInterface interface {
	Query(input QueryInput) (*models.WeatherSnapshot, error)
	State() QueryState
	CurrentSnapshot() *models.WeatherSnapshot
	Preferences() *models.SessionPreferences
	UpdatePreferences(req *models.PreferencesRequest) (*models.SessionPreferences, error)
	DailyForecast(days int) ([]models.DailyForecast, error)
	HourlyForecast(offsetHours, count int) ([]models.HourlyForecast, error)
}

// LocationResolver turns query input into a resolved location
type LocationResolver interface {
	ResolveCity(city string) (*models.ResolvedLocation, error)
	ResolveCoordinates(coords models.Coordinates) (*models.ResolvedLocation, error)
}

// SnapshotNormalizer converts a raw provider payload into a snapshot
type SnapshotNormalizer interface {
	Normalize(raw *providers.RawForecast, location models.ResolvedLocation, pastDays int) (*models.WeatherSnapshot, error)
}
