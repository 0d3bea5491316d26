package providers

import (
	"time"

	"weatherdash.app/models"
)

// ForecastProvider defines the interface for upstream weather data providers
type ForecastProvider interface {
	FetchForecast(coords models.Coordinates) (*RawForecast, error)
}

// FileLogger defines the interface for file logging of provider calls
type FileLogger interface {
	LogRequest(providerName string, coords models.Coordinates)
	LogResponse(providerName string, coords models.Coordinates, raw *RawForecast, duration time.Duration)
	LogError(providerName string, coords models.Coordinates, err error, duration time.Duration)
}
