package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
	apperrors "weatherdash.app/errors"
	"weatherdash.app/models"
)

const berlinForecastFixture = `{
	"latitude": 52.52,
	"longitude": 13.42,
	"timezone": "Europe/Berlin",
	"current": {
		"time": "2026-08-29T14:00",
		"temperature_2m": 21.4,
		"relative_humidity_2m": 58,
		"apparent_temperature": 20.9,
		"is_day": 1,
		"precipitation": 0.0,
		"wind_speed_10m": 12.3,
		"wind_direction_10m": 230,
		"weather_code": 3
	},
	"daily": {
		"time": ["2026-08-28", "2026-08-29", "2026-08-30"],
		"weather_code": [61, 3, 0],
		"temperature_2m_max": [19.1, 22.8, 24.0],
		"temperature_2m_min": [12.5, 13.9, 14.2],
		"sunrise": ["2026-08-28T06:12", "2026-08-29T06:14", "2026-08-30T06:15"],
		"sunset": ["2026-08-28T20:06", "2026-08-29T20:04", "2026-08-30T20:02"],
		"precipitation_sum": [4.2, 0.0, 0.0],
		"precipitation_probability_max": [80, 10, 5]
	},
	"hourly": {
		"time": ["2026-08-29T14:00", "2026-08-29T15:00"],
		"temperature_2m": [21.4, 21.9],
		"precipitation_probability": [5, 10]
	}
}`

func forecastTestConfig(baseURL string) *config.ForecastConfig {
	return &config.ForecastConfig{
		ProviderBaseURL: baseURL,
		PastDays:        7,
		ForecastDays:    14,
	}
}

func TestOpenMeteoProvider_FetchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "52.52", r.URL.Query().Get("latitude"))
		assert.Equal(t, "13.42", r.URL.Query().Get("longitude"))
		assert.Equal(t, "7", r.URL.Query().Get("past_days"))
		assert.Equal(t, "14", r.URL.Query().Get("forecast_days"))
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		assert.Contains(t, r.URL.Query().Get("current"), "wind_direction_10m")
		assert.Contains(t, r.URL.Query().Get("daily"), "precipitation_probability_max")

		_, _ = w.Write([]byte(berlinForecastFixture))
	}))
	defer server.Close()

	provider := NewOpenMeteoProvider(forecastTestConfig(server.URL))

	raw, err := provider.FetchForecast(models.Coordinates{Latitude: 52.52, Longitude: 13.42})

	require.NoError(t, err)
	require.NotNil(t, raw.Current)
	assert.Equal(t, 21.4, *raw.Current.Temperature2m)
	assert.Equal(t, 3, *raw.Current.WeatherCode)
	assert.Equal(t, 1, *raw.Current.IsDay)
	require.NotNil(t, raw.Daily)
	assert.Len(t, raw.Daily.Time, 3)
	assert.Equal(t, []int{61, 3, 0}, raw.Daily.WeatherCode)
	require.NotNil(t, raw.Hourly)
	assert.Equal(t, []float64{5, 10}, raw.Hourly.PrecipitationProbability)
	assert.Nil(t, raw.Main)
}

func TestOpenMeteoProvider_LegacyPayloadShape(t *testing.T) {
	legacy := `{
		"main": {"temp": 18.5, "feels_like": 17.0, "humidity": 72},
		"wind": {"speed": 9.7, "deg": 180},
		"rain": {"1h": 0.4},
		"dt": 1756468800
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(legacy))
	}))
	defer server.Close()

	provider := NewOpenMeteoProvider(forecastTestConfig(server.URL))

	raw, err := provider.FetchForecast(models.Coordinates{Latitude: 1, Longitude: 2})

	require.NoError(t, err)
	assert.Nil(t, raw.Current)
	require.NotNil(t, raw.Main)
	assert.Equal(t, 18.5, *raw.Main.Temp)
	require.NotNil(t, raw.Wind)
	assert.Equal(t, 180.0, *raw.Wind.Deg)
	assert.Equal(t, 0.4, raw.Rain["1h"])
	require.NotNil(t, raw.Dt)
	assert.Equal(t, int64(1756468800), *raw.Dt)
}

func TestOpenMeteoProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewOpenMeteoProvider(forecastTestConfig(server.URL))

	raw, err := provider.FetchForecast(models.Coordinates{Latitude: 1, Longitude: 2})

	assert.Nil(t, raw)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ProviderUnavailableError, appErr.Type)
}

func TestOpenMeteoProvider_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	provider := NewOpenMeteoProvider(forecastTestConfig(server.URL))

	raw, err := provider.FetchForecast(models.Coordinates{Latitude: 1, Longitude: 2})

	assert.Nil(t, raw)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ProviderUnavailableError, appErr.Type)
}

func TestOpenMeteoProvider_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	provider := NewOpenMeteoProvider(forecastTestConfig(server.URL))

	raw, err := provider.FetchForecast(models.Coordinates{Latitude: 1, Longitude: 2})

	assert.Nil(t, raw)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ProviderUnavailableError, appErr.Type)
}
