package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// Field lists requested from the forecast endpoint. The hourly list carries
// no weather_code on purpose: the historical payload never included it and
// the normalizer derives hourly conditions when it is absent.
var (
	currentFields = "temperature_2m,relative_humidity_2m,is_day,apparent_temperature,precipitation,rain,wind_speed_10m,wind_direction_10m"
	hourlyFields  = "temperature_2m,precipitation_probability"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset,precipitation_sum,precipitation_probability_max"
)

// OpenMeteoProvider implements ForecastProvider for the Open-Meteo API
type OpenMeteoProvider struct {
	baseURL      string
	pastDays     int
	forecastDays int
	client       *http.Client
}

// NewOpenMeteoProvider creates a new Open-Meteo provider. The request window
// is fixed at construction: pastDays of trailing history plus forecastDays of
// forward horizon, so the normalizer can build a correct next-24h slice.
func NewOpenMeteoProvider(config *config.ForecastConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL:      config.ProviderBaseURL,
		pastDays:     config.PastDays,
		forecastDays: config.ForecastDays,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchForecast retrieves the raw forecast payload for resolved coordinates.
// A single attempt per call: transport errors and non-2xx responses are
// terminal for this request.
func (p *OpenMeteoProvider) FetchForecast(coords models.Coordinates) (*RawForecast, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	query.Set("current", currentFields)
	query.Set("hourly", hourlyFields)
	query.Set("daily", dailyFields)
	query.Set("timezone", "auto")
	query.Set("past_days", strconv.Itoa(p.pastDays))
	query.Set("forecast_days", strconv.Itoa(p.forecastDays))

	requestURL := fmt.Sprintf("%s/forecast?%s", p.baseURL, query.Encode())

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewProviderUnavailableError("failed to fetch forecast data", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Ignore close error as it's not critical for the main operation
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewProviderUnavailableError(
			fmt.Sprintf("forecast API returned status code %d", resp.StatusCode), nil)
	}

	var raw RawForecast
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.NewProviderUnavailableError("failed to decode forecast data", err)
	}

	return &raw, nil
}

// PastDays returns the trailing-history length of the fixed request window
func (p *OpenMeteoProvider) PastDays() int {
	return p.pastDays
}
