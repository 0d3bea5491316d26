package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
	apperrors "weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/service"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Query(input service.QueryInput) (*models.WeatherSnapshot, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeatherSnapshot), args.Error(1)
}

func (m *MockWeatherService) State() service.QueryState {
	return m.Called().Get(0).(service.QueryState)
}

func (m *MockWeatherService) CurrentSnapshot() *models.WeatherSnapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.WeatherSnapshot)
}

func (m *MockWeatherService) Preferences() *models.SessionPreferences {
	return m.Called().Get(0).(*models.SessionPreferences)
}

func (m *MockWeatherService) UpdatePreferences(req *models.PreferencesRequest) (*models.SessionPreferences, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionPreferences), args.Error(1)
}

func (m *MockWeatherService) DailyForecast(days int) ([]models.DailyForecast, error) {
	args := m.Called(days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyForecast), args.Error(1)
}

func (m *MockWeatherService) HourlyForecast(offsetHours, count int) ([]models.HourlyForecast, error) {
	args := m.Called(offsetHours, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HourlyForecast), args.Error(1)
}

func testSnapshot() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Location: models.ResolvedLocation{
			Latitude:    52.52,
			Longitude:   13.42,
			DisplayName: "Berlin",
			CountryCode: "DE",
		},
		ObservedAt: time.Date(2026, 8, 29, 14, 0, 0, 0, time.Local),
		Current: models.CurrentConditions{
			TemperatureC:  21.4,
			FeelsLikeC:    20.9,
			HumidityPct:   58,
			WindSpeedKmh:  12.3,
			WindCompass:   "SW",
			ConditionCode: models.ConditionCloudy,
			IsDay:         true,
		},
		TodayIndex: 7,
	}
}

func setupTestServer(svc service.WeatherServiceInterface) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Forecast: config.ForecastConfig{
			ProviderBaseURL: "https://api.open-meteo.com/v1",
			GeocodeBaseURL:  "https://nominatim.openstreetmap.org",
			PastDays:        7,
			ForecastDays:    14,
		},
		Preferences: config.PreferencesConfig{Backend: "db"},
	}
	return NewServer(nil, cfg, svc)
}

func performRequest(server *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, req)
	return w
}

func TestGetWeather_City(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("Query", service.QueryInput{City: "Berlin"}).Return(testSnapshot(), nil)
	svc.On("Preferences").Return(models.DefaultPreferences())

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?city=Berlin", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Berlin"`)
	assert.Contains(t, w.Body.String(), `"display"`)
	assert.Contains(t, w.Body.String(), `"cloudy"`)
	svc.AssertExpectations(t)
}

func TestGetWeather_FahrenheitDisplay(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("Query", mock.Anything).Return(testSnapshot(), nil)
	svc.On("Preferences").Return(&models.SessionPreferences{
		LastCityName:    "Berlin",
		TemperatureUnit: models.UnitFahrenheit,
		WindSpeedUnit:   models.UnitMph,
	})

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?city=Berlin", "")

	require.Equal(t, http.StatusOK, w.Code)
	// 21.4C rounds to 71F
	assert.Contains(t, w.Body.String(), `"temperature":71`)
	assert.Contains(t, w.Body.String(), `"temperatureUnit":"F"`)
}

func TestGetWeather_Coordinates(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("Query", mock.MatchedBy(func(input service.QueryInput) bool {
		return input.Coords != nil && input.Coords.Latitude == 51.05 && input.Coords.Longitude == 3.72
	})).Return(testSnapshot(), nil)
	svc.On("Preferences").Return(models.DefaultPreferences())

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?lat=51.05&lon=3.72", "")

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetWeather_LatWithoutLon(t *testing.T) {
	svc := new(MockWeatherService)

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?lat=51.05", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Query")
}

func TestGetWeather_LatitudeOutOfRange(t *testing.T) {
	svc := new(MockWeatherService)

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?lat=95&lon=3.72", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Query")
}

func TestGetWeather_InvalidGeoError(t *testing.T) {
	svc := new(MockWeatherService)

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?geo_error=lost", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Query")
}

func TestGetWeather_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"LocationNotFound", apperrors.NewLocationNotFoundError("no results for city"), http.StatusNotFound},
		{"Validation", apperrors.NewValidationError("city cannot be empty"), http.StatusBadRequest},
		{"ProviderUnavailable", apperrors.NewProviderUnavailableError("upstream down", nil), http.StatusBadGateway},
		{"MalformedPayload", apperrors.NewMalformedPayloadError("bad payload"), http.StatusBadGateway},
		{"GeolocationDenied", apperrors.NewGeolocationDeniedError("denied"), http.StatusForbidden},
		{"GeolocationUnavailable", apperrors.NewGeolocationUnavailableError("unavailable"), http.StatusServiceUnavailable},
		{"Database", apperrors.NewDatabaseError("db down", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockWeatherService)
			svc.On("Query", mock.Anything).Return(nil, tt.err)

			w := performRequest(setupTestServer(svc), http.MethodGet, "/api/weather?city=x", "")

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetDailyForecast(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("DailyForecast", 5).Return([]models.DailyForecast{
		{DayLabel: "Today", TempMaxC: 22, ConditionCode: models.ConditionCloudy},
	}, nil)

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/forecast/daily", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Today"`)
	svc.AssertExpectations(t)
}

func TestGetDailyForecast_InvalidDays(t *testing.T) {
	svc := new(MockWeatherService)

	for _, path := range []string{"/api/forecast/daily?days=abc", "/api/forecast/daily?days=0"} {
		w := performRequest(setupTestServer(svc), http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	svc.AssertNotCalled(t, "DailyForecast")
}

func TestGetHourlyForecast(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("HourlyForecast", 6, 12).Return([]models.HourlyForecast{
		{HourLabel: "8 PM", TempC: 18},
	}, nil)

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/forecast/hourly?offset=6&count=12", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"8 PM"`)
	svc.AssertExpectations(t)
}

func TestGetHourlyForecast_CountBounds(t *testing.T) {
	svc := new(MockWeatherService)

	for _, path := range []string{
		"/api/forecast/hourly?count=0",
		"/api/forecast/hourly?count=49",
		"/api/forecast/hourly?offset=-1",
	} {
		w := performRequest(setupTestServer(svc), http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	svc.AssertNotCalled(t, "HourlyForecast")
}

func TestGetPreferences(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("Preferences").Return(models.DefaultPreferences())

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/preferences", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"New York"`)
}

func TestUpdatePreferences(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("UpdatePreferences", &models.PreferencesRequest{TemperatureUnit: "F"}).Return(&models.SessionPreferences{
		LastCityName:    "New York",
		TemperatureUnit: models.UnitFahrenheit,
		WindSpeedUnit:   models.UnitKmh,
	}, nil)

	w := performRequest(setupTestServer(svc), http.MethodPut, "/api/preferences", `{"temperatureUnit":"F"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"temperatureUnit":"F"`)
	svc.AssertExpectations(t)
}

func TestUpdatePreferences_InvalidUnit(t *testing.T) {
	svc := new(MockWeatherService)

	w := performRequest(setupTestServer(svc), http.MethodPut, "/api/preferences", `{"temperatureUnit":"K"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdatePreferences")
}

func TestDebugEndpoint(t *testing.T) {
	svc := new(MockWeatherService)
	svc.On("State").Return(service.StateReady)
	svc.On("CurrentSnapshot").Return(testSnapshot())

	w := performRequest(setupTestServer(svc), http.MethodGet, "/api/debug", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready"`)
	assert.Contains(t, w.Body.String(), `"Berlin"`)
}
