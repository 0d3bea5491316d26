package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"weatherdash.app/config"
	weathererr "weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/service"
	"weatherdash.app/units"
)

// Default projection windows when the query string omits them
const (
	defaultDailyDays   = 5
	defaultHourlyCount = 24
	maxHourlyCount     = 48
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	db             *gorm.DB
	config         *config.Config
	weatherService service.WeatherServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	db *gorm.DB,
	config *config.Config,
	weatherService service.WeatherServiceInterface,
) *Server {
	router := gin.Default()
	registerValidators()

	server := &Server{
		router:         router,
		db:             db,
		config:         config,
		weatherService: weatherService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/forecast/daily", s.getDailyForecast)
		api.GET("/forecast/hourly", s.getHourlyForecast)
		api.GET("/preferences", s.getPreferences)
		api.PUT("/preferences", s.updatePreferences)
		api.GET("/debug", s.debugEndpoint)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getWeather(c *gin.Context) {
	var req models.WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("invalid request format"))
		return
	}

	if (req.Lat == nil) != (req.Lon == nil) {
		s.handleError(c, weathererr.NewValidationError("lat and lon must be provided together"))
		return
	}

	input := service.QueryInput{
		City:       req.City,
		GeoFailure: req.GeoError,
	}
	if req.Lat != nil && req.Lon != nil {
		input.Coords = &models.Coordinates{Latitude: *req.Lat, Longitude: *req.Lon}
	}

	slog.Debug("Weather query received", "city", req.City, "hasCoords", input.Coords != nil, "geoError", req.GeoError)

	snapshot, err := s.weatherService.Query(input)
	if err != nil {
		slog.Error("Weather service error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.buildWeatherResponse(snapshot))
}

func (s *Server) getDailyForecast(c *gin.Context) {
	days, err := queryInt(c, "days", defaultDailyDays)
	if err != nil || days < 1 {
		s.handleError(c, weathererr.NewValidationError("days must be a positive integer"))
		return
	}

	window, svcErr := s.weatherService.DailyForecast(days)
	if svcErr != nil {
		s.handleError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily": window})
}

func (s *Server) getHourlyForecast(c *gin.Context) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		s.handleError(c, weathererr.NewValidationError("offset must be a non-negative integer"))
		return
	}

	count, err := queryInt(c, "count", defaultHourlyCount)
	if err != nil || count < 1 || count > maxHourlyCount {
		s.handleError(c, weathererr.NewValidationError(
			fmt.Sprintf("count must be between 1 and %d", maxHourlyCount)))
		return
	}

	window, svcErr := s.weatherService.HourlyForecast(offset, count)
	if svcErr != nil {
		s.handleError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hourly": window})
}

func (s *Server) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, s.weatherService.Preferences())
}

func (s *Server) updatePreferences(c *gin.Context) {
	var req models.PreferencesRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, weathererr.NewValidationError("invalid request format"))
		return
	}

	prefs, err := s.weatherService.UpdatePreferences(&req)
	if err != nil {
		slog.Error("Preferences update error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func (s *Server) debugEndpoint(c *gin.Context) {
	slog.Debug("Debug endpoint called")

	var prefsCount int64
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Model(&models.SessionPreferences{}).Count(&prefsCount).Error
	}

	snapshot := s.weatherService.CurrentSnapshot()

	response := gin.H{
		"state": s.weatherService.State(),
		"database": map[string]interface{}{
			"connected":        s.db != nil && dbErr == nil,
			"error":            errString(dbErr),
			"preferencesCount": prefsCount,
		},
		"snapshot": map[string]interface{}{
			"present":  snapshot != nil,
			"location": snapshotLocation(snapshot),
		},
		"config": map[string]interface{}{
			"providerBaseURL": s.config.Forecast.ProviderBaseURL,
			"geocodeBaseURL":  s.config.Forecast.GeocodeBaseURL,
			"prefsBackend":    s.config.Preferences.Backend,
		},
	}

	c.JSON(http.StatusOK, response)
}

// buildWeatherResponse attaches a presentation block with values converted to
// the session's display units. Snapshot values stay metric.
func (s *Server) buildWeatherResponse(snapshot *models.WeatherSnapshot) gin.H {
	prefs := s.weatherService.Preferences()

	temperature := snapshot.Current.TemperatureC
	feelsLike := snapshot.Current.FeelsLikeC
	if prefs.TemperatureUnit == models.UnitFahrenheit {
		temperature = units.CelsiusToFahrenheit(temperature)
		feelsLike = units.CelsiusToFahrenheit(feelsLike)
	}

	windSpeed := snapshot.Current.WindSpeedKmh
	if prefs.WindSpeedUnit == models.UnitMph {
		windSpeed = units.KmhToMph(windSpeed)
	}

	return gin.H{
		"snapshot": snapshot,
		"display": gin.H{
			"temperature":     temperature,
			"feelsLike":       feelsLike,
			"temperatureUnit": prefs.TemperatureUnit,
			"windSpeed":       windSpeed,
			"windSpeedUnit":   prefs.WindSpeedUnit,
			"windCompass":     snapshot.Current.WindCompass,
			"description":     snapshot.Current.ConditionCode.Description(),
			"icon":            snapshot.Current.ConditionCode.Icon(snapshot.Current.IsDay),
			"date":            units.FormatDate(snapshot.ObservedAt),
			"time":            units.FormatTime(snapshot.ObservedAt),
		},
	}
}

// handleError maps application errors to HTTP status codes
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.LocationNotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case weathererr.GeolocationDeniedError:
			statusCode = http.StatusForbidden
			message = appErr.Message
		case weathererr.GeolocationUnavailableError:
			statusCode = http.StatusServiceUnavailable
			message = appErr.Message
		case weathererr.ProviderUnavailableError, weathererr.MalformedPayloadError:
			statusCode = http.StatusBadGateway
			message = "Weather provider unavailable"
		case weathererr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func snapshotLocation(snapshot *models.WeatherSnapshot) string {
	if snapshot == nil {
		return ""
	}
	return snapshot.Location.DisplayName
}
