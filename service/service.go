// Package service implements the weather query façade: one entry point that
// resolves, fetches, normalizes and publishes weather snapshots.
package service

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"weatherdash.app/errors"
	"weatherdash.app/forecast"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
	"weatherdash.app/providers"
	"weatherdash.app/repository"
)

// QueryState is the observable lifecycle state of the façade
type QueryState string

const (
	StateIdle        QueryState = "idle"
	StateResolving   QueryState = "resolving"
	StateFetching    QueryState = "fetching"
	StateNormalizing QueryState = "normalizing"
	StateReady       QueryState = "ready"
	StateFailed      QueryState = "failed"
)

// Geolocation failure modes reported by the display layer
const (
	GeoFailureDenied      = "denied"
	GeoFailureUnavailable = "unavailable"
)

// QueryInput describes one weather query. Exactly one of City or Coords is
// normally set; GeoFailure marks a query where the display layer asked for
// device location and could not get it.
type QueryInput struct {
	City       string
	Coords     *models.Coordinates
	GeoFailure string
}

// WeatherService coordinates the resolve-fetch-normalize pipeline and owns
// the shared snapshot state. Concurrent queries are serialized by outcome,
// not by execution: every query runs to completion, but only the most
// recently issued one may publish its result. Stale results are dropped.
type WeatherService struct {
	resolver   LocationResolver
	provider   providers.ForecastProvider
	normalizer SnapshotNormalizer
	prefsRepo  repository.PreferencesRepository
	metrics    *metrics.QueryMetrics
	pastDays   int

	seq atomic.Uint64

	mu       sync.RWMutex
	state    QueryState
	snapshot *models.WeatherSnapshot
}

// NewWeatherService creates the query façade. pastDays must match the
// provider's request window so today is located correctly in daily series.
func NewWeatherService(
	resolver LocationResolver,
	provider providers.ForecastProvider,
	normalizer SnapshotNormalizer,
	prefsRepo repository.PreferencesRepository,
	queryMetrics *metrics.QueryMetrics,
	pastDays int,
) *WeatherService {
	return &WeatherService{
		resolver:   resolver,
		provider:   provider,
		normalizer: normalizer,
		prefsRepo:  prefsRepo,
		metrics:    queryMetrics,
		pastDays:   pastDays,
		state:      StateIdle,
	}
}

// Query runs the full pipeline for one input and returns its result to the
// caller. The shared snapshot and session preferences are only updated when
// this query is still the most recently issued one at completion time.
func (s *WeatherService) Query(input QueryInput) (*models.WeatherSnapshot, error) {
	seq := s.seq.Add(1)
	queryID := uuid.New().String()
	log.Printf("[DEBUG] WeatherService.Query started: id=%s seq=%d input=%+v\n", queryID, seq, input)

	snapshot, err := s.runPipeline(seq, input)

	if !s.publish(seq, snapshot, err) {
		log.Printf("[DEBUG] Query superseded, dropping result: id=%s seq=%d\n", queryID, seq)
		s.metrics.RecordSuperseded()
		return snapshot, err
	}

	if err != nil {
		log.Printf("[ERROR] Query failed: id=%s seq=%d error=%v\n", queryID, seq, err)
		s.metrics.RecordFailure()
		return nil, err
	}

	s.persistLastCity(snapshot.Location.DisplayName)
	s.metrics.RecordSuccess()
	log.Printf("[DEBUG] Query ready: id=%s seq=%d location=%s\n", queryID, seq, snapshot.Location.DisplayName)
	return snapshot, nil
}

func (s *WeatherService) runPipeline(seq uint64, input QueryInput) (*models.WeatherSnapshot, error) {
	s.transition(seq, StateResolving)
	location, err := s.resolveInput(input)
	if err != nil {
		return nil, err
	}

	s.transition(seq, StateFetching)
	start := time.Now()
	raw, err := s.provider.FetchForecast(location.Coordinates())
	s.metrics.RecordProviderLatency("open-meteo", time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	s.transition(seq, StateNormalizing)
	return s.normalizer.Normalize(raw, *location, s.pastDays)
}

// resolveInput picks the resolution path. A geolocation failure falls back
// to the last successfully resolved city rather than surfacing an error, so
// the dashboard always has something to show.
func (s *WeatherService) resolveInput(input QueryInput) (*models.ResolvedLocation, error) {
	if input.GeoFailure != "" {
		if input.GeoFailure != GeoFailureDenied && input.GeoFailure != GeoFailureUnavailable {
			return nil, errors.NewValidationError("geo_error must be 'denied' or 'unavailable'")
		}
		fallbackCity := s.prefsRepo.Load().LastCityName
		log.Printf("[DEBUG] Geolocation %s, falling back to last city: %s\n", input.GeoFailure, fallbackCity)
		return s.resolver.ResolveCity(fallbackCity)
	}

	if input.Coords != nil {
		return s.resolver.ResolveCoordinates(*input.Coords)
	}

	city := input.City
	if city == "" {
		city = s.prefsRepo.Load().LastCityName
	}
	return s.resolver.ResolveCity(city)
}

// publish applies a finished query's result to the shared state. The
// sequence check and the write happen under the same lock, so a stale query
// can never overwrite a result a newer query published in between. Reports
// whether the result was applied.
func (s *WeatherService) publish(seq uint64, snapshot *models.WeatherSnapshot, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		return false
	}

	if err != nil {
		s.state = StateFailed
	} else {
		s.state = StateReady
		s.snapshot = snapshot
	}
	return true
}

// transition publishes an intermediate state, unless a newer query has
// already been issued
func (s *WeatherService) transition(seq uint64, state QueryState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() {
		return
	}
	s.state = state
}

func (s *WeatherService) persistLastCity(cityName string) {
	if cityName == "" {
		return
	}
	prefs := s.prefsRepo.Load()
	prefs.LastCityName = cityName
	if err := s.prefsRepo.Save(prefs); err != nil {
		log.Printf("[ERROR] Failed to persist last city: %v\n", err)
	}
}

// State returns the current lifecycle state
func (s *WeatherService) State() QueryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentSnapshot returns the most recently published snapshot, or nil when
// no query has succeeded yet
func (s *WeatherService) CurrentSnapshot() *models.WeatherSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Preferences returns the stored session preferences
func (s *WeatherService) Preferences() *models.SessionPreferences {
	return s.prefsRepo.Load()
}

// UpdatePreferences applies a partial preferences update and returns the
// stored result. Empty fields keep their current values.
func (s *WeatherService) UpdatePreferences(req *models.PreferencesRequest) (*models.SessionPreferences, error) {
	prefs := s.prefsRepo.Load()

	if req.LastCityName != "" {
		prefs.LastCityName = req.LastCityName
	}
	if req.TemperatureUnit != "" {
		prefs.TemperatureUnit = req.TemperatureUnit
	}
	if req.WindSpeedUnit != "" {
		prefs.WindSpeedUnit = req.WindSpeedUnit
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	if err := s.prefsRepo.Save(prefs); err != nil {
		return nil, errors.NewDatabaseError("failed to save preferences", err)
	}

	return prefs, nil
}

// DailyForecast projects a daily window from the current snapshot, querying
// the last city first when no snapshot has been published yet
func (s *WeatherService) DailyForecast(days int) ([]models.DailyForecast, error) {
	snapshot, err := s.ensureSnapshot()
	if err != nil {
		return nil, err
	}
	return forecast.DailyWindow(snapshot, days), nil
}

// HourlyForecast projects an hourly window from the current snapshot,
// querying the last city first when no snapshot has been published yet
func (s *WeatherService) HourlyForecast(offsetHours, count int) ([]models.HourlyForecast, error) {
	snapshot, err := s.ensureSnapshot()
	if err != nil {
		return nil, err
	}
	return forecast.HourlyWindow(snapshot, offsetHours, count), nil
}

// RefreshLastCity re-runs the pipeline for the last resolved city. Used by
// the background refresh scheduler.
func (s *WeatherService) RefreshLastCity() error {
	_, err := s.Query(QueryInput{})
	return err
}

func (s *WeatherService) ensureSnapshot() (*models.WeatherSnapshot, error) {
	if snapshot := s.CurrentSnapshot(); snapshot != nil {
		return snapshot, nil
	}
	return s.Query(QueryInput{})
}
