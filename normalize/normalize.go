// Package normalize converts raw provider payloads into canonical weather
// snapshots. All unit and shape differences between payload variants are
// absorbed here so downstream packages only ever see one model.
package normalize

import (
	"math"
	"sort"
	"time"

	"weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/providers"
	"weatherdash.app/units"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02T15:04"
)

// rainShowersThresholdPct marks an hour as rainy when the payload carries a
// precipitation probability but no per-hour weather code.
const rainShowersThresholdPct = 30

// fieldChain resolves one numeric field through an ordered list of payload
// paths. The first path that yields a value wins; later paths are never
// consulted. A chain that resolves nothing reports ok=false so callers can
// distinguish "payload said zero" from "payload said nothing".
type fieldChain struct {
	name  string
	paths []func(*providers.RawForecast) *float64
}

func (c fieldChain) resolve(raw *providers.RawForecast) (float64, bool) {
	for _, path := range c.paths {
		if v := path(raw); v != nil {
			return *v, true
		}
	}
	return 0, false
}

var (
	temperatureChain = fieldChain{
		name: "temperature",
		paths: []func(*providers.RawForecast) *float64{
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.Temperature2m
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Main != nil {
					return r.Main.Temp
				}
				return nil
			},
		},
	}

	feelsLikeChain = fieldChain{
		name: "feels_like",
		paths: []func(*providers.RawForecast) *float64{
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.ApparentTemperature
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Main != nil {
					return r.Main.FeelsLike
				}
				return nil
			},
		},
	}

	humidityChain = fieldChain{
		name: "humidity",
		paths: []func(*providers.RawForecast) *float64{
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.RelativeHumidity2m
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Main != nil {
					return r.Main.Humidity
				}
				return nil
			},
		},
	}

	windSpeedChain = fieldChain{
		name: "wind_speed",
		paths: []func(*providers.RawForecast) *float64{
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.WindSpeed10m
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Wind != nil {
					return r.Wind.Speed
				}
				return nil
			},
		},
	}

	windDirectionChain = fieldChain{
		name: "wind_direction",
		paths: []func(*providers.RawForecast) *float64{
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.WindDirection10m
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Wind != nil {
					return r.Wind.Deg
				}
				return nil
			},
		},
	}

	precipitationChain = fieldChain{
		name: "precipitation",
		paths: []func(*providers.RawForecast) *float64{
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.Precipitation
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Current != nil {
					return r.Current.Rain
				}
				return nil
			},
			func(r *providers.RawForecast) *float64 {
				if r.Rain != nil {
					if v, ok := r.Rain["1h"]; ok {
						return &v
					}
				}
				return nil
			},
		},
	}
)

// Normalizer builds WeatherSnapshots from raw provider payloads
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer using the wall clock
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Normalize converts a raw payload fetched for the given resolved location
// into a snapshot. pastDays is the trailing-history length of the request
// window and determines where calendar-today sits in the daily series.
func (n *Normalizer) Normalize(raw *providers.RawForecast, location models.ResolvedLocation, pastDays int) (*models.WeatherSnapshot, error) {
	if raw == nil {
		return nil, errors.NewMalformedPayloadError("forecast payload is empty")
	}
	if raw.Current == nil && raw.Main == nil {
		return nil, errors.NewMalformedPayloadError("forecast payload has no current conditions block")
	}

	current := n.normalizeCurrent(raw)

	daily, err := normalizeDaily(raw.Daily)
	if err != nil {
		return nil, err
	}

	hourly := normalizeHourly(raw.Hourly)

	todayIndex := pastDays
	if todayIndex >= len(daily) {
		todayIndex = len(daily) - 1
	}
	if todayIndex < 0 {
		todayIndex = 0
	}

	return &models.WeatherSnapshot{
		Location:     location,
		ObservedAt:   n.observedAt(raw),
		Current:      current,
		DailySeries:  daily,
		HourlySeries: hourly,
		TodayIndex:   todayIndex,
	}, nil
}

func (n *Normalizer) normalizeCurrent(raw *providers.RawForecast) models.CurrentConditions {
	temperature, _ := temperatureChain.resolve(raw)
	feelsLike, _ := feelsLikeChain.resolve(raw)
	humidity, _ := humidityChain.resolve(raw)
	windSpeed, _ := windSpeedChain.resolve(raw)
	precipitation, _ := precipitationChain.resolve(raw)

	// Wind direction keeps its absence visible: a missing direction must not
	// render as "N" (0 degrees), so the compass label carries the sentinel.
	windDirection, windDirectionOk := windDirectionChain.resolve(raw)
	compass := "N/A"
	directionDeg := 0
	if windDirectionOk {
		directionDeg = ((int(math.Round(windDirection)) % 360) + 360) % 360
		compass = units.DegreesToCompass(directionDeg)
	}

	condition := models.ConditionUnknown
	isDay := true
	if raw.Current != nil {
		if raw.Current.WeatherCode != nil {
			condition = models.ConditionFromCode(*raw.Current.WeatherCode)
		}
		if raw.Current.IsDay != nil {
			isDay = *raw.Current.IsDay == 1
		}
	}

	return models.CurrentConditions{
		TemperatureC:     temperature,
		FeelsLikeC:       feelsLike,
		HumidityPct:      clampPct(humidity),
		WindSpeedKmh:     windSpeed,
		WindDirectionDeg: directionDeg,
		WindCompass:      compass,
		PrecipitationMm:  precipitation,
		ConditionCode:    condition,
		IsDay:            isDay,
	}
}

func (n *Normalizer) observedAt(raw *providers.RawForecast) time.Time {
	if raw.Current != nil && raw.Current.Time != nil {
		if ts, err := time.ParseInLocation(timeLayout, *raw.Current.Time, time.Local); err == nil {
			return ts
		}
	}
	if raw.Dt != nil {
		return time.Unix(*raw.Dt, 0)
	}
	return n.now()
}

func normalizeDaily(daily *providers.RawDaily) ([]models.DailyEntry, error) {
	if daily == nil {
		return nil, errors.NewMalformedPayloadError("forecast payload has no daily block")
	}

	count := len(daily.Time)
	if count == 0 || len(daily.Temperature2mMax) != count || len(daily.Temperature2mMin) != count {
		return nil, errors.NewMalformedPayloadError("daily forecast arrays are missing or misaligned")
	}

	entries := make([]models.DailyEntry, 0, count)
	seen := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		if seen[daily.Time[i]] {
			continue
		}
		seen[daily.Time[i]] = true

		date, err := time.ParseInLocation(dateLayout, daily.Time[i], time.Local)
		if err != nil {
			return nil, errors.NewMalformedPayloadError("daily forecast has an unparseable date")
		}

		entry := models.DailyEntry{
			Date:     date,
			TempMinC: daily.Temperature2mMin[i],
			TempMaxC: daily.Temperature2mMax[i],
		}
		if i < len(daily.WeatherCode) {
			entry.ConditionCode = models.ConditionFromCode(daily.WeatherCode[i])
		} else {
			entry.ConditionCode = models.ConditionUnknown
		}
		if i < len(daily.PrecipitationProbabilityMax) {
			entry.PrecipitationProbabilityPct = clampPct(daily.PrecipitationProbabilityMax[i])
		}
		if i < len(daily.PrecipitationSum) {
			entry.PrecipitationSumMm = daily.PrecipitationSum[i]
		}
		if i < len(daily.Sunrise) {
			if ts, err := time.ParseInLocation(timeLayout, daily.Sunrise[i], time.Local); err == nil {
				entry.Sunrise = ts
			}
		}
		if i < len(daily.Sunset) {
			if ts, err := time.ParseInLocation(timeLayout, daily.Sunset[i], time.Local); err == nil {
				entry.Sunset = ts
			}
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	return entries, nil
}

func normalizeHourly(hourly *providers.RawHourly) []models.HourlyEntry {
	if hourly == nil {
		return nil
	}

	count := len(hourly.Time)
	if len(hourly.Temperature2m) < count {
		count = len(hourly.Temperature2m)
	}

	entries := make([]models.HourlyEntry, 0, count)
	for i := 0; i < count; i++ {
		ts, err := time.ParseInLocation(timeLayout, hourly.Time[i], time.Local)
		if err != nil {
			continue
		}

		entry := models.HourlyEntry{
			Timestamp: ts,
			TempC:     hourly.Temperature2m[i],
		}
		if i < len(hourly.PrecipitationProbability) {
			entry.PrecipitationProbabilityPct = clampPct(hourly.PrecipitationProbability[i])
		}
		entry.ConditionCode = hourlyCondition(hourly, i, entry.PrecipitationProbabilityPct)

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return entries
}

// hourlyCondition prefers the per-hour weather code; when the payload omits
// hourly codes the condition is derived from the precipitation probability.
func hourlyCondition(hourly *providers.RawHourly, i, precipPct int) models.Condition {
	if i < len(hourly.WeatherCode) {
		return models.ConditionFromCode(hourly.WeatherCode[i])
	}
	if precipPct > rainShowersThresholdPct {
		return models.ConditionRain
	}
	return models.ConditionClear
}

func clampPct(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
