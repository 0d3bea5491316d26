// Package forecast derives read-only display windows from weather snapshots.
// Projections never mutate the snapshot and never fail: out-of-range windows
// collapse to empty slices.
package forecast

import (
	"time"

	"weatherdash.app/models"
	"weatherdash.app/units"
)

// Daytime icon hours for series entries that carry no day/night flag
const (
	daytimeStartHour = 6
	daytimeEndHour   = 20
)

// DailyWindow projects up to count days starting at calendar-today.
// Trailing past days in the series are skipped, so the first returned entry
// is always today (or the closest available day when the series is shorter
// than the requested window position).
func DailyWindow(snapshot *models.WeatherSnapshot, count int) []models.DailyForecast {
	if snapshot == nil || count <= 0 || len(snapshot.DailySeries) == 0 {
		return nil
	}

	start := snapshot.TodayIndex
	if start < 0 {
		start = 0
	}
	if start >= len(snapshot.DailySeries) {
		return nil
	}

	end := start + count
	if end > len(snapshot.DailySeries) {
		end = len(snapshot.DailySeries)
	}

	window := make([]models.DailyForecast, 0, end-start)
	for i, entry := range snapshot.DailySeries[start:end] {
		label := units.DayOfWeek(entry.Date)
		if i == 0 {
			label = "Today"
		}

		window = append(window, models.DailyForecast{
			Date:                        entry.Date,
			DayLabel:                    label,
			TempMinC:                    entry.TempMinC,
			TempMaxC:                    entry.TempMaxC,
			ConditionCode:               entry.ConditionCode,
			Description:                 entry.ConditionCode.Description(),
			Icon:                        entry.ConditionCode.Icon(true),
			PrecipitationProbabilityPct: entry.PrecipitationProbabilityPct,
		})
	}

	return window
}

// HourlyWindow projects up to count hours starting at the first hour at or
// after the snapshot's observation time shifted by offsetHours. An offset
// beyond the end of the series yields an empty window, never an error.
func HourlyWindow(snapshot *models.WeatherSnapshot, offsetHours, count int) []models.HourlyForecast {
	if snapshot == nil || offsetHours < 0 || count <= 0 || len(snapshot.HourlySeries) == 0 {
		return nil
	}

	cutoff := snapshot.ObservedAt.Add(time.Duration(offsetHours) * time.Hour)

	start := len(snapshot.HourlySeries)
	for i, entry := range snapshot.HourlySeries {
		if !entry.Timestamp.Before(cutoff) {
			start = i
			break
		}
	}
	if start >= len(snapshot.HourlySeries) {
		return nil
	}

	end := start + count
	if end > len(snapshot.HourlySeries) {
		end = len(snapshot.HourlySeries)
	}

	window := make([]models.HourlyForecast, 0, end-start)
	for _, entry := range snapshot.HourlySeries[start:end] {
		hour := entry.Timestamp.Hour()
		isDay := hour >= daytimeStartHour && hour < daytimeEndHour

		window = append(window, models.HourlyForecast{
			Timestamp:                   entry.Timestamp,
			HourLabel:                   units.FormatHour(entry.Timestamp),
			TempC:                       entry.TempC,
			ConditionCode:               entry.ConditionCode,
			Icon:                        entry.ConditionCode.Icon(isDay),
			PrecipitationProbabilityPct: entry.PrecipitationProbabilityPct,
		})
	}

	return window
}
