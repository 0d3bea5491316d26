package providers

// RawForecast is the undecoded provider payload handed to the normalizer.
// It tolerates two top-level shapes at once: the primary nested blocks
// (current/hourly/daily) and the legacy flat fields (main/wind/rain/dt) the
// display layer historically consumed. Every field is optional; the
// normalizer's fallback chains decide which path wins.
type RawForecast struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`

	Current *RawCurrent `json:"current,omitempty"`
	Daily   *RawDaily   `json:"daily,omitempty"`
	Hourly  *RawHourly  `json:"hourly,omitempty"`

	// Legacy flat shape
	Main *RawMain           `json:"main,omitempty"`
	Wind *RawWind           `json:"wind,omitempty"`
	Rain map[string]float64 `json:"rain,omitempty"`
	Dt   *int64             `json:"dt,omitempty"`
}

// RawCurrent is the primary current-conditions block
type RawCurrent struct {
	Time                *string  `json:"time,omitempty"`
	Temperature2m       *float64 `json:"temperature_2m,omitempty"`
	RelativeHumidity2m  *float64 `json:"relative_humidity_2m,omitempty"`
	ApparentTemperature *float64 `json:"apparent_temperature,omitempty"`
	IsDay               *int     `json:"is_day,omitempty"`
	Precipitation       *float64 `json:"precipitation,omitempty"`
	Rain                *float64 `json:"rain,omitempty"`
	Showers             *float64 `json:"showers,omitempty"`
	Snowfall            *float64 `json:"snowfall,omitempty"`
	WindSpeed10m        *float64 `json:"wind_speed_10m,omitempty"`
	WindDirection10m    *float64 `json:"wind_direction_10m,omitempty"`
	WeatherCode         *int     `json:"weather_code,omitempty"`
}

// RawDaily holds the per-day parallel arrays
type RawDaily struct {
	Time                        []string  `json:"time,omitempty"`
	WeatherCode                 []int     `json:"weather_code,omitempty"`
	Temperature2mMax            []float64 `json:"temperature_2m_max,omitempty"`
	Temperature2mMin            []float64 `json:"temperature_2m_min,omitempty"`
	Sunrise                     []string  `json:"sunrise,omitempty"`
	Sunset                      []string  `json:"sunset,omitempty"`
	PrecipitationSum            []float64 `json:"precipitation_sum,omitempty"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max,omitempty"`
}

// RawHourly holds the per-hour parallel arrays
type RawHourly struct {
	Time                     []string  `json:"time,omitempty"`
	Temperature2m            []float64 `json:"temperature_2m,omitempty"`
	PrecipitationProbability []float64 `json:"precipitation_probability,omitempty"`
	WeatherCode              []int     `json:"weather_code,omitempty"`
}

// RawMain is the legacy flat current-conditions block
type RawMain struct {
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Pressure  *float64 `json:"pressure,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
}

// RawWind is the legacy flat wind block
type RawWind struct {
	Speed *float64 `json:"speed,omitempty"`
	Deg   *float64 `json:"deg,omitempty"`
}
