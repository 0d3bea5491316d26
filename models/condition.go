package models

// Condition is the closed set of weather condition categories the display
// layer selects icons and animations from.
type Condition string

const (
	ConditionClear           Condition = "Clear"
	ConditionMainlyClear     Condition = "Mainly Clear"
	ConditionPartlyCloudy    Condition = "Partly Cloudy"
	ConditionCloudy          Condition = "Cloudy"
	ConditionFog             Condition = "Fog"
	ConditionDrizzle         Condition = "Drizzle"
	ConditionFreezingDrizzle Condition = "Freezing Drizzle"
	ConditionRain            Condition = "Rain"
	ConditionFreezingRain    Condition = "Freezing Rain"
	ConditionSnow            Condition = "Snow"
	ConditionSnowGrains      Condition = "Snow Grains"
	ConditionRainShowers     Condition = "Rain Showers"
	ConditionSnowShowers     Condition = "Snow Showers"
	ConditionThunderstorm    Condition = "Thunderstorm"
	ConditionUnknown         Condition = "Unknown"
)

// conditionByCode maps WMO weather interpretation codes (WW) to conditions.
// https://open-meteo.com/en/docs
var conditionByCode = map[int]Condition{
	0:  ConditionClear,
	1:  ConditionMainlyClear,
	2:  ConditionPartlyCloudy,
	3:  ConditionCloudy,
	45: ConditionFog,
	48: ConditionFog,
	51: ConditionDrizzle,
	53: ConditionDrizzle,
	55: ConditionDrizzle,
	56: ConditionFreezingDrizzle,
	57: ConditionFreezingDrizzle,
	61: ConditionRain,
	63: ConditionRain,
	65: ConditionRain,
	66: ConditionFreezingRain,
	67: ConditionFreezingRain,
	71: ConditionSnow,
	73: ConditionSnow,
	75: ConditionSnow,
	77: ConditionSnowGrains,
	80: ConditionRainShowers,
	81: ConditionRainShowers,
	82: ConditionRainShowers,
	85: ConditionSnowShowers,
	86: ConditionSnowShowers,
	95: ConditionThunderstorm,
	96: ConditionThunderstorm,
	99: ConditionThunderstorm,
}

// ConditionFromCode maps a provider weather code to a condition category.
// Total over all integers: codes outside the documented ranges map to Unknown.
func ConditionFromCode(code int) Condition {
	if cond, ok := conditionByCode[code]; ok {
		return cond
	}
	return ConditionUnknown
}

// Description returns the lower-cased display text for the condition
func (c Condition) Description() string {
	switch c {
	case ConditionClear:
		return "clear"
	case ConditionMainlyClear:
		return "mainly clear"
	case ConditionPartlyCloudy:
		return "partly cloudy"
	case ConditionCloudy:
		return "cloudy"
	case ConditionFog:
		return "fog"
	case ConditionDrizzle:
		return "drizzle"
	case ConditionFreezingDrizzle:
		return "freezing drizzle"
	case ConditionRain:
		return "rain"
	case ConditionFreezingRain:
		return "freezing rain"
	case ConditionSnow:
		return "snow"
	case ConditionSnowGrains:
		return "snow grains"
	case ConditionRainShowers:
		return "rain showers"
	case ConditionSnowShowers:
		return "snow showers"
	case ConditionThunderstorm:
		return "thunderstorm"
	default:
		return "unknown"
	}
}

// Icon returns an OpenWeatherMap-compatible icon code for the condition,
// the format the display layer's icon set was originally built around.
func (c Condition) Icon(isDay bool) string {
	suffix := "n"
	if isDay {
		suffix = "d"
	}

	switch c {
	case ConditionClear:
		return "01" + suffix
	case ConditionMainlyClear, ConditionPartlyCloudy:
		return "02" + suffix
	case ConditionCloudy:
		return "03" + suffix
	case ConditionFog:
		return "50" + suffix
	case ConditionDrizzle, ConditionFreezingDrizzle:
		return "09" + suffix
	case ConditionRain, ConditionFreezingRain, ConditionRainShowers:
		return "10" + suffix
	case ConditionSnow, ConditionSnowGrains, ConditionSnowShowers:
		return "13" + suffix
	case ConditionThunderstorm:
		return "11" + suffix
	default:
		return "50" + suffix
	}
}
