package forecast

import (
	"math"
	"time"
)

// wmoEntry pairs a human description with a display icon for a WMO weather
// interpretation code.
type wmoEntry struct {
	Desc string
	Icon string
}

var wmoTable = map[int]wmoEntry{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Rime fog", "🌫️"},
	51: {"Light drizzle", "🌧️"},
	53: {"Drizzle", "🌧️"},
	55: {"Heavy drizzle", "🌧️"},
	56: {"Freezing drizzle", "🌧️"},
	57: {"Heavy freezing drizzle", "🌧️"},
	61: {"Light rain", "🌧️"},
	63: {"Rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "🌧️"},
	71: {"Light snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Heavy snow", "🌨️"},
	77: {"Snow grains", "🌨️"},
	80: {"Light showers", "🌦️"},
	81: {"Showers", "🌧️"},
	82: {"Heavy showers", "🌧️"},
	85: {"Light snow showers", "🌨️"},
	86: {"Heavy snow showers", "🌨️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"T-storm + hail", "⛈️"},
	99: {"Severe t-storm", "⛈️"},
}

// WMOInfo returns the description and icon for a weather code. Unknown codes
// read as overcast.
func WMOInfo(code int) (desc, icon string) {
	e, ok := wmoTable[code]
	if !ok {
		e = wmoTable[3]
	}
	return e.Desc, e.Icon
}

var compassDirs = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Compass buckets a wind direction into 8 compass points. Periodic mod 360,
// so 359° and 1° both bucket to N.
func Compass(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return compassDirs[int(math.Round(d/45))%8]
}

// compassOrAbsent formats an optional wind direction.
func compassOrAbsent(deg NullFloat64) string {
	if !deg.HasValue {
		return "--"
	}
	return Compass(deg.Value)
}

// FreezingLevel estimates the freezing level in metres from a site's high
// temperature and elevation using the standard atmospheric lapse rate
// (6.5°C per 1000m).
func FreezingLevel(tempC float64, elevM int) int {
	return int(math.Round(float64(elevM) + tempC/6.5*1000))
}

// FormatDate renders a YYYY-MM-DD date as e.g. "Sun, Mar 1".
func FormatDate(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2")
}

// WeekdayName returns the full weekday name for a YYYY-MM-DD date.
func WeekdayName(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
