package forecast

import (
	"fmt"
	"math"
	"strings"
)

// SummaryLine is the one-line condition summary for a day card.
func SummaryLine(d DayForecast) string {
	parts := []string{d.WeatherDesc}
	if d.Mountain.SnowCM > 0 {
		parts = append(parts, fmt.Sprintf("%.1fcm snow", d.Mountain.SnowCM))
	}
	if d.Mountain.WindMaxKmh > 20 {
		parts = append(parts, fmt.Sprintf("winds %d km/h", d.Mountain.WindMaxKmh))
	}
	return strings.Join(parts, ", ")
}

// BackcountryNote composes terrain advice from cloud cover, new snow, wind
// and temperature. Threshold categories are evaluated independently.
func BackcountryNote(d DayForecast) string {
	var notes []string
	cloud := d.AvgCloudPct
	snow := d.Mountain.SnowCM
	wind := d.Mountain.WindMaxKmh
	high := d.Mountain.HighC

	switch {
	case cloud < 30:
		notes = append(notes, "Excellent visibility for alpine objectives. Good day for bigger terrain.")
	case cloud > 80:
		notes = append(notes, "Flat light likely in alpine. Favour treed terrain and lower-angle runs.")
	default:
		notes = append(notes, "Variable visibility through the day.")
	}

	switch {
	case snow > 15:
		notes = append(notes, fmt.Sprintf("Heavy snowfall (%.1fcm) — deep powder potential but limited vis. Stick to familiar zones.", snow))
	case snow > 5:
		notes = append(notes, fmt.Sprintf("Fresh snow (%.1fcm) for good turns in sheltered terrain.", snow))
	case snow > 0:
		notes = append(notes, fmt.Sprintf("Light snow (%.1fcm). Existing surfaces refreshed.", snow))
	default:
		notes = append(notes, "No new snow. Look for wind-sheltered aspects where soft snow remains.")
	}

	switch {
	case wind > 25:
		notes = append(notes, fmt.Sprintf("Strong winds (%d km/h %s) — significant wind effect at ridgeline.", wind, d.Mountain.WindDir))
	case wind > 15:
		notes = append(notes, fmt.Sprintf("Moderate winds (%d km/h %s) — some wind loading on lee features.", wind, d.Mountain.WindDir))
	}

	if high > 2 {
		notes = append(notes, "Warm temps — watch for wet loose on steep south-facing terrain in afternoon. Start early.")
	}

	return strings.Join(notes, " ")
}

// persistentLayerAdvisory closes every avalanche note regardless of the
// bulletin's availability.
const persistentLayerAdvisory = "Persistent weak layers (Feb 13 surface hoar, Jan 28 crust) remain in the snowpack. Assess stability as you travel."

// AvalancheNote composes a day's avalanche considerations in fixed clause
// order: bulletin rating, storm slab, wind slab, persistent layer.
func AvalancheNote(d DayForecast, b *Bulletin) string {
	var notes []string

	if b != nil && b.Report != nil {
		for _, dr := range b.Report.DangerRatings {
			if !strings.HasPrefix(dr.Date, d.Date) {
				continue
			}
			notes = append(notes, fmt.Sprintf("Avalanche Canada danger: Alpine %s, Treeline %s, Below treeline %s.",
				displayOr(dr.Alpine), displayOr(dr.Treeline), displayOr(dr.BelowTreeline)))
			break
		}
	}

	snow := d.Mountain.SnowCM
	wind := d.Mountain.WindMaxKmh

	switch {
	case snow > 10:
		notes = append(notes, "Storm slab building with significant new snow. Natural avalanches likely on steep terrain.")
	case snow > 3:
		notes = append(notes, "New storm slab forming with fresh snow loading.")
	}

	if wind > 15 {
		notes = append(notes, fmt.Sprintf("Wind slab likely on lee aspects with %s winds.", d.Mountain.WindDir))
	}

	notes = append(notes, persistentLayerAdvisory)
	return strings.Join(notes, " ")
}

func displayOr(r BandRating) string {
	if r.Display == "" {
		return "?"
	}
	return r.Display
}

// WeekOutlook summarizes the whole ordered day sequence.
func WeekOutlook(days []DayForecast) string {
	if len(days) == 0 {
		return ""
	}

	var totalSnow float64
	clearDays, snowDays := 0, 0
	tempHigh, tempLow := days[0].Mountain.HighC, days[0].Mountain.LowC
	var best []string

	for _, d := range days {
		totalSnow += d.Mountain.SnowCM
		if d.AvgCloudPct < 40 {
			clearDays++
		}
		if d.Mountain.SnowCM > 1 {
			snowDays++
		}
		if d.Mountain.HighC > tempHigh {
			tempHigh = d.Mountain.HighC
		}
		if d.Mountain.LowC < tempLow {
			tempLow = d.Mountain.LowC
		}
		if d.AvgCloudPct < 50 && d.Mountain.WindMaxKmh < 15 {
			best = append(best, d.DateLabel)
		}
	}

	parts := []string{fmt.Sprintf("Week outlook: %d clear day%s, %d day%s with snowfall.",
		clearDays, plural(clearDays), snowDays, plural(snowDays))}
	parts = append(parts, fmt.Sprintf("Mountain temps range %d to %d°C.", tempLow, tempHigh))
	if totalSnow > 0 {
		parts = append(parts, fmt.Sprintf("Total expected snowfall: ~%dcm.", int(math.Round(totalSnow))))
	}
	if len(best) > 0 {
		parts = append(parts, fmt.Sprintf("Best days for big objectives: %s.", strings.Join(best, ", ")))
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Banner is the week-level avalanche danger headline.
type Banner struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"` // CSS variable name in the page palette
}

var dangerOrdinals = map[string]int{
	"low": 1, "moderate": 2, "considerable": 3, "high": 4, "extreme": 5,
}

var dangerColors = map[string]string{
	"low":          "green",
	"moderate":     "danger-moderate",
	"considerable": "danger-considerable",
	"high":         "danger-high",
	"extreme":      "danger-high",
}

// DangerBanner derives the banner from the first date's ratings. With no
// rating data at all it is an explicit check-the-source placeholder, never a
// fabricated rating.
func DangerBanner(b *Bulletin) Banner {
	if b == nil || b.Report == nil || len(b.Report.DangerRatings) == 0 {
		return Banner{Label: "Check avalanche.ca", Color: "text-muted"}
	}

	today := b.Report.DangerRatings[0]
	bands := [3]BandRating{today.Alpine, today.Treeline, today.BelowTreeline}

	maxLevel, maxName := 0, "low"
	for _, band := range bands {
		if lvl := dangerOrdinals[band.Value]; lvl > maxLevel {
			maxLevel = lvl
			maxName = band.Value
		}
	}

	label := today.Alpine.Display
	if label == "" {
		label = fmt.Sprintf("%d - %s", maxLevel, titleCase(maxName))
	}
	color, ok := dangerColors[maxName]
	if !ok {
		color = "text-muted"
	}
	return Banner{Level: maxLevel, Label: label, Color: color}
}

// FormatObservation renders a decoded observation as a single line, degrading
// field by field. A nil observation reads as unavailable.
func FormatObservation(obs *Observation) string {
	if obs == nil {
		return "METAR data unavailable."
	}

	rt := obs.ReportTime
	if rt == "" {
		rt = "?"
	} else if len(rt) > 19 {
		rt = rt[:19]
	}
	parts := []string{fmt.Sprintf("%s (%s UTC):", obs.Station, rt)}

	if len(obs.Clouds) > 0 {
		layers := make([]string, len(obs.Clouds))
		for i, c := range obs.Clouds {
			layers[i] = fmt.Sprintf("%s at %dft", c.Cover, c.BaseFt)
		}
		parts = append(parts, strings.Join(layers, ", "))
	} else if obs.Cover != "" {
		parts = append(parts, obs.Cover)
	} else {
		parts = append(parts, "CLR")
	}

	if obs.VisibilityMi != nil {
		parts = append(parts, fmt.Sprintf("vis %vkm", round1(*obs.VisibilityMi*1.609)))
	}

	if obs.WindKt != nil {
		dir := "--"
		if obs.WindDirDeg != nil {
			dir = Compass(*obs.WindDirDeg)
		}
		gust := ""
		if obs.GustKt != nil && *obs.GustKt > 0 {
			gust = fmt.Sprintf(" gusting %d", roundInt(*obs.GustKt*1.852))
		}
		parts = append(parts, fmt.Sprintf("wind %s %d%s km/h", dir, roundInt(*obs.WindKt*1.852), gust))
	}

	if obs.AltimeterHpa != nil {
		parts = append(parts, fmt.Sprintf("QNH %.1f hPa", *obs.AltimeterHpa))
	}

	if obs.WxString != "" {
		parts = append(parts, "wx: "+obs.WxString)
	}

	return strings.Join(parts, " — ")
}

// MatchTextBlocks concatenates, in feed order, every text-forecast summary
// whose period label contains this date's weekday name (case-insensitive).
// The substring match can spuriously hit unrelated text that merely mentions
// a weekday; kept as-is for compatibility with the upstream feed's labels.
func MatchTextBlocks(blocks []TextBlock, date string) string {
	if len(blocks) == 0 {
		return ""
	}
	weekday := strings.ToLower(WeekdayName(date))
	if weekday == "" {
		return ""
	}
	var matches []string
	for _, b := range blocks {
		if strings.Contains(strings.ToLower(b.Period), weekday) {
			matches = append(matches, b.Summary)
		}
	}
	return strings.Join(matches, " ")
}
