package forecast

import (
	"strconv"
	"strings"
)

// Period hour ranges within one day. The full-day range exists only to derive
// the day's average cloud cover.
const (
	morningStart = 6
	middayStart  = 12
	eveningStart = 18
	dayEnd       = 24
)

// hourOf extracts the hour from an ISO-8601 date-time string like
// "2026-03-01T14:00".
func hourOf(ts string) (int, bool) {
	_, rest, ok := strings.Cut(ts, "T")
	if !ok || len(rest) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(rest[:2])
	if err != nil {
		return 0, false
	}
	return h, true
}

// ExtractPeriod aggregates the hourly series over [startH, endH) of one day.
// Returns nil when no hours match; a missing period is absence, not zeros.
func ExtractPeriod(h HourlySeries, date string, startH, endH int) *PeriodSummary {
	var (
		temps    []float64
		snowSum  float64
		cloudSum float64
		n        int

		windMax    float64
		windMaxDir NullFloat64
		maxCode    int
	)

	for i, ts := range h.Time {
		if !strings.HasPrefix(ts, date) {
			continue
		}
		hour, ok := hourOf(ts)
		if !ok || hour < startH || hour >= endH {
			continue
		}
		t := at(h.Temp, i)
		if !t.HasValue {
			continue
		}
		temps = append(temps, t.Value)
		snowSum += at(h.Snowfall, i).Or(0)
		cloudSum += at(h.Cloud, i).Or(0)

		wind := at(h.Wind, i).Or(0)
		if n == 0 || wind > windMax {
			windMax = wind
			windMaxDir = at(h.WindDir, i)
		}
		if code := int(at(h.WeatherCode, i).Or(0)); n == 0 || code > maxCode {
			maxCode = code
		}
		n++
	}

	if n == 0 {
		return nil
	}

	min, max, sum := temps[0], temps[0], 0.0
	for _, t := range temps {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
		sum += t
	}

	return &PeriodSummary{
		TempMinC:    roundInt(min),
		TempMaxC:    roundInt(max),
		TempAvgC:    roundInt(sum / float64(n)),
		SnowTotalCM: round1(snowSum),
		WindMaxKmh:  roundInt(windMax),
		WindDir:     compassOrAbsent(windMaxDir),
		WeatherCode: maxCode,
		CloudAvgPct: roundInt(cloudSum / float64(n)),
	}
}
