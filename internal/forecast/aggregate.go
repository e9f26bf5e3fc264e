package forecast

import (
	"errors"
	"fmt"
	"log"
)

// ErrNoForecast is returned when no trip date could be produced from fresh
// data or the cache.
var ErrNoForecast = errors.New("no forecast data available for any trip date")

// Store is the cache contract the aggregator needs: the last finalized
// record per date, read before aggregation and written after.
type Store interface {
	Day(date string) (DayForecast, bool)
	PutDay(date string, d DayForecast)
}

// Inputs bundles the normalized adapter outputs one build run consumes.
// Any field except Mountain may be nil/empty; the aggregator degrades
// per-field.
type Inputs struct {
	Mountain   *Series
	Valley     *Series
	Bulletin   *Bulletin
	TextBlocks []TextBlock
}

// Aggregator merges adapter outputs into finalized DayForecast records, one
// per trip date, falling back to cached records for dates the model no
// longer covers.
type Aggregator struct {
	store    Store
	mountain Site
}

// NewAggregator creates an Aggregator over the given cache store and
// mountain site (used for the freezing-level elevation).
func NewAggregator(store Store, mountain Site) *Aggregator {
	return &Aggregator{store: store, mountain: mountain}
}

// BuildDays produces the ordered finalized day sequence for the window.
// Dates with neither fresh data nor a cached record are dropped with a
// notice; zero produced dates is a fatal condition.
func (a *Aggregator) BuildDays(window TripWindow, in Inputs) ([]DayForecast, error) {
	if in.Mountain == nil {
		return nil, ErrNoForecast
	}

	var days []DayForecast
	for _, date := range window.Dates() {
		d, ok := a.buildFresh(date, in)
		if ok {
			a.finalize(&d, in)
			a.store.PutDay(date, d)
			days = append(days, d)
			continue
		}
		if cached, hit := a.store.Day(date); hit {
			// Cached records already carry their narrative fields.
			log.Printf("using cached data for %s", date)
			days = append(days, cached)
			continue
		}
		log.Printf("no data available for %s", date)
	}

	if len(days) == 0 {
		return nil, ErrNoForecast
	}
	return days, nil
}

// buildFresh assembles a record from the current model series. The second
// return is false when the mountain daily series does not cover the date.
func (a *Aggregator) buildFresh(date string, in Inputs) (DayForecast, bool) {
	idx, ok := in.Mountain.DateIndex(date)
	if !ok {
		return DayForecast{}, false
	}

	daily := in.Mountain.Daily
	high := at(daily.TempMax, idx)
	if !high.HasValue {
		return DayForecast{}, false
	}

	mtn := DailyStats{
		HighC:       roundInt(high.Value),
		LowC:        roundInt(at(daily.TempMin, idx).Or(0)),
		PrecipMM:    at(daily.Precip, idx).Or(0),
		SnowCM:      round1(at(daily.Snowfall, idx).Or(0)),
		WindMaxKmh:  roundInt(at(daily.WindMax, idx).Or(0)),
		WindDir:     compassOrAbsent(at(daily.WindDirDom, idx)),
		WeatherCode: int(at(daily.WeatherCode, idx).Or(0)),
	}

	hourly := in.Mountain.Hourly
	am := ExtractPeriod(hourly, date, morningStart, middayStart)
	pm := ExtractPeriod(hourly, date, middayStart, eveningStart)
	night := ExtractPeriod(hourly, date, eveningStart, dayEnd)

	avgCloud := 50
	if allDay := ExtractPeriod(hourly, date, morningStart, dayEnd); allDay != nil {
		avgCloud = allDay.CloudAvgPct
	}

	desc, icon := WMOInfo(mtn.WeatherCode)
	return DayForecast{
		Date:           date,
		DateLabel:      FormatDate(date),
		Weekday:        WeekdayName(date),
		Icon:           icon,
		WeatherDesc:    desc,
		Mountain:       mtn,
		Valley:         a.valleyStats(date, in.Valley),
		AM:             am,
		PM:             pm,
		Night:          night,
		AvgCloudPct:    avgCloud,
		FreezingLevelM: FreezingLevel(float64(mtn.HighC), a.mountain.ElevationM),
	}, true
}

// valleyStats builds the valley leg independently; absence is non-fatal.
func (a *Aggregator) valleyStats(date string, valley *Series) *DailyStats {
	if valley == nil {
		return nil
	}
	idx, ok := valley.DateIndex(date)
	if !ok {
		return nil
	}
	daily := valley.Daily
	high := at(daily.TempMax, idx)
	if !high.HasValue {
		return nil
	}
	return &DailyStats{
		HighC:       roundInt(high.Value),
		LowC:        roundInt(at(daily.TempMin, idx).Or(0)),
		SnowCM:      round1(at(daily.Snowfall, idx).Or(0)),
		WeatherCode: int(at(daily.WeatherCode, idx).Or(0)),
	}
}

// finalize attaches the narrative fields; the record is read-only afterwards.
func (a *Aggregator) finalize(d *DayForecast, in Inputs) {
	d.Summary = SummaryLine(*d)
	d.BackcountryNote = BackcountryNote(*d)
	d.AvalancheNote = AvalancheNote(*d, in.Bulletin)
	d.ValleyText = a.valleyText(*d, in.TextBlocks)
}

// valleyText prefers the government text forecast, falling back to the
// valley model line, then an explicit placeholder.
func (a *Aggregator) valleyText(d DayForecast, blocks []TextBlock) string {
	if text := MatchTextBlocks(blocks, d.Date); text != "" {
		return text
	}
	if d.Valley != nil {
		desc, _ := WMOInfo(d.Valley.WeatherCode)
		return fmt.Sprintf("Valley: %d/%d°C, %s", d.Valley.HighC, d.Valley.LowC, desc)
	}
	return "No data"
}
