// Package report renders the finalized day sequence, observation, bulletin
// and text-forecast data into a single self-contained HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

// Data is everything the page needs.
type Data struct {
	Title       string
	DateRange   string
	Days        []forecast.DayForecast
	Banner      forecast.Banner
	Outlook     string
	Observation *forecast.Observation
	Bulletin    *forecast.Bulletin
	GeneratedAt time.Time
}

// periodCell is one AM/PM/night cell on a day card.
type periodCell struct {
	Sky  string
	Temp string
	Wind string
	Snow string
}

// labeledPeriod pairs a period cell with its card label; Cell is nil when
// the period had no hourly data.
type labeledPeriod struct {
	Label string
	Cell  *periodCell
}

// dayCard precomputes the display strings for one day.
type dayCard struct {
	Day           forecast.DayForecast
	ValHigh       string
	ValLow        string
	SnowLabel     string
	WindLabel     string
	MetarLine     string
	FreezingLabel string
	Periods       []labeledPeriod
}

type pageData struct {
	Data
	Cards       []dayCard
	RegionName  string
	ForecastURL string
	MetarLine   string
	Updated     string
}

func newPeriodCell(p *forecast.PeriodSummary) *periodCell {
	if p == nil {
		return nil
	}
	desc, _ := forecast.WMOInfo(p.WeatherCode)
	return &periodCell{
		Sky:  desc,
		Temp: fmt.Sprintf("%d°C", p.TempAvgC),
		Wind: fmt.Sprintf("%d km/h %s", p.WindMaxKmh, p.WindDir),
		Snow: fmt.Sprintf("%.1fcm", p.SnowTotalCM),
	}
}

// Render produces the complete HTML page.
func Render(data Data) ([]byte, error) {
	metarLine := forecast.FormatObservation(data.Observation)

	page := pageData{
		Data:        data,
		MetarLine:   metarLine,
		Updated:     data.GeneratedAt.Format("January 2, 2006 at 15:04"),
		RegionName:  "North Columbia",
		ForecastURL: "https://www.avalanche.ca/en/forecasts",
	}
	if data.Bulletin != nil {
		if data.Bulletin.RegionTitle != "" {
			page.RegionName = data.Bulletin.RegionTitle
		}
		if data.Bulletin.URL != "" {
			page.ForecastURL = data.Bulletin.URL
		}
	}

	for i, d := range data.Days {
		card := dayCard{
			Day:           d,
			ValHigh:       "--",
			ValLow:        "--",
			SnowLabel:     "None",
			WindLabel:     "Calm",
			MetarLine:     "METAR is a live observation — check on the day.",
			FreezingLabel: fmt.Sprintf("%dm", d.FreezingLevelM),
			Periods: []labeledPeriod{
				{"Morning", newPeriodCell(d.AM)},
				{"Afternoon", newPeriodCell(d.PM)},
				{"Night", newPeriodCell(d.Night)},
			},
		}
		if d.Valley != nil {
			card.ValHigh = fmt.Sprintf("%d", d.Valley.HighC)
			card.ValLow = fmt.Sprintf("%d", d.Valley.LowC)
		}
		if d.Mountain.SnowCM > 0 {
			card.SnowLabel = fmt.Sprintf("%.1fcm", d.Mountain.SnowCM)
		}
		if d.Mountain.WindMaxKmh >= 5 {
			card.WindLabel = fmt.Sprintf("%d km/h %s", d.Mountain.WindMaxKmh, d.Mountain.WindDir)
		}
		if i == 0 {
			card.MetarLine = metarLine
		}
		page.Cards = append(page.Cards, card)
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTmpl = template.Must(template.New("report").Parse(pageHTML))
