package forecast

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Site is a fixed forecast location. Elevation is passed through to the
// forecast model so its downscaling matches the target site rather than a
// coarse grid cell.
type Site struct {
	Name       string  `json:"name" validate:"required"`
	Lat        float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon        float64 `json:"lon" validate:"gte=-180,lte=180"`
	ElevationM int     `json:"elevationM" validate:"gte=0"`
}

// TripWindow is the ordered, inclusive range of trip dates. Immutable once
// built; the aggregator iterates over it in order.
type TripWindow struct {
	dates []string
}

// NewTripWindow builds the window from inclusive start/end dates in
// YYYY-MM-DD form.
func NewTripWindow(start, end string) (TripWindow, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return TripWindow{}, fmt.Errorf("invalid trip start %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return TripWindow{}, fmt.Errorf("invalid trip end %q: %w", end, err)
	}
	if e.Before(s) {
		return TripWindow{}, fmt.Errorf("trip end %s before start %s", end, start)
	}

	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return TripWindow{dates: dates}, nil
}

// Dates returns the window's dates in order.
func (w TripWindow) Dates() []string {
	out := make([]string, len(w.dates))
	copy(out, w.dates)
	return out
}

// Len returns the number of days in the window.
func (w TripWindow) Len() int { return len(w.dates) }

// DailySeries holds date-indexed model output for one site. All value slices
// are index-aligned with Time; individual entries may be null upstream, hence
// the explicit-presence element type.
type DailySeries struct {
	Time        []string
	TempMax     []NullFloat64
	TempMin     []NullFloat64
	Precip      []NullFloat64
	Snowfall    []NullFloat64
	WindMax     []NullFloat64
	WindDirDom  []NullFloat64
	WeatherCode []NullFloat64
}

// HourlySeries holds timestamp-indexed model output for one site, aligned to
// Time and sharing the daily series' timezone.
type HourlySeries struct {
	Time        []string
	Temp        []NullFloat64
	Snowfall    []NullFloat64
	Wind        []NullFloat64
	WindDir     []NullFloat64
	WeatherCode []NullFloat64
	Cloud       []NullFloat64
}

// Series is the normalized numeric forecast for one site.
type Series struct {
	Daily  DailySeries
	Hourly HourlySeries
}

// DateIndex returns the position of date in the daily series, or false if
// the model did not cover it.
func (s *Series) DateIndex(date string) (int, bool) {
	for i, t := range s.Daily.Time {
		if t == date {
			return i, true
		}
	}
	return 0, false
}

// DailyStats is one day's headline numbers for a site. Temperatures are whole
// degrees, snowfall one decimal, wind direction an 8-point compass bucket.
type DailyStats struct {
	HighC       int     `json:"high"`
	LowC        int     `json:"low"`
	PrecipMM    float64 `json:"precip"`
	SnowCM      float64 `json:"snow"`
	WindMaxKmh  int     `json:"windMax"`
	WindDir     string  `json:"windDir"`
	WeatherCode int     `json:"weatherCode"`
}

// PeriodSummary aggregates the hourly series over a contiguous hour range of
// one day. A period with no matching hours is represented as a nil
// *PeriodSummary, never a zero-filled value.
type PeriodSummary struct {
	TempMinC    int     `json:"tempMin"`
	TempMaxC    int     `json:"tempMax"`
	TempAvgC    int     `json:"tempAvg"`
	SnowTotalCM float64 `json:"snowTotal"`
	WindMaxKmh  int     `json:"windMax"`
	WindDir     string  `json:"windDir"`
	WeatherCode int     `json:"weatherCode"`
	CloudAvgPct int     `json:"cloudAvg"`
}

// DayForecast is the canonical merged record for one trip date. The
// aggregator owns it until the analytics fields are attached; after that it
// is read-only and shared by rendering and the cache write.
type DayForecast struct {
	Date        string `json:"date"`
	DateLabel   string `json:"dateLabel"`
	Weekday     string `json:"weekday"`
	Icon        string `json:"icon"`
	WeatherDesc string `json:"weatherDesc"`

	Mountain DailyStats  `json:"mountain"`
	Valley   *DailyStats `json:"valley,omitempty"`

	AM    *PeriodSummary `json:"am,omitempty"`
	PM    *PeriodSummary `json:"pm,omitempty"`
	Night *PeriodSummary `json:"night,omitempty"`

	AvgCloudPct    int `json:"avgCloud"`
	FreezingLevelM int `json:"freezingLevel"`

	Summary         string `json:"summary"`
	BackcountryNote string `json:"backcountryNote"`
	AvalancheNote   string `json:"avalancheNote"`
	ValleyText      string `json:"valleyText"`
}

// CloudLayer is one reported cloud deck in a point observation.
type CloudLayer struct {
	Cover  string `json:"cover"`
	BaseFt int    `json:"base"`
}

// Observation is a decoded aviation-style point observation. Every field is
// optional; formatting degrades field by field.
type Observation struct {
	Station      string       `json:"station"`
	ReportTime   string       `json:"reportTime,omitempty"`
	Clouds       []CloudLayer `json:"clouds,omitempty"`
	Cover        string       `json:"cover,omitempty"`
	VisibilityMi *float64     `json:"visib,omitempty"`
	WindKt       *float64     `json:"wspd,omitempty"`
	GustKt       *float64     `json:"wgst,omitempty"`
	WindDirDeg   *float64     `json:"wdir,omitempty"`
	AltimeterHpa *float64     `json:"altim,omitempty"`
	WxString     string       `json:"wxString,omitempty"`
}

// BandRating is one elevation band's danger rating.
type BandRating struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// DangerRating is one date's ratings across the three elevation bands.
type DangerRating struct {
	Date          string     `json:"date"`
	DateDisplay   string     `json:"dateDisplay,omitempty"`
	Alpine        BandRating `json:"alp"`
	Treeline      BandRating `json:"tln"`
	BelowTreeline BandRating `json:"btl"`
}

// BulletinSummary is one free-text hazard summary section.
type BulletinSummary struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// AvalancheProblem is one forecast avalanche problem entry.
type AvalancheProblem struct {
	Kind       string   `json:"kind"`
	Likelihood string   `json:"likelihood"`
	SizeMin    string   `json:"sizeMin"`
	SizeMax    string   `json:"sizeMax"`
	Elevations []string `json:"elevations"`
	Aspects    []string `json:"aspects"`
	Comment    string   `json:"comment"`
}

// BulletinReport is the body of a regional bulletin product.
type BulletinReport struct {
	Title         string             `json:"title"`
	DangerRatings []DangerRating     `json:"dangerRatings"`
	Summaries     []BulletinSummary  `json:"summaries"`
	Problems      []AvalancheProblem `json:"problems"`
	TravelAdvice  []string           `json:"travelAdvice"`
}

// Bulletin is the selected region's avalanche bulletin. Report may be nil
// when the region resolved but its product did not; rating-dependent output
// must then treat the bulletin as unavailable while still showing the region
// name.
type Bulletin struct {
	RegionTitle string          `json:"regionTitle"`
	URL         string          `json:"url,omitempty"`
	Report      *BulletinReport `json:"report,omitempty"`
}

// TextBlock is one loosely structured period entry from the government text
// forecast feed.
type TextBlock struct {
	Period    string `json:"period"`
	Summary   string `json:"summary"`
	Temp      *int   `json:"temp,omitempty"`
	TempClass string `json:"tempClass,omitempty"`
}
