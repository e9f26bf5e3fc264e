package forecast

import (
	"strings"
	"testing"
)

func testDay(date string, snow float64, wind, cloud, high int) DayForecast {
	return DayForecast{
		Date:        date,
		DateLabel:   FormatDate(date),
		Weekday:     WeekdayName(date),
		WeatherDesc: "Snow",
		Mountain: DailyStats{
			HighC:      high,
			LowC:       high - 8,
			SnowCM:     snow,
			WindMaxKmh: wind,
			WindDir:    "SW",
		},
		AvgCloudPct: cloud,
	}
}

func TestSummaryLine(t *testing.T) {
	d := testDay("2026-03-01", 0, 10, 50, -5)
	if got := SummaryLine(d); got != "Snow" {
		t.Errorf("summary = %q", got)
	}

	d = testDay("2026-03-01", 12.5, 30, 50, -5)
	want := "Snow, 12.5cm snow, winds 30 km/h"
	if got := SummaryLine(d); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}

	// Wind at exactly 20 is below the threshold.
	d = testDay("2026-03-01", 0, 20, 50, -5)
	if got := SummaryLine(d); strings.Contains(got, "winds") {
		t.Errorf("summary %q should omit wind at 20 km/h", got)
	}

	// Whole-valued snowfall keeps its decimal place.
	d = testDay("2026-03-01", 5, 10, 50, -5)
	want = "Snow, 5.0cm snow"
	if got := SummaryLine(d); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestBackcountryNoteDeepPowderScenario(t *testing.T) {
	// 20cm snow, 10 km/h wind, 20% cloud.
	d := testDay("2026-03-01", 20, 10, 20, -6)
	note := BackcountryNote(d)

	if !strings.Contains(note, "Excellent visibility") || !strings.Contains(note, "bigger terrain") {
		t.Errorf("note missing clear-sky clause: %q", note)
	}
	if !strings.Contains(note, "deep powder potential") || !strings.Contains(note, "familiar zones") {
		t.Errorf("note missing deep-powder clause: %q", note)
	}
	if strings.Contains(note, "winds") {
		t.Errorf("note should omit wind clauses at 10 km/h: %q", note)
	}
	if strings.Contains(note, "wet loose") {
		t.Errorf("note should omit warm clause at -6°C: %q", note)
	}
}

func TestBackcountryNoteThresholds(t *testing.T) {
	// Flat light, no snow, strong wind, warm.
	d := testDay("2026-03-01", 0, 30, 90, 4)
	note := BackcountryNote(d)
	for _, want := range []string{
		"Flat light likely",
		"No new snow",
		"Strong winds (30 km/h SW)",
		"Start early",
	} {
		if !strings.Contains(note, want) {
			t.Errorf("note missing %q: %q", want, note)
		}
	}

	// Moderate band: cloud in between, light snow, moderate wind.
	d = testDay("2026-03-01", 3, 20, 50, -2)
	note = BackcountryNote(d)
	for _, want := range []string{
		"Variable visibility",
		"Existing surfaces refreshed",
		"Moderate winds (20 km/h SW)",
	} {
		if !strings.Contains(note, want) {
			t.Errorf("note missing %q: %q", want, note)
		}
	}
}

func ratedBulletin(date, alpine, treeline, below string) *Bulletin {
	return &Bulletin{
		RegionTitle: "North Columbia",
		Report: &BulletinReport{
			DangerRatings: []DangerRating{{
				Date:          date + "T00:00:00",
				Alpine:        BandRating{Value: strings.ToLower(alpine), Display: alpine},
				Treeline:      BandRating{Value: strings.ToLower(treeline), Display: treeline},
				BelowTreeline: BandRating{Value: strings.ToLower(below), Display: below},
			}},
		},
	}
}

func TestAvalancheNoteClauseOrder(t *testing.T) {
	d := testDay("2026-03-01", 12, 20, 50, -5)
	b := ratedBulletin("2026-03-01", "Considerable", "Moderate", "Low")
	note := AvalancheNote(d, b)

	rating := strings.Index(note, "Avalanche Canada danger: Alpine Considerable, Treeline Moderate, Below treeline Low.")
	storm := strings.Index(note, "Natural avalanches likely")
	windSlab := strings.Index(note, "Wind slab likely on lee aspects with SW winds.")
	persistent := strings.Index(note, "Assess stability as you travel.")

	if rating < 0 || storm < 0 || windSlab < 0 || persistent < 0 {
		t.Fatalf("missing clauses in %q", note)
	}
	if !(rating < storm && storm < windSlab && windSlab < persistent) {
		t.Errorf("clauses out of order in %q", note)
	}
}

func TestAvalancheNoteWithoutBulletin(t *testing.T) {
	// Lesser storm slab band without ratings; advisory always present.
	d := testDay("2026-03-01", 5, 10, 50, -5)
	note := AvalancheNote(d, nil)
	if strings.Contains(note, "Avalanche Canada danger") {
		t.Errorf("unexpected rating sentence: %q", note)
	}
	if !strings.Contains(note, "New storm slab forming") {
		t.Errorf("missing lesser storm clause: %q", note)
	}
	if strings.Contains(note, "Wind slab") {
		t.Errorf("wind slab should need >15 km/h: %q", note)
	}
	if !strings.Contains(note, persistentLayerAdvisory) {
		t.Errorf("missing persistent-layer advisory: %q", note)
	}

	// Rating date that does not prefix-match the day is skipped.
	d = testDay("2026-03-02", 0, 0, 50, -5)
	b := ratedBulletin("2026-03-01", "High", "High", "Considerable")
	if note := AvalancheNote(d, b); strings.Contains(note, "Avalanche Canada danger") {
		t.Errorf("rating should not match other dates: %q", note)
	}
}

func TestWeekOutlookBestDayBoundaries(t *testing.T) {
	days := []DayForecast{
		testDay("2026-03-01", 0, 14, 49, -5), // qualifies
		testDay("2026-03-02", 0, 15, 30, -5), // wind exactly 15 excluded
		testDay("2026-03-03", 0, 10, 50, -5), // cloud exactly 50 excluded
	}
	outlook := WeekOutlook(days)

	if !strings.Contains(outlook, "Best days for big objectives: Sun, Mar 1.") {
		t.Errorf("best days wrong: %q", outlook)
	}
	// Cloud < 40 counts clear: days 2 (30) only; day 1 is 49, day 3 is 50.
	if !strings.Contains(outlook, "1 clear day,") {
		t.Errorf("clear day count wrong: %q", outlook)
	}
	// No snowfall at all: the total clause is omitted.
	if strings.Contains(outlook, "Total expected snowfall") {
		t.Errorf("total snowfall clause should be omitted: %q", outlook)
	}
}

func TestWeekOutlookTotalsAndRange(t *testing.T) {
	days := []DayForecast{
		testDay("2026-03-01", 10.4, 30, 90, -2),
		testDay("2026-03-02", 5.3, 30, 90, 1),
	}
	outlook := WeekOutlook(days)
	if !strings.Contains(outlook, "2 days with snowfall.") {
		t.Errorf("snow days wrong: %q", outlook)
	}
	if !strings.Contains(outlook, "Mountain temps range -10 to 1°C.") {
		t.Errorf("temp range wrong: %q", outlook)
	}
	if !strings.Contains(outlook, "Total expected snowfall: ~16cm.") {
		t.Errorf("total snowfall wrong: %q", outlook)
	}
	if strings.Contains(outlook, "Best days") {
		t.Errorf("best days clause should be omitted: %q", outlook)
	}
}

func TestDangerBanner(t *testing.T) {
	// No data at all: explicit placeholder, never a fabricated rating.
	b := DangerBanner(nil)
	if b.Label != "Check avalanche.ca" || b.Level != 0 || b.Color != "text-muted" {
		t.Errorf("placeholder banner = %+v", b)
	}
	if b := DangerBanner(&Bulletin{RegionTitle: "North Columbia"}); b.Label != "Check avalanche.ca" {
		t.Errorf("half-populated bulletin banner = %+v", b)
	}

	// Max ordinal across bands drives level and color.
	banner := DangerBanner(ratedBulletin("2026-03-01", "Moderate", "Considerable", "Low"))
	if banner.Level != 3 {
		t.Errorf("level = %d, want 3", banner.Level)
	}
	if banner.Color != "danger-considerable" {
		t.Errorf("color = %q", banner.Color)
	}
	// Display label comes from the alpine band when present.
	if banner.Label != "Moderate" {
		t.Errorf("label = %q, want Moderate", banner.Label)
	}
}

func TestFormatObservation(t *testing.T) {
	if got := FormatObservation(nil); got != "METAR data unavailable." {
		t.Errorf("nil observation = %q", got)
	}

	vis, wspd, gust, wdir, altim := 9.0, 10.0, 18.0, 270.0, 1013.25
	obs := &Observation{
		Station:      "CYRV",
		ReportTime:   "2026-03-01T12:00:00.000Z",
		Clouds:       []CloudLayer{{Cover: "FEW", BaseFt: 4000}, {Cover: "BKN", BaseFt: 8000}},
		VisibilityMi: &vis,
		WindKt:       &wspd,
		GustKt:       &gust,
		WindDirDeg:   &wdir,
		AltimeterHpa: &altim,
		WxString:     "-SN",
	}
	got := FormatObservation(obs)
	for _, want := range []string{
		"CYRV (2026-03-01T12:00:00 UTC):",
		"FEW at 4000ft, BKN at 8000ft",
		"vis 14.5km",
		"wind W 19 gusting 33 km/h",
		"QNH 1013.2 hPa",
		"wx: -SN",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("observation line missing %q: %q", want, got)
		}
	}

	// A zero gust reads as no gust.
	calm := 0.0
	obs.GustKt = &calm
	if got := FormatObservation(obs); strings.Contains(got, "gusting") {
		t.Errorf("zero gust should be omitted: %q", got)
	}

	// Degrades field by field.
	sparse := &Observation{Station: "CYRV"}
	got = FormatObservation(sparse)
	if !strings.Contains(got, "CYRV (? UTC):") || !strings.Contains(got, "CLR") {
		t.Errorf("sparse observation = %q", got)
	}
	if strings.Contains(got, "vis") || strings.Contains(got, "QNH") {
		t.Errorf("sparse observation has phantom fields: %q", got)
	}
}

func TestMatchTextBlocks(t *testing.T) {
	blocks := []TextBlock{
		{Period: "Sunday", Summary: "Snow beginning in the morning."},
		{Period: "Sunday night", Summary: "Clearing overnight."},
		{Period: "Monday", Summary: "Sunny."},
	}

	// 2026-03-01 is a Sunday; both Sunday entries match in feed order.
	got := MatchTextBlocks(blocks, "2026-03-01")
	if got != "Snow beginning in the morning. Clearing overnight." {
		t.Errorf("matched text = %q", got)
	}

	if got := MatchTextBlocks(blocks, "2026-03-03"); got != "" {
		t.Errorf("expected no match for Tuesday, got %q", got)
	}
	if got := MatchTextBlocks(nil, "2026-03-01"); got != "" {
		t.Errorf("expected empty for nil blocks, got %q", got)
	}
}
