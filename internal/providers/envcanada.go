package providers

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/skitrip-forecast/internal/fetchx"
	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

// ErrTextForecastUnavailable is returned when none of the probed hour
// buckets yields a fetchable, parseable document.
var ErrTextForecastUnavailable = errors.New("text forecast data unavailable")

// EnvCanada fetches the government text forecast by probing the hour-bucketed
// directory listings for the most recent six hours, newest first, stopping at
// the first document that fetches and parses.
type EnvCanada struct {
	baseURL  string
	province string
	station  string
	client   *fetchx.Client
	circuit  *gobreaker.CircuitBreaker
	now      func() time.Time
}

// NewEnvCanada creates the text-forecast adapter for a station code within a
// province feed.
func NewEnvCanada(client *fetchx.Client, province, station string) *EnvCanada {
	return &EnvCanada{
		baseURL:  "https://dd.weather.gc.ca/today/citypage_weather",
		province: province,
		station:  station,
		client:   client,
		circuit:  fetchx.NewBreaker("envcanada"),
		now:      time.Now,
	}
}

// HourCandidates returns the six UTC hour buckets to probe, most recent
// first. The ordering is the adapter's priority order and must not be
// reordered by callers.
func HourCandidates(now time.Time) []string {
	hours := make([]string, 0, 6)
	h := now.UTC().Hour()
	for offset := 0; offset < 6; offset++ {
		hours = append(hours, fmt.Sprintf("%02d", ((h-offset)%24+24)%24))
	}
	return hours
}

// FetchTextBlocks walks the hour buckets and returns the first successfully
// fetched and parsed block list. Individual bucket failures are not errors;
// only exhausting all buckets is.
func (p *EnvCanada) FetchTextBlocks(ctx context.Context) ([]forecast.TextBlock, error) {
	fileRe := regexp.MustCompile(`href="([^"]*` + regexp.QuoteMeta(p.station) + `_en\.xml)"`)

	for _, hh := range HourCandidates(p.now()) {
		dirURL := fmt.Sprintf("%s/%s/%s/", p.baseURL, p.province, hh)

		listing, err := p.client.GetText(ctx, p.circuit, dirURL)
		if err != nil {
			log.Printf("envcanada: hour %s listing: %v", hh, err)
			continue
		}

		m := fileRe.FindStringSubmatch(listing)
		if m == nil {
			continue
		}

		doc, err := p.client.GetText(ctx, p.circuit, dirURL+m[1])
		if err != nil {
			log.Printf("envcanada: hour %s document: %v", hh, err)
			continue
		}

		blocks, err := parseCityPage(doc)
		if err != nil {
			log.Printf("envcanada: hour %s parse: %v", hh, err)
			continue
		}
		return blocks, nil
	}

	return nil, ErrTextForecastUnavailable
}

// cityPageForecast mirrors one <forecast> block of the citypage document.
type cityPageForecast struct {
	Period struct {
		Name string `xml:"textForecastName,attr"`
	} `xml:"period"`
	TextSummary  *string `xml:"textSummary"`
	Temperatures struct {
		Temperature []struct {
			Class string `xml:"class,attr"`
			Value string `xml:",chardata"`
		} `xml:"temperature"`
	} `xml:"temperatures"`
}

// parseCityPage extracts the forecast blocks from a citypage XML document,
// at any nesting depth. Blocks without a text summary are skipped.
func parseCityPage(doc string) ([]forecast.TextBlock, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))

	var blocks []forecast.TextBlock
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse citypage: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "forecast" {
			continue
		}

		var f cityPageForecast
		if err := dec.DecodeElement(&f, &se); err != nil {
			return nil, fmt.Errorf("parse forecast block: %w", err)
		}
		if f.TextSummary == nil {
			continue
		}

		block := forecast.TextBlock{
			Period:  f.Period.Name,
			Summary: strings.TrimSpace(*f.TextSummary),
		}
		if len(f.Temperatures.Temperature) > 0 {
			t := f.Temperatures.Temperature[0]
			if v, err := strconv.Atoi(strings.TrimSpace(t.Value)); err == nil {
				block.Temp = &v
			}
			block.TempClass = t.Class
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
