package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/skitrip-forecast/internal/common"
	"github.com/i474232898/skitrip-forecast/internal/fetchx"
	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

// Avalanche resolves the applicable bulletin region from a metadata catalog
// and fetches that region's product.
type Avalanche struct {
	metadataURL string
	productBase string
	keywords    []string
	client      *fetchx.Client
	circuit     *gobreaker.CircuitBreaker
}

// NewAvalanche creates the bulletin adapter. keywords drive the region name
// match; nearest centroid is the fallback.
func NewAvalanche(client *fetchx.Client, keywords ...string) *Avalanche {
	return &Avalanche{
		metadataURL: "https://avcan-services-api.prod.avalanche.ca/forecasts/en/metadata",
		productBase: "https://avcan-services-api.prod.avalanche.ca/forecasts/en/products/",
		keywords:    keywords,
		client:      client,
		circuit:     fetchx.NewBreaker("avalanche"),
	}
}

// RegionMeta is one catalog entry.
type RegionMeta struct {
	Product struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	} `json:"product"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Centroid *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"centroid"`
	URL string `json:"url"`
}

// Title returns the region's best display name.
func (r *RegionMeta) Title() string {
	if r.Product.Title != "" {
		return r.Product.Title
	}
	if r.Area.Name != "" {
		return r.Area.Name
	}
	return "?"
}

// SelectRegion picks the applicable catalog region: first region whose title
// contains any keyword (case-insensitive), else the region with the smallest
// Manhattan distance on lat/lon degrees between its centroid and the site.
// Returns nil when the catalog yields nothing.
func SelectRegion(regions []RegionMeta, lat, lon float64, keywords ...string) *RegionMeta {
	for i := range regions {
		title := strings.ToLower(regions[i].Product.Title)
		if common.HasAny(title, keywords...) {
			return &regions[i]
		}
	}

	var best *RegionMeta
	bestDist := math.Inf(1)
	for i := range regions {
		c := regions[i].Centroid
		if c == nil {
			continue
		}
		dist := math.Abs(c.Latitude-lat) + math.Abs(c.Longitude-lon)
		if dist < bestDist {
			bestDist = dist
			best = &regions[i]
		}
	}
	return best
}

// display is a {value, display} pair common throughout the product payload.
type display struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

func (d display) label() string {
	if d.Display != "" {
		return d.Display
	}
	return d.Value
}

// labelled decodes an entry that may be a plain string or an object carrying
// a display field.
type labelled string

func (l *labelled) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = labelled(s)
		return nil
	}
	var d struct {
		Display string `json:"display"`
	}
	if err := json.Unmarshal(data, &d); err == nil {
		*l = labelled(d.Display)
		return nil
	}
	*l = labelled(strings.Trim(string(data), `"`))
	return nil
}

// flexString decodes a value that may be a string or a number; absence or
// anything else reads as "?".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = "?"
	return nil
}

func (f flexString) orUnknown() string {
	if f == "" {
		return "?"
	}
	return string(f)
}

type productPayload struct {
	URL    string `json:"url"`
	Report struct {
		Title         string `json:"title"`
		DangerRatings []struct {
			Date struct {
				Value   string `json:"value"`
				Display string `json:"display"`
			} `json:"date"`
			Ratings struct {
				Alp struct {
					Rating display `json:"rating"`
				} `json:"alp"`
				Tln struct {
					Rating display `json:"rating"`
				} `json:"tln"`
				Btl struct {
					Rating display `json:"rating"`
				} `json:"btl"`
			} `json:"ratings"`
		} `json:"dangerRatings"`
		Summaries []struct {
			Type    display `json:"type"`
			Content string  `json:"content"`
		} `json:"summaries"`
		Problems []struct {
			Type    display `json:"type"`
			Comment string  `json:"comment"`
			Data    struct {
				Elevations []labelled `json:"elevations"`
				Aspects    []labelled `json:"aspects"`
				Likelihood display    `json:"likelihood"`
				Size       struct {
					Min flexString `json:"min"`
					Max flexString `json:"max"`
				} `json:"expectedSize"`
			} `json:"data"`
		} `json:"problems"`
		TravelAdvice []string `json:"terrainAndTravelAdvice"`
	} `json:"report"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// FetchBulletin fetches the catalog, selects the region, then fetches its
// product. A region without a resolvable slug yields a bulletin with the
// region name but no report; no matching region yields nil.
func (p *Avalanche) FetchBulletin(ctx context.Context, site forecast.Site) (*forecast.Bulletin, error) {
	var regions []RegionMeta
	if err := p.client.GetJSON(ctx, p.circuit, p.metadataURL, &regions); err != nil {
		return nil, fmt.Errorf("avalanche metadata: %w", err)
	}

	region := SelectRegion(regions, site.Lat, site.Lon, p.keywords...)
	if region == nil {
		return nil, nil
	}
	log.Printf("avalanche: selected region %s", region.Title())

	bulletin := &forecast.Bulletin{
		RegionTitle: region.Title(),
		URL:         region.URL,
	}
	if region.Product.Slug == "" {
		return bulletin, nil
	}

	var payload productPayload
	if err := p.client.GetJSON(ctx, p.circuit, p.productBase+region.Product.Slug, &payload); err != nil {
		return nil, fmt.Errorf("avalanche product %s: %w", region.Product.Slug, err)
	}

	if payload.URL != "" {
		bulletin.URL = payload.URL
	}
	if payload.Report.Title != "" {
		bulletin.RegionTitle = payload.Report.Title
	}
	bulletin.Report = normalizeReport(payload)
	return bulletin, nil
}

func normalizeReport(payload productPayload) *forecast.BulletinReport {
	r := payload.Report
	report := &forecast.BulletinReport{Title: r.Title, TravelAdvice: r.TravelAdvice}

	for _, dr := range r.DangerRatings {
		report.DangerRatings = append(report.DangerRatings, forecast.DangerRating{
			Date:        dr.Date.Value,
			DateDisplay: dr.Date.Display,
			Alpine: forecast.BandRating{
				Value: dr.Ratings.Alp.Rating.Value, Display: dr.Ratings.Alp.Rating.Display,
			},
			Treeline: forecast.BandRating{
				Value: dr.Ratings.Tln.Rating.Value, Display: dr.Ratings.Tln.Rating.Display,
			},
			BelowTreeline: forecast.BandRating{
				Value: dr.Ratings.Btl.Rating.Value, Display: dr.Ratings.Btl.Rating.Display,
			},
		})
	}

	for _, s := range r.Summaries {
		kind := s.Type.label()
		if kind == "" {
			kind = "Summary"
		}
		report.Summaries = append(report.Summaries, forecast.BulletinSummary{
			Kind:    kind,
			Content: stripHTML(s.Content),
		})
	}

	for _, prob := range r.Problems {
		kind := prob.Type.label()
		if kind == "" {
			kind = "Problem"
		}
		entry := forecast.AvalancheProblem{
			Kind:       kind,
			Likelihood: prob.Data.Likelihood.label(),
			SizeMin:    prob.Data.Size.Min.orUnknown(),
			SizeMax:    prob.Data.Size.Max.orUnknown(),
			Comment:    stripHTML(prob.Comment),
		}
		if entry.Likelihood == "" {
			entry.Likelihood = "?"
		}
		for _, e := range prob.Data.Elevations {
			entry.Elevations = append(entry.Elevations, string(e))
		}
		for _, a := range prob.Data.Aspects {
			entry.Aspects = append(entry.Aspects, string(a))
		}
		report.Problems = append(report.Problems, entry)
	}

	return report
}
