// Package pipeline orchestrates one build run: fan out the source adapters,
// aggregate per-day records with cache fallback, derive the week-level
// narratives and render the report.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/i474232898/skitrip-forecast/internal/config"
	"github.com/i474232898/skitrip-forecast/internal/fetchx"
	"github.com/i474232898/skitrip-forecast/internal/forecast"
	"github.com/i474232898/skitrip-forecast/internal/providers"
	"github.com/i474232898/skitrip-forecast/internal/report"
	"github.com/i474232898/skitrip-forecast/internal/store"
)

// ModelSource is the numerical forecast model adapter.
type ModelSource interface {
	FetchSeries(ctx context.Context, site forecast.Site) (*forecast.Series, error)
}

// ObservationSource is the point-observation adapter.
type ObservationSource interface {
	FetchLatest(ctx context.Context) (*forecast.Observation, error)
}

// BulletinSource is the avalanche bulletin adapter.
type BulletinSource interface {
	FetchBulletin(ctx context.Context, site forecast.Site) (*forecast.Bulletin, error)
}

// TextSource is the government text forecast adapter.
type TextSource interface {
	FetchTextBlocks(ctx context.Context) ([]forecast.TextBlock, error)
}

// Build is the result of one run.
type Build struct {
	Days        []forecast.DayForecast
	Observation *forecast.Observation
	Bulletin    *forecast.Bulletin
	TextBlocks  []forecast.TextBlock
	Banner      forecast.Banner
	Outlook     string
	HTML        []byte
	BuiltAt     time.Time
}

// Runner wires the adapters, cache store and renderer for repeated runs.
type Runner struct {
	cfg   *config.AppConfig
	store *store.FileStore

	model     ModelSource
	obs       ObservationSource
	bulletins BulletinSource
	text      TextSource
}

// New creates a Runner with the production adapters.
func New(cfg *config.AppConfig, st *store.FileStore) *Runner {
	client := fetchx.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.RateLimitRPS, cfg.RateBurst)
	return &Runner{
		cfg:       cfg,
		store:     st,
		model:     providers.NewOpenMeteo(client),
		obs:       providers.NewMetar(client, cfg.MetarStation),
		bulletins: providers.NewAvalanche(client, cfg.AvalancheKeywords...),
		text:      providers.NewEnvCanada(client, cfg.ECProvince, cfg.ECStation),
	}
}

// Run executes one build. The mountain model fetch is the only fatal
// dependency; every other source degrades to absence with a notice. Results
// land in named fields, so assembly does not depend on completion order.
func (r *Runner) Run(ctx context.Context) (*Build, error) {
	var (
		wg       sync.WaitGroup
		mountain *forecast.Series
		valley   *forecast.Series
		obs      *forecast.Observation
		bulletin *forecast.Bulletin
		blocks   []forecast.TextBlock

		mountainErr error
	)

	log.Printf("fetching live data")
	wg.Add(5)
	go func() {
		defer wg.Done()
		mountain, mountainErr = r.model.FetchSeries(ctx, r.cfg.Mountain)
	}()
	go func() {
		defer wg.Done()
		var err error
		if valley, err = r.model.FetchSeries(ctx, r.cfg.Valley); err != nil {
			log.Printf("degraded: valley forecast unavailable: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if obs, err = r.obs.FetchLatest(ctx); err != nil {
			log.Printf("degraded: observation unavailable: %v", err)
			obs = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if bulletin, err = r.bulletins.FetchBulletin(ctx, r.cfg.Mountain); err != nil {
			log.Printf("degraded: avalanche bulletin unavailable: %v", err)
			bulletin = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if blocks, err = r.text.FetchTextBlocks(ctx); err != nil {
			log.Printf("degraded: text forecast unavailable: %v", err)
			blocks = nil
		}
	}()
	wg.Wait()

	if mountainErr != nil {
		return nil, fmt.Errorf("mountain forecast is required: %w", mountainErr)
	}
	if valley == nil {
		log.Printf("valley falls back to mountain data")
		valley = mountain
	}

	window, err := r.cfg.Window()
	if err != nil {
		return nil, err
	}

	agg := forecast.NewAggregator(r.store, r.cfg.Mountain)
	days, err := agg.BuildDays(window, forecast.Inputs{
		Mountain:   mountain,
		Valley:     valley,
		Bulletin:   bulletin,
		TextBlocks: blocks,
	})
	if err != nil {
		return nil, err
	}

	build := &Build{
		Days:        days,
		Observation: obs,
		Bulletin:    bulletin,
		TextBlocks:  blocks,
		Banner:      forecast.DangerBanner(bulletin),
		Outlook:     forecast.WeekOutlook(days),
		BuiltAt:     time.Now(),
	}

	html, err := report.Render(report.Data{
		Title:       "Sol Mountain Backcountry Ski Trip",
		DateRange:   fmt.Sprintf("%s – %s", forecast.FormatDate(r.cfg.TripStart), forecast.FormatDate(r.cfg.TripEnd)),
		Days:        days,
		Banner:      build.Banner,
		Outlook:     build.Outlook,
		Observation: obs,
		Bulletin:    bulletin,
		GeneratedAt: build.BuiltAt,
	})
	if err != nil {
		return nil, err
	}
	build.HTML = html

	r.store.SetObservation(obs)
	if err := r.store.Flush(); err != nil {
		// The report is still valid; the cache is best-effort.
		log.Printf("cache write failed: %v", err)
	}
	return build, nil
}
