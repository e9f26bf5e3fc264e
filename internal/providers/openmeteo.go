// Package providers implements the source adapters: the numerical forecast
// model, the aviation observation, the regional avalanche bulletin and the
// government text forecast. Each adapter normalizes its upstream's raw shape
// into the forecast package's intermediate structures and tolerates partial
// or missing fields.
package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/skitrip-forecast/internal/fetchx"
	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

const openMeteoTimezone = "America/Vancouver"

// OpenMeteo fetches 16-day daily + hourly model output for one site at one
// elevation.
type OpenMeteo struct {
	baseURL string
	client  *fetchx.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteo creates the model adapter over the shared fetch client.
func NewOpenMeteo(client *fetchx.Client) *OpenMeteo {
	return &OpenMeteo{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		circuit: fetchx.NewBreaker("openmeteo"),
	}
}

type openMeteoPayload struct {
	Daily struct {
		Time        []string               `json:"time"`
		TempMax     []forecast.NullFloat64 `json:"temperature_2m_max"`
		TempMin     []forecast.NullFloat64 `json:"temperature_2m_min"`
		Precip      []forecast.NullFloat64 `json:"precipitation_sum"`
		Snowfall    []forecast.NullFloat64 `json:"snowfall_sum"`
		WindMax     []forecast.NullFloat64 `json:"windspeed_10m_max"`
		WindDirDom  []forecast.NullFloat64 `json:"winddirection_10m_dominant"`
		WeatherCode []forecast.NullFloat64 `json:"weathercode"`
	} `json:"daily"`
	Hourly struct {
		Time        []string               `json:"time"`
		Temp        []forecast.NullFloat64 `json:"temperature_2m"`
		Snowfall    []forecast.NullFloat64 `json:"snowfall"`
		Wind        []forecast.NullFloat64 `json:"windspeed_10m"`
		WindDir     []forecast.NullFloat64 `json:"winddirection_10m"`
		WeatherCode []forecast.NullFloat64 `json:"weathercode"`
		Cloud       []forecast.NullFloat64 `json:"cloudcover"`
	} `json:"hourly"`
}

// FetchSeries requests the daily and hourly series for site. The site's
// elevation is passed upstream so the model's downscaling matches the target
// rather than a coarse grid cell.
func (p *OpenMeteo) FetchSeries(ctx context.Context, site forecast.Site) (*forecast.Series, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(site.Lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(site.Lon, 'f', -1, 64))
	values.Set("elevation", strconv.Itoa(site.ElevationM))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,snowfall_sum,windspeed_10m_max,winddirection_10m_dominant,weathercode")
	values.Set("hourly", "temperature_2m,snowfall,windspeed_10m,winddirection_10m,weathercode,cloudcover")
	values.Set("timezone", openMeteoTimezone)
	values.Set("forecast_days", "16")

	var payload openMeteoPayload
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := p.client.GetJSON(ctx, p.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo %s: %w", site.Name, err)
	}

	if len(payload.Daily.Time) == 0 {
		return nil, fmt.Errorf("openmeteo %s: empty daily series", site.Name)
	}

	return &forecast.Series{
		Daily: forecast.DailySeries{
			Time:        payload.Daily.Time,
			TempMax:     payload.Daily.TempMax,
			TempMin:     payload.Daily.TempMin,
			Precip:      payload.Daily.Precip,
			Snowfall:    payload.Daily.Snowfall,
			WindMax:     payload.Daily.WindMax,
			WindDirDom:  payload.Daily.WindDirDom,
			WeatherCode: payload.Daily.WeatherCode,
		},
		Hourly: forecast.HourlySeries{
			Time:        payload.Hourly.Time,
			Temp:        payload.Hourly.Temp,
			Snowfall:    payload.Hourly.Snowfall,
			Wind:        payload.Hourly.Wind,
			WindDir:     payload.Hourly.WindDir,
			WeatherCode: payload.Hourly.WeatherCode,
			Cloud:       payload.Hourly.Cloud,
		},
	}, nil
}
