package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/i474232898/skitrip-forecast/internal/fetchx"
	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

// Metar fetches the latest decoded observation for a fixed station.
type Metar struct {
	baseURL string
	station string
	client  *fetchx.Client
	circuit *gobreaker.CircuitBreaker
}

// NewMetar creates the observation adapter for station.
func NewMetar(client *fetchx.Client, station string) *Metar {
	return &Metar{
		baseURL: "https://aviationweather.gov/api/data/metar",
		station: station,
		client:  client,
		circuit: fetchx.NewBreaker("metar"),
	}
}

// lenientFloat decodes a JSON value that is usually a number but may be null
// or a non-numeric string (the upstream reports "VRB" wind directions and
// "10+" visibilities). Anything non-numeric reads as absent.
type lenientFloat struct {
	value float64
	has   bool
}

func (f *lenientFloat) UnmarshalJSON(data []byte) error {
	f.value, f.has = 0, false
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	f.value, f.has = v, true
	return nil
}

func (f lenientFloat) ptr() *float64 {
	if !f.has {
		return nil
	}
	v := f.value
	return &v
}

type metarPayload struct {
	ReportTime string `json:"reportTime"`
	Clouds     []struct {
		Cover string `json:"cover"`
		Base  int    `json:"base"`
	} `json:"clouds"`
	Cover    string       `json:"cover"`
	Visib    lenientFloat `json:"visib"`
	Wspd     lenientFloat `json:"wspd"`
	Wgst     lenientFloat `json:"wgst"`
	Wdir     lenientFloat `json:"wdir"`
	Altim    lenientFloat `json:"altim"`
	WxString string       `json:"wxString"`
}

// FetchLatest returns the most recent observation, or nil when the station
// has none on file. Absence of individual fields is preserved, not defaulted.
func (p *Metar) FetchLatest(ctx context.Context) (*forecast.Observation, error) {
	u := fmt.Sprintf("%s?ids=%s&format=json", p.baseURL, p.station)

	var payload []metarPayload
	if err := p.client.GetJSON(ctx, p.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("metar %s: %w", p.station, err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	m := payload[0]
	obs := &forecast.Observation{
		Station:      p.station,
		ReportTime:   m.ReportTime,
		Cover:        m.Cover,
		VisibilityMi: m.Visib.ptr(),
		WindKt:       m.Wspd.ptr(),
		GustKt:       m.Wgst.ptr(),
		WindDirDeg:   m.Wdir.ptr(),
		AltimeterHpa: m.Altim.ptr(),
		WxString:     m.WxString,
	}
	for _, c := range m.Clouds {
		obs.Clouds = append(obs.Clouds, forecast.CloudLayer{Cover: c.Cover, BaseFt: c.Base})
	}
	return obs, nil
}
