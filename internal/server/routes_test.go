package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/skitrip-forecast/internal/forecast"
	"github.com/i474232898/skitrip-forecast/internal/pipeline"
)

type stubBuilder struct {
	build *pipeline.Build
	err   error
	runs  int
}

func (b *stubBuilder) Run(ctx context.Context) (*pipeline.Build, error) {
	b.runs++
	return b.build, b.err
}

func testBuild() *pipeline.Build {
	return &pipeline.Build{
		Days: []forecast.DayForecast{
			{Date: "2026-03-01", Summary: "Light snow"},
			{Date: "2026-03-02", Summary: "Overcast"},
		},
		Observation: &forecast.Observation{Station: "CYRV"},
		Banner:      forecast.Banner{Level: 2, Label: "Moderate", Color: "danger-moderate"},
		Outlook:     "Outlook: mostly clear skies.",
		HTML:        []byte("<!DOCTYPE html><html><body>report</body></html>"),
		BuiltAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestServer(t *testing.T, build *pipeline.Build) *Server {
	t.Helper()
	return New(&stubBuilder{build: build}, build, time.Hour)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, testBuild())

	resp, err := s.app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["service"] != "skitrip-forecast" {
		t.Errorf("body = %v", body)
	}
}

func TestRootServesHTML(t *testing.T) {
	s := newTestServer(t, testBuild())

	resp, err := s.app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "report") {
		t.Errorf("body = %q", body)
	}
}

func TestDaysEndpoints(t *testing.T) {
	s := newTestServer(t, testBuild())

	resp, err := s.app.Test(httptest.NewRequest("GET", "/api/v1/days", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var list struct {
		Outlook string                 `json:"outlook"`
		Banner  forecast.Banner        `json:"banner"`
		Days    []forecast.DayForecast `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list.Days) != 2 || list.Banner.Label != "Moderate" || list.Outlook == "" {
		t.Errorf("list = %+v", list)
	}

	resp, err = s.app.Test(httptest.NewRequest("GET", "/api/v1/days/2026-03-02", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var day forecast.DayForecast
	if err := json.NewDecoder(resp.Body).Decode(&day); err != nil {
		t.Fatal(err)
	}
	if day.Summary != "Overcast" {
		t.Errorf("day = %+v", day)
	}

	resp, err = s.app.Test(httptest.NewRequest("GET", "/api/v1/days/2026-03-09", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("unknown date status = %d, want 404", resp.StatusCode)
	}
}

func TestObservationEndpoint(t *testing.T) {
	s := newTestServer(t, testBuild())

	resp, err := s.app.Test(httptest.NewRequest("GET", "/api/v1/observation", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var obs forecast.Observation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		t.Fatal(err)
	}
	if obs.Station != "CYRV" {
		t.Errorf("station = %q", obs.Station)
	}

	empty := testBuild()
	empty.Observation = nil
	s = newTestServer(t, empty)
	resp, err = s.app.Test(httptest.NewRequest("GET", "/api/v1/observation", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("missing observation status = %d, want 404", resp.StatusCode)
	}
}

func TestRebuildKeepsPreviousOnFailure(t *testing.T) {
	first := testBuild()
	b := &stubBuilder{err: errors.New("upstream down")}
	s := New(b, first, time.Hour)

	s.rebuild()
	if s.Latest() != first {
		t.Error("failed rebuild replaced the build")
	}
	if b.runs != 1 {
		t.Errorf("runs = %d", b.runs)
	}

	next := testBuild()
	next.Outlook = "updated"
	b.build, b.err = next, nil
	s.rebuild()
	if s.Latest() != next {
		t.Error("successful rebuild did not replace the build")
	}
}
