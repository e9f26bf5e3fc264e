package fetchx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fastClient(srv *httptest.Server) *Client {
	c := NewClient(srv.Client(), 1000, 1000)
	c.backoff.InitialInterval = time.Millisecond
	c.backoff.MaxInterval = 5 * time.Millisecond
	return c
}

func TestGetJSON(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"value": 42}`))
	}))
	defer srv.Close()

	var body struct {
		Value int `json:"value"`
	}
	c := fastClient(srv)
	if err := c.GetJSON(context.Background(), NewBreaker("test"), srv.URL, &body); err != nil {
		t.Fatal(err)
	}
	if body.Value != 42 {
		t.Errorf("value = %d", body.Value)
	}
	if gotUA != userAgent {
		t.Errorf("user agent = %q, want %q", gotUA, userAgent)
	}
}

func TestRetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := fastClient(srv)
	body, err := c.GetText(context.Background(), NewBreaker("test"), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if body != "ok" {
		t.Errorf("body = %q", body)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetriesExhausted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := fastClient(srv)
	if _, err := c.GetText(context.Background(), NewBreaker("test"), srv.URL); err == nil {
		t.Fatal("want error after exhausting retries")
	}
	// Initial attempt plus MaxRetries.
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestContextCancellationStopsBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), 1000, 1000)
	// Long enough that the test only passes if cancellation interrupts
	// the backoff wait.
	c.backoff.InitialInterval = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.GetText(ctx, NewBreaker("test"), srv.URL)
	if err == nil {
		t.Fatal("want error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation took %v", elapsed)
	}
}
