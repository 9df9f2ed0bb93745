package elpris

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solbatt/solbatt/core/model"
)

func priceJSON(day time.Time, hours int, base float64) string {
	out := "["
	for h := 0; h < hours; h++ {
		start := day.Add(time.Duration(h) * time.Hour)
		if h > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"SEK_per_kWh":%g,"EUR_per_kWh":%g,"EXR":11.5,"time_start":%q,"time_end":%q}`,
			base+float64(h)*0.01, (base+float64(h)*0.01)/11.5,
			start.Format(time.RFC3339), start.Add(time.Hour).Format(time.RFC3339))
	}
	return out + "]"
}

func newClientForTest(t *testing.T, handler http.Handler, now time.Time) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(
		WithBaseURL(srv.URL),
		WithArea("SE3"),
		WithHTTPClient(srv.Client()),
		WithClock(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestFetchDayAheadBothDays(t *testing.T) {
	today := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	day := today.Truncate(24 * time.Hour)
	c := newClientForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2026/08-30_SE3.json":
			fmt.Fprint(w, priceJSON(day, 24, 0.50))
		case "/2026/08-31_SE3.json":
			fmt.Fprint(w, priceJSON(day.AddDate(0, 0, 1), 24, 0.80))
		default:
			http.NotFound(w, r)
		}
	}), today)

	entries, err := c.FetchDayAhead(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(entries) != 48 {
		t.Fatalf("expected 48 entries, got %d", len(entries))
	}
	if !entries[0].TimeStart.Equal(day) {
		t.Fatalf("entries not sorted, first = %s", entries[0].TimeStart)
	}
	if entries[24].SEKPerKWh != 0.80 {
		t.Fatalf("tomorrow's first price = %v, want 0.80", entries[24].SEKPerKWh)
	}
}

func TestFetchDayAheadTomorrowMissing(t *testing.T) {
	today := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	day := today.Truncate(24 * time.Hour)
	c := newClientForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2026/08-30_SE3.json" {
			fmt.Fprint(w, priceJSON(day, 24, 0.50))
			return
		}
		http.NotFound(w, r)
	}), today)

	entries, err := c.FetchDayAhead(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(entries) != 24 {
		t.Fatalf("expected 24 entries, got %d", len(entries))
	}
}

func TestFetchDayAheadTodayMissing(t *testing.T) {
	today := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	c := newClientForTest(t, http.NotFoundHandler(), today)
	if _, err := c.FetchDayAhead(context.Background()); err == nil {
		t.Fatal("expected error when today's prices are missing")
	}
}

func TestFetchDayAheadServerError(t *testing.T) {
	today := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	c := newClientForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}), today)
	if _, err := c.FetchDayAhead(context.Background()); err == nil {
		t.Fatal("expected error on server failure")
	}
}

func TestAlignPrices(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	entries := []PriceEntry{
		{SEKPerKWh: 0.5, TimeStart: day, TimeEnd: day.Add(time.Hour)},
		{SEKPerKWh: 1.5, TimeStart: day.Add(time.Hour), TimeEnd: day.Add(2 * time.Hour)},
	}
	tariff := model.Tariff{BuyAddonPerKWh: 1.0}

	// 15-minute slots within hourly entries.
	prices, err := AlignPrices(entries, day.Add(30*time.Minute), 4, 15*time.Minute, tariff)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	want := []float64{0.5, 0.5, 1.5, 1.5}
	for i, p := range prices {
		if p.SpotPerKWh != want[i] {
			t.Fatalf("slot %d spot = %v, want %v", i, p.SpotPerKWh, want[i])
		}
		if p.Tariff != tariff {
			t.Fatalf("slot %d tariff not attached", i)
		}
	}

	if _, err := AlignPrices(entries, day, 3, time.Hour, tariff); err == nil {
		t.Fatal("expected error for uncovered slot")
	}
}
