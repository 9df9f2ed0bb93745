package forecast

import (
	"context"
	"testing"
	"time"
)

func TestMockProviderShape(t *testing.T) {
	p := NewMockProvider()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points, err := p.Forecast(context.Background(), start, 288, 5*time.Minute)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(points) != 288 {
		t.Fatalf("got %d points", len(points))
	}
	for i, f := range points {
		if f.ProductionWh < 0 || f.ConsumptionWh <= 0 {
			t.Fatalf("slot %d: invalid point %+v", i, f)
		}
	}
	// Night slots carry no production, midday does.
	if points[0].ProductionWh != 0 {
		t.Fatalf("midnight production %v", points[0].ProductionWh)
	}
	noon := points[13*12]
	if noon.ProductionWh == 0 {
		t.Fatalf("no production at 13:00")
	}
}

func TestMockProviderDeterminism(t *testing.T) {
	p := NewMockProvider()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a, _ := p.Forecast(context.Background(), start, 24, time.Hour)
	b, _ := p.Forecast(context.Background(), start, 24, time.Hour)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs", i)
		}
	}
}

func TestSnapToSlot(t *testing.T) {
	ts := time.Date(2025, 6, 1, 11, 7, 42, 0, time.UTC)
	got := SnapToSlot(ts, 5*time.Minute)
	want := time.Date(2025, 6, 1, 11, 5, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
