package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jmfancher/weather-widget-service/internal/models"
)

func sampleResult(city string) models.SearchResult {
	return models.SearchResult{
		City: city,
		Location: models.Location{
			Name:      "Berlin",
			Country:   "Germany",
			Latitude:  52.52,
			Longitude: 13.41,
		},
		Current: models.CurrentConditions{
			TemperatureC: 11.5,
			Label:        "Overcast",
		},
		FetchedAt: time.Now().UTC(),
	}
}

func TestInMemoryCache_GetMiss(t *testing.T) {
	c := NewInMemoryCache()
	_, ok, err := c.Get(context.Background(), "berlin")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for empty cache, want false")
	}
}

func TestInMemoryCache_SetAndGet(t *testing.T) {
	c := NewInMemoryCache()
	want := sampleResult("berlin")

	if err := c.Set(context.Background(), "berlin", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(context.Background(), "berlin")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false after Set, want true")
	}
	if got.City != want.City || got.Current.TemperatureC != want.Current.TemperatureC {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache()
	if err := c.Set(context.Background(), "berlin", sampleResult("berlin"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	_, ok, err := c.Get(context.Background(), "berlin")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for expired entry, want false")
	}
}

func TestInMemoryCache_KeysAreIndependent(t *testing.T) {
	c := NewInMemoryCache()
	_ = c.Set(context.Background(), "berlin", sampleResult("berlin"), time.Minute)
	_ = c.Set(context.Background(), "tokyo", sampleResult("tokyo"), time.Minute)

	got, ok, _ := c.Get(context.Background(), "tokyo")
	if !ok || got.City != "tokyo" {
		t.Errorf("Get(tokyo) = %+v, ok=%v", got, ok)
	}
}

func TestParseAddrs(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"localhost:11211", 1},
		{"a:11211, b:11211", 2},
		{" , ", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseAddrs(tt.in); len(got) != tt.want {
			t.Errorf("parseAddrs(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
