package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/jmfancher/weather-widget-service/internal/models"
)

// hourlyFixture builds an hourly series of n samples starting at start, one
// per hour. Field values are derived from the index so tests can assert
// which sample landed where.
func hourlyFixture(start time.Time, n int) models.HourlySeries {
	h := models.HourlySeries{
		Time:                make([]string, n),
		Temperature:         make([]float64, n),
		ApparentTemperature: make([]float64, n),
		Precipitation:       make([]float64, n),
		UVIndex:             make([]float64, n),
		WeatherCode:         make([]int, n),
	}
	for i := 0; i < n; i++ {
		h.Time[i] = start.Add(time.Duration(i) * time.Hour).Format(LocalTimeLayout)
		h.Temperature[i] = 10 + float64(i)
		h.ApparentTemperature[i] = 8 + float64(i)
		h.Precipitation[i] = float64(i) * 0.1
		h.UVIndex[i] = float64(i)
		h.WeatherCode[i] = 3
	}
	return h
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := ParseLocalTime(s)
	if err != nil {
		t.Fatalf("ParseLocalTime(%q) error = %v", s, err)
	}
	return parsed
}

func TestBuild_WindowStartsStrictlyAfterNow(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	bundle := models.ForecastBundle{
		// Snapshot at exactly 03:00: the 03:00 sample must NOT be in the
		// window, but is eligible as the prior sample.
		Current: models.CurrentSnapshot{Time: "2024-03-10T03:00", Temperature: 20, WindSpeed: 12, WeatherCode: 0},
		Hourly:  hourlyFixture(start, 24),
	}

	current, samples, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(samples) != WindowHours {
		t.Fatalf("len(samples) = %d, want %d", len(samples), WindowHours)
	}
	wantFirst := mustParse(t, "2024-03-10T04:00")
	if !samples[0].Time.Equal(wantFirst) {
		t.Errorf("samples[0].Time = %v, want %v", samples[0].Time, wantFirst)
	}
	now := mustParse(t, bundle.Current.Time)
	for i, s := range samples {
		if !s.Time.After(now) {
			t.Errorf("samples[%d].Time = %v, not strictly after %v", i, s.Time, now)
		}
		if i > 0 && s.Time.Before(samples[i-1].Time) {
			t.Errorf("samples[%d].Time = %v precedes samples[%d]", i, s.Time, i-1)
		}
	}

	// Prior sample is index 3 (the 03:00 reading).
	if current.FeelsLikeC != 8+3 {
		t.Errorf("FeelsLikeC = %v, want %v", current.FeelsLikeC, 8+3)
	}
	if current.PrecipitationMm != 0.3 {
		t.Errorf("PrecipitationMm = %v, want 0.3", current.PrecipitationMm)
	}
	if current.UVIndex == nil || *current.UVIndex != 3 {
		t.Errorf("UVIndex = %v, want 3", current.UVIndex)
	}
}

func TestBuild_ClampsWhenSeriesShort(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-10T01:30", Temperature: 15},
		Hourly:  hourlyFixture(start, 5), // samples 00:00..04:00, only 02:00..04:00 are future
	}

	_, samples, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("len(samples) = %d, want 3 (clamped, no padding)", len(samples))
	}
}

func TestBuild_NowAfterAllSamples(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-11T00:00", Temperature: 17.5, WeatherCode: 61},
		Hourly:  hourlyFixture(start, 6), // all samples at or before now
	}

	current, samples, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(samples) != 0 {
		t.Fatalf("len(samples) = %d, want 0", len(samples))
	}

	// Prior-sample lookup fails alongside the window scan: degraded defaults.
	if current.FeelsLikeC != 17.5 {
		t.Errorf("FeelsLikeC = %v, want snapshot temperature 17.5", current.FeelsLikeC)
	}
	if current.PrecipitationMm != 0 {
		t.Errorf("PrecipitationMm = %v, want 0", current.PrecipitationMm)
	}
	if current.UVIndex != nil {
		t.Errorf("UVIndex = %v, want nil (unavailable)", *current.UVIndex)
	}
}

func TestBuild_NowBeforeAllSamples(t *testing.T) {
	start := time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-10T04:00", Temperature: 9},
		Hourly:  hourlyFixture(start, 8),
	}

	current, samples, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(samples) != WindowHours {
		t.Fatalf("len(samples) = %d, want %d", len(samples), WindowHours)
	}
	// k == 0: no prior sample, same degraded defaults.
	if current.FeelsLikeC != 9 {
		t.Errorf("FeelsLikeC = %v, want 9", current.FeelsLikeC)
	}
	if current.UVIndex != nil {
		t.Errorf("UVIndex = %v, want nil", *current.UVIndex)
	}
}

func TestBuild_UnmappedForecastCode(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	hourly := hourlyFixture(start, 4)
	hourly.WeatherCode[2] = 999
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-10T01:00", WeatherCode: 0},
		Hourly:  hourly,
	}

	_, samples, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("len(samples) = %d, want 2", len(samples))
	}
	// samples[0] is index 2, the one with the unknown code.
	if samples[0].Label != "" || samples[0].IconURL != "" {
		t.Errorf("unmapped code: Label = %q, IconURL = %q, want both empty", samples[0].Label, samples[0].IconURL)
	}
	if samples[0].WeatherCode != 999 {
		t.Errorf("WeatherCode = %d, want 999", samples[0].WeatherCode)
	}
}

func TestBuild_CurrentUsesSnapshotCode(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	hourly := hourlyFixture(start, 6)
	for i := range hourly.WeatherCode {
		hourly.WeatherCode[i] = 95 // thunderstorm in every hourly slot
	}
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-10T02:30", WeatherCode: 0},
		Hourly:  hourly,
	}

	current, _, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if current.Label != "Clear sky" {
		t.Errorf("Label = %q, want %q (from snapshot code, not hourly)", current.Label, "Clear sky")
	}
}

func TestBuild_CurrentGenericLabelForUnknownCode(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-10T02:30", WeatherCode: 999},
		Hourly:  hourlyFixture(start, 6),
	}

	current, _, err := Build(bundle)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if current.Label != GenericLabel {
		t.Errorf("Label = %q, want %q", current.Label, GenericLabel)
	}
	if current.IconURL != "" {
		t.Errorf("IconURL = %q, want empty", current.IconURL)
	}
}

func TestBuild_BadTimestamps(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("current", func(t *testing.T) {
		bundle := models.ForecastBundle{
			Current: models.CurrentSnapshot{Time: "not-a-time"},
			Hourly:  hourlyFixture(start, 3),
		}
		if _, _, err := Build(bundle); err == nil {
			t.Fatal("Build() expected error for bad current timestamp")
		}
	})

	t.Run("hourly", func(t *testing.T) {
		hourly := hourlyFixture(start, 3)
		hourly.Time[1] = "garbage"
		bundle := models.ForecastBundle{
			Current: models.CurrentSnapshot{Time: "2024-03-10T00:30"},
			Hourly:  hourly,
		}
		_, _, err := Build(bundle)
		if err == nil {
			t.Fatal("Build() expected error for bad hourly timestamp")
		}
		if !strings.Contains(err.Error(), "hourly sample 1") {
			t.Errorf("error = %v, want mention of the offending sample", err)
		}
	})
}

func TestParseLocalTime(t *testing.T) {
	got, err := ParseLocalTime("2024-03-10T15:04")
	if err != nil {
		t.Fatalf("ParseLocalTime() error = %v", err)
	}
	want := time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseLocalTime() = %v, want %v", got, want)
	}

	if _, err := ParseLocalTime("2024-03-10"); err == nil {
		t.Error("ParseLocalTime() expected error for date-only input")
	}
	var zero time.Time
	if parsed, err := ParseLocalTime(""); err == nil || !parsed.Equal(zero) {
		t.Error("ParseLocalTime(\"\") expected error and zero time")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	bundle := models.ForecastBundle{
		Current: models.CurrentSnapshot{Time: "2024-03-10T03:00", Temperature: 20},
		Hourly:  hourlyFixture(start, 24),
	}

	cur1, samples1, err1 := Build(bundle)
	cur2, samples2, err2 := Build(bundle)
	if err1 != nil || err2 != nil {
		t.Fatalf("Build() errors = %v, %v", err1, err2)
	}
	if cur1.FeelsLikeC != cur2.FeelsLikeC || len(samples1) != len(samples2) {
		t.Fatal("Build() is not deterministic for identical input")
	}
	for i := range samples1 {
		if samples1[i] != samples2[i] {
			t.Errorf("samples[%d] differ between runs", i)
		}
	}
}
