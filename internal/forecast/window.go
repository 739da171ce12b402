// Package forecast aligns a raw hourly series to the current-snapshot time
// and derives the normalized view state: enriched current conditions plus the
// next-hours forecast slice.
package forecast

import (
	"fmt"
	"time"

	"github.com/jmfancher/weather-widget-service/internal/models"
)

// WindowHours is the number of future hourly samples included in a forecast.
const WindowHours = 6

// LocalTimeLayout is the wall-clock format used by the upstream hourly and
// current timestamps. Values carry no zone; all timestamps in one payload
// share the location's zone, so comparisons between them are sound.
const LocalTimeLayout = "2006-01-02T15:04"

// ParseLocalTime parses an upstream local wall-clock timestamp.
func ParseLocalTime(s string) (time.Time, error) {
	t, err := time.Parse(LocalTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// Build turns a forecast bundle into enriched current conditions and the
// next-WindowHours forecast slice.
//
// The reference instant is the snapshot's own timestamp. The slice starts at
// the first hourly sample strictly after it (a sample equal to "now" is not
// future) and is clamped to the series length; fewer than WindowHours samples
// are returned when the series runs out, with no padding and no error.
//
// Current conditions mix two sources on purpose: label and icon come from the
// snapshot's weather code, while feels-like, precipitation and UV come from
// the hourly sample immediately preceding the snapshot time. When no prior
// sample exists, feels-like falls back to the snapshot temperature,
// precipitation to 0 and UV to nil.
func Build(bundle models.ForecastBundle) (models.CurrentConditions, []models.ForecastSample, error) {
	now, err := ParseLocalTime(bundle.Current.Time)
	if err != nil {
		return models.CurrentConditions{}, nil, fmt.Errorf("current snapshot: %w", err)
	}

	hourly := bundle.Hourly
	times := make([]time.Time, hourly.Len())
	for i, raw := range hourly.Time {
		t, err := ParseLocalTime(raw)
		if err != nil {
			return models.CurrentConditions{}, nil, fmt.Errorf("hourly sample %d: %w", i, err)
		}
		times[i] = t
	}

	k := firstAfter(times, now)

	var samples []models.ForecastSample
	if k >= 0 {
		end := k + WindowHours
		if end > hourly.Len() {
			end = hourly.Len()
		}
		samples = make([]models.ForecastSample, 0, end-k)
		for i := k; i < end; i++ {
			samples = append(samples, buildSample(hourly, times, i))
		}
	}

	return buildCurrent(bundle.Current, hourly, now, k), samples, nil
}

// firstAfter returns the index of the first timestamp strictly greater than
// now, or -1 when now is at or after every sample.
func firstAfter(times []time.Time, now time.Time) int {
	for i, t := range times {
		if t.After(now) {
			return i
		}
	}
	return -1
}

func buildSample(hourly models.HourlySeries, times []time.Time, i int) models.ForecastSample {
	info, _ := LookupCode(hourly.WeatherCode[i])
	return models.ForecastSample{
		Time:            times[i],
		TemperatureC:    hourly.Temperature[i],
		FeelsLikeC:      hourly.ApparentTemperature[i],
		PrecipitationMm: hourly.Precipitation[i],
		UVIndex:         hourly.UVIndex[i],
		WeatherCode:     hourly.WeatherCode[i],
		Label:           info.Label,
		IconURL:         info.IconURL,
	}
}

func buildCurrent(snap models.CurrentSnapshot, hourly models.HourlySeries, now time.Time, k int) models.CurrentConditions {
	cur := models.CurrentConditions{
		Time:         now,
		TemperatureC: snap.Temperature,
		WindSpeedKmh: snap.WindSpeed,
		WeatherCode:  snap.WeatherCode,
	}

	info, ok := LookupCode(snap.WeatherCode)
	cur.Label = info.Label
	cur.IconURL = info.IconURL
	if !ok {
		cur.Label = GenericLabel
	}

	// The last sample at or before "now" sits at k-1. When the window start
	// was not found, or there is nothing before it, degrade to snapshot
	// values instead of failing.
	if k > 0 {
		prev := k - 1
		uv := hourly.UVIndex[prev]
		cur.FeelsLikeC = hourly.ApparentTemperature[prev]
		cur.PrecipitationMm = hourly.Precipitation[prev]
		cur.UVIndex = &uv
	} else {
		cur.FeelsLikeC = snap.Temperature
		cur.PrecipitationMm = 0
		cur.UVIndex = nil
	}

	return cur
}
