package models

import "time"

// Location is the best geocoding match for a city name. Produced once per
// search and discarded after the forecast fetch completes.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Region    string  `json:"region,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentSnapshot is the instantaneous current-weather reading as returned by
// the forecast endpoint. Time is local wall-clock at the location, formatted
// "2006-01-02T15:04".
type CurrentSnapshot struct {
	Time        string
	Temperature float64
	WindSpeed   float64
	WeatherCode int
}

// HourlySeries holds the hourly forecast as parallel arrays sharing one
// timestamp sequence: index i across all slices refers to the same instant.
// All slices have equal length; the client enforces this at decode time.
type HourlySeries struct {
	Time                []string
	Temperature         []float64
	ApparentTemperature []float64
	Precipitation       []float64
	UVIndex             []float64
	WeatherCode         []int
}

// Len returns the number of hourly samples.
func (h HourlySeries) Len() int {
	return len(h.Time)
}

// ForecastBundle is everything the forecast endpoint returns for one
// coordinate. Current and Hourly are fetched together; there is no
// partial-result handling.
type ForecastBundle struct {
	Current CurrentSnapshot
	Hourly  HourlySeries
}

// ForecastSample is one normalized hourly record, built by joining the
// parallel arrays at a single index with the weather-code lookup.
type ForecastSample struct {
	Time            time.Time `json:"time"`
	TemperatureC    float64   `json:"temperatureC"`
	FeelsLikeC      float64   `json:"feelsLikeC"`
	PrecipitationMm float64   `json:"precipitationMm"`
	UVIndex         float64   `json:"uvIndex"`
	WeatherCode     int       `json:"weatherCode"`
	Label           string    `json:"label"`
	IconURL         string    `json:"iconUrl"`
}

// CurrentConditions describes the weather right now. Feels-like,
// precipitation and UV come from the hourly sample immediately preceding the
// snapshot time; the current-weather endpoint does not provide them directly.
// UVIndex is nil when no prior hourly sample exists.
type CurrentConditions struct {
	Time            time.Time `json:"time"`
	TemperatureC    float64   `json:"temperatureC"`
	FeelsLikeC      float64   `json:"feelsLikeC"`
	PrecipitationMm float64   `json:"precipitationMm"`
	UVIndex         *float64  `json:"uvIndex"`
	WindSpeedKmh    float64   `json:"windSpeedKmh"`
	WeatherCode     int       `json:"weatherCode"`
	Label           string    `json:"label"`
	IconURL         string    `json:"iconUrl"`
}

// SearchResult is the immutable outcome of one city search. A new search
// replaces the prior result wholesale; nothing is merged or updated in place.
type SearchResult struct {
	City      string            `json:"city"`
	Location  Location          `json:"location"`
	Current   CurrentConditions `json:"current"`
	Forecast  []ForecastSample  `json:"forecast"`
	FetchedAt time.Time         `json:"fetchedAt"`
}
