// Package client talks to the Open-Meteo geocoding and forecast APIs.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jmfancher/weather-widget-service/internal/models"
	"github.com/jmfancher/weather-widget-service/internal/observability"
)

// Geocoder resolves a free-text city name to its best-matching location.
type Geocoder interface {
	Resolve(ctx context.Context, city string) (models.Location, error)
}

// ForecastFetcher retrieves current weather plus the hourly series for a
// location.
type ForecastFetcher interface {
	Fetch(ctx context.Context, loc models.Location) (models.ForecastBundle, error)
}

var (
	// ErrCityNotFound means the geocoder returned zero results.
	ErrCityNotFound = errors.New("city not found")
	// ErrFetchFailed covers any transport or parse failure on either call.
	ErrFetchFailed = errors.New("failed to fetch weather data")
)

// hourlyFields is the hourly variable list requested from the forecast
// endpoint. Order matches the parallel arrays in HourlySeries.
const hourlyFields = "apparent_temperature,precipitation,uv_index,temperature_2m,weathercode"

// OpenMeteoClient implements Geocoder and ForecastFetcher against the
// Open-Meteo APIs. Neither endpoint needs an API key.
type OpenMeteoClient struct {
	geocodeURL  string
	forecastURL string
	client      *http.Client
}

// NewOpenMeteoClient returns a client for the given endpoint base URLs.
func NewOpenMeteoClient(geocodeURL, forecastURL string, timeout time.Duration) (*OpenMeteoClient, error) {
	if geocodeURL == "" {
		return nil, fmt.Errorf("geocode URL is required")
	}
	if forecastURL == "" {
		return nil, fmt.Errorf("forecast URL is required")
	}
	return &OpenMeteoClient{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Time                []string  `json:"time"`
		Temperature         []float64 `json:"temperature_2m"`
		ApparentTemperature []float64 `json:"apparent_temperature"`
		Precipitation       []float64 `json:"precipitation"`
		UVIndex             []float64 `json:"uv_index"`
		WeatherCode         []int     `json:"weathercode"`
	} `json:"hourly"`
}

// Resolve requests the single best match for the city name. Zero results map
// to ErrCityNotFound; everything else that goes wrong maps to ErrFetchFailed.
func (c *OpenMeteoClient) Resolve(ctx context.Context, city string) (models.Location, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")

	var payload geocodeResponse
	if err := c.getJSON(ctx, "geocode", c.geocodeURL, params, &payload); err != nil {
		return models.Location{}, err
	}

	if len(payload.Results) == 0 {
		return models.Location{}, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	}

	best := payload.Results[0]
	return models.Location{
		Name:      best.Name,
		Country:   best.Country,
		Region:    best.Admin1,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}, nil
}

// Fetch retrieves the current snapshot and hourly series in one call, with
// auto-detected timezone so hourly timestamps align with local wall-clock
// time at the location.
func (c *OpenMeteoClient) Fetch(ctx context.Context, loc models.Location) (models.ForecastBundle, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.6f", loc.Latitude))
	params.Set("longitude", fmt.Sprintf("%.6f", loc.Longitude))
	params.Set("current_weather", "true")
	params.Set("hourly", hourlyFields)
	params.Set("timezone", "auto")

	var payload forecastResponse
	if err := c.getJSON(ctx, "forecast", c.forecastURL, params, &payload); err != nil {
		return models.ForecastBundle{}, err
	}

	if payload.CurrentWeather.Time == "" {
		return models.ForecastBundle{}, fmt.Errorf("%w: current weather missing from response", ErrFetchFailed)
	}

	hourly := models.HourlySeries{
		Time:                payload.Hourly.Time,
		Temperature:         payload.Hourly.Temperature,
		ApparentTemperature: payload.Hourly.ApparentTemperature,
		Precipitation:       payload.Hourly.Precipitation,
		UVIndex:             payload.Hourly.UVIndex,
		WeatherCode:         payload.Hourly.WeatherCode,
	}
	if err := checkParallel(hourly); err != nil {
		return models.ForecastBundle{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return models.ForecastBundle{
		Current: models.CurrentSnapshot{
			Time:        payload.CurrentWeather.Time,
			Temperature: payload.CurrentWeather.Temperature,
			WindSpeed:   payload.CurrentWeather.WindSpeed,
			WeatherCode: payload.CurrentWeather.WeatherCode,
		},
		Hourly: hourly,
	}, nil
}

// Ping probes the geocoding endpoint with a fixed query. Used by the health
// handler to check upstream reachability.
func (c *OpenMeteoClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.Resolve(ctx, "London")
	if err != nil && !errors.Is(err, ErrCityNotFound) {
		return err
	}
	return nil
}

// checkParallel enforces the parallel-array invariant: every hourly field has
// the same length as the timestamp sequence.
func checkParallel(h models.HourlySeries) error {
	n := len(h.Time)
	for field, got := range map[string]int{
		"temperature_2m":       len(h.Temperature),
		"apparent_temperature": len(h.ApparentTemperature),
		"precipitation":        len(h.Precipitation),
		"uv_index":             len(h.UVIndex),
		"weathercode":          len(h.WeatherCode),
	} {
		if got != n {
			return fmt.Errorf("hourly %s has %d entries, time has %d", field, got, n)
		}
	}
	return nil
}

// getJSON issues one GET against base with the given query and decodes the
// JSON body into out. endpoint labels the upstream metrics.
func (c *OpenMeteoClient) getJSON(ctx context.Context, endpoint, base string, params url.Values, out interface{}) error {
	start := time.Now()

	req, err := c.buildRequest(ctx, base, params)
	if err != nil {
		observability.UpstreamCallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}

	corrID := extractCorrelationID(ctx)
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.UpstreamCallsTotal.WithLabelValues(endpoint, "error").Inc()
		observability.UpstreamDuration.WithLabelValues(endpoint, "error").Observe(duration)
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.UpstreamCallsTotal.WithLabelValues(endpoint, status).Inc()
	observability.UpstreamDuration.WithLabelValues(endpoint, status).Observe(duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d from %s", ErrFetchFailed, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", ErrFetchFailed, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: parse response: %v", ErrFetchFailed, err)
	}
	return nil
}

func (c *OpenMeteoClient) buildRequest(ctx context.Context, base string, params url.Values) (*http.Request, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value("correlation_id"); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
