package http

import (
	"time"

	"github.com/jmfancher/weather-widget-service/internal/forecast"
	"github.com/jmfancher/weather-widget-service/internal/models"
	"github.com/jmfancher/weather-widget-service/internal/units"
)

// weatherResponse is the wire shape for GET /weather/{city} and
// /weather/latest. Temperatures are formatted display strings in the
// requested unit; other numeric fields pass through unconverted.
type weatherResponse struct {
	City      string          `json:"city"`
	Units     string          `json:"units"`
	Location  models.Location `json:"location"`
	Current   currentView     `json:"current"`
	Forecast  []sampleView    `json:"forecast"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

type currentView struct {
	Time            string   `json:"time"`
	Temperature     string   `json:"temperature"`
	FeelsLike       string   `json:"feelsLike"`
	PrecipitationMm float64  `json:"precipitationMm"`
	UVIndex         *float64 `json:"uvIndex"`
	WindSpeedKmh    float64  `json:"windSpeedKmh"`
	WeatherCode     int      `json:"weatherCode"`
	Label           string   `json:"label"`
	IconURL         string   `json:"iconUrl"`
}

type sampleView struct {
	Time            string  `json:"time"`
	Temperature     string  `json:"temperature"`
	FeelsLike       string  `json:"feelsLike"`
	PrecipitationMm float64 `json:"precipitationMm"`
	UVIndex         float64 `json:"uvIndex"`
	WeatherCode     int     `json:"weatherCode"`
	Label           string  `json:"label"`
	IconURL         string  `json:"iconUrl"`
}

func newWeatherResponse(result models.SearchResult, unit units.Unit) weatherResponse {
	cur := result.Current
	resp := weatherResponse{
		City:     result.City,
		Units:    string(unit),
		Location: result.Location,
		Current: currentView{
			Time:            cur.Time.Format(forecast.LocalTimeLayout),
			Temperature:     units.FormatTemp(&cur.TemperatureC, unit),
			FeelsLike:       units.FormatTemp(&cur.FeelsLikeC, unit),
			PrecipitationMm: cur.PrecipitationMm,
			UVIndex:         cur.UVIndex,
			WindSpeedKmh:    cur.WindSpeedKmh,
			WeatherCode:     cur.WeatherCode,
			Label:           cur.Label,
			IconURL:         cur.IconURL,
		},
		Forecast:  make([]sampleView, 0, len(result.Forecast)),
		FetchedAt: result.FetchedAt,
	}
	for _, s := range result.Forecast {
		resp.Forecast = append(resp.Forecast, sampleView{
			Time:            s.Time.Format(forecast.LocalTimeLayout),
			Temperature:     units.FormatTemp(&s.TemperatureC, unit),
			FeelsLike:       units.FormatTemp(&s.FeelsLikeC, unit),
			PrecipitationMm: s.PrecipitationMm,
			UVIndex:         s.UVIndex,
			WeatherCode:     s.WeatherCode,
			Label:           s.Label,
			IconURL:         s.IconURL,
		})
	}
	return resp
}
