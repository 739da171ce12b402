package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jmfancher/weather-widget-service/internal/client"
	"github.com/jmfancher/weather-widget-service/internal/lifecycle"
	"github.com/jmfancher/weather-widget-service/internal/service"
	"github.com/jmfancher/weather-widget-service/internal/units"
	"github.com/jmfancher/weather-widget-service/internal/validation"
)

// UpstreamProbe checks reachability of the upstream weather APIs. Used by the
// health handler.
type UpstreamProbe interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	search        *service.SearchService
	probe         UpstreamProbe
	logger        *zap.Logger
	cityMinLength int
	cityMaxLength int
	// cachePing, when set, is called to check cache reachability. Used when backend is memcached.
	cachePing func() error
}

// NewHandler returns a new Handler. cachePing may be nil.
func NewHandler(search *service.SearchService, probe UpstreamProbe, logger *zap.Logger, cityMinLength, cityMaxLength int, cachePing func() error) *Handler {
	return &Handler{
		search:        search,
		probe:         probe,
		logger:        logger,
		cityMinLength: cityMinLength,
		cityMaxLength: cityMaxLength,
		cachePing:     cachePing,
	}
}

// GetWeather handles GET /weather/{city}?units=celsius|fahrenheit.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	unit, err := units.Parse(r.URL.Query().Get("units"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_UNITS", "units must be celsius or fahrenheit")
		return
	}

	city, err := validation.ValidateCity(mux.Vars(r)["city"], h.cityMinLength, h.cityMaxLength)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_CITY", err.Error())
		return
	}

	result, err := h.search.Search(r.Context(), city)
	if err != nil {
		writeSearchError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newWeatherResponse(result, unit))
}

// GetLatest handles GET /weather/latest. Serves the most recent successful
// search, the widget's "current result" slot.
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	unit, err := units.Parse(r.URL.Query().Get("units"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_UNITS", "units must be celsius or fahrenheit")
		return
	}

	result, ok := h.search.Latest()
	if !ok {
		writeError(w, r, http.StatusNotFound, "NO_RESULT", "no search has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, newWeatherResponse(result, unit))
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	checks := make(map[string]string)

	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
	} else if err := h.probe.Ping(r.Context()); err != nil {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
		checks["weatherApi"] = "unhealthy"
	} else {
		checks["weatherApi"] = "healthy"
	}

	if h.cachePing != nil {
		if h.cachePing() == nil {
			checks["cache"] = "healthy"
		} else {
			checks["cache"] = "unhealthy"
		}
	}

	resp := map[string]interface{}{
		"status":    status,
		"service":   "weather-widget-service",
		"version":   "dev",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code,
// message, and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		corrID = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}

// writeSearchError reduces a failed search to one of the two user-visible
// outcomes: a specific not-found message or a generic try-again message.
// The underlying error is logged, never exposed.
func writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, client.ErrCityNotFound) {
		writeError(w, r, http.StatusNotFound, "CITY_NOT_FOUND", "City not found")
		return
	}
	writeError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Unable to fetch weather data, please try again")
	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
		logger.Debug("search failed", zap.Error(err))
	}
}
