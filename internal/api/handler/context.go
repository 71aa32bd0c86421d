// Package handler provides HTTP handlers for the snapcontext API.
package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/api/middleware"
	"github.com/snapcontext/snapcontext/internal/api/models"
	"github.com/snapcontext/snapcontext/internal/api/response"
	"github.com/snapcontext/snapcontext/internal/camctx"
	"github.com/snapcontext/snapcontext/internal/location"
)

// ContextHandler serves the camera context endpoints.
type ContextHandler struct {
	orchestrator *camctx.Orchestrator
	metrics      *middleware.FetchMetrics
	logger       zerolog.Logger
}

// NewContextHandler creates a new ContextHandler. Metrics may be nil.
func NewContextHandler(orch *camctx.Orchestrator, metrics *middleware.FetchMetrics, logger zerolog.Logger) *ContextHandler {
	return &ContextHandler{
		orchestrator: orch,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetContext handles GET /v1/context - the per-photo context fetch.
func (h *ContextHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	scene, err := camctx.ParseScene(r.URL.Query().Get("scene"))
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "scene", Message: "must be one of: work, travel", Code: "invalid_value"},
		})
		return
	}

	mode, err := location.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "mode", Message: "must be one of: fast, accurate", Code: "invalid_value"},
		})
		return
	}

	start := time.Now()
	result, err := h.orchestrator.FetchContext(r.Context(), scene, mode)
	if h.metrics != nil {
		fromCache := false
		weatherTimedOut := false
		if result != nil {
			fromCache = result.Flags.FromCache
			weatherTimedOut = result.Flags.WeatherTimedOut
		}
		h.metrics.RecordFetch(string(scene), time.Since(start), fromCache, weatherTimedOut, err)
	}
	if err != nil {
		h.logger.Error().Err(err).
			Str("scene", string(scene)).
			Str("mode", string(mode)).
			Msg("context fetch failed")
		response.ServiceUnavailable(w, r, "current location is unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// GetCacheStatus handles GET /v1/context/cache.
func (h *ContextHandler) GetCacheStatus(w http.ResponseWriter, r *http.Request) {
	hasEntry, ts := h.orchestrator.CacheStatus()

	status := models.CacheStatus{HasEntry: hasEntry}
	if ts != nil {
		t := models.Timestamp(*ts)
		status.Timestamp = &t
	}

	response.JSON(w, r, http.StatusOK, status)
}

// ClearCache handles DELETE /v1/context/cache.
func (h *ContextHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.ClearCache()
	response.NoContent(w, r)
}
