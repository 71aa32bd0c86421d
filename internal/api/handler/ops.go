package handler

import (
	"net/http"
	"time"

	"github.com/snapcontext/snapcontext/internal/api/models"
	"github.com/snapcontext/snapcontext/internal/api/response"
	"github.com/snapcontext/snapcontext/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler. The registry may be nil when no
// resilient provider clients are in use.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// is ready as long as it is up; provider failures degrade responses rather
// than fail them.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - per-provider health derived
// from the circuit breaker registry.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(time.Now()),
		Providers: []models.ProviderStatus{},
	}

	if h.registry != nil {
		for _, health := range h.registry.GetAllHealth() {
			ps := models.ProviderStatus{
				Provider:     health.Name,
				Status:       providerStatus(health),
				FailureCount: int(health.Counts.TotalFailures),
			}
			if health.LastSuccessAt != nil {
				t := models.Timestamp(*health.LastSuccessAt)
				ps.LastSuccessAt = &t
			}
			if health.LastFailureAt != nil {
				t := models.Timestamp(*health.LastFailureAt)
				ps.LastFailureAt = &t
			}
			status.Providers = append(status.Providers, ps)

			// Any tripped provider degrades the overall status. It never
			// fails it: context fetches still work without that provider.
			if !health.IsHealthy() {
				status.Status = models.HealthStatusDegraded
			}
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(h *resilience.ProviderHealth) models.HealthStatus {
	switch {
	case h.IsUnhealthy():
		return models.HealthStatusFail
	case h.IsDegraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
