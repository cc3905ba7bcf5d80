package handler

import (
	"context"
	"net/http"
	"time"

	httputil "gudlft/pkg/http"
	"gudlft/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthResponse struct {
	Status       string `json:"status"`
	Clubs        int    `json:"clubs,omitempty"`
	Competitions int    `json:"competitions,omitempty"`
}

// Counter reports how many records the registry holds.
type Counter interface {
	Counts(ctx context.Context) (clubs int, competitions int, err error)
}

type HealthHandler struct {
	registry Counter
	gatherer prometheus.Gatherer
	log      *logger.Logger
}

func NewHealthHandler(registry Counter, gatherer prometheus.Gatherer, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		gatherer: gatherer,
		log:      log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

// Ready fails until at least one club has been loaded.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	clubs, comps, err := h.registry.Counts(ctx)
	if err != nil || clubs == 0 {
		h.log.Error("Registry readiness check failed",
			"error", err,
			"clubs", clubs,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:       "ready",
		Clubs:        clubs,
		Competitions: comps,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	if h.gatherer != nil {
		router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
}
