package controller

import (
	"net/http"
	"time"
)

const (
	serviceName    = "SumUp Shopify Payment Integration"
	serviceVersion = "1.0.0"
)

type HealthController struct {
	now func() time.Time
}

func NewHealthController(now func() time.Time) *HealthController {
	if now == nil {
		now = time.Now
	}
	return &HealthController{now: now}
}

// Index handles GET / with a static service descriptor.
func (h *HealthController) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"status":  "running",
		"version": serviceVersion,
		"endpoints": map[string]string{
			"health":         "GET /health",
			"createCheckout": "POST /create-checkout",
		},
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
