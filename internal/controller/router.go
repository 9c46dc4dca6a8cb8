package controller

import (
	"time"

	"github.com/cassiomorais/sumup-bridge/internal/infrastructure/config"
	"github.com/cassiomorais/sumup-bridge/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/sumup-bridge/internal/middleware"
	"github.com/cassiomorais/sumup-bridge/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	CheckoutService *service.CheckoutService
	Metrics         *observability.Metrics
	CORSConfig      config.CORSConfig
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	if deps.Metrics != nil {
		r.Use(customMW.Metrics(deps.Metrics))
	}

	healthH := NewHealthController(nil)
	checkoutH := NewCheckoutController(deps.CheckoutService)

	r.Get("/", healthH.Index)
	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)

	r.Handle("/metrics", promhttp.Handler())

	r.Post("/create-checkout", checkoutH.CreateCheckout)

	return r
}
