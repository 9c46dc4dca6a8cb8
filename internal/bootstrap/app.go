package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/cassiomorais/sumup-bridge/internal/infrastructure/config"
	"github.com/cassiomorais/sumup-bridge/internal/infrastructure/observability"
	"github.com/rs/zerolog"
)

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *observability.Metrics

	tracerShutdown func(context.Context)
}

func New(serviceName string, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			app.tracerShutdown = func(ctx context.Context) {
				observability.Shutdown(ctx, tp)
			}
			logger.Info().Msg("Tracing enabled")
		}
	}

	app.Metrics = observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	return app, nil
}

// Shutdown flushes buffered spans. Safe to call when tracing is disabled.
func (a *App) Shutdown(ctx context.Context) {
	if a.tracerShutdown != nil {
		a.tracerShutdown(ctx)
	}
}
