package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/sumup-bridge/internal/bootstrap"
	"github.com/cassiomorais/sumup-bridge/internal/controller"
	"github.com/cassiomorais/sumup-bridge/internal/providers/sumup"
	"github.com/cassiomorais/sumup-bridge/internal/service"
)

func main() {
	app, err := bootstrap.New("sumup-bridge", "sumup_bridge")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	// --- Provider client ---
	sumupClient := sumup.New(sumup.Config{
		PublicKey:    app.Config.SumUp.PublicKey,
		SecretKey:    app.Config.SumUp.SecretKey,
		MerchantCode: app.Config.SumUp.MerchantCode,
		APIBase:      app.Config.SumUp.APIBase,
		TokenURL:     app.Config.SumUp.TokenURL,
	},
		sumup.WithLogger(app.Logger),
		sumup.WithTokenFetchCounter(app.Metrics.TokenFetchesTotal),
	)

	// --- Services ---
	checkoutService := service.NewCheckoutService(sumupClient,
		service.WithLogger(app.Logger),
		service.WithMetrics(app.Metrics),
	)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		CheckoutService: checkoutService,
		Metrics:         app.Metrics,
		CORSConfig:      app.Config.Server.CORS,
	})

	// --- HTTP server ---
	addr := app.Config.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Shutdown(shutdownCtx)
	app.Logger.Info().Msg("Server exited")
}
