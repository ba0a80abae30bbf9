package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"demand-forecast-app/config"
	"demand-forecast-app/handlers"
	"demand-forecast-app/logger"
	"demand-forecast-app/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the model and serve the prediction form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	// A failed load is not fatal: the form still renders and every
	// submission reports the missing model.
	state := services.LoadModelState(cfg.Model.Path)
	if state.Loaded() {
		log.Info("model loaded",
			zap.String("path", cfg.Model.Path),
			zap.String("model_type", state.Model.ModelType()))
	} else {
		log.Error("model load failed, prediction disabled",
			zap.String("path", cfg.Model.Path),
			zap.Error(state.Err))
	}

	opts := []services.Option{services.WithLogger(log)}
	cache, err := services.NewCacheService(cfg.Redis, log)
	if err != nil {
		log.Warn("prediction cache disabled", zap.Error(err))
	}
	defer cache.Close()
	if cache.Available() {
		log.Info("prediction cache enabled", zap.Duration("ttl", cfg.Redis.TTL))
		opts = append(opts, services.WithCache(cache, cfg.Redis.TTL))
	}

	forecaster := services.NewForecaster(state, opts...)

	router, err := handlers.NewRouter(cfg, forecaster, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
