package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"comicvault/database"
	"comicvault/internal/config"
	"comicvault/internal/logger"
	"comicvault/internal/microservices/http-api/router"
	"comicvault/internal/microservices/http-api/service"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	// Setup structured logging
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(lg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the store
	repo, closeStore, err := database.OpenStore(ctx, cfg, lg)
	if err != nil {
		lg.Error("store_connect_failed", "driver", cfg.StoreDriver, "error", err.Error())
		os.Exit(1)
	}
	defer closeStore()

	svc := service.NewComicService(repo)
	engine := router.New(svc, lg, router.Options{
		RequestTimeout: cfg.RequestTimeout,
		ExportDir:      cfg.ExportDir,
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		lg.Info("starting_http_server", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		lg.Info("received_shutdown_signal")
	case err := <-errChan:
		lg.Error("server_error", "error", err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server_shutdown_failed", "error", err.Error())
		return
	}
	lg.Info("server_stopped_gracefully")
}
