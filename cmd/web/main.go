package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"parkcli/internal/config"
	apierrors "parkcli/internal/errors"
	"parkcli/internal/infrastructure"
	"parkcli/internal/middleware"
	"parkcli/internal/services"
	transporthttp "parkcli/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := infrastructure.NewMetrics()
	svc := services.NewReportService(cfg, logger, metrics)

	// A missing or empty dataset is not fatal for the server; the report
	// endpoints answer 503 until a reload succeeds.
	if err := svc.Load(ctx); err != nil {
		logger.Warn("Citation dataset unavailable at startup",
			slog.String("input_dir", cfg.Ingest.InputDir),
			slog.String("error", err.Error()))
	}

	router := newRouter(cfg, logger, metrics, svc)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting citation report server", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}

func newRouter(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, svc *services.ReportService) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Compress(5))

	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if _, err := svc.Summary(req.Context()); err != nil {
			apierrors.WriteError(w, apierrors.ErrDatasetUnavailable)
			return
		}
		render.JSON(w, req, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", metrics.Handler())

	r.Mount("/api/reports", transporthttp.NewReportHandler(svc, logger).Routes())

	return r
}
