package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/vehicle-valuator/api/openapi"
	"github.com/donaldgifford/vehicle-valuator/internal/api/handlers"
	"github.com/donaldgifford/vehicle-valuator/internal/api/middleware"
	"github.com/donaldgifford/vehicle-valuator/internal/config"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
	"github.com/donaldgifford/vehicle-valuator/internal/telemetry"
	"github.com/donaldgifford/vehicle-valuator/internal/valuation"
	"github.com/donaldgifford/vehicle-valuator/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, &cfg.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	s, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	deps, err := wire(cfg, s, log)
	if err != nil {
		return err
	}
	defer deps.close()

	sched, err := valuation.NewScheduler(
		s,
		cfg.Schedule.CachePruneInterval,
		cfg.Schedule.AuditPruneInterval,
		cfg.Schedule.AuditRetention,
		log,
		deps.schedulerOpts...,
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := newEcho(cfg, s, deps, sched, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      otelhttp.NewHandler(e, "http.server"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		log.Error("shutting down server", "error", err)
	}

	select {
	case <-sched.Stop().Done():
	case <-sctx.Done():
		log.Warn("scheduler did not stop in time")
	}

	deps.orchestrator.Wait()

	log.Info("server stopped")
	return nil
}

func newEcho(
	cfg *config.Config,
	s *store.PostgresStore,
	deps *dependencies,
	sched *valuation.Scheduler,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(deps.pingers)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaCfg := huma.DefaultConfig("Vehicle Valuator API", Version)
	humaCfg.Info.Description = "Used-vehicle valuations with adjustments, confidence and audit history."
	api := humaecho.New(e, humaCfg)

	handlers.RegisterValuationRoutes(api, handlers.NewValuationsHandler(deps.orchestrator, s))
	handlers.RegisterReportRoutes(api, handlers.NewReportHandler(s, deps.notifier, cfg.Server.PublicURL))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(s, sched))
	handlers.RegisterVINRoutes(api)

	openapi.RegisterRoutes(e, api)

	return e
}
