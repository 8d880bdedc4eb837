package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-tracker/internal/api/handlers"
	"github.com/donaldgifford/offer-tracker/internal/api/middleware"
	"github.com/donaldgifford/offer-tracker/internal/engine"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduler and the health/control API",
		Long: "serve polls the catalog on the configured interval and exposes\n" +
			"/, /healthz, /readyz, /metrics and the /api/v1 control endpoints.",
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := engine.NewScheduler(a.engine, a.cfg.Schedule.Interval, a.log,
		engine.WithRunOnStart(a.cfg.Schedule.RunOnStartEnabled()),
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e := newServer(a)
	addr := a.cfg.Server.Host + ":" + strconv.Itoa(a.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	a.log.Info("starting offer-tracker",
		"version", Version,
		"addr", addr,
		"product_id", a.cfg.Target.ProductID,
		"sizes", a.cfg.Target.Sizes,
		"interval", a.cfg.Schedule.Interval.String(),
		"state_driver", a.cfg.State.Driver,
	)

	sched.Start()

	serveErr := make(chan error, 1)
	go func() {
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			a.log.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		a.log.Error("shutting down server", "error", err)
	}

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		a.log.Warn("tick still running at shutdown deadline")
	}

	a.log.Info("offer-tracker stopped")
	return nil
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.log))
	e.Use(middleware.RequestLog(a.log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(a.store))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("offer-tracker API", Version))
	handlers.RegisterCheckRoutes(api, handlers.NewCheckHandler(a.engine))
	handlers.RegisterStateRoutes(api, handlers.NewStateHandler(a.engine))

	return e
}
