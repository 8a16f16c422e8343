package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/shoe_shop/pkg/config"
	loggingmw "github.com/Skotchmaster/shoe_shop/pkg/middleware/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/middleware/metrics"
	"github.com/Skotchmaster/shoe_shop/pkg/validate"
)

// Runner is a background loop started next to the HTTP server, e.g. a Kafka consumer.
type Runner interface {
	Run(ctx context.Context) error
}

type App struct {
	logger          *slog.Logger
	echo            *echo.Echo
	addr            string
	shutdownTimeout time.Duration

	runners []Runner
	closers []func() error
}

func New(logger *slog.Logger, cfg config.Config) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Validator = validate.New()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger, "/health/live", "/health/ready", "/metrics"))
	e.Use(metrics.Middleware(cfg.ServiceName))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowCredentials: !slices.Contains(cfg.CORSAllowedOrigins, "*"),
	}))
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("20M"))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &App{
		logger:          logger,
		echo:            e,
		addr:            fmt.Sprintf(":%d", cfg.ServerPort),
		shutdownTimeout: timeout,
	}
}

func (a *App) Echo() *echo.Echo { return a.echo }

func (a *App) AddRunners(r ...Runner) {
	a.runners = append(a.runners, r...)
}

// OnClose registers cleanup run after the server and runners stop, in reverse order.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Run serves HTTP and the runners until ctx is done or one of them fails,
// then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http server started", "addr", a.addr)
		if err := a.echo.Start(a.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("echo start: %w", err)
		}
		return nil
	})

	for _, r := range a.runners {
		g.Go(func() error { return r.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		if err := a.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("echo shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if cErr := a.closers[i](); cErr != nil {
			a.logger.Error("close_failed", "error", cErr)
		}
	}

	a.logger.Info("stopped")
	return err
}
