package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/agent"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/archive"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/pipeline"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/session"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/telemetry"
	"github.com/Vrajesh-Sharma/Blog-Agent/provider"
)

// Run builds the service from config and serves until the listener fails.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Shared dependencies (top-level DI)
	ctx := context.Background()
	prov, err := provider.NewProvider(provider.OpenAI, cfg.Providers.OpenAI, cfg.Pipeline.ToolTurnLimit)
	if err != nil {
		return err
	}
	arch, err := archive.New(ctx, cfg.Storage)
	if err != nil {
		baseLogger.Printf("archive disabled: %v", err)
		arch = nil
	}
	if arch != nil {
		defer arch.Close()
	}

	sessions := session.NewStore()
	defaults := session.NewPreferences(cfg.Defaults)
	tel := telemetry.New(cfg.Telemetry.Enabled)
	retrier := agent.NewRetrier(cfg.Pipeline.MaxRetries, cfg.Pipeline.RetryBaseDelay, cfg.Pipeline.RetryJitter)
	coord := pipeline.NewCoordinator(
		prov,
		cfg.Providers.OpenAI.CompletionModel,
		retrier,
		sessions,
		defaults,
		arch,
		tel,
		cfg.Pipeline.StageCooldown,
	)

	api := e.Group("/api")
	(&GenerateHandler{Coord: coord, Logger: baseLogger}).Register(api)
	(&SessionHandler{Sessions: sessions}).Register(api)
	(&PreferencesHandler{Defaults: defaults}).Register(api)
	(&HistoryHandler{Archive: arch}).Register(api)

	return e.Start(cfg.General.Listen)
}
