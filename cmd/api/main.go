// @title        PDF Generator API
// @version      1.0
// @description  Generates invoice PDFs under content-derived names and serves them for download.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/sushnag22/pdf-generator/docs"
	"github.com/sushnag22/pdf-generator/internal/bootstrap"
	httpRouter "github.com/sushnag22/pdf-generator/internal/interfaces/http"
	"github.com/sushnag22/pdf-generator/pkg/config"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("renderer", cfg.PDF.Renderer).
		Str("storage", cfg.Storage.Driver).
		Msg("starting application")

	ctx := context.Background()
	docs, err := bootstrap.NewDocuments(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build document service")
	}
	defer docs.Close()

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "PDF Generator API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: docs.UseCase,
		Service:   cfg.App.Name,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
