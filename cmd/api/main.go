package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appgap "github.com/hongquyngo/vti-gap-analysis/internal/application/gap"
	"github.com/hongquyngo/vti-gap-analysis/internal/infrastructure/postgres"
	httpRouter "github.com/hongquyngo/vti-gap-analysis/internal/interfaces/http"
	"github.com/hongquyngo/vti-gap-analysis/pkg/config"
	"github.com/hongquyngo/vti-gap-analysis/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	var thresholds *config.CoverageThresholds
	if cfg.GAP.ThresholdsFile != "" {
		thresholds, err = config.LoadThresholds(cfg.GAP.ThresholdsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("umbrales de cobertura")
		}
	}
	settings, err := appgap.SettingsFromConfig(cfg.GAP, thresholds)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración GAP")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	demandRepo := postgres.NewDemandRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	periodGapUC := appgap.NewPeriodGapUseCase(demandRepo, supplyRepo, settings, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsPath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Period GAP API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		PeriodGap:   periodGapUC,
		Log:         log,
		ServiceName: cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
