package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hongquyngo/vti-gap-analysis/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PeriodGap   PeriodGapService
	Log         *logger.Logger
	ServiceName string
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	gapHandler := NewPeriodGapHandler(deps.PeriodGap, deps.Log)
	gap := api.Group("/period-gap", RequireRole(RoleAdmin, RolePlanner, RoleViewer))
	gap.Get("/", gapHandler.Calculate)
	gap.Post("/", gapHandler.CalculateBody)
	gap.Get("/summary", gapHandler.Summary)
}
