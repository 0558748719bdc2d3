package route

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/handler"
	"github.com/evandrarf/exampace-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api             *fiber.App
	Middleware      *middleware.Middleware
	PracticeHandler handler.PracticeHandler
	SessionHandler  handler.SessionHandler
	TemplateHandler handler.TemplateHandler
	StatsHandler    handler.StatsHandler
	BackupHandler   handler.BackupHandler
	SettingsHandler handler.SettingsHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupPracticeRoute(c.Api, c.PracticeHandler, c.Middleware)
	SetupSessionRoute(c.Api, c.SessionHandler, c.StatsHandler, c.Middleware)
	SetupTemplateRoute(c.Api, c.TemplateHandler, c.Middleware)
	SetupBackupRoute(c.Api, c.BackupHandler, c.SettingsHandler, c.Middleware)
}
