package route

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/handler"
	"github.com/evandrarf/exampace-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupBackupRoute(api *fiber.App, backup handler.BackupHandler, settings handler.SettingsHandler, m *middleware.Middleware) {
	backupRouter := api.Group("/backup")
	{
		backupRouter.Get("/export", backup.Export)
		backupRouter.Post("/import", backup.Import)
	}

	settingsRouter := api.Group("/settings")
	{
		settingsRouter.Get("/", settings.Get)
		settingsRouter.Put("/", settings.Save)
	}
}
