package route

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/handler"
	"github.com/evandrarf/exampace-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoute(api *fiber.App, sessions handler.SessionHandler, stats handler.StatsHandler, m *middleware.Middleware) {
	router := api.Group("/sessions")
	{
		router.Get("/", sessions.List)
		router.Get("/:session_id", sessions.Detail)
		router.Patch("/:session_id/records", sessions.SaveStatuses)
		router.Patch("/:session_id", sessions.Patch)
		router.Delete("/:session_id", sessions.Delete)
	}

	statsRouter := api.Group("/stats")
	{
		statsRouter.Get("/daily", stats.Daily)
		statsRouter.Get("/dashboard", stats.Dashboard)
	}
}
