package route

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/handler"
	"github.com/evandrarf/exampace-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupPracticeRoute(api *fiber.App, handler handler.PracticeHandler, m *middleware.Middleware) {
	router := api.Group("/practice")
	{
		router.Get("/state", handler.State)
		router.Post("/mode", handler.SetMode)
		router.Post("/template", handler.SetTemplate)
		router.Post("/order", handler.SetOrder)

		router.Post("/start", handler.Start)
		router.Post("/pause", handler.Pause)
		router.Post("/resume", handler.Resume)
		router.Post("/end", handler.End)
		router.Post("/reset", handler.Reset)

		router.Post("/questions/next", handler.NextQuestion)
		router.Post("/questions/prev", handler.PrevQuestion)
		router.Post("/questions/skip", handler.SkipQuestion)
		router.Post("/questions/select", handler.SelectQuestion)
		router.Post("/sections/jump", handler.JumpSection)

		router.Post("/save", handler.SavePractice)
		router.Post("/ensure-saved", handler.EnsureSaved)
	}

	reviewRouter := api.Group("/review")
	{
		reviewRouter.Post("/save", handler.SaveReview)
	}
}
