package route

import (
	"github.com/evandrarf/exampace-be/internal/delivery/http/handler"
	"github.com/evandrarf/exampace-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupTemplateRoute(api *fiber.App, handler handler.TemplateHandler, m *middleware.Middleware) {
	typeRouter := api.Group("/question-types")
	{
		typeRouter.Get("/", handler.ListQuestionTypes)
		typeRouter.Post("/", handler.CreateQuestionType)
		typeRouter.Put("/:id", handler.UpdateQuestionType)
		typeRouter.Delete("/:id", handler.DeleteQuestionType)
	}

	templateRouter := api.Group("/templates")
	{
		templateRouter.Get("/", handler.ListTemplates)
		templateRouter.Get("/:id", handler.GetTemplate)
		templateRouter.Post("/", handler.CreateTemplate)
		templateRouter.Put("/:id", handler.UpdateTemplate)
		templateRouter.Delete("/:id", handler.DeleteTemplate)
	}
}
