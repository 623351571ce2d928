package teachers

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/routes/auth"
)

func SetupTeachersRoutes(app *fiber.App) {
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetTeachersAPI)
}
