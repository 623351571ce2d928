package curricula

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
)

func SetupCurriculaRoutes(app *fiber.App) {
	api := app.Group("/api/curricula")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetCurriculumAPI)

	registrar := auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar)
	api.Post("/", registrar, CreateCurriculumSubjectAPI)
	api.Delete("/:id", registrar, DeleteCurriculumSubjectAPI)
}
