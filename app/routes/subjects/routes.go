package subjects

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
)

func SetupSubjectsRoutes(app *fiber.App) {
	api := app.Group("/api/subjects")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetSubjectsAPI)

	registrar := auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar)
	api.Post("/", registrar, CreateSubjectAPI)
	api.Put("/:id", registrar, UpdateSubjectAPI)
	api.Delete("/:id", registrar, DeleteSubjectAPI)
}
