package students

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStudentsAPI)
	api.Get("/:id", GetStudentAPI)

	registrar := auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar)
	api.Post("/", registrar, CreateStudentAPI)
	api.Put("/:id", registrar, UpdateStudentAPI)
	api.Delete("/:id", registrar, DeleteStudentAPI)
}
