package enrollment

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/enrollments")
	api.Use(auth.AuthMiddleware)

	registrar := auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar)

	api.Post("/", CreateEnrollmentAPI)
	api.Get("/", registrar, GetEnrollmentsAPI)
	api.Get("/student/:studentId/assignments", GetStudentAssignmentsAPI)
	api.Get("/:id", GetEnrollmentAPI)
	api.Post("/:id/finalize", registrar, FinalizeEnrollmentAPI)
	api.Post("/:id/reject", registrar, RejectEnrollmentAPI)
}
