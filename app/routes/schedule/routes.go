package schedule

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
)

func SetupScheduleRoutes(app *fiber.App) {
	api := app.Group("/api/schedule")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetScheduleAPI)
	api.Get("/:id", GetScheduleEntryAPI)
	api.Post("/check-conflict", CheckConflictAPI)

	// Mutations are restricted to scheduling staff
	staff := auth.RoleMiddleware(models.RoleAdmin, models.RoleScheduler)
	api.Post("/", staff, CreateScheduleEntryAPI)
	api.Put("/:id", staff, UpdateScheduleEntryAPI)
	api.Delete("/:id", staff, DeleteScheduleEntryAPI)
}
