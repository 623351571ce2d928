package sections

import (
	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
)

func SetupSectionsRoutes(app *fiber.App) {
	api := app.Group("/api/sections")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetSectionsAPI)

	staff := auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar, models.RoleScheduler)
	api.Post("/:course/:year/blocks", staff, AddSectionBlockAPI)
	api.Delete("/:course/:year/blocks/:block", staff, RemoveSectionBlockAPI)
}
