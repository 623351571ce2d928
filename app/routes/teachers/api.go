package teachers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
)

// GetTeachersAPI feeds the scheduling screens' teacher picker.
func GetTeachersAPI(c *fiber.Ctx) error {
	teachers, err := database.GetTeachers(config.GetDB())
	if err != nil {
		log.Printf("Error fetching teachers: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}

	list := make([]fiber.Map, 0, len(teachers))
	for _, teacher := range teachers {
		list = append(list, fiber.Map{
			"id":    teacher.ID,
			"name":  teacher.FirstName + " " + teacher.LastName,
			"email": teacher.Email,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"teachers": list,
		"count":    len(list),
	})
}
