package curricula

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
	"sanisidro-college/app/models"
)

func GetCurriculumAPI(c *fiber.Ctx) error {
	courseCode := c.Query("course_code")
	yearLevel := c.QueryInt("year_level", 0)
	semester := c.Query("semester")

	subjects, err := database.GetCurriculumSubjects(config.GetDB(), courseCode, yearLevel, semester)
	if err != nil {
		log.Printf("Error fetching curriculum: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch curriculum"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"subjects": subjects,
		"count":    len(subjects),
	})
}

func CreateCurriculumSubjectAPI(c *fiber.Ctx) error {
	var subject models.CurriculumSubject
	if err := c.BodyParser(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := models.ValidateStruct(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	// Pull the canonical title/units from the subject catalog when present.
	if cataloged, err := database.GetSubjectByCode(config.GetDB(), subject.SubjectCode); err == nil {
		subject.SubjectTitle = cataloged.Title
		if subject.Units == 0 {
			subject.Units = cataloged.Units
		}
	}

	created, err := database.CreateCurriculumSubject(config.GetDB(), &subject)
	if err != nil {
		log.Printf("Error creating curriculum subject: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create curriculum subject"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "subject": created})
}

func DeleteCurriculumSubjectAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "ID is required"})
	}

	if err := database.DeleteCurriculumSubject(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Curriculum subject not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete curriculum subject"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Curriculum subject deleted successfully"})
}
