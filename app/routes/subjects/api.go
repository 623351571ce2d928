package subjects

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
	"sanisidro-college/app/models"
)

func GetSubjectsAPI(c *fiber.Ctx) error {
	subjects, err := database.GetSubjects(config.GetDB())
	if err != nil {
		log.Printf("Error fetching subjects: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"subjects": subjects,
		"count":    len(subjects),
	})
}

func CreateSubjectAPI(c *fiber.Ctx) error {
	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	subject.Code = strings.ToUpper(strings.TrimSpace(subject.Code))
	if err := models.ValidateStruct(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := database.CreateSubject(config.GetDB(), &subject)
	if err != nil {
		log.Printf("Error creating subject %s: %v", subject.Code, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "subject": created})
}

func UpdateSubjectAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Subject ID is required"})
	}

	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	subject.Code = strings.ToUpper(strings.TrimSpace(subject.Code))
	if err := models.ValidateStruct(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateSubject(config.GetDB(), id, &subject); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Subject not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Subject updated successfully"})
}

func DeleteSubjectAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Subject ID is required"})
	}

	if err := database.DeleteSubject(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Subject not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete subject"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Subject deleted successfully"})
}
