package sections

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
)

func GetSectionsAPI(c *fiber.Ctx) error {
	courseCode := c.Query("course_code")
	yearLevel := c.QueryInt("year_level", 0)

	sections, err := database.GetCourseSections(config.GetDB(), courseCode, yearLevel)
	if err != nil {
		log.Printf("Error fetching course sections: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sections"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sections": sections,
		"count":    len(sections),
	})
}

// AddSectionBlockAPI appends a block name to the course+year list. The update
// is a single atomic array operation, so two admins adding different blocks
// at the same time both land.
func AddSectionBlockAPI(c *fiber.Ctx) error {
	courseCode := c.Params("course")
	yearLevel, err := c.ParamsInt("year")
	if err != nil || courseCode == "" || yearLevel < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Course and year are required"})
	}

	type BlockRequest struct {
		Block string `json:"block"`
	}
	var req BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	req.Block = strings.ToUpper(strings.TrimSpace(req.Block))
	if req.Block == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Block name is required"})
	}

	section, err := database.AddSectionBlock(config.GetDB(), courseCode, yearLevel, req.Block)
	if err != nil {
		log.Printf("Error adding section block %s to %s-%d: %v", req.Block, courseCode, yearLevel, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add section block"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "section": section})
}

func RemoveSectionBlockAPI(c *fiber.Ctx) error {
	courseCode := c.Params("course")
	yearLevel, err := c.ParamsInt("year")
	if err != nil || courseCode == "" || yearLevel < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Course and year are required"})
	}
	block := strings.ToUpper(strings.TrimSpace(c.Params("block")))
	if block == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Block name is required"})
	}

	section, err := database.RemoveSectionBlock(config.GetDB(), courseCode, yearLevel, block)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "No section list for this course and year"})
		}
		log.Printf("Error removing section block %s from %s-%d: %v", block, courseCode, yearLevel, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove section block"})
	}

	return c.JSON(fiber.Map{"success": true, "section": section})
}
