package schedule

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
	"sanisidro-college/app/models"
)

type entryRequest struct {
	SubjectCode  string `json:"subject_code"`
	SubjectTitle string `json:"subject_title"`
	CourseCode   string `json:"course_code"`
	YearLevel    int    `json:"year_level"`
	SectionBlock string `json:"section_block"`
	TeacherID    string `json:"teacher_id"`
	Day          string `json:"day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	RoomOrLink   string `json:"room_or_link"`
	MaxCapacity  int    `json:"max_capacity"`
}

// toEntry builds the schedule entry a request describes, deriving the
// section name from course, year and block.
func (req *entryRequest) toEntry() *models.ScheduleEntry {
	sectionName := fmt.Sprintf("%s-%d-%s", req.CourseCode, req.YearLevel, req.SectionBlock)
	return &models.ScheduleEntry{
		SubjectCode:  req.SubjectCode,
		SubjectTitle: req.SubjectTitle,
		CourseCode:   req.CourseCode,
		YearLevel:    req.YearLevel,
		SectionName:  sectionName,
		TeacherID:    req.TeacherID,
		Day:          models.DayOfWeek(req.Day),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoomOrLink:   req.RoomOrLink,
		MaxCapacity:  req.MaxCapacity,
	}
}

func GetScheduleAPI(c *fiber.Ctx) error {
	filters := database.ScheduleFilters{
		CourseCode:  c.Query("course_code"),
		YearLevel:   c.QueryInt("year_level", 0),
		SectionName: c.Query("section_name"),
		TeacherID:   c.Query("teacher_id"),
		Day:         c.Query("day"),
	}

	entries, err := database.GetScheduleEntries(config.GetDB(), filters)
	if err != nil {
		log.Printf("Error fetching schedule entries: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch schedule"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"entries": entries,
		"count":   len(entries),
	})
}

func GetScheduleEntryAPI(c *fiber.Ctx) error {
	entryID := c.Params("id")
	if entryID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Entry ID is required"})
	}

	entry, err := database.GetScheduleEntryByID(config.GetDB(), entryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Schedule entry not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch schedule entry"})
	}

	return c.JSON(fiber.Map{"success": true, "entry": entry})
}

// CheckConflictAPI runs the advisory conflict check for a proposed entry.
// The check is a convenience for the scheduling screen; the persisting save
// re-validates inside its own transaction regardless.
func CheckConflictAPI(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	proposed := req.toEntry()
	if err := validateEntry(proposed); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	sectionScope, err := database.GetSectionScope(db, proposed.SectionName)
	if err != nil {
		log.Printf("Error fetching section scope for %s: %v", proposed.SectionName, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch section schedule"})
	}

	teacherScope, err := database.GetTeacherScope(db, proposed.TeacherID)
	if err != nil {
		log.Printf("Error fetching teacher scope for %s: %v", proposed.TeacherID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher schedule"})
	}

	result := CheckConflict(proposed, sectionScope, teacherScope)

	return c.JSON(fiber.Map{
		"success":  true,
		"conflict": result,
	})
}

func CreateScheduleEntryAPI(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	entry := req.toEntry()
	if err := validateEntry(entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	teacher, err := database.GetUserByID(db, entry.TeacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown teacher"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to look up teacher"})
	}
	entry.TeacherName = teacher.FirstName + " " + teacher.LastName

	created, err := database.CreateScheduleEntry(db, entry)
	if err != nil {
		var conflict *database.ScheduleConflictError
		if errors.As(err, &conflict) {
			return c.Status(409).JSON(fiber.Map{
				"error":    "Schedule conflict",
				"conflict": conflict.Result,
			})
		}
		if errors.Is(err, database.ErrDuplicateEntry) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Error creating schedule entry: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create schedule entry"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "entry": created})
}

func UpdateScheduleEntryAPI(c *fiber.Ctx) error {
	entryID := c.Params("id")
	if entryID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Entry ID is required"})
	}

	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	entry := req.toEntry()
	entry.ID = entryID
	if err := validateEntry(entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	teacher, err := database.GetUserByID(db, entry.TeacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown teacher"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to look up teacher"})
	}
	entry.TeacherName = teacher.FirstName + " " + teacher.LastName

	if err := database.UpdateScheduleEntry(db, entryID, entry); err != nil {
		var conflict *database.ScheduleConflictError
		if errors.As(err, &conflict) {
			return c.Status(409).JSON(fiber.Map{
				"error":    "Schedule conflict",
				"conflict": conflict.Result,
			})
		}
		if errors.Is(err, database.ErrDuplicateEntry) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, database.ErrCapacityBelowEnrolled) {
			return c.Status(409).JSON(fiber.Map{
				"error":   "Max capacity cannot be below the current enrolled count",
				"section": entry.SectionName,
			})
		}
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Schedule entry not found"})
		}
		log.Printf("Error updating schedule entry %s: %v", entryID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update schedule entry"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Schedule entry updated successfully"})
}

func DeleteScheduleEntryAPI(c *fiber.Ctx) error {
	entryID := c.Params("id")
	if entryID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Entry ID is required"})
	}

	if err := database.DeleteScheduleEntry(config.GetDB(), entryID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Schedule entry not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete schedule entry"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Schedule entry deleted successfully"})
}
