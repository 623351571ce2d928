package enrollment

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
	"sanisidro-college/app/models"
	"sanisidro-college/app/routes/auth"
	"sanisidro-college/app/services"
)

// Notifier is swapped out in tests; main wires the real one at startup.
var Notifier services.EnrollmentNotifier

func notifier() services.EnrollmentNotifier {
	if Notifier == nil {
		Notifier = services.NewNotifier(config.AppConfig.Mail)
	}
	return Notifier
}

func CreateEnrollmentAPI(c *fiber.Ctx) error {
	type CreateEnrollmentRequest struct {
		StudentID string   `json:"student_id"`
		Term      string   `json:"term"`
		EntryKeys []string `json:"entry_keys"`
	}

	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.StudentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student is required"})
	}
	if len(req.EntryKeys) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "At least one section choice is required"})
	}
	if req.Term == "" {
		req.Term = config.AppConfig.Terms.Current
	}

	db := config.GetDB()
	if _, err := database.GetStudentByID(db, req.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to look up student"})
	}

	// Resolve every choice against the live schedule before recording it.
	choices := make([]models.SectionChoice, 0, len(req.EntryKeys))
	for _, key := range req.EntryKeys {
		key = strings.TrimSpace(key)
		entry, err := database.GetScheduleEntryByKey(db, key)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(400).JSON(fiber.Map{"error": "Unknown schedule entry: " + key})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Failed to look up schedule entry"})
		}
		choices = append(choices, models.SectionChoice{
			EntryKey:    entry.EntryKey,
			SubjectCode: entry.SubjectCode,
			SectionName: entry.SectionName,
		})
	}

	enrollment, err := database.CreatePendingEnrollment(db, req.StudentID, req.Term, choices)
	if err != nil {
		log.Printf("Error creating pending enrollment for student %s: %v", req.StudentID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create enrollment"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "enrollment": enrollment})
}

func GetEnrollmentsAPI(c *fiber.Ctx) error {
	status := c.Query("status")

	enrollments, err := database.GetEnrollments(config.GetDB(), status)
	if err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"enrollments": enrollments,
		"count":       len(enrollments),
	})
}

func GetEnrollmentAPI(c *fiber.Ctx) error {
	enrollmentID := c.Params("id")
	if enrollmentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Enrollment ID is required"})
	}

	enrollment, err := database.GetEnrollmentByID(config.GetDB(), enrollmentID)
	if err != nil {
		if errors.Is(err, database.ErrEnrollmentNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Enrollment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch enrollment"})
	}

	return c.JSON(fiber.Map{"success": true, "enrollment": enrollment})
}

// FinalizeEnrollmentAPI admits the student into every chosen section or none.
// Capacity is checked and incremented inside one transaction; a full section
// aborts the whole attempt with no partial increments.
func FinalizeEnrollmentAPI(c *fiber.Ctx) error {
	enrollmentID := c.Params("id")
	if enrollmentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Enrollment ID is required"})
	}

	db := config.GetDB()
	outcome, err := database.FinalizeEnrollment(db, enrollmentID)
	if err != nil {
		var full *database.CapacityExceededError
		if errors.As(err, &full) {
			return c.Status(409).JSON(fiber.Map{
				"error":   "Section is full",
				"section": full.SectionName,
			})
		}
		var partial *database.PartialWriteError
		if errors.As(err, &partial) {
			// Seats are counted but the assignment records are missing;
			// re-running finalize repairs them without double-counting.
			log.Printf("Partial write finalizing enrollment %s: %v", enrollmentID, partial)
			return c.Status(500).JSON(fiber.Map{
				"error":          "Enrollment was counted but records are incomplete; retry finalize to repair",
				"finalize_token": partial.Token,
			})
		}
		switch {
		case errors.Is(err, database.ErrEnrollmentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Enrollment not found"})
		case errors.Is(err, database.ErrEnrollmentNotPending):
			return c.Status(409).JSON(fiber.Map{"error": "Enrollment has already been decided"})
		case errors.Is(err, database.ErrNoChoices), errors.Is(err, database.ErrUnknownEntry):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Error finalizing enrollment %s: %v", enrollmentID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Enrollment transaction failed, please retry"})
	}

	student, err := database.GetStudentByID(db, outcome.Enrollment.StudentID)
	if err != nil {
		log.Printf("Finalized enrollment %s but failed to load student for notification: %v", enrollmentID, err)
	} else if !outcome.Repaired {
		password := provisionPortalAccount(db, student)
		notifier().SendEnrollmentApproved(student.Email, student.StudentNo, password)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"repaired":    outcome.Repaired,
		"enrollment":  outcome.Enrollment,
		"assignments": outcome.Assignments,
	})
}

func RejectEnrollmentAPI(c *fiber.Ctx) error {
	enrollmentID := c.Params("id")
	if enrollmentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Enrollment ID is required"})
	}

	db := config.GetDB()
	enrollment, err := database.RejectEnrollment(db, enrollmentID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrEnrollmentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Enrollment not found"})
		case errors.Is(err, database.ErrEnrollmentNotPending):
			return c.Status(409).JSON(fiber.Map{"error": "Enrollment has already been decided"})
		}
		log.Printf("Error rejecting enrollment %s: %v", enrollmentID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reject enrollment"})
	}

	if student, err := database.GetStudentByID(db, enrollment.StudentID); err == nil {
		notifier().SendEnrollmentRejected(student.Email)
	} else {
		log.Printf("Rejected enrollment %s but failed to load student for notification: %v", enrollmentID, err)
	}

	return c.JSON(fiber.Map{"success": true, "enrollment": enrollment})
}

func GetStudentAssignmentsAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student ID is required"})
	}
	term := c.Query("term")
	if term == "" {
		term = config.AppConfig.Terms.Current
	}

	assignments, err := database.GetStudentAssignments(config.GetDB(), studentID, term)
	if err != nil {
		log.Printf("Error fetching assignments for student %s: %v", studentID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"assignments": assignments,
		"count":       len(assignments),
	})
}

// provisionPortalAccount creates the student's portal login with a temporary
// password. Best-effort: an existing account is left untouched and failures
// only cost the password line in the email.
func provisionPortalAccount(db *sql.DB, student *models.Student) string {
	if _, err := database.GetUserByEmail(db, student.Email); err == nil {
		return "(unchanged)"
	}

	password := uuid.New().String()[:8]
	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash portal password for %s: %v", student.Email, err)
		return "(contact registrar)"
	}

	_, err = database.CreateUser(db, student.Email, hashed, student.FirstName, student.LastName,
		[]string{models.RoleStudent})
	if err != nil {
		log.Printf("Failed to create portal account for %s: %v", student.Email, err)
		return "(contact registrar)"
	}
	return password
}
