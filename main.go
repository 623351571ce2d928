package main

import (
	"log"
	"time"

	"sanisidro-college/app/config"
	"sanisidro-college/app/database"
	"sanisidro-college/app/routes/auth"
	"sanisidro-college/app/routes/curricula"
	"sanisidro-college/app/routes/enrollment"
	"sanisidro-college/app/routes/schedule"
	"sanisidro-college/app/routes/sections"
	"sanisidro-college/app/routes/students"
	"sanisidro-college/app/routes/subjects"
	"sanisidro-college/app/routes/teachers"
	"sanisidro-college/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Schedules and enrollment cutoffs are expressed in Philippine time
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Manila location, falling back to UTC+8: %v", err)
		time.Local = time.FixedZone("PHT", 8*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Wire the outbound notifier before any handler runs
	enrollment.Notifier = services.NewNotifier(config.AppConfig.Mail)

	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup schedule routes
	schedule.SetupScheduleRoutes(app)

	// Setup enrollment routes
	enrollment.SetupEnrollmentRoutes(app)

	// Setup sections routes
	sections.SetupSectionsRoutes(app)

	// Setup curricula routes
	curricula.SetupCurriculaRoutes(app)

	// Setup subjects routes
	subjects.SetupSubjectsRoutes(app)

	// Setup students routes
	students.SetupStudentsRoutes(app)

	// Setup teachers routes
	teachers.SetupTeachersRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	// Start server
	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
