package main

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/assignments"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/attendance"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/performance"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/report"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/students"
)

// errorHandler keeps every error response in the same JSON shape.
func errorHandler(c *fiber.Ctx, err error) error {
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
	if err := config.Load(); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to load configuration")
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to run migrations")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Routes
	accounts.SetupAccountsRoutes(app)
	students.SetupStudentsRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	performance.SetupPerformanceRoutes(app)
	assignments.SetupAssignmentsRoutes(app)
	report.SetupReportRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	addr := ":" + config.AppConfig.Port
	logger.Log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		logger.Log.Fatal().Err(err).Msg("server stopped")
	}
}
