package performance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

func SetupPerformanceRoutes(app *fiber.App) {
	staff := accounts.RoleMiddleware(models.RoleAdmin, models.RoleTeacher)

	exams := app.Group("/api/exams")
	exams.Use(accounts.AuthMiddleware)
	exams.Get("/", ListExamsAPI)
	exams.Post("/", staff, CreateExamAPI)

	marks := app.Group("/api/marks")
	marks.Use(accounts.AuthMiddleware)
	marks.Post("/entry/", staff, MarkEntryAPI)
	marks.Get("/student/:studentId/", StudentMarksAPI)
	marks.Get("/my/", MyMarksAPI)
}
