package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

func SetupAttendanceRoutes(app *fiber.App) {
	staff := accounts.RoleMiddleware(models.RoleAdmin, models.RoleTeacher)

	api := app.Group("/api/attendance")
	api.Use(accounts.AuthMiddleware)

	api.Post("/mark/", staff, MarkAttendanceAPI)
	api.Get("/student/:studentId/", StudentAttendanceAPI)
	api.Get("/class/:sectionId/", staff, ClassAttendanceAPI)

	api.Get("/report/principal/", accounts.RoleMiddleware(models.RoleAdmin), PrincipalReportAPI)
	api.Get("/report/principal/export/", accounts.RoleMiddleware(models.RoleAdmin), PrincipalReportExportAPI)
	api.Get("/report/parent/", accounts.RoleMiddleware(models.RoleParent), ParentReportAPI)
}
