package report

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

func SetupReportRoutes(app *fiber.App) {
	api := app.Group("/api/report")
	api.Use(accounts.AuthMiddleware)

	api.Get("/report-card/:studentId/", ReportCardAPI)
	api.Get("/class-performance/", accounts.RoleMiddleware(models.RoleAdmin), ClassPerformanceAPI)
	api.Get("/top-performers/", accounts.RoleMiddleware(models.RoleAdmin), TopPerformersAPI)
}
