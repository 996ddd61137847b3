package assignments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

func SetupAssignmentsRoutes(app *fiber.App) {
	staff := accounts.RoleMiddleware(models.RoleAdmin, models.RoleTeacher)

	api := app.Group("/api/assignments")
	api.Use(accounts.AuthMiddleware)

	api.Get("/", ListAssignmentsAPI)
	api.Post("/upload/", staff, CreateAssignmentAPI)
	api.Post("/submit/", accounts.RoleMiddleware(models.RoleStudent), SubmitAssignmentAPI)
	api.Get("/submissions/", staff, ListSubmissionsAPI)
	api.Get("/:id/", GetAssignmentAPI)
}
