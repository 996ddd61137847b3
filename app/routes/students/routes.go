package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

func SetupStudentsRoutes(app *fiber.App) {
	staff := accounts.RoleMiddleware(models.RoleAdmin, models.RoleTeacher)

	students := app.Group("/api/students")
	students.Use(accounts.AuthMiddleware)
	students.Post("/register/", staff, RegisterStudentAPI)
	students.Get("/list/", ListStudentsAPI)
	students.Post("/link-parent/", staff, LinkParentAPI)
	students.Get("/:id/", GetStudentAPI)
	students.Put("/:id/", staff, UpdateStudentAPI)
	students.Delete("/:id/", staff, DeleteStudentAPI)

	taxonomy := app.Group("/api")
	taxonomy.Use(accounts.AuthMiddleware)
	taxonomy.Get("/standards/", ListStandardsAPI)
	taxonomy.Post("/standards/", staff, CreateStandardAPI)
	taxonomy.Get("/sections/", ListSectionsAPI)
	taxonomy.Post("/sections/", staff, CreateSectionAPI)
	taxonomy.Get("/subjects/", ListSubjectsAPI)
	taxonomy.Post("/subjects/", staff, CreateSubjectAPI)
}
