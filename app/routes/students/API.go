package students

import (
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

var validate = validator.New()

func RegisterStudentAPI(c *fiber.Ctx) error {
	type RegisterRequest struct {
		FirstName  string `json:"firstname" validate:"required"`
		LastName   string `json:"lastname" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required,min=8"`
		StandardID string `json:"standard_id" validate:"required,uuid"`
		SectionID  string `json:"section_id" validate:"required,uuid"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	if _, err := database.GetStandardByID(db, req.StandardID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid standard ID"})
	}
	section, err := database.GetSectionByID(db, req.SectionID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid section ID"})
	}
	if section.StandardID != req.StandardID {
		return c.Status(400).JSON(fiber.Map{"error": "Section does not belong to the given standard"})
	}

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	student := &models.Student{
		StandardID: &req.StandardID,
		SectionID:  &req.SectionID,
	}

	if err := database.CreateStudent(db, user, student); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(400).JSON(fiber.Map{"error": "A user with this email already exists"})
		}
		logger.Log.Error().Err(err).Msg("failed to register student")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register student"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Student registered successfully",
		"student": student,
	})
}

func ListStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	return c.JSON(fiber.Map{"student": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	type UpdateRequest struct {
		StandardID *string `json:"standard_id" validate:"omitempty,uuid"`
		SectionID  *string `json:"section_id" validate:"omitempty,uuid"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	if req.StandardID != nil {
		if _, err := database.GetStandardByID(db, *req.StandardID); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid standard ID"})
		}
		student.StandardID = req.StandardID
	}
	if req.SectionID != nil {
		if _, err := database.GetSectionByID(db, *req.SectionID); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid section ID"})
		}
		student.SectionID = req.SectionID
	}

	if err := database.UpdateStudent(db, student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	err := database.DeleteStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

func LinkParentAPI(c *fiber.Ctx) error {
	var link models.ParentStudent
	if err := c.BodyParser(&link); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(link); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	parent, err := database.GetUserByID(db, link.ParentID)
	if err != nil || parent.Role != models.RoleParent {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid parent_id or user is not a parent"})
	}
	if _, err := database.GetStudentByID(db, link.StudentID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid student_id"})
	}

	if err := database.LinkParentToStudent(db, &link); err != nil {
		logger.Log.Error().Err(err).Msg("failed to link parent to student")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to link parent"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Parent linked to student successfully",
		"link":    link,
	})
}

// ------------------------------------------------------------------
// Standards, sections, subjects
// ------------------------------------------------------------------

func ListStandardsAPI(c *fiber.Ctx) error {
	standards, err := database.GetAllStandards(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch standards"})
	}
	return c.JSON(fiber.Map{"standards": standards, "count": len(standards)})
}

func CreateStandardAPI(c *fiber.Ctx) error {
	var standard models.Standard
	if err := c.BodyParser(&standard); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(standard); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.CreateStandard(config.GetDB(), &standard); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(400).JSON(fiber.Map{"error": "A standard with this name already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create standard"})
	}

	return c.Status(201).JSON(fiber.Map{"standard": standard})
}

func ListSectionsAPI(c *fiber.Ctx) error {
	sections, err := database.GetAllSections(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sections"})
	}
	return c.JSON(fiber.Map{"sections": sections, "count": len(sections)})
}

func CreateSectionAPI(c *fiber.Ctx) error {
	var section models.Section
	if err := c.BodyParser(&section); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(section); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	if _, err := database.GetStandardByID(db, section.StandardID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid standard ID"})
	}

	if err := database.CreateSection(db, &section); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(400).JSON(fiber.Map{"error": "This section already exists for the standard"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create section"})
	}

	return c.Status(201).JSON(fiber.Map{"section": section})
}

func ListSubjectsAPI(c *fiber.Ctx) error {
	subjects, err := database.GetAllSubjects(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	return c.JSON(fiber.Map{"subjects": subjects, "count": len(subjects)})
}

func CreateSubjectAPI(c *fiber.Ctx) error {
	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(subject); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	if _, err := database.GetStandardByID(db, subject.StandardID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid standard ID"})
	}
	if subject.TeacherID != nil {
		teacher, err := database.GetUserByID(db, *subject.TeacherID)
		if err != nil || teacher.Role != models.RoleTeacher {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher_id or user is not a teacher"})
		}
	}

	if err := database.CreateSubject(db, &subject); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(400).JSON(fiber.Map{"error": "A subject with this code already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(201).JSON(fiber.Map{"subject": subject})
}
