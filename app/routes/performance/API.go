package performance

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

var validate = validator.New()

func ListExamsAPI(c *fiber.Ctx) error {
	exams, err := database.GetAllExams(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch exams"})
	}
	return c.JSON(fiber.Map{"exams": exams, "count": len(exams)})
}

func CreateExamAPI(c *fiber.Ctx) error {
	type ExamRequest struct {
		Name       string `json:"name" validate:"required"`
		Date       string `json:"date" validate:"required"`
		StandardID string `json:"standard_id" validate:"required,uuid"`
		SectionID  string `json:"section_id" validate:"required,uuid"`
	}

	var req ExamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
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

	user := accounts.CurrentUser(c)
	exam := &models.Exam{
		Name:       req.Name,
		Date:       date,
		StandardID: req.StandardID,
		SectionID:  req.SectionID,
		CreatedBy:  &user.ID,
	}

	if err := database.CreateExam(db, exam); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(400).JSON(fiber.Map{"error": "An exam with this name already exists for the standard and section"})
		}
		logger.Log.Error().Err(err).Msg("failed to create exam")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create exam"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Exam created successfully",
		"exam":    exam,
	})
}

type markEntry struct {
	ExamID        string  `json:"exam_id" validate:"required,uuid"`
	StudentID     string  `json:"student_id" validate:"required,uuid"`
	SubjectID     string  `json:"subject_id" validate:"required,uuid"`
	MarksObtained float64 `json:"marks_obtained" validate:"gte=0"`
	MaxMarks      float64 `json:"max_marks" validate:"gt=0"`
	Remarks       string  `json:"remarks"`
}

func parseMarkEntries(body []byte) ([]markEntry, error) {
	var batch []markEntry
	if err := json.Unmarshal(body, &batch); err == nil {
		return batch, nil
	}

	var single markEntry
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []markEntry{single}, nil
}

// MarkEntryAPI accepts one or many mark records. The whole batch is
// validated before anything is persisted, including the grade derivation,
// which fails when obtained exceeds max. Persistence itself is one
// transaction, so the request is all-or-nothing.
func MarkEntryAPI(c *fiber.Ctx) error {
	entries, err := parseMarkEntries(c.Body())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(entries) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No mark records provided"})
	}

	user := accounts.CurrentUser(c)
	marks := make([]*models.Mark, 0, len(entries))

	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Record %d: %s", i, err.Error())})
		}
		grade, err := models.ComputeGrade(entry.MarksObtained, entry.MaxMarks)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Record %d: %s", i, err.Error())})
		}

		marks = append(marks, &models.Mark{
			ExamID:        entry.ExamID,
			StudentID:     entry.StudentID,
			SubjectID:     entry.SubjectID,
			MarksObtained: entry.MarksObtained,
			MaxMarks:      entry.MaxMarks,
			Remarks:       entry.Remarks,
			Grade:         grade,
			EnteredBy:     &user.ID,
		})
	}

	if err := database.UpsertMarks(config.GetDB(), marks); err != nil {
		logger.Log.Error().Err(err).Msg("failed to save marks")
		return c.Status(400).JSON(fiber.Map{"error": "Failed to save marks: invalid exam, student or subject reference"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Marks saved successfully",
		"marks":   marks,
	})
}

// StudentMarksAPI lists one student's marks, filterable by exam or subject.
// A STUDENT caller only sees their own; a PARENT caller must be linked to
// the student. Both failures yield an empty list rather than an error.
func StudentMarksAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	user := accounts.CurrentUser(c)
	db := config.GetDB()

	if _, err := database.GetStudentByID(db, studentID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	allowed, err := canViewStudentMarks(db, user, studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if !allowed {
		return c.JSON(fiber.Map{"marks": []*models.Mark{}, "count": 0})
	}

	marks, err := database.GetMarksByStudent(db, studentID, c.Query("exam"), c.Query("subject"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch marks"})
	}
	if marks == nil {
		marks = []*models.Mark{}
	}

	return c.JSON(fiber.Map{"marks": marks, "count": len(marks)})
}

func canViewStudentMarks(db *sql.DB, user *models.User, studentID string) (bool, error) {
	switch user.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return true, nil
	case models.RoleStudent:
		own, err := database.GetStudentByUserID(db, user.ID)
		if err != nil {
			if err == sql.ErrNoRows {
				return false, nil
			}
			return false, err
		}
		return own.ID == studentID, nil
	case models.RoleParent:
		return database.IsParentLinked(db, user.ID, studentID)
	}
	return false, nil
}

// MyMarksAPI returns the logged-in student's marks, or a parent's selected
// linked child via ?student_id=. An unlinked child yields an empty list.
func MyMarksAPI(c *fiber.Ctx) error {
	user := accounts.CurrentUser(c)
	db := config.GetDB()

	empty := fiber.Map{"marks": []*models.Mark{}, "count": 0}

	var studentID string
	switch user.Role {
	case models.RoleStudent:
		student, err := database.GetStudentByUserID(db, user.ID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(empty)
			}
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
		}
		studentID = student.ID
	case models.RoleParent:
		studentID = c.Query("student_id")
		if studentID == "" {
			return c.JSON(empty)
		}
		linked, err := database.IsParentLinked(db, user.ID, studentID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		if !linked {
			return c.JSON(empty)
		}
	default:
		return c.JSON(empty)
	}

	marks, err := database.GetMarksByStudent(db, studentID, "", "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch marks"})
	}
	if marks == nil {
		marks = []*models.Mark{}
	}

	return c.JSON(fiber.Map{"marks": marks, "count": len(marks)})
}
