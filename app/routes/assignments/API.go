package assignments

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

// saveUpload stores an uploaded file under the configured upload directory
// and returns its relative path. Filenames get a uuid prefix to avoid
// collisions between uploads with the same name.
func saveUpload(c *fiber.Ctx, subdir, filename string) (string, error) {
	dir := filepath.Join(config.AppConfig.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return "", err
	}

	relPath := filepath.Join(subdir, uuid.New().String()+"_"+filename)
	if err := c.SaveFile(file, filepath.Join(config.AppConfig.UploadDir, relPath)); err != nil {
		return "", err
	}
	return relPath, nil
}

// CreateAssignmentAPI creates an assignment from a multipart form so an
// optional file can come along with the fields.
func CreateAssignmentAPI(c *fiber.Ctx) error {
	title := c.FormValue("title")
	description := c.FormValue("description")
	subjectID := c.FormValue("subject_id")
	dueDateStr := c.FormValue("due_date")

	if title == "" || subjectID == "" || dueDateStr == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title, subject_id and due_date are required"})
	}

	dueDate, err := time.Parse(time.RFC3339, dueDateStr)
	if err != nil {
		// Also accept a bare date
		dueDate, err = time.Parse("2006-01-02", dueDateStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid due_date. Use YYYY-MM-DD or RFC3339"})
		}
	}

	db := config.GetDB()
	user := accounts.CurrentUser(c)

	assignment := &models.Assignment{
		Title:       title,
		Description: description,
		SubjectID:   subjectID,
		AssignedBy:  &user.ID,
		DueDate:     dueDate,
	}

	if file, err := c.FormFile("file"); err == nil && file != nil {
		relPath, err := saveUpload(c, "assignments", file.Filename)
		if err != nil {
			logger.Log.Error().Err(err).Msg("failed to store assignment file")
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store uploaded file"})
		}
		assignment.FilePath = &relPath
	}

	if err := database.CreateAssignment(db, assignment); err != nil {
		logger.Log.Error().Err(err).Msg("failed to create assignment")
		return c.Status(400).JSON(fiber.Map{"error": "Failed to create assignment: invalid subject reference"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Assignment created successfully",
		"assignment": assignment,
	})
}

func ListAssignmentsAPI(c *fiber.Ctx) error {
	assignments, err := database.GetAssignments(config.GetDB(), c.Query("subject"), c.Query("teacher"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

func GetAssignmentAPI(c *fiber.Ctx) error {
	assignment, err := database.GetAssignmentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Assignment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignment"})
	}

	return c.JSON(fiber.Map{"assignment": assignment})
}

// SubmitAssignmentAPI records the calling student's submission; re-submitting
// replaces the earlier file.
func SubmitAssignmentAPI(c *fiber.Ctx) error {
	assignmentID := c.FormValue("assignment_id")
	if assignmentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "assignment_id is required"})
	}

	db := config.GetDB()
	user := accounts.CurrentUser(c)

	if _, err := database.GetAssignmentByID(db, assignmentID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid assignment_id"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch assignment"})
	}

	student, err := database.GetStudentByUserID(db, user.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No student record for this account"})
	}

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return c.Status(400).JSON(fiber.Map{"error": "A submission file is required"})
	}

	relPath, err := saveUpload(c, fmt.Sprintf("submissions/%s", assignmentID), file.Filename)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to store submission file")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store uploaded file"})
	}

	submission := &models.AssignmentSubmission{
		AssignmentID:  assignmentID,
		StudentID:     student.ID,
		SubmittedFile: relPath,
	}
	if err := database.CreateSubmission(db, submission); err != nil {
		logger.Log.Error().Err(err).Msg("failed to save submission")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save submission"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Assignment submitted successfully",
		"submission": submission,
	})
}

func ListSubmissionsAPI(c *fiber.Ctx) error {
	assignmentID := c.Query("assignment")
	if assignmentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "assignment query parameter is required"})
	}

	submissions, err := database.GetSubmissions(config.GetDB(), assignmentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}
	if submissions == nil {
		submissions = []*models.AssignmentSubmission{}
	}

	return c.JSON(fiber.Map{
		"submissions": submissions,
		"count":       len(submissions),
	})
}
