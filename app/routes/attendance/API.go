package attendance

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

type markRequest struct {
	StudentID string `json:"student_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// parseMarkRequests accepts either a single mark object or an array of them.
func parseMarkRequests(body []byte) ([]markRequest, error) {
	var batch []markRequest
	if err := json.Unmarshal(body, &batch); err == nil {
		return batch, nil
	}

	var single markRequest
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []markRequest{single}, nil
}

// MarkAttendanceAPI upserts ledger rows keyed by (student, date). The whole
// batch is validated before any row is written; a bad record rejects the
// entire request.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	requests, err := parseMarkRequests(c.Body())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(requests) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No attendance records provided"})
	}

	db := config.GetDB()
	user := accounts.CurrentUser(c)

	type pending struct {
		studentID string
		date      time.Time
		status    models.AttendanceStatus
	}
	validated := make([]pending, 0, len(requests))

	for i, req := range requests {
		if req.StudentID == "" {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Record %d: student_id is required", i)})
		}
		if !models.ValidAttendanceStatus(req.Status) {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Record %d: status must be PRESENT or ABSENT", i)})
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Record %d: invalid date format. Use YYYY-MM-DD", i)})
		}
		exists, err := database.StudentUserExists(db, req.StudentID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		if !exists {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Record %d: student with this ID does not exist", i)})
		}
		validated = append(validated, pending{req.StudentID, date, models.AttendanceStatus(req.Status)})
	}

	records := make([]*models.Attendance, 0, len(validated))
	for _, p := range validated {
		record := &models.Attendance{
			StudentID: p.studentID,
			Date:      p.date,
			Status:    p.status,
			MarkedBy:  &user.ID,
		}
		if err := database.CreateOrUpdateAttendance(db, record); err != nil {
			logger.Log.Error().Err(err).Str("student_id", p.studentID).Msg("failed to save attendance")
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save attendance record"})
		}
		records = append(records, record)
	}

	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
	})
}

// StudentAttendanceAPI lists one student's ledger rows newest-first. A
// STUDENT caller asking about anyone else gets an empty list, not an error;
// the read endpoints deny by emptiness.
func StudentAttendanceAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	user := accounts.CurrentUser(c)

	if user.Role == models.RoleStudent && user.ID != studentID {
		return c.JSON(fiber.Map{
			"attendance": []*models.Attendance{},
			"count":      0,
		})
	}

	records, err := database.GetAttendanceByStudent(config.GetDB(), studentID, nil, nil)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}

	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
	})
}

// ClassAttendanceAPI lists ledger rows for every student of a section,
// optionally filtered to one exact date via ?date=YYYY-MM-DD.
func ClassAttendanceAPI(c *fiber.Ctx) error {
	sectionID := c.Params("sectionId")
	db := config.GetDB()

	if _, err := database.GetSectionByID(db, sectionID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Section not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch section"})
	}

	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
		date = &parsed
	}

	userIDs, err := database.GetStudentUserIDsBySection(db, sectionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	records, err := database.GetAttendanceByStudents(db, userIDs, date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}
	if records == nil {
		records = []*models.Attendance{}
	}

	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
		"section_id": sectionID,
	})
}
