package report

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
)

// ReportCardAPI streams a student's report card as a PDF attachment.
func ReportCardAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	db := config.GetDB()

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	marks, err := database.GetMarksByStudent(db, studentID, "", "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch marks"})
	}

	pdfBytes, err := renderReportCard(student, marks)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to render report card")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate report card"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_card_%s.pdf"`, studentID))
	return c.Send(pdfBytes)
}

// ClassPerformanceAPI returns average obtained marks per standard.
func ClassPerformanceAPI(c *fiber.Ctx) error {
	averages, err := database.GetClassPerformance(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch class performance"})
	}
	if averages == nil {
		averages = []*database.StandardAverage{}
	}

	return c.JSON(fiber.Map{"performance": averages})
}

// TopPerformersAPI returns the three students with the best average marks.
func TopPerformersAPI(c *fiber.Ctx) error {
	performers, err := database.GetTopPerformers(config.GetDB(), 3)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top performers"})
	}
	if performers == nil {
		performers = []*database.TopPerformer{}
	}

	return c.JSON(fiber.Map{"top_performers": performers})
}
