package attendance

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

// parseReportFilters reads the optional standard/section/date-range query
// parameters shared by the principal report and its export.
func parseReportFilters(c *fiber.Ctx) (database.AttendanceReportFilters, error) {
	filters := database.AttendanceReportFilters{
		StandardName: c.Query("standard"),
		SectionName:  c.Query("section"),
	}

	fromStr, toStr := c.Query("from_date"), c.Query("to_date")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return filters, fmt.Errorf("invalid from_date format. Use YYYY-MM-DD")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return filters, fmt.Errorf("invalid to_date format. Use YYYY-MM-DD")
		}
		filters.FromDate = &from
		filters.ToDate = &to
	}
	return filters, nil
}

func buildPrincipalReport(filters database.AttendanceReportFilters) ([]*models.AttendanceSummary, fiber.Map, error) {
	summaries, overall, err := database.GetAttendanceReport(config.GetDB(), filters)
	if err != nil {
		return nil, nil, err
	}

	for _, summary := range summaries {
		total := summary.TotalPresent + summary.TotalAbsent
		summary.AttendancePercentage = CalculateAttendancePercentage(summary.TotalPresent, total)
	}
	if summaries == nil {
		summaries = []*models.AttendanceSummary{}
	}

	overallSummary := fiber.Map{
		"total_students":     overall.TotalStudents,
		"total_days":         overall.TotalDays,
		"average_attendance": CalculateAttendancePercentage(overall.PresentCount, overall.RecordCount),
	}
	return summaries, overallSummary, nil
}

// PrincipalReportAPI produces the school-wide attendance report: one summary
// block per student plus an overall summary across all matched ledger rows.
func PrincipalReportAPI(c *fiber.Ctx) error {
	filters, err := parseReportFilters(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summaries, overall, err := buildPrincipalReport(filters)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to build attendance report")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build attendance report"})
	}

	return c.JSON(fiber.Map{
		"summary": overall,
		"records": summaries,
	})
}

// PrincipalReportExportAPI renders the same report as an .xlsx workbook.
func PrincipalReportExportAPI(c *fiber.Ctx) error {
	filters, err := parseReportFilters(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summaries, overall, err := buildPrincipalReport(filters)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to build attendance report")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build attendance report"})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student", "Standard", "Section", "Present", "Absent", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, summary := range summaries {
		values := []interface{}{
			summary.StudentName, summary.Standard, summary.Section,
			summary.TotalPresent, summary.TotalAbsent, summary.AttendancePercentage,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	footerRow := len(summaries) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", footerRow), "Students")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footerRow), overall["total_students"])
	f.SetCellValue(sheet, fmt.Sprintf("C%d", footerRow), "Days")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", footerRow), overall["total_days"])
	f.SetCellValue(sheet, fmt.Sprintf("E%d", footerRow), "Average")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", footerRow), overall["average_attendance"])

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate workbook"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="attendance_report.xlsx"`)
	return c.Send(buf.Bytes())
}

// ParentReportAPI reports attendance for every student linked to the calling
// parent, each with a summary block and the raw matching ledger rows.
func ParentReportAPI(c *fiber.Ctx) error {
	user := accounts.CurrentUser(c)
	db := config.GetDB()

	var from, to *time.Time
	fromStr, toStr := c.Query("from_date"), c.Query("to_date")
	if fromStr != "" && toStr != "" {
		f, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from_date format. Use YYYY-MM-DD"})
		}
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to_date format. Use YYYY-MM-DD"})
		}
		from, to = &f, &t
	}

	linked, err := database.GetLinkedStudents(db, user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch linked students"})
	}

	children := []fiber.Map{}
	for _, student := range linked {
		records, err := database.GetAttendanceByStudent(db, student.UserID, from, to)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
		}
		if len(records) == 0 {
			continue
		}

		present, absent := 0, 0
		for _, record := range records {
			if record.Status == models.Present {
				present++
			} else {
				absent++
			}
		}

		standardName, sectionName := "", ""
		if student.Standard != nil {
			standardName = student.Standard.Name
		}
		if student.Section != nil {
			sectionName = student.Section.Name
		}

		children = append(children, fiber.Map{
			"student_name": student.User.FullName(),
			"standard":     standardName,
			"section":      sectionName,
			"summary": fiber.Map{
				"total_days": len(records),
				"present":    present,
				"absent":     absent,
				"percentage": CalculateAttendancePercentage(present, len(records)),
			},
			"records": records,
		})
	}

	return c.JSON(fiber.Map{"children": children})
}
