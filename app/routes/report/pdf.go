package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

// renderReportCard draws the report card PDF for a student: a title with the
// student's name and one line per mark, or a placeholder when none exist.
func renderReportCard(student *models.Student, marks []*models.Mark) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Report Card - %s", student.User.FullName()))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	if len(marks) == 0 {
		pdf.Cell(0, 8, "No marks available.")
	} else {
		pdf.SetFont("Helvetica", "B", 12)
		widths := []float64{70, 35, 35, 25}
		headers := []string{"Subject", "Marks Obtained", "Max Marks", "Grade"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 12)
		for _, mark := range marks {
			pdf.CellFormat(widths[0], 8, mark.SubjectName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 8, fmt.Sprintf("%.2f", mark.MarksObtained), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], 8, fmt.Sprintf("%.2f", mark.MaxMarks), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 8, mark.Grade, "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
