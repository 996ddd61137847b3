package models

import (
	"fmt"
	"time"
)

// Exam is an exam event scoped to a standard and section.
// Unique per (name, standard, section), listed newest-date-first.
type Exam struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required,max=100"`
	Date         time.Time `json:"date" validate:"required"`
	StandardID   string    `json:"standard_id" validate:"required,uuid"`
	SectionID    string    `json:"section_id" validate:"required,uuid"`
	CreatedBy    *string   `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	StandardName string    `json:"standard_name,omitempty"`
	SectionName  string    `json:"section_name,omitempty"`
}

// Mark is a student's score for one subject in one exam.
// Unique per (exam, student, subject); grade is derived on every save.
type Mark struct {
	ID            string    `json:"id"`
	ExamID        string    `json:"exam_id" validate:"required,uuid"`
	StudentID     string    `json:"student_id" validate:"required,uuid"`
	SubjectID     string    `json:"subject_id" validate:"required,uuid"`
	MarksObtained float64   `json:"marks_obtained" validate:"gte=0"`
	MaxMarks      float64   `json:"max_marks" validate:"gt=0"`
	Remarks       string    `json:"remarks,omitempty"`
	Grade         string    `json:"grade"`
	EnteredBy     *string   `json:"entered_by,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`

	StudentName string     `json:"student_name,omitempty"`
	SubjectName string     `json:"subject_name,omitempty"`
	ExamName    string     `json:"exam_name,omitempty"`
	ExamDate    *time.Time `json:"exam_date,omitempty"`
}

// ComputeGrade derives the letter grade from obtained/max. It fails when
// obtained exceeds max or max is not positive; marks are never stored with
// an inconsistent grade.
func ComputeGrade(obtained, max float64) (string, error) {
	if max <= 0 {
		return "", fmt.Errorf("max marks must be positive")
	}
	if obtained > max {
		return "", fmt.Errorf("marks obtained cannot exceed max marks")
	}

	percentage := (obtained / max) * 100
	switch {
	case percentage >= 90:
		return "A+", nil
	case percentage >= 75:
		return "A", nil
	case percentage >= 60:
		return "B", nil
	case percentage >= 45:
		return "C", nil
	default:
		return "D", nil
	}
}
