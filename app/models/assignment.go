package models

import "time"

// Assignment is work given by a teacher to the students of a subject.
// Listed newest-first.
type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty"`
	SubjectID   string    `json:"subject_id" validate:"required,uuid"`
	AssignedBy  *string   `json:"assigned_by,omitempty"`
	FilePath    *string   `json:"file,omitempty"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`

	SubjectName    string `json:"subject_name,omitempty"`
	AssignedByName string `json:"assigned_by_name,omitempty"`
}

// AssignmentSubmission is a student's upload for an assignment.
// Unique per (assignment, student).
type AssignmentSubmission struct {
	ID            string    `json:"id"`
	AssignmentID  string    `json:"assignment_id" validate:"required,uuid"`
	StudentID     string    `json:"student_id" validate:"required,uuid"`
	SubmittedFile string    `json:"submitted_file"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Grade         *string   `json:"grade,omitempty"`

	StudentName string `json:"student_name,omitempty"`
}
