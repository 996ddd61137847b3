package models

import "time"

// Standard represents a grade level, e.g. "Grade 5". Names are unique.
type Standard struct {
	ID       string     `json:"id"`
	Name     string     `json:"name" validate:"required,max=20"`
	Sections []*Section `json:"sections,omitempty"`
}

// Section is a subdivision of a Standard, e.g. "A". Unique per (name, standard).
type Section struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required,max=5"`
	StandardID string    `json:"standard_id" validate:"required,uuid"`
	Standard   *Standard `json:"standard,omitempty"`
}

// Subject belongs to a Standard and may be taught by a teacher. The code is
// unique across the school.
type Subject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required,max=100"`
	Code        string  `json:"code" validate:"required,max=20"`
	StandardID  string  `json:"standard_id" validate:"required,uuid"`
	TeacherID   *string `json:"teacher_id,omitempty" validate:"omitempty,uuid"`
	StandardName string `json:"standard_name,omitempty"`
	TeacherName  string `json:"teacher_name,omitempty"`
}

// Student links a User (role STUDENT) to its place in the academic taxonomy.
// Standard and section are nulled when either is deleted.
type Student struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	StandardID *string   `json:"standard_id,omitempty"`
	SectionID  *string   `json:"section_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	User       *User     `json:"user,omitempty"`
	Standard   *Standard `json:"standard,omitempty"`
	Section    *Section  `json:"section,omitempty"`
}

// ParentStudent links a parent account to a student record. Unique per pair.
type ParentStudent struct {
	ID        string `json:"id"`
	ParentID  string `json:"parent_id" validate:"required,uuid"`
	StudentID string `json:"student_id" validate:"required,uuid"`
}
