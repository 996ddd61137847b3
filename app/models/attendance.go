package models

import "time"

// AttendanceStatus defines the possible status values for the ledger.
type AttendanceStatus string

const (
	Present AttendanceStatus = "PRESENT"
	Absent  AttendanceStatus = "ABSENT"
)

// ValidAttendanceStatus reports whether s is one of the two ledger statuses.
func ValidAttendanceStatus(s string) bool {
	return AttendanceStatus(s) == Present || AttendanceStatus(s) == Absent
}

// Attendance is one ledger row: a student's status for one calendar day.
// At most one row exists per (student, date); re-marking overwrites it.
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id" validate:"required,uuid"`
	Date      time.Time        `json:"date" validate:"required"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=PRESENT ABSENT"`
	MarkedBy  *string          `json:"marked_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	StudentName string `json:"student_name,omitempty"`
}

// AttendanceSummary is one per-student block of the principal report.
type AttendanceSummary struct {
	StudentName          string `json:"student_name"`
	Standard             string `json:"standard"`
	Section              string `json:"section"`
	TotalPresent         int    `json:"total_present"`
	TotalAbsent          int    `json:"total_absent"`
	AttendancePercentage string `json:"attendance_percentage"`
}
