package models

import "time"

// Role is the closed set of account roles. A user carries exactly one role;
// there are no role transition rules beyond what the update endpoints allow.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
	RoleParent  Role = "PARENT"
)

// ValidRole reports whether s names one of the four known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

type User struct {
	ID        string     `json:"id" validate:"omitempty,uuid"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"-" validate:"required,min=8"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	Role      Role       `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT PARENT"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanMarkAttendance reports whether u may write to the attendance ledger.
func (u *User) CanMarkAttendance() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}

// CanEnterMarks reports whether u may create exams or enter marks.
func (u *User) CanEnterMarks() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}

// CanViewSchoolReports reports whether u may see school-wide reports
// (principal attendance report, class performance, top performers).
func (u *User) CanViewSchoolReports() bool {
	return u.Role == RoleAdmin
}

// PasswordReset is a single-use token handed out by the password reset
// request endpoint and consumed by the confirm endpoint.
type PasswordReset struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
