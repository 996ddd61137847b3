package models

import "testing"

func TestComputeGrade(t *testing.T) {
	tests := []struct {
		name     string
		obtained float64
		max      float64
		want     string
	}{
		{"exactly 90 percent is A+", 90, 100, "A+"},
		{"above 90 percent", 48, 50, "A+"},
		{"exactly 75 percent is A", 75, 100, "A"},
		{"between 75 and 90", 40, 50, "A"},
		{"exactly 60 percent is B", 30, 50, "B"},
		{"exactly 45 percent is C", 45, 100, "C"},
		{"below 45 percent is D", 22, 50, "D"},
		{"zero marks", 0, 100, "D"},
		{"full marks", 50, 50, "A+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeGrade(tt.obtained, tt.max)
			if err != nil {
				t.Fatalf("ComputeGrade(%v, %v) returned error: %v", tt.obtained, tt.max, err)
			}
			if got != tt.want {
				t.Errorf("ComputeGrade(%v, %v) = %q, want %q", tt.obtained, tt.max, got, tt.want)
			}
		})
	}
}

func TestComputeGradeRejectsInvalidMarks(t *testing.T) {
	if _, err := ComputeGrade(51, 50); err == nil {
		t.Error("expected error when obtained exceeds max")
	}
	if _, err := ComputeGrade(10, 0); err == nil {
		t.Error("expected error when max is zero")
	}
	if _, err := ComputeGrade(10, -5); err == nil {
		t.Error("expected error when max is negative")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{"ADMIN", "TEACHER", "STUDENT", "PARENT"} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"admin", "PRINCIPAL", ""} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestRolePredicates(t *testing.T) {
	teacher := &User{Role: RoleTeacher}
	student := &User{Role: RoleStudent}
	parent := &User{Role: RoleParent}
	admin := &User{Role: RoleAdmin}

	if !teacher.CanMarkAttendance() || !admin.CanMarkAttendance() {
		t.Error("teachers and admins must be able to mark attendance")
	}
	if student.CanMarkAttendance() || parent.CanMarkAttendance() {
		t.Error("students and parents must not be able to mark attendance")
	}
	if !admin.CanViewSchoolReports() {
		t.Error("admins must be able to view school reports")
	}
	if teacher.CanViewSchoolReports() {
		t.Error("teachers must not see school-wide reports")
	}
}
