package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

func TestCreateOrUpdateAttendanceUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	markedBy := "11111111-1111-1111-1111-111111111111"
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	record := &models.Attendance{
		StudentID: "22222222-2222-2222-2222-222222222222",
		Date:      date,
		Status:    models.Present,
		MarkedBy:  &markedBy,
	}

	mock.ExpectQuery(`INSERT INTO attendances .+ ON CONFLICT \(student_id, date\)`).
		WithArgs(record.StudentID, record.Date, record.Status, record.MarkedBy).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("33333333-3333-3333-3333-333333333333", time.Now(), time.Now()))

	if err := CreateOrUpdateAttendance(db, record); err != nil {
		t.Fatalf("CreateOrUpdateAttendance returned error: %v", err)
	}
	if record.ID == "" {
		t.Error("expected id to be filled from the returned row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetAttendanceByStudentOrdersNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	studentID := "22222222-2222-2222-2222-222222222222"
	rows := sqlmock.NewRows([]string{
		"id", "student_id", "date", "status", "marked_by", "created_at", "updated_at", "student_name",
	}).
		AddRow("a1", studentID, time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), "ABSENT", nil, time.Now(), time.Now(), "Jane Doe").
		AddRow("a2", studentID, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "PRESENT", nil, time.Now(), time.Now(), "Jane Doe")

	mock.ExpectQuery(`FROM attendances a .+ WHERE a\.student_id = \$1 ORDER BY a\.date DESC`).
		WithArgs(studentID).
		WillReturnRows(rows)

	records, err := GetAttendanceByStudent(db, studentID, nil, nil)
	if err != nil {
		t.Fatalf("GetAttendanceByStudent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Status != models.Absent || records[1].Status != models.Present {
		t.Errorf("records came back in unexpected order: %v, %v", records[0].Status, records[1].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetAttendanceReportAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	filters := AttendanceReportFilters{
		StandardName: "Grade 5",
		SectionName:  "A",
		FromDate:     &from,
		ToDate:       &to,
	}

	perStudent := sqlmock.NewRows([]string{"name", "standard", "section", "present", "absent"}).
		AddRow("Jane Doe", "Grade 5", "A", 1, 1)
	mock.ExpectQuery(`GROUP BY u\.id`).
		WithArgs("Grade 5", "A", from, to).
		WillReturnRows(perStudent)

	overall := sqlmock.NewRows([]string{"students", "days", "present", "records"}).
		AddRow(1, 2, 1, 2)
	mock.ExpectQuery(`COUNT\(DISTINCT a\.student_id\)`).
		WithArgs("Grade 5", "A", from, to).
		WillReturnRows(overall)

	summaries, overallCounts, err := GetAttendanceReport(db, filters)
	if err != nil {
		t.Fatalf("GetAttendanceReport returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].TotalPresent != 1 || summaries[0].TotalAbsent != 1 {
		t.Errorf("unexpected summary counts: %+v", summaries[0])
	}
	if overallCounts.TotalStudents != 1 || overallCounts.TotalDays != 2 {
		t.Errorf("unexpected overall counts: %+v", overallCounts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStudentUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("unknown-id").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := StudentUserExists(db, "unknown-id")
	if err != nil {
		t.Fatalf("StudentUserExists returned error: %v", err)
	}
	if exists {
		t.Error("expected false for unknown student")
	}
}
