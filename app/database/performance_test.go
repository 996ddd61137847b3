package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

func TestUpsertMarksCommitsBatchInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	enteredBy := "11111111-1111-1111-1111-111111111111"
	marks := []*models.Mark{
		{ExamID: "e1", StudentID: "s1", SubjectID: "sub1", MarksObtained: 45, MaxMarks: 50, Grade: "A+", EnteredBy: &enteredBy},
		{ExamID: "e1", StudentID: "s2", SubjectID: "sub1", MarksObtained: 20, MaxMarks: 50, Grade: "D", EnteredBy: &enteredBy},
	}

	mock.ExpectBegin()
	for _, mark := range marks {
		mock.ExpectQuery(`INSERT INTO marks .+ ON CONFLICT \(exam_id, student_id, subject_id\)`).
			WithArgs(mark.ExamID, mark.StudentID, mark.SubjectID, mark.MarksObtained,
				mark.MaxMarks, mark.Remarks, mark.Grade, mark.EnteredBy).
			WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow("m-"+mark.StudentID, time.Now()))
	}
	mock.ExpectCommit()

	if err := UpsertMarks(db, marks); err != nil {
		t.Fatalf("UpsertMarks returned error: %v", err)
	}
	for _, mark := range marks {
		if mark.ID == "" {
			t.Errorf("mark for student %s did not get an id back", mark.StudentID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertMarksRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	marks := []*models.Mark{
		{ExamID: "e1", StudentID: "s1", SubjectID: "missing", MarksObtained: 45, MaxMarks: 50, Grade: "A+"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO marks`).
		WillReturnError(errForeignKey{})
	mock.ExpectRollback()

	if err := UpsertMarks(db, marks); err == nil {
		t.Fatal("expected error when a row violates a foreign key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

type errForeignKey struct{}

func (errForeignKey) Error() string { return "violates foreign key constraint" }

func TestGetTopPerformersLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "standard", "avg"}).
		AddRow("s1", "Jane Doe", "Grade 5", 92.5).
		AddRow("s2", "John Roe", "Grade 5", 88.0).
		AddRow("s3", "Ann Poe", "Grade 4", 80.0)

	mock.ExpectQuery(`ORDER BY avg_marks DESC`).
		WithArgs(3).
		WillReturnRows(rows)

	performers, err := GetTopPerformers(db, 3)
	if err != nil {
		t.Fatalf("GetTopPerformers returned error: %v", err)
	}
	if len(performers) != 3 {
		t.Fatalf("expected 3 performers, got %d", len(performers))
	}
	if performers[0].StudentName != "Jane Doe" || performers[0].AvgMarks != 92.5 {
		t.Errorf("unexpected first performer: %+v", performers[0])
	}
}
