package attendance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/routes/accounts"
)

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	config.AppConfig = &config.Config{DB: db, JWTSecret: "test-secret"}

	app := fiber.New()
	SetupAttendanceRoutes(app)
	return app, mock
}

func authToken(t *testing.T, userID string, role models.Role) string {
	t.Helper()

	token, err := accounts.GenerateJWT(&models.User{
		ID:        userID,
		Email:     "caller@example.com",
		FirstName: "Test",
		LastName:  "Caller",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body []byte) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]json.RawMessage {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to decode body %q: %v", data, err)
	}
	return out
}

func TestStudentSelfViewDeniesOtherStudentsWithEmptyList(t *testing.T) {
	app, mock := setupTestApp(t)
	token := authToken(t, "student-one", models.RoleStudent)

	resp := doRequest(t, app, "GET", "/api/attendance/student/student-two/", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	var records []models.Attendance
	if err := json.Unmarshal(body["attendance"], &records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty list when a student asks about another student, got %d rows", len(records))
	}
	// The ledger must never have been queried.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}

func TestStudentSelfViewReturnsOwnRecords(t *testing.T) {
	app, mock := setupTestApp(t)
	token := authToken(t, "student-one", models.RoleStudent)

	rows := sqlmock.NewRows([]string{
		"id", "student_id", "date", "status", "marked_by", "created_at", "updated_at", "student_name",
	}).AddRow("a1", "student-one", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "PRESENT", nil, time.Now(), time.Now(), "Test Caller")
	mock.ExpectQuery(`WHERE a\.student_id = \$1 ORDER BY a\.date DESC`).
		WithArgs("student-one").
		WillReturnRows(rows)

	resp := doRequest(t, app, "GET", "/api/attendance/student/student-one/", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	var records []models.Attendance
	if err := json.Unmarshal(body["attendance"], &records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	if len(records) != 1 || records[0].Status != models.Present {
		t.Errorf("expected one PRESENT record, got %+v", records)
	}
}

func TestMarkAttendanceRejectsStudents(t *testing.T) {
	app, _ := setupTestApp(t)
	token := authToken(t, "student-one", models.RoleStudent)

	body := []byte(`{"student_id":"student-one","date":"2026-01-10","status":"PRESENT"}`)
	resp := doRequest(t, app, "POST", "/api/attendance/mark/", token, body)
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for student caller, got %d", resp.StatusCode)
	}
}

func TestMarkAttendanceRejectsBadStatusBeforeWriting(t *testing.T) {
	app, mock := setupTestApp(t)
	token := authToken(t, "teacher-one", models.RoleTeacher)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	body := []byte(`[{"student_id":"s1","date":"2026-01-10","status":"PRESENT"},
					 {"student_id":"s2","date":"2026-01-10","status":"TARDY"}]`)
	resp := doRequest(t, app, "POST", "/api/attendance/mark/", token, body)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for an invalid status, got %d", resp.StatusCode)
	}
	// The bad second record rejects the batch before any upsert runs.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}

func TestMarkAttendanceAcceptsSingleObject(t *testing.T) {
	app, mock := setupTestApp(t)
	token := authToken(t, "teacher-one", models.RoleTeacher)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO attendances .+ ON CONFLICT \(student_id, date\)`).
		WithArgs("s1", sqlmock.AnyArg(), models.Present, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("a1", time.Now(), time.Now()))

	body := []byte(`{"student_id":"s1","date":"2026-01-10","status":"PRESENT"}`)
	resp := doRequest(t, app, "POST", "/api/attendance/mark/", token, body)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	respBody := decodeBody(t, resp)
	var count int
	if err := json.Unmarshal(respBody["count"], &count); err != nil {
		t.Fatalf("failed to decode count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkAttendanceRejectsUnknownStudent(t *testing.T) {
	app, mock := setupTestApp(t)
	token := authToken(t, "teacher-one", models.RoleTeacher)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	body := []byte(`{"student_id":"ghost","date":"2026-01-10","status":"ABSENT"}`)
	resp := doRequest(t, app, "POST", "/api/attendance/mark/", token, body)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for unknown student, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestParseMarkRequestsSingleAndArray(t *testing.T) {
	single, err := parseMarkRequests([]byte(`{"student_id":"s1","date":"2026-01-10","status":"PRESENT"}`))
	if err != nil {
		t.Fatalf("single object failed to parse: %v", err)
	}
	if len(single) != 1 || single[0].StudentID != "s1" {
		t.Errorf("unexpected parse result for single object: %+v", single)
	}

	batch, err := parseMarkRequests([]byte(`[{"student_id":"s1","date":"2026-01-10","status":"PRESENT"},{"student_id":"s2","date":"2026-01-10","status":"ABSENT"}]`))
	if err != nil {
		t.Fatalf("array failed to parse: %v", err)
	}
	if len(batch) != 2 || batch[1].Status != "ABSENT" {
		t.Errorf("unexpected parse result for array: %+v", batch)
	}

	if _, err := parseMarkRequests([]byte(`"not an object"`)); err == nil {
		t.Error("expected error for a non-object body")
	}
}
