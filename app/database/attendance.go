package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

// CreateOrUpdateAttendance upserts the ledger row keyed by (student, date).
// Last write wins; no history is retained.
func CreateOrUpdateAttendance(db *sql.DB, attendance *models.Attendance) error {
	query := `INSERT INTO attendances (student_id, date, status, marked_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  ON CONFLICT (student_id, date)
			  DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, updated_at = NOW()
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, attendance.StudentID, attendance.Date, attendance.Status, attendance.MarkedBy).Scan(
		&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt,
	)
}

// StudentUserExists reports whether a user with role STUDENT exists; used to
// validate mark requests before any ledger write happens.
func StudentUserExists(db *sql.DB, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND role = 'STUDENT' AND is_active = true)`
	err := db.QueryRow(query, userID).Scan(&exists)
	return exists, err
}

const attendanceSelect = `
	SELECT a.id, a.student_id, a.date, a.status, a.marked_by, a.created_at, a.updated_at,
		   u.first_name || ' ' || u.last_name
	FROM attendances a
	JOIN users u ON a.student_id = u.id`

func scanAttendanceRows(rows *sql.Rows) ([]*models.Attendance, error) {
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{}
		err := rows.Scan(
			&record.ID, &record.StudentID, &record.Date, &record.Status,
			&record.MarkedBy, &record.CreatedAt, &record.UpdatedAt, &record.StudentName,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetAttendanceByStudent returns a student's ledger rows newest-first,
// optionally narrowed to an inclusive date range.
func GetAttendanceByStudent(db *sql.DB, studentUserID string, from, to *time.Time) ([]*models.Attendance, error) {
	query := attendanceSelect + ` WHERE a.student_id = $1`
	args := []interface{}{studentUserID}

	if from != nil && to != nil {
		query += ` AND a.date BETWEEN $2 AND $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY a.date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return scanAttendanceRows(rows)
}

// GetAttendanceByStudents returns ledger rows for a set of user ids; with a
// date it filters to that exact day, otherwise newest-first.
func GetAttendanceByStudents(db *sql.DB, userIDs []string, date *time.Time) ([]*models.Attendance, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := attendanceSelect + ` WHERE a.student_id = ANY($1)`
	args := []interface{}{pq.Array(userIDs)}

	if date != nil {
		query += ` AND a.date = $2`
		args = append(args, *date)
	} else {
		query += ` ORDER BY a.date DESC`
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return scanAttendanceRows(rows)
}

// AttendanceReportFilters narrows the principal report. Standard and section
// are matched by name; the date range is applied only when both bounds are set.
type AttendanceReportFilters struct {
	StandardName string
	SectionName  string
	FromDate     *time.Time
	ToDate       *time.Time
}

func (f AttendanceReportFilters) whereClause() (string, []interface{}) {
	where := ""
	var args []interface{}

	if f.StandardName != "" {
		args = append(args, f.StandardName)
		where += fmt.Sprintf(" AND s.name = $%d", len(args))
	}
	if f.SectionName != "" {
		args = append(args, f.SectionName)
		where += fmt.Sprintf(" AND sec.name = $%d", len(args))
	}
	if f.FromDate != nil && f.ToDate != nil {
		args = append(args, *f.FromDate)
		where += fmt.Sprintf(" AND a.date >= $%d", len(args))
		args = append(args, *f.ToDate)
		where += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}
	return where, args
}

// AttendanceOverall carries the raw counts for the report's overall summary.
type AttendanceOverall struct {
	TotalStudents int
	TotalDays     int
	PresentCount  int
	RecordCount   int
}

// GetAttendanceReport groups the matching ledger rows per student and returns
// the summaries plus the overall counts. Percentages are formatted by the caller.
func GetAttendanceReport(db *sql.DB, filters AttendanceReportFilters) ([]*models.AttendanceSummary, *AttendanceOverall, error) {
	where, args := filters.whereClause()

	perStudent := `
		SELECT u.first_name || ' ' || u.last_name,
			   COALESCE(s.name, ''), COALESCE(sec.name, ''),
			   COUNT(*) FILTER (WHERE a.status = 'PRESENT'),
			   COUNT(*) FILTER (WHERE a.status = 'ABSENT')
		FROM attendances a
		JOIN users u ON a.student_id = u.id
		LEFT JOIN students st ON st.user_id = u.id
		LEFT JOIN standards s ON st.standard_id = s.id
		LEFT JOIN sections sec ON st.section_id = sec.id
		WHERE 1=1` + where + `
		GROUP BY u.id, u.first_name, u.last_name, s.name, sec.name
		ORDER BY u.first_name, u.last_name`

	rows, err := db.Query(perStudent, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var summaries []*models.AttendanceSummary
	for rows.Next() {
		summary := &models.AttendanceSummary{}
		err := rows.Scan(
			&summary.StudentName, &summary.Standard, &summary.Section,
			&summary.TotalPresent, &summary.TotalAbsent,
		)
		if err != nil {
			return nil, nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	overallQuery := `
		SELECT COUNT(DISTINCT a.student_id), COUNT(DISTINCT a.date),
			   COUNT(*) FILTER (WHERE a.status = 'PRESENT'), COUNT(*)
		FROM attendances a
		JOIN users u ON a.student_id = u.id
		LEFT JOIN students st ON st.user_id = u.id
		LEFT JOIN standards s ON st.standard_id = s.id
		LEFT JOIN sections sec ON st.section_id = sec.id
		WHERE 1=1` + where

	overall := &AttendanceOverall{}
	err = db.QueryRow(overallQuery, args...).Scan(
		&overall.TotalStudents, &overall.TotalDays, &overall.PresentCount, &overall.RecordCount,
	)
	if err != nil {
		return nil, nil, err
	}

	return summaries, overall, nil
}
