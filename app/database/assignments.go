package database

import (
	"database/sql"
	"fmt"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

func CreateAssignment(db *sql.DB, assignment *models.Assignment) error {
	query := `INSERT INTO assignments (title, description, subject_id, assigned_by, file_path, due_date, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  RETURNING id, created_at`
	return db.QueryRow(query,
		assignment.Title, assignment.Description, assignment.SubjectID,
		assignment.AssignedBy, assignment.FilePath, assignment.DueDate,
	).Scan(&assignment.ID, &assignment.CreatedAt)
}

const assignmentSelect = `
	SELECT a.id, a.title, COALESCE(a.description, ''), a.subject_id, a.assigned_by,
		   a.file_path, a.due_date, a.created_at,
		   sub.name, COALESCE(u.first_name || ' ' || u.last_name, '')
	FROM assignments a
	JOIN subjects sub ON a.subject_id = sub.id
	LEFT JOIN users u ON a.assigned_by = u.id`

func scanAssignment(scanner interface{ Scan(...interface{}) error }) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	err := scanner.Scan(
		&assignment.ID, &assignment.Title, &assignment.Description, &assignment.SubjectID,
		&assignment.AssignedBy, &assignment.FilePath, &assignment.DueDate, &assignment.CreatedAt,
		&assignment.SubjectName, &assignment.AssignedByName,
	)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// GetAssignments lists assignments newest-first, optionally filtered by
// subject or by the teacher who assigned them.
func GetAssignments(db *sql.DB, subjectID, teacherID string) ([]*models.Assignment, error) {
	query := assignmentSelect + ` WHERE 1=1`
	var args []interface{}

	if subjectID != "" {
		args = append(args, subjectID)
		query += fmt.Sprintf(" AND a.subject_id = $%d", len(args))
	}
	if teacherID != "" {
		args = append(args, teacherID)
		query += fmt.Sprintf(" AND a.assigned_by = $%d", len(args))
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func GetAssignmentByID(db *sql.DB, id string) (*models.Assignment, error) {
	row := db.QueryRow(assignmentSelect+` WHERE a.id = $1`, id)
	return scanAssignment(row)
}

// CreateSubmission upserts a student's submission; re-submitting replaces
// the previous file, keyed by (assignment, student).
func CreateSubmission(db *sql.DB, submission *models.AssignmentSubmission) error {
	query := `INSERT INTO assignment_submissions (assignment_id, student_id, submitted_file, submitted_at)
			  VALUES ($1, $2, $3, NOW())
			  ON CONFLICT (assignment_id, student_id)
			  DO UPDATE SET submitted_file = EXCLUDED.submitted_file, submitted_at = NOW()
			  RETURNING id, submitted_at`
	return db.QueryRow(query, submission.AssignmentID, submission.StudentID, submission.SubmittedFile).Scan(
		&submission.ID, &submission.SubmittedAt,
	)
}

func GetSubmissions(db *sql.DB, assignmentID string) ([]*models.AssignmentSubmission, error) {
	query := `SELECT sub.id, sub.assignment_id, sub.student_id, sub.submitted_file, sub.submitted_at, sub.grade,
			  u.first_name || ' ' || u.last_name
			  FROM assignment_submissions sub
			  JOIN students st ON sub.student_id = st.id
			  JOIN users u ON st.user_id = u.id
			  WHERE sub.assignment_id = $1
			  ORDER BY sub.submitted_at DESC`

	rows, err := db.Query(query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.AssignmentSubmission
	for rows.Next() {
		submission := &models.AssignmentSubmission{}
		err := rows.Scan(
			&submission.ID, &submission.AssignmentID, &submission.StudentID,
			&submission.SubmittedFile, &submission.SubmittedAt, &submission.Grade,
			&submission.StudentName,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}
