package database

import (
	"database/sql"
	"fmt"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

func CreateExam(db *sql.DB, exam *models.Exam) error {
	query := `INSERT INTO exams (name, date, standard_id, section_id, created_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  RETURNING id, created_at`
	return db.QueryRow(query, exam.Name, exam.Date, exam.StandardID, exam.SectionID, exam.CreatedBy).Scan(
		&exam.ID, &exam.CreatedAt,
	)
}

func GetAllExams(db *sql.DB) ([]*models.Exam, error) {
	query := `SELECT e.id, e.name, e.date, e.standard_id, e.section_id, e.created_by, e.created_at,
			  s.name, sec.name
			  FROM exams e
			  JOIN standards s ON e.standard_id = s.id
			  JOIN sections sec ON e.section_id = sec.id
			  ORDER BY e.date DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam := &models.Exam{}
		err := rows.Scan(
			&exam.ID, &exam.Name, &exam.Date, &exam.StandardID, &exam.SectionID,
			&exam.CreatedBy, &exam.CreatedAt, &exam.StandardName, &exam.SectionName,
		)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

// UpsertMarks persists a validated batch in one transaction, keyed by
// (exam, student, subject). A failure on any row rolls back the whole batch.
func UpsertMarks(db *sql.DB, marks []*models.Mark) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO marks (exam_id, student_id, subject_id, marks_obtained, max_marks, remarks, grade, entered_by, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			  ON CONFLICT (exam_id, student_id, subject_id)
			  DO UPDATE SET marks_obtained = EXCLUDED.marks_obtained, max_marks = EXCLUDED.max_marks,
							remarks = EXCLUDED.remarks, grade = EXCLUDED.grade,
							entered_by = EXCLUDED.entered_by, updated_at = NOW()
			  RETURNING id, updated_at`

	for _, mark := range marks {
		err := tx.QueryRow(query,
			mark.ExamID, mark.StudentID, mark.SubjectID, mark.MarksObtained,
			mark.MaxMarks, mark.Remarks, mark.Grade, mark.EnteredBy,
		).Scan(&mark.ID, &mark.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to save mark for student %s: %w", mark.StudentID, err)
		}
	}
	return tx.Commit()
}

const markSelect = `
	SELECT m.id, m.exam_id, m.student_id, m.subject_id, m.marks_obtained, m.max_marks,
		   COALESCE(m.remarks, ''), COALESCE(m.grade, ''), m.entered_by, m.updated_at,
		   u.first_name || ' ' || u.last_name, sub.name, e.name, e.date
	FROM marks m
	JOIN students st ON m.student_id = st.id
	JOIN users u ON st.user_id = u.id
	JOIN subjects sub ON m.subject_id = sub.id
	JOIN exams e ON m.exam_id = e.id`

func scanMarkRows(rows *sql.Rows) ([]*models.Mark, error) {
	defer rows.Close()

	var marks []*models.Mark
	for rows.Next() {
		mark := &models.Mark{}
		err := rows.Scan(
			&mark.ID, &mark.ExamID, &mark.StudentID, &mark.SubjectID,
			&mark.MarksObtained, &mark.MaxMarks, &mark.Remarks, &mark.Grade,
			&mark.EnteredBy, &mark.UpdatedAt,
			&mark.StudentName, &mark.SubjectName, &mark.ExamName, &mark.ExamDate,
		)
		if err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

// GetMarksByStudent lists a student's marks ordered by exam date (newest
// first) then subject name, optionally narrowed to one exam or subject.
func GetMarksByStudent(db *sql.DB, studentID string, examID, subjectID string) ([]*models.Mark, error) {
	query := markSelect + ` WHERE m.student_id = $1`
	args := []interface{}{studentID}

	if examID != "" {
		args = append(args, examID)
		query += fmt.Sprintf(" AND m.exam_id = $%d", len(args))
	}
	if subjectID != "" {
		args = append(args, subjectID)
		query += fmt.Sprintf(" AND m.subject_id = $%d", len(args))
	}
	query += ` ORDER BY e.date DESC, sub.name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return scanMarkRows(rows)
}

// StandardAverage is one row of the class performance report.
type StandardAverage struct {
	Standard string  `json:"standard"`
	AvgMarks float64 `json:"avg_marks"`
}

func GetClassPerformance(db *sql.DB) ([]*StandardAverage, error) {
	query := `SELECT COALESCE(s.name, ''), AVG(m.marks_obtained)
			  FROM marks m
			  JOIN students st ON m.student_id = st.id
			  LEFT JOIN standards s ON st.standard_id = s.id
			  GROUP BY s.name
			  ORDER BY s.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var averages []*StandardAverage
	for rows.Next() {
		avg := &StandardAverage{}
		if err := rows.Scan(&avg.Standard, &avg.AvgMarks); err != nil {
			return nil, err
		}
		averages = append(averages, avg)
	}
	return averages, rows.Err()
}

// TopPerformer is one row of the top performers report.
type TopPerformer struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Standard    string  `json:"standard"`
	AvgMarks    float64 `json:"avg_marks"`
}

// GetTopPerformers returns the limit best students by average obtained marks.
func GetTopPerformers(db *sql.DB, limit int) ([]*TopPerformer, error) {
	query := `SELECT st.id, u.first_name || ' ' || u.last_name, COALESCE(s.name, ''), AVG(m.marks_obtained) AS avg_marks
			  FROM marks m
			  JOIN students st ON m.student_id = st.id
			  JOIN users u ON st.user_id = u.id
			  LEFT JOIN standards s ON st.standard_id = s.id
			  GROUP BY st.id, u.first_name, u.last_name, s.name
			  ORDER BY avg_marks DESC
			  LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performers []*TopPerformer
	for rows.Next() {
		p := &TopPerformer{}
		if err := rows.Scan(&p.StudentID, &p.StudentName, &p.Standard, &p.AvgMarks); err != nil {
			return nil, err
		}
		performers = append(performers, p)
	}
	return performers, rows.Err()
}
