package database

import (
	"database/sql"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

// ------------------------------------------------------------------
// Standards & sections
// ------------------------------------------------------------------

func CreateStandard(db *sql.DB, standard *models.Standard) error {
	query := `INSERT INTO standards (name) VALUES ($1) RETURNING id`
	return db.QueryRow(query, standard.Name).Scan(&standard.ID)
}

// GetAllStandards returns every standard with its sections attached.
func GetAllStandards(db *sql.DB) ([]*models.Standard, error) {
	query := `SELECT s.id, s.name, COALESCE(sec.id::text, ''), COALESCE(sec.name, ''), COALESCE(sec.standard_id::text, '')
			  FROM standards s
			  LEFT JOIN sections sec ON sec.standard_id = s.id
			  ORDER BY s.name, sec.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*models.Standard)
	var standards []*models.Standard
	for rows.Next() {
		var stdID, stdName, secID, secName, secStdID string
		if err := rows.Scan(&stdID, &stdName, &secID, &secName, &secStdID); err != nil {
			return nil, err
		}

		standard, ok := byID[stdID]
		if !ok {
			standard = &models.Standard{ID: stdID, Name: stdName}
			byID[stdID] = standard
			standards = append(standards, standard)
		}
		if secID != "" {
			standard.Sections = append(standard.Sections, &models.Section{
				ID: secID, Name: secName, StandardID: secStdID,
			})
		}
	}
	return standards, rows.Err()
}

func GetStandardByID(db *sql.DB, id string) (*models.Standard, error) {
	standard := &models.Standard{}
	query := `SELECT id, name FROM standards WHERE id = $1`
	err := db.QueryRow(query, id).Scan(&standard.ID, &standard.Name)
	if err != nil {
		return nil, err
	}
	return standard, nil
}

func CreateSection(db *sql.DB, section *models.Section) error {
	query := `INSERT INTO sections (name, standard_id) VALUES ($1, $2) RETURNING id`
	return db.QueryRow(query, section.Name, section.StandardID).Scan(&section.ID)
}

func GetAllSections(db *sql.DB) ([]*models.Section, error) {
	query := `SELECT sec.id, sec.name, sec.standard_id, s.name
			  FROM sections sec
			  JOIN standards s ON sec.standard_id = s.id
			  ORDER BY s.name, sec.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		section := &models.Section{Standard: &models.Standard{}}
		if err := rows.Scan(&section.ID, &section.Name, &section.StandardID, &section.Standard.Name); err != nil {
			return nil, err
		}
		section.Standard.ID = section.StandardID
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

func GetSectionByID(db *sql.DB, id string) (*models.Section, error) {
	section := &models.Section{}
	query := `SELECT id, name, standard_id FROM sections WHERE id = $1`
	err := db.QueryRow(query, id).Scan(&section.ID, &section.Name, &section.StandardID)
	if err != nil {
		return nil, err
	}
	return section, nil
}

// ------------------------------------------------------------------
// Subjects
// ------------------------------------------------------------------

func CreateSubject(db *sql.DB, subject *models.Subject) error {
	query := `INSERT INTO subjects (name, code, standard_id, teacher_id) VALUES ($1, $2, $3, $4) RETURNING id`
	return db.QueryRow(query, subject.Name, subject.Code, subject.StandardID, subject.TeacherID).Scan(&subject.ID)
}

func GetAllSubjects(db *sql.DB) ([]*models.Subject, error) {
	query := `SELECT sub.id, sub.name, sub.code, sub.standard_id, sub.teacher_id, s.name,
			  COALESCE(u.first_name || ' ' || u.last_name, '')
			  FROM subjects sub
			  JOIN standards s ON sub.standard_id = s.id
			  LEFT JOIN users u ON sub.teacher_id = u.id
			  ORDER BY s.name, sub.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Code, &subject.StandardID,
			&subject.TeacherID, &subject.StandardName, &subject.TeacherName); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// ------------------------------------------------------------------
// Students
// ------------------------------------------------------------------

// CreateStudent creates the STUDENT user account and its Student row in one
// transaction; either both exist afterwards or neither does.
func CreateStudent(db *sql.DB, user *models.User, student *models.Student) error {
	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userQuery := `INSERT INTO users (email, password, first_name, last_name, role, is_active, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, 'STUDENT', true, NOW(), NOW())
				  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(userQuery, user.Email, hashedPassword, user.FirstName, user.LastName).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	studentQuery := `INSERT INTO students (user_id, standard_id, section_id, created_at)
					 VALUES ($1, $2, $3, NOW())
					 RETURNING id, created_at`
	err = tx.QueryRow(studentQuery, user.ID, student.StandardID, student.SectionID).Scan(
		&student.ID, &student.CreatedAt,
	)
	if err != nil {
		return err
	}

	student.UserID = user.ID
	user.Role = models.RoleStudent
	user.IsActive = true
	user.Password = ""
	student.User = user
	return tx.Commit()
}

const studentSelect = `
	SELECT st.id, st.user_id, st.standard_id, st.section_id, st.created_at,
		   u.email, u.first_name, u.last_name,
		   COALESCE(s.name, ''), COALESCE(sec.name, '')
	FROM students st
	JOIN users u ON st.user_id = u.id
	LEFT JOIN standards s ON st.standard_id = s.id
	LEFT JOIN sections sec ON st.section_id = sec.id`

func scanStudent(scanner interface{ Scan(...interface{}) error }) (*models.Student, error) {
	student := &models.Student{User: &models.User{Role: models.RoleStudent}}
	var standardName, sectionName string
	err := scanner.Scan(
		&student.ID, &student.UserID, &student.StandardID, &student.SectionID, &student.CreatedAt,
		&student.User.Email, &student.User.FirstName, &student.User.LastName,
		&standardName, &sectionName,
	)
	if err != nil {
		return nil, err
	}
	student.User.ID = student.UserID
	if standardName != "" {
		student.Standard = &models.Standard{Name: standardName}
		if student.StandardID != nil {
			student.Standard.ID = *student.StandardID
		}
	}
	if sectionName != "" {
		student.Section = &models.Section{Name: sectionName}
		if student.SectionID != nil {
			student.Section.ID = *student.SectionID
		}
	}
	return student, nil
}

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	rows, err := db.Query(studentSelect + ` ORDER BY u.first_name, u.last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	row := db.QueryRow(studentSelect+` WHERE st.id = $1`, studentID)
	return scanStudent(row)
}

func GetStudentByUserID(db *sql.DB, userID string) (*models.Student, error) {
	row := db.QueryRow(studentSelect+` WHERE st.user_id = $1`, userID)
	return scanStudent(row)
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `UPDATE students SET standard_id = $1, section_id = $2 WHERE id = $3`
	_, err := db.Exec(query, student.StandardID, student.SectionID, student.ID)
	return err
}

// DeleteStudent removes the student row and its user account; attendance,
// marks and parent links go with them via the cascade rules.
func DeleteStudent(db *sql.DB, studentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID string
	if err := tx.QueryRow(`SELECT user_id FROM students WHERE id = $1`, studentID).Scan(&userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM students WHERE id = $1`, studentID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetStudentUserIDsBySection resolves the user ids behind every student of a
// section. The attendance ledger is keyed by user id, not student id.
func GetStudentUserIDsBySection(db *sql.DB, sectionID string) ([]string, error) {
	rows, err := db.Query(`SELECT user_id FROM students WHERE section_id = $1`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// ------------------------------------------------------------------
// Parent links
// ------------------------------------------------------------------

// LinkParentToStudent is idempotent: relinking an existing pair returns the
// existing link instead of failing on the unique constraint.
func LinkParentToStudent(db *sql.DB, link *models.ParentStudent) error {
	query := `INSERT INTO parent_students (parent_id, student_id) VALUES ($1, $2)
			  ON CONFLICT (parent_id, student_id) DO UPDATE SET parent_id = EXCLUDED.parent_id
			  RETURNING id`
	return db.QueryRow(query, link.ParentID, link.StudentID).Scan(&link.ID)
}

func GetLinkedStudents(db *sql.DB, parentID string) ([]*models.Student, error) {
	rows, err := db.Query(studentSelect+`
		JOIN parent_students ps ON ps.student_id = st.id
		WHERE ps.parent_id = $1
		ORDER BY u.first_name`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func IsParentLinked(db *sql.DB, parentID, studentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM parent_students WHERE parent_id = $1 AND student_id = $2)`
	err := db.QueryRow(query, parentID, studentID).Scan(&exists)
	return exists, err
}
