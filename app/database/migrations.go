package database

import (
	"database/sql"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
)

// RunMigrations creates the schema when missing. Every statement is
// idempotent so the function is safe to run on every startup.
func RunMigrations(db *sql.DB) error {
	logger.Log.Info().Msg("running database migrations")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			role VARCHAR(10) NOT NULL DEFAULT 'STUDENT',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS password_resets (
			token UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS standards (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(20) UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(5) NOT NULL,
			standard_id UUID NOT NULL REFERENCES standards(id) ON DELETE CASCADE,
			UNIQUE (name, standard_id)
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			code VARCHAR(20) UNIQUE NOT NULL,
			standard_id UUID NOT NULL REFERENCES standards(id) ON DELETE CASCADE,
			teacher_id UUID REFERENCES users(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			standard_id UUID REFERENCES standards(id) ON DELETE SET NULL,
			section_id UUID REFERENCES sections(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS parent_students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			parent_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			UNIQUE (parent_id, student_id)
		)`,
		`CREATE TABLE IF NOT EXISTS attendances (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL,
			marked_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS exams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			date DATE NOT NULL,
			standard_id UUID NOT NULL REFERENCES standards(id) ON DELETE CASCADE,
			section_id UUID NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, standard_id, section_id)
		)`,
		`CREATE TABLE IF NOT EXISTS marks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			exam_id UUID NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject_id UUID NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
			marks_obtained NUMERIC(5,2) NOT NULL,
			max_marks NUMERIC(5,2) NOT NULL,
			remarks TEXT,
			grade VARCHAR(3),
			entered_by UUID REFERENCES users(id) ON DELETE SET NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (exam_id, student_id, subject_id)
		)`,
		`CREATE TABLE IF NOT EXISTS assignments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(200) NOT NULL,
			description TEXT,
			subject_id UUID NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
			assigned_by UUID REFERENCES users(id) ON DELETE SET NULL,
			file_path VARCHAR(500),
			due_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS assignment_submissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			assignment_id UUID NOT NULL REFERENCES assignments(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			submitted_file VARCHAR(500) NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			grade VARCHAR(10),
			UNIQUE (assignment_id, student_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances(date)`,
		`CREATE INDEX IF NOT EXISTS idx_marks_student ON marks(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_section ON students(section_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			logger.Log.Error().Err(err).Msg("migration statement failed")
			return err
		}
	}

	logger.Log.Info().Msg("database migrations completed successfully")
	return nil
}
