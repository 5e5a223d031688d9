package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Version is recorded in PRAGMA user_version once the tables exist.
const Version = 1

// statements create the store idempotently. Person extension rows are keyed
// by the person id; triggers keep the extension table and persons.type in step.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS persons (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		age   INTEGER,
		email TEXT UNIQUE,
		type  TEXT NOT NULL CHECK (type IN ('student', 'instructor'))
	)`,

	`CREATE TABLE IF NOT EXISTS students (
		id          TEXT PRIMARY KEY REFERENCES persons(id),
		roll_number TEXT NOT NULL UNIQUE,
		entry_year  INTEGER,
		program     TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS instructors (
		id            TEXT PRIMARY KEY REFERENCES persons(id),
		salary        REAL,
		department_id TEXT REFERENCES departments(id),
		position      TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		department_id TEXT REFERENCES departments(id),
		instructor_id TEXT REFERENCES instructors(id),
		credits       INTEGER,
		description   TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS enrollments (
		student_id      TEXT NOT NULL REFERENCES students(id),
		course_id       TEXT NOT NULL REFERENCES courses(id),
		enrollment_date TEXT NOT NULL,
		grade           TEXT CHECK (grade IS NULL OR grade IN ('A', 'A-', 'B+', 'B', 'B-', 'C+', 'C', 'C-', 'D+', 'D', 'F')),
		PRIMARY KEY (student_id, course_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_department ON courses(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_instructor ON courses(instructor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_instructors_department ON instructors(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_course ON enrollments(course_id)`,

	`CREATE TRIGGER IF NOT EXISTS students_person_type
	BEFORE INSERT ON students
	WHEN (SELECT type FROM persons WHERE id = NEW.id) IS NOT 'student'
	BEGIN
		SELECT RAISE(ABORT, 'person type mismatch: students.id');
	END`,

	`CREATE TRIGGER IF NOT EXISTS instructors_person_type
	BEFORE INSERT ON instructors
	WHEN (SELECT type FROM persons WHERE id = NEW.id) IS NOT 'instructor'
	BEGIN
		SELECT RAISE(ABORT, 'person type mismatch: instructors.id');
	END`,
}

// Ensure creates any missing tables in a single transaction.
func Ensure(ctx context.Context, conn *sql.DB, lgr zerolog.Logger) error {
	var current int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error applying schema statement: %w", err)
		}
	}

	if current < Version {
		// PRAGMA does not take bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", Version)); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	if current < Version {
		lgr.Info().Int("version", Version).Msg("Store schema created")
	} else {
		lgr.Debug().Int("version", current).Msg("Store schema already present")
	}
	return nil
}

// Tables lists the tables Ensure creates, in dependency order.
func Tables() []string {
	return []string{"departments", "persons", "students", "instructors", "courses", "enrollments"}
}
