package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(conn db.DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func gradePtr(ns sql.NullString) *models.Grade {
	if !ns.Valid {
		return nil
	}
	g := models.Grade(ns.String)
	return &g
}

func gradeValue(g *models.Grade) sql.NullString {
	if g == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*g), Valid: true}
}

// Create inserts an enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "enrollment_date", "grade").
		Values(
			enrollment.StudentID,
			enrollment.CourseID,
			helpers.FormatDate(enrollment.EnrollmentDate),
			gradeValue(enrollment.Grade),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// Delete removes the (studentID, courseID) enrollment and reports whether it existed
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID string) (bool, error) {
	query, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting enrollment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// Exists checks whether the student is enrolled in the course
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}))
}

// UpdateGrade sets or clears the grade and reports whether the enrollment existed
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, studentID, courseID string, grade *models.Grade) (bool, error) {
	query, args, err := r.sb.Update("enrollments").
		Set("grade", gradeValue(grade)).
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update grade query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return false, translated
		}
		return false, fmt.Errorf("error updating grade: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// List returns enrollments matching filter, joined with student and course names
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentRow, error) {
	builder := r.sb.Select(
		"e.student_id", "p.name", "s.roll_number", "e.course_id", "c.name", "e.enrollment_date", "e.grade",
	).
		From("enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("persons p ON s.id = p.id").
		Join("courses c ON e.course_id = c.id")

	if filter.CourseName != "" {
		builder = builder.Where(squirrel.Eq{"c.name": filter.CourseName})
	}
	if filter.StudentName != "" {
		builder = builder.Where(squirrel.Eq{"p.name": filter.StudentName})
	}
	switch filter.Grade {
	case "", models.GradeFilterAll:
	case models.GradeFilterGraded:
		builder = builder.Where("e.grade IS NOT NULL")
	case models.GradeFilterUngraded:
		builder = builder.Where(squirrel.Eq{"e.grade": nil})
	default:
		builder = builder.Where(squirrel.Eq{"e.grade": string(filter.Grade)})
	}

	query, args, err := builder.OrderBy("e.rowid").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []models.EnrollmentRow{}
	for rows.Next() {
		var row models.EnrollmentRow
		var date string
		var grade sql.NullString
		if err := rows.Scan(&row.StudentID, &row.StudentName, &row.RollNumber, &row.CourseID, &row.CourseName, &date, &grade); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		if row.EnrollmentDate, err = helpers.ParseDate(date); err != nil {
			return nil, err
		}
		row.Grade = gradePtr(grade)
		enrollments = append(enrollments, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}
	return enrollments, nil
}

// GetByStudentID returns the student's courses with department and instructor names
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID string) ([]models.StudentCourse, error) {
	query, args, err := r.sb.Select(
		"c.id", "c.name", "d.name", "p.name", "COALESCE(c.credits, 0)", "e.enrollment_date", "e.grade",
	).
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		LeftJoin("departments d ON c.department_id = d.id").
		LeftJoin("persons p ON c.instructor_id = p.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student courses: %w", err)
	}
	defer rows.Close()

	courses := []models.StudentCourse{}
	for rows.Next() {
		var sc models.StudentCourse
		var department, instructor, grade sql.NullString
		var date string
		if err := rows.Scan(&sc.CourseID, &sc.CourseName, &department, &instructor, &sc.Credits, &date, &grade); err != nil {
			return nil, fmt.Errorf("error scanning student course: %w", err)
		}
		if sc.EnrollmentDate, err = helpers.ParseDate(date); err != nil {
			return nil, err
		}
		sc.DepartmentName = helpers.StringPtr(department)
		sc.InstructorName = helpers.StringPtr(instructor)
		sc.Grade = gradePtr(grade)
		courses = append(courses, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student courses: %w", err)
	}
	return courses, nil
}

// GetRoster returns the students enrolled in a course
func (r *EnrollmentRepository) GetRoster(ctx context.Context, courseID string) ([]models.RosterEntry, error) {
	query, args, err := r.sb.Select("s.id", "p.name", "s.roll_number", "e.enrollment_date", "e.grade").
		From("enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("persons p ON s.id = p.id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("e.rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying roster: %w", err)
	}
	defer rows.Close()

	roster := []models.RosterEntry{}
	for rows.Next() {
		var entry models.RosterEntry
		var date string
		var grade sql.NullString
		if err := rows.Scan(&entry.StudentID, &entry.StudentName, &entry.RollNumber, &date, &grade); err != nil {
			return nil, fmt.Errorf("error scanning roster entry: %w", err)
		}
		if entry.EnrollmentDate, err = helpers.ParseDate(date); err != nil {
			return nil, err
		}
		entry.Grade = gradePtr(grade)
		roster = append(roster, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", err)
	}
	return roster, nil
}

// Count returns the number of enrollments
func (r *EnrollmentRepository) Count(ctx context.Context) (int, error) {
	return db.Count(ctx, r.db, r.sb.Select("COUNT(*)").From("enrollments"))
}
