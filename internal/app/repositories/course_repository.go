package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(conn db.DBTX) *CourseRepository {
	return &CourseRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a course whose ID is already assigned
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query, args, err := r.sb.Insert("courses").
		Columns("id", "name", "department_id", "instructor_id", "credits", "description").
		Values(
			course.ID,
			course.Name,
			helpers.GetNullString(course.DepartmentID),
			helpers.GetNullString(course.InstructorID),
			course.Credits,
			course.Description,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query, args, err := r.sb.Select(
		"id", "name", "department_id", "instructor_id", "COALESCE(credits, 0)", "COALESCE(description, '')",
	).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	var departmentID, instructorID sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&course.ID, &course.Name, &departmentID, &instructorID, &course.Credits, &course.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	course.DepartmentID = helpers.StringPtr(departmentID)
	course.InstructorID = helpers.StringPtr(instructorID)

	return &course, nil
}

// Exists checks whether a course exists
func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("courses").Where(squirrel.Eq{"id": id}))
}

// SetInstructor overwrites the instructor of a course and reports whether the course existed
func (r *CourseRepository) SetInstructor(ctx context.Context, courseID, instructorID string) (bool, error) {
	query, args, err := r.sb.Update("courses").
		Set("instructor_id", instructorID).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build assign instructor query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return false, translated
		}
		return false, fmt.Errorf("error assigning instructor: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// ListCourses returns every course with department and instructor names left-joined
func (r *CourseRepository) ListCourses(ctx context.Context) ([]models.CourseRow, error) {
	query, args, err := r.sb.Select(
		"c.id", "c.name", "d.name", "p.name", "COALESCE(c.credits, 0)", "COALESCE(c.description, '')",
	).
		From("courses c").
		LeftJoin("departments d ON c.department_id = d.id").
		LeftJoin("persons p ON c.instructor_id = p.id").
		OrderBy("c.rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.CourseRow{}
	for rows.Next() {
		var row models.CourseRow
		var department, instructor sql.NullString
		if err := rows.Scan(&row.ID, &row.Name, &department, &instructor, &row.Credits, &row.Description); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		row.DepartmentName = helpers.StringPtr(department)
		row.InstructorName = helpers.StringPtr(instructor)
		courses = append(courses, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// GetByInstructorID returns the courses an instructor teaches with live enrollment counts
func (r *CourseRepository) GetByInstructorID(ctx context.Context, instructorID string) ([]models.InstructorCourse, error) {
	query, args, err := r.sb.Select(
		"c.id", "c.name", "d.name", "COALESCE(c.credits, 0)", "COALESCE(c.description, '')",
		"(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id)",
	).
		From("courses c").
		LeftJoin("departments d ON c.department_id = d.id").
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		OrderBy("c.rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build instructor courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying instructor courses: %w", err)
	}
	defer rows.Close()

	courses := []models.InstructorCourse{}
	for rows.Next() {
		var ic models.InstructorCourse
		var department sql.NullString
		if err := rows.Scan(&ic.ID, &ic.Name, &department, &ic.Credits, &ic.Description, &ic.EnrolledStudentCount); err != nil {
			return nil, fmt.Errorf("error scanning instructor course: %w", err)
		}
		ic.DepartmentName = helpers.StringPtr(department)
		courses = append(courses, ic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instructor courses: %w", err)
	}
	return courses, nil
}

// GetByDepartmentID returns the courses owned by a department with instructor names
func (r *CourseRepository) GetByDepartmentID(ctx context.Context, departmentID string) ([]models.DepartmentCourse, error) {
	query, args, err := r.sb.Select("c.id", "c.name", "p.name", "COALESCE(c.credits, 0)").
		From("courses c").
		LeftJoin("persons p ON c.instructor_id = p.id").
		Where(squirrel.Eq{"c.department_id": departmentID}).
		OrderBy("c.rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying department courses: %w", err)
	}
	defer rows.Close()

	courses := []models.DepartmentCourse{}
	for rows.Next() {
		var dc models.DepartmentCourse
		var instructor sql.NullString
		if err := rows.Scan(&dc.CourseID, &dc.Name, &instructor, &dc.Credits); err != nil {
			return nil, fmt.Errorf("error scanning department course: %w", err)
		}
		dc.InstructorName = helpers.StringPtr(instructor)
		courses = append(courses, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department courses: %w", err)
	}
	return courses, nil
}

// AvailableForStudent lists courses the student is not enrolled in
func (r *CourseRepository) AvailableForStudent(ctx context.Context, studentID string) ([]models.CourseRef, error) {
	return r.refs(ctx, r.sb.Select("c.id", "c.name").
		From("courses c").
		Where("c.id NOT IN (SELECT course_id FROM enrollments WHERE student_id = ?)", studentID).
		OrderBy("c.rowid"))
}

// AssignableToInstructor lists courses that are unassigned or taught by someone else
func (r *CourseRepository) AssignableToInstructor(ctx context.Context, instructorID string) ([]models.CourseRef, error) {
	return r.refs(ctx, r.sb.Select("c.id", "c.name").
		From("courses c").
		Where(squirrel.Or{
			squirrel.Eq{"c.instructor_id": nil},
			squirrel.NotEq{"c.instructor_id": instructorID},
		}).
		OrderBy("c.rowid"))
}

func (r *CourseRepository) refs(ctx context.Context, builder squirrel.SelectBuilder) ([]models.CourseRef, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	refs := []models.CourseRef{}
	for rows.Next() {
		var ref models.CourseRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return refs, nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	return db.Count(ctx, r.db, r.sb.Select("COUNT(*)").From("courses"))
}
