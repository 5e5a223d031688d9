package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/db"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
)

// ReportRepository runs the read-only aggregate queries behind reports
type ReportRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new report repository
func NewReportRepository(conn db.DBTX) *ReportRepository {
	return &ReportRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// DepartmentStats aggregates every department, or only departmentID when set.
// Students are counted through the courses the department owns.
func (r *ReportRepository) DepartmentStats(ctx context.Context, departmentID string) ([]models.DepartmentStats, error) {
	builder := r.sb.Select(
		"d.id", "d.name",
		"(SELECT COUNT(*) FROM instructors i WHERE i.department_id = d.id)",
		"(SELECT COUNT(*) FROM courses c WHERE c.department_id = d.id)",
		"(SELECT COUNT(DISTINCT e.student_id) FROM enrollments e JOIN courses c ON e.course_id = c.id WHERE c.department_id = d.id)",
	).
		From("departments d").
		OrderBy("d.rowid")
	if departmentID != "" {
		builder = builder.Where(squirrel.Eq{"d.id": departmentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department stats query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying department stats: %w", err)
	}
	defer rows.Close()

	stats := []models.DepartmentStats{}
	for rows.Next() {
		var s models.DepartmentStats
		if err := rows.Scan(&s.DepartmentID, &s.Name, &s.InstructorCount, &s.CourseCount, &s.StudentCount); err != nil {
			return nil, fmt.Errorf("error scanning department stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department stats: %w", err)
	}
	return stats, nil
}

// TopCourses ranks enrolled courses by enrollment count, ties by creation
// order. limit <= 0 returns every enrolled course.
func (r *ReportRepository) TopCourses(ctx context.Context, limit int) ([]models.CourseEnrollmentCount, error) {
	builder := r.sb.Select("c.id", "c.name", "d.name", "COUNT(e.student_id) AS enrollment_count").
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		LeftJoin("departments d ON c.department_id = d.id").
		GroupBy("c.id").
		OrderBy("enrollment_count DESC", "MIN(c.rowid)")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying top courses: %w", err)
	}
	defer rows.Close()

	courses := []models.CourseEnrollmentCount{}
	for rows.Next() {
		var c models.CourseEnrollmentCount
		var department sql.NullString
		if err := rows.Scan(&c.CourseID, &c.CourseName, &department, &c.Enrollments); err != nil {
			return nil, fmt.Errorf("error scanning top course: %w", err)
		}
		c.DepartmentName = helpers.StringPtr(department)
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top courses: %w", err)
	}
	return courses, nil
}

// GradeDistribution counts enrollments per assigned grade, ascending by label
func (r *ReportRepository) GradeDistribution(ctx context.Context) ([]models.GradeCount, error) {
	buckets, err := r.buckets(ctx, r.sb.Select("grade", "COUNT(*)").
		From("enrollments").
		Where("grade IS NOT NULL").
		GroupBy("grade").
		OrderBy("grade"))
	if err != nil {
		return nil, err
	}

	grades := make([]models.GradeCount, 0, len(buckets))
	for _, b := range buckets {
		grades = append(grades, models.GradeCount{Grade: models.Grade(b.Label), Count: b.Count})
	}
	return grades, nil
}

// SalaryByPosition averages instructor salary per position
func (r *ReportRepository) SalaryByPosition(ctx context.Context) ([]models.SalaryMean, error) {
	return r.salaryMeans(ctx, r.sb.Select(
		"COALESCE(i.position, '') AS label", "COALESCE(AVG(i.salary), 0) AS mean_salary", "COUNT(*)",
	).
		From("instructors i").
		GroupBy("i.position"))
}

// SalaryByDepartment averages instructor salary per department. Instructors
// without a department are left out.
func (r *ReportRepository) SalaryByDepartment(ctx context.Context) ([]models.SalaryMean, error) {
	return r.salaryMeans(ctx, r.sb.Select(
		"d.name AS label", "COALESCE(AVG(i.salary), 0) AS mean_salary", "COUNT(*)",
	).
		From("instructors i").
		Join("departments d ON i.department_id = d.id").
		GroupBy("d.id"))
}

func (r *ReportRepository) salaryMeans(ctx context.Context, builder squirrel.SelectBuilder) ([]models.SalaryMean, error) {
	query, args, err := builder.OrderBy("mean_salary DESC", "label").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build salary query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying salaries: %w", err)
	}
	defer rows.Close()

	means := []models.SalaryMean{}
	for rows.Next() {
		var m models.SalaryMean
		if err := rows.Scan(&m.Group, &m.MeanSalary, &m.Instructors); err != nil {
			return nil, fmt.Errorf("error scanning salary mean: %w", err)
		}
		means = append(means, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary means: %w", err)
	}
	return means, nil
}

// EnrollmentsByDepartment sums enrollments over the courses each department owns
func (r *ReportRepository) EnrollmentsByDepartment(ctx context.Context) ([]models.Bucket, error) {
	return r.buckets(ctx, r.sb.Select("d.name", "COUNT(*) AS enrollment_count").
		From("departments d").
		Join("courses c ON c.department_id = d.id").
		Join("enrollments e ON e.course_id = c.id").
		GroupBy("d.id").
		OrderBy("enrollment_count DESC", "MIN(d.rowid)"))
}

// AgeDistribution counts students per age, ascending
func (r *ReportRepository) AgeDistribution(ctx context.Context) ([]models.Bucket, error) {
	return r.buckets(ctx, r.sb.Select("CAST(COALESCE(p.age, 0) AS TEXT)", "COUNT(*)").
		From("persons p").
		Join("students s ON s.id = p.id").
		GroupBy("p.age").
		OrderBy("p.age"))
}

// ProgramDistribution counts students per program, most popular first
func (r *ReportRepository) ProgramDistribution(ctx context.Context) ([]models.Bucket, error) {
	return r.buckets(ctx, r.sb.Select("COALESCE(s.program, '') AS program", "COUNT(*) AS student_count").
		From("students s").
		GroupBy("s.program").
		OrderBy("student_count DESC", "program"))
}

// EntryYearDistribution counts students per entry year, ascending
func (r *ReportRepository) EntryYearDistribution(ctx context.Context) ([]models.Bucket, error) {
	return r.buckets(ctx, r.sb.Select("CAST(COALESCE(s.entry_year, 0) AS TEXT)", "COUNT(*)").
		From("students s").
		GroupBy("s.entry_year").
		OrderBy("s.entry_year"))
}

// buckets runs a two-column (label, count) query
func (r *ReportRepository) buckets(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Bucket, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distribution query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying distribution: %w", err)
	}
	defer rows.Close()

	buckets := []models.Bucket{}
	for rows.Next() {
		var b models.Bucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("error scanning distribution: %w", err)
		}
		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution: %w", err)
	}
	return buckets, nil
}
