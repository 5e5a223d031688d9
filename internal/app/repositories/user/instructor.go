package user

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

// InstructorRepository handles instructor database operations
type InstructorRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(conn db.DBTX) *InstructorRepository {
	return &InstructorRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (r *InstructorRepository) selectInstructors() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.name", "COALESCE(p.age, 0)", "COALESCE(p.email, '')",
		"COALESCE(i.salary, 0)", "i.department_id", "COALESCE(i.position, '')", "d.name",
	).
		From("persons p").
		Join("instructors i ON p.id = i.id").
		LeftJoin("departments d ON i.department_id = d.id").
		Where(squirrel.Eq{"p.type": string(models.PersonInstructor)})
}

func scanInstructor(row interface{ Scan(...interface{}) error }) (*models.InstructorRow, error) {
	var departmentID, departmentName sql.NullString
	out := &models.InstructorRow{}
	out.Type = models.PersonInstructor
	err := row.Scan(
		&out.ID, &out.Name, &out.Age, &out.Email,
		&out.Salary, &departmentID, &out.Position, &departmentName,
	)
	if err != nil {
		return nil, err
	}
	out.DepartmentID = helpers.StringPtr(departmentID)
	out.DepartmentName = helpers.StringPtr(departmentName)
	return out, nil
}

// CreateInstructor inserts the instructor extension row for an existing person
func (r *InstructorRepository) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	query, args, err := r.sb.Insert("instructors").
		Columns("id", "salary", "department_id", "position").
		Values(instructor.ID, instructor.Salary, helpers.GetNullString(instructor.DepartmentID), instructor.Position).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create instructor query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}
	return nil
}

// GetInstructorByID retrieves an instructor with person details and department name
func (r *InstructorRepository) GetInstructorByID(ctx context.Context, id string) (*models.InstructorRow, error) {
	query, args, err := r.selectInstructors().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	instructor, err := scanInstructor(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return instructor, nil
}

// ListInstructors returns every instructor in insertion order, department name left-joined
func (r *InstructorRepository) ListInstructors(ctx context.Context) ([]*models.InstructorRow, error) {
	query, args, err := r.selectInstructors().OrderBy("p.rowid").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}
	defer rows.Close()

	instructors := []*models.InstructorRow{}
	for rows.Next() {
		instructor, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning instructor: %w", err)
		}
		instructors = append(instructors, instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instructors: %w", err)
	}
	return instructors, nil
}

// GetInstructorsByDepartmentID lists the instructors employed by a department
func (r *InstructorRepository) GetInstructorsByDepartmentID(ctx context.Context, departmentID string) ([]models.DepartmentInstructor, error) {
	query, args, err := r.sb.Select("i.id", "p.name", "COALESCE(i.position, '')", "COALESCE(i.salary, 0)").
		From("instructors i").
		Join("persons p ON i.id = p.id").
		Where(squirrel.Eq{"i.department_id": departmentID}).
		OrderBy("p.rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department instructors query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying department instructors: %w", err)
	}
	defer rows.Close()

	instructors := []models.DepartmentInstructor{}
	for rows.Next() {
		var di models.DepartmentInstructor
		if err := rows.Scan(&di.InstructorID, &di.Name, &di.Position, &di.Salary); err != nil {
			return nil, fmt.Errorf("error scanning department instructor: %w", err)
		}
		instructors = append(instructors, di)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department instructors: %w", err)
	}
	return instructors, nil
}

// Exists checks whether id names an instructor
func (r *InstructorRepository) Exists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("instructors").Where(squirrel.Eq{"id": id}))
}
