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
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(conn db.DBTX) *DepartmentRepository {
	return &DepartmentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create inserts a department whose ID is already assigned
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query, args, err := r.sb.Insert("departments").
		Columns("id", "name").
		Values(department.ID, department.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID, returning ErrUnknownDepartment when absent
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	query, args, err := r.sb.Select("id", "name").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	var department models.Department
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUnknownDepartment
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves all departments in insertion order
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query, args, err := r.sb.Select("id", "name").
		From("departments").
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, fmt.Errorf("error scanning department: %w", err)
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}

	return departments, nil
}

// Exists checks if a department with the given ID exists
func (r *DepartmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("departments").Where(squirrel.Eq{"id": id}))
}

// NameExists checks if a department name is already taken
func (r *DepartmentRepository) NameExists(ctx context.Context, name string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("departments").Where(squirrel.Eq{"name": name}))
}

// Count returns the number of departments
func (r *DepartmentRepository) Count(ctx context.Context) (int, error) {
	return db.Count(ctx, r.db, r.sb.Select("COUNT(*)").From("departments"))
}
