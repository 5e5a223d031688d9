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
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

var studentColumns = []string{
	"p.id", "p.name", "COALESCE(p.age, 0)", "COALESCE(p.email, '')",
	"s.roll_number", "COALESCE(s.entry_year, 0)", "COALESCE(s.program, '')",
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("persons p").
		Join("students s ON p.id = s.id").
		Where(squirrel.Eq{"p.type": string(models.PersonStudent)})
}

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	student := &models.Student{Person: models.Person{Type: models.PersonStudent}}
	err := row.Scan(
		&student.ID, &student.Name, &student.Age, &student.Email,
		&student.RollNumber, &student.EntryYear, &student.Program,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// CreateStudent inserts the student extension row for an existing person
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	query, args, err := r.sb.Insert("students").
		Columns("id", "roll_number", "entry_year", "program").
		Values(student.ID, student.RollNumber, student.EntryYear, student.Program).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetStudentByID retrieves a student joined with its person row
func (r *StudentRepository) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	query, args, err := r.selectStudents().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// ListStudents returns every student in insertion order
func (r *StudentRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	query, args, err := r.selectStudents().OrderBy("p.rowid").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// Exists checks whether id names a student
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("students").Where(squirrel.Eq{"id": id}))
}

// RollNumberExists checks if a roll number already exists
func (r *StudentRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("students").Where(squirrel.Eq{"roll_number": rollNumber}))
}
