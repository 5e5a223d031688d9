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

// Repository handles the shared persons table
type Repository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(conn db.DBTX) *Repository {
	return &Repository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// CreatePerson inserts the base person row. Callers insert the matching
// extension row in the same transaction.
func (r *Repository) CreatePerson(ctx context.Context, person *models.Person) error {
	query, args, err := r.sb.Insert("persons").
		Columns("id", "name", "age", "email", "type").
		Values(person.ID, person.Name, person.Age, person.Email, string(person.Type)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create person query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if translated := dberrors.Translate(err); translated != err {
			return translated
		}
		return fmt.Errorf("error creating person: %w", err)
	}
	return nil
}

// GetPersonByID retrieves a person by ID
func (r *Repository) GetPersonByID(ctx context.Context, id string) (*models.Person, error) {
	query, args, err := r.sb.Select("id", "name", "COALESCE(age, 0)", "COALESCE(email, '')", "type").
		From("persons").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get person query: %w", err)
	}

	var person models.Person
	var personType string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&person.ID, &person.Name, &person.Age, &person.Email, &personType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving person: %w", err)
	}
	person.Type = models.PersonType(personType)

	return &person, nil
}

// EmailExists checks if an email already exists
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, r.sb.Select("1").From("persons").Where(squirrel.Eq{"email": email}))
}

// CountByType counts persons of the given type that also have their extension row
func (r *Repository) CountByType(ctx context.Context, personType models.PersonType) (int, error) {
	ext := "students"
	if personType == models.PersonInstructor {
		ext = "instructors"
	}

	return db.Count(ctx, r.db, r.sb.Select("COUNT(*)").
		From("persons p").
		Join(ext+" x ON x.id = p.id").
		Where(squirrel.Eq{"p.type": string(personType)}))
}
