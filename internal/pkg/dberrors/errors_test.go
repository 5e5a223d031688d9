package dberrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/db/dbtest"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/dberrors"
)

func TestTranslate(t *testing.T) {
	store := dbtest.Open(t)

	setup := []string{
		`INSERT INTO departments (id, name) VALUES ('d1', 'Physics')`,
		`INSERT INTO persons (id, name, age, email, type) VALUES ('s1', 'Sam', 20, 'sam@u.edu', 'student')`,
		`INSERT INTO students (id, roll_number, entry_year, program) VALUES ('s1', 'PH1', 2022, 'BS Physics')`,
		`INSERT INTO courses (id, name, credits) VALUES ('c1', 'Optics', 3)`,
		`INSERT INTO enrollments (student_id, course_id, enrollment_date) VALUES ('s1', 'c1', '2024-01-01')`,
	}
	for _, stmt := range setup {
		_, err := store.DB.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	tests := []struct {
		name       string
		stmt       string
		sentinel   error
		constraint string
	}{
		{
			name:       "duplicate department name",
			stmt:       `INSERT INTO departments (id, name) VALUES ('d2', 'Physics')`,
			sentinel:   apperrors.ErrDuplicateName,
			constraint: apperrors.ConstraintDepartmentName,
		},
		{
			name:       "duplicate email",
			stmt:       `INSERT INTO persons (id, name, age, email, type) VALUES ('s2', 'Sue', 21, 'sam@u.edu', 'student')`,
			sentinel:   apperrors.ErrDuplicateEmail,
			constraint: apperrors.ConstraintPersonEmail,
		},
		{
			name:       "duplicate enrollment",
			stmt:       `INSERT INTO enrollments (student_id, course_id, enrollment_date) VALUES ('s1', 'c1', '2024-02-01')`,
			sentinel:   apperrors.ErrAlreadyEnrolled,
			constraint: apperrors.ConstraintEnrollmentKey,
		},
		{
			name:       "dangling course department",
			stmt:       `INSERT INTO courses (id, name, department_id) VALUES ('c2', 'Waves', 'missing')`,
			sentinel:   apperrors.ErrUnknownReference,
			constraint: apperrors.ConstraintForeignKey,
		},
		{
			name:     "person type trigger",
			stmt:     `INSERT INTO instructors (id, salary, position) VALUES ('s1', 100, 'Lecturer')`,
			sentinel: apperrors.ErrConstraintViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.DB.Exec(tt.stmt)
			require.Error(t, err)
			require.True(t, dberrors.IsConstraintViolation(err))

			translated := dberrors.Translate(err)
			assert.ErrorIs(t, translated, tt.sentinel)
			assert.ErrorIs(t, translated, apperrors.ErrConstraintViolation)
			if tt.constraint != "" {
				assert.Equal(t, tt.constraint, apperrors.ConstraintOf(translated))
			}
		})
	}
}

func TestTranslate_PassesThroughOtherErrors(t *testing.T) {
	assert.NoError(t, dberrors.Translate(nil))

	plain := errors.New("disk on fire")
	assert.Same(t, plain, dberrors.Translate(plain))
	assert.False(t, dberrors.IsUniqueViolation(plain, "persons.email"))
	assert.False(t, dberrors.IsForeignKeyViolation(plain))
}
