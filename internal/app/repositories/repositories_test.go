package repositories_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/db/dbtest"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func student(id, email, roll string) *models.Student {
	return &models.Student{
		Person:     models.Person{ID: id, Name: "Student " + id, Age: 20, Email: email, Type: models.PersonStudent},
		RollNumber: roll,
		EntryYear:  2024,
		Program:    "BS",
	}
}

func TestStudentCreationIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)

	create := func(s *models.Student) error {
		return store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			repos := repositories.NewRepositories(tx)
			if err := repos.PersonRepository.CreatePerson(ctx, &s.Person); err != nil {
				return err
			}
			return repos.StudentRepository.CreateStudent(ctx, s)
		})
	}

	require.NoError(t, create(student("s1", "one@university.edu", "R1")))

	// the person row goes in, the student row breaches the roll number
	err := create(student("s2", "two@university.edu", "R1"))
	require.ErrorIs(t, err, apperrors.ErrDuplicateRollNumber)
	assert.Equal(t, apperrors.ConstraintStudentRoll, apperrors.ConstraintOf(err))

	read := repositories.NewRepositories(store.DB)
	_, err = read.PersonRepository.GetPersonByID(ctx, "s2")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	n, err := read.PersonRepository.CountByType(ctx, models.PersonStudent)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	taken, err := read.PersonRepository.EmailExists(ctx, "two@university.edu")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEnrollmentKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	repos := repositories.NewRepositories(store.DB)

	s := student("s1", "one@university.edu", "R1")
	require.NoError(t, repos.PersonRepository.CreatePerson(ctx, &s.Person))
	require.NoError(t, repos.StudentRepository.CreateStudent(ctx, s))
	require.NoError(t, repos.CourseRepository.Create(ctx, &models.Course{ID: "c1", Name: "Course", Credits: 3}))

	e := &models.Enrollment{StudentID: "s1", CourseID: "c1"}
	require.NoError(t, repos.EnrollmentRepository.Create(ctx, e))

	err := repos.EnrollmentRepository.Create(ctx, e)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	err = repos.EnrollmentRepository.Create(ctx, &models.Enrollment{StudentID: "ghost", CourseID: "c1"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)

	deleted, err := repos.EnrollmentRepository.Delete(ctx, "s1", "c1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repos.EnrollmentRepository.Delete(ctx, "s1", "c1")
	require.NoError(t, err)
	assert.False(t, deleted)

	ok, err := repos.StudentRepository.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok, "dropping an enrollment never cascades")
}
