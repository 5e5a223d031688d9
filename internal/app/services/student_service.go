package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// StudentService handles student-related operations
type StudentService struct {
	*base
	logger zerolog.Logger
}

func newStudentService(b *base) *StudentService {
	return &StudentService{
		base:   b,
		logger: b.logger.With().Str("component", "students").Logger(),
	}
}

func (s *StudentService) validateStudent(in *models.NewStudent) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.RollNumber = strings.TrimSpace(in.RollNumber)
	in.Program = strings.TrimSpace(in.Program)

	if err := validation.Name("name", in.Name); err != nil {
		return err
	}
	if err := validation.Age(in.Age); err != nil {
		return err
	}
	if err := validation.Email(in.Email); err != nil {
		return err
	}
	if err := validation.RollNumber(in.RollNumber); err != nil {
		return err
	}
	if err := validation.EntryYear(in.EntryYear, s.now().Year()); err != nil {
		return err
	}
	return validation.Name("program", in.Program)
}

// AddStudent creates the person and student rows atomically
func (s *StudentService) AddStudent(ctx context.Context, in models.NewStudent) (*models.Student, error) {
	if err := s.validateStudent(&in); err != nil {
		return nil, err
	}

	student := &models.Student{
		Person: models.Person{
			ID:    s.newID(),
			Name:  in.Name,
			Age:   in.Age,
			Email: in.Email,
			Type:  models.PersonStudent,
		},
		RollNumber: in.RollNumber,
		EntryYear:  in.EntryYear,
		Program:    in.Program,
	}

	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		taken, err := repos.StudentRepository.RollNumberExists(ctx, in.RollNumber)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConstraintError(apperrors.ConstraintStudentRoll, apperrors.ErrDuplicateRollNumber,
				fmt.Sprintf("roll number %q already exists", in.RollNumber))
		}

		taken, err = repos.PersonRepository.EmailExists(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConstraintError(apperrors.ConstraintPersonEmail, apperrors.ErrDuplicateEmail,
				fmt.Sprintf("email %q already exists", in.Email))
		}

		if err := repos.PersonRepository.CreatePerson(ctx, &student.Person); err != nil {
			return err
		}
		return repos.StudentRepository.CreateStudent(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentID", student.ID).Str("rollNumber", student.RollNumber).Msg("Student created")
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.read.StudentRepository.GetStudentByID(ctx, id)
}

// ListStudents retrieves all students
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.read.StudentRepository.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// StudentCourses lists the courses a student is enrolled in
func (s *StudentService) StudentCourses(ctx context.Context, studentID string) ([]models.StudentCourse, error) {
	return s.read.EnrollmentRepository.GetByStudentID(ctx, studentID)
}

// AvailableCourses lists the courses a student could still enroll in
func (s *StudentService) AvailableCourses(ctx context.Context, studentID string) ([]models.CourseRef, error) {
	return s.read.CourseRepository.AvailableForStudent(ctx, studentID)
}
