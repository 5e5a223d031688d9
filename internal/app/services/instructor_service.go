package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// InstructorService handles instructor-related operations
type InstructorService struct {
	*base
	logger zerolog.Logger
}

func newInstructorService(b *base) *InstructorService {
	return &InstructorService{
		base:   b,
		logger: b.logger.With().Str("component", "instructors").Logger(),
	}
}

// validatePosition validates an instructor's position title
func validatePosition(position string) error {
	if err := validation.Name("position", position); err != nil {
		return err
	}

	// letters, spaces, dots and hyphens
	for _, char := range position {
		if !unicode.IsLetter(char) && !unicode.IsSpace(char) && char != '.' && char != '-' {
			return apperrors.Validation("position contains invalid characters")
		}
	}
	return nil
}

func (s *InstructorService) validateInstructor(in *models.NewInstructor) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Position = strings.TrimSpace(in.Position)
	in.DepartmentID = strings.TrimSpace(in.DepartmentID)

	if err := validation.Name("name", in.Name); err != nil {
		return err
	}
	if err := validation.Age(in.Age); err != nil {
		return err
	}
	if err := validation.Email(in.Email); err != nil {
		return err
	}
	if err := validatePosition(in.Position); err != nil {
		return err
	}
	return validation.NonNegative("salary", in.Salary)
}

// AddInstructor creates the person and instructor rows atomically
func (s *InstructorService) AddInstructor(ctx context.Context, in models.NewInstructor) (*models.Instructor, error) {
	if err := s.validateInstructor(&in); err != nil {
		return nil, err
	}

	departmentID := in.DepartmentID
	instructor := &models.Instructor{
		Person: models.Person{
			ID:    s.newID(),
			Name:  in.Name,
			Age:   in.Age,
			Email: in.Email,
			Type:  models.PersonInstructor,
		},
		Salary:       in.Salary,
		DepartmentID: &departmentID,
		Position:     in.Position,
	}

	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		taken, err := repos.PersonRepository.EmailExists(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConstraintError(apperrors.ConstraintPersonEmail, apperrors.ErrDuplicateEmail,
				fmt.Sprintf("email %q already exists", in.Email))
		}

		found := false
		if departmentID != "" {
			if found, err = repos.DepartmentRepository.Exists(ctx, departmentID); err != nil {
				return err
			}
		}
		if !found {
			return apperrors.NewConstraintError(apperrors.ConstraintInstructorDept, apperrors.ErrUnknownDepartment,
				fmt.Sprintf("department %q not found", departmentID))
		}

		if err := repos.PersonRepository.CreatePerson(ctx, &instructor.Person); err != nil {
			return err
		}
		return repos.InstructorRepository.CreateInstructor(ctx, instructor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("instructorID", instructor.ID).Str("departmentID", departmentID).Msg("Instructor created")
	return instructor, nil
}

// GetInstructor retrieves an instructor with department name
func (s *InstructorService) GetInstructor(ctx context.Context, id string) (*models.InstructorRow, error) {
	return s.read.InstructorRepository.GetInstructorByID(ctx, id)
}

// ListInstructors retrieves all instructors
func (s *InstructorService) ListInstructors(ctx context.Context) ([]*models.InstructorRow, error) {
	instructors, err := s.read.InstructorRepository.ListInstructors(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving instructors: %w", err)
	}
	return instructors, nil
}

// InstructorCourses lists the courses an instructor teaches with enrollment counts
func (s *InstructorService) InstructorCourses(ctx context.Context, instructorID string) ([]models.InstructorCourse, error) {
	return s.read.CourseRepository.GetByInstructorID(ctx, instructorID)
}

// AssignableCourses lists the courses an instructor could be assigned to
func (s *InstructorService) AssignableCourses(ctx context.Context, instructorID string) ([]models.CourseRef, error) {
	return s.read.CourseRepository.AssignableToInstructor(ctx, instructorID)
}
