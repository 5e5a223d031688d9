package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
	"github.com/yigit/uniadmin/internal/pkg/validation"
)

// CourseService handles course-related operations
type CourseService struct {
	*base
	logger zerolog.Logger
}

func newCourseService(b *base) *CourseService {
	return &CourseService{
		base:   b,
		logger: b.logger.With().Str("component", "courses").Logger(),
	}
}

func unknownReference(constraint, what, id string) error {
	return apperrors.NewConstraintError(constraint, apperrors.ErrUnknownReference,
		fmt.Sprintf("%s %q not found", what, id))
}

// AddCourse creates a course. Department and instructor are optional but
// must resolve when given.
func (s *CourseService) AddCourse(ctx context.Context, in models.NewCourse) (*models.Course, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Name("course name", in.Name); err != nil {
		return nil, err
	}
	if err := validation.NonNegative("credits", in.Credits); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:           s.newID(),
		Name:         in.Name,
		DepartmentID: helpers.OptionalString(helpers.Deref(in.DepartmentID, "")),
		InstructorID: helpers.OptionalString(helpers.Deref(in.InstructorID, "")),
		Credits:      in.Credits,
		Description:  strings.TrimSpace(in.Description),
	}

	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if course.DepartmentID != nil {
			found, err := repos.DepartmentRepository.Exists(ctx, *course.DepartmentID)
			if err != nil {
				return err
			}
			if !found {
				return unknownReference(apperrors.ConstraintCourseDepartment, "department", *course.DepartmentID)
			}
		}
		if course.InstructorID != nil {
			found, err := repos.InstructorRepository.Exists(ctx, *course.InstructorID)
			if err != nil {
				return err
			}
			if !found {
				return unknownReference(apperrors.ConstraintCourseInstructor, "instructor", *course.InstructorID)
			}
		}
		return repos.CourseRepository.Create(ctx, course)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// AssignInstructor overwrites the course's instructor. An instructor may teach
// any number of courses.
func (s *CourseService) AssignInstructor(ctx context.Context, courseID, instructorID string) error {
	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		found, err := repos.InstructorRepository.Exists(ctx, instructorID)
		if err != nil {
			return err
		}
		if !found {
			return unknownReference(apperrors.ConstraintCourseInstructor, "instructor", instructorID)
		}

		updated, err := repos.CourseRepository.SetInstructor(ctx, courseID, instructorID)
		if err != nil {
			return err
		}
		if !updated {
			return unknownReference(apperrors.ConstraintForeignKey, "course", courseID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("courseID", courseID).Str("instructorID", instructorID).Msg("Instructor assigned")
	return nil
}

// GetCourse retrieves a course by ID
func (s *CourseService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.read.CourseRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(err, fmt.Sprintf("course %q not found", id))
		}
		return nil, err
	}
	return course, nil
}

// ListCourses retrieves all courses with department and instructor names
func (s *CourseService) ListCourses(ctx context.Context) ([]models.CourseRow, error) {
	courses, err := s.read.CourseRepository.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// CourseRoster lists the students enrolled in a course
func (s *CourseService) CourseRoster(ctx context.Context, courseID string) ([]models.RosterEntry, error) {
	return s.read.EnrollmentRepository.GetRoster(ctx, courseID)
}
