package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// EnrollmentService handles enrollment-related operations
type EnrollmentService struct {
	*base
	logger zerolog.Logger
}

func newEnrollmentService(b *base) *EnrollmentService {
	return &EnrollmentService{
		base:   b,
		logger: b.logger.With().Str("component", "enrollments").Logger(),
	}
}

func notEnrolled(studentID, courseID string) error {
	return apperrors.NewCustomError(apperrors.ErrNotEnrolled,
		fmt.Sprintf("student %q is not enrolled in course %q", studentID, courseID)).
		WithDetails(map[string]interface{}{"studentID": studentID, "courseID": courseID})
}

// Enroll adds the student to the course with today's date and no grade
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: s.now(),
	}

	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		enrolled, err := repos.EnrollmentRepository.Exists(ctx, studentID, courseID)
		if err != nil {
			return err
		}
		if enrolled {
			return apperrors.NewConstraintError(apperrors.ConstraintEnrollmentKey, apperrors.ErrAlreadyEnrolled,
				fmt.Sprintf("student %q already enrolled in course %q", studentID, courseID)).
				WithDetails(map[string]interface{}{"studentID": studentID, "courseID": courseID})
		}

		found, err := repos.StudentRepository.Exists(ctx, studentID)
		if err != nil {
			return err
		}
		if !found {
			return unknownReference(apperrors.ConstraintForeignKey, "student", studentID)
		}

		found, err = repos.CourseRepository.Exists(ctx, courseID)
		if err != nil {
			return err
		}
		if !found {
			return unknownReference(apperrors.ConstraintForeignKey, "course", courseID)
		}

		return repos.EnrollmentRepository.Create(ctx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentID", studentID).Str("courseID", courseID).Msg("Student enrolled")
	return enrollment, nil
}

// Drop removes the enrollment. Dropping a pair that is not enrolled fails.
func (s *EnrollmentService) Drop(ctx context.Context, studentID, courseID string) error {
	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		deleted, err := repos.EnrollmentRepository.Delete(ctx, studentID, courseID)
		if err != nil {
			return err
		}
		if !deleted {
			return notEnrolled(studentID, courseID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("studentID", studentID).Str("courseID", courseID).Msg("Student dropped")
	return nil
}

// UpdateGrade sets the grade of an enrollment; nil clears it
func (s *EnrollmentService) UpdateGrade(ctx context.Context, studentID, courseID string, grade *models.Grade) error {
	if grade != nil && !grade.Valid() {
		return apperrors.NewCustomError(apperrors.ErrInvalidGrade, fmt.Sprintf("invalid grade %q", string(*grade)))
	}

	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		updated, err := repos.EnrollmentRepository.UpdateGrade(ctx, studentID, courseID, grade)
		if err != nil {
			return err
		}
		if !updated {
			return notEnrolled(studentID, courseID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	event := s.logger.Info().Str("studentID", studentID).Str("courseID", courseID)
	if grade != nil {
		event = event.Str("grade", string(*grade))
	}
	event.Msg("Grade updated")
	return nil
}

// ListEnrollments retrieves every enrollment with student and course names
func (s *EnrollmentService) ListEnrollments(ctx context.Context) ([]models.EnrollmentRow, error) {
	return s.FilterEnrollments(ctx, models.EnrollmentFilter{})
}

// FilterEnrollments lists enrollments narrowed by course, student and grade
func (s *EnrollmentService) FilterEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentRow, error) {
	switch filter.Grade {
	case "", models.GradeFilterAll, models.GradeFilterGraded, models.GradeFilterUngraded:
	default:
		if !models.Grade(filter.Grade).Valid() {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidGrade, fmt.Sprintf("invalid grade filter %q", string(filter.Grade)))
		}
	}

	rows, err := s.read.EnrollmentRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	return rows, nil
}
