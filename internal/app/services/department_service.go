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

// DepartmentService handles department-related operations
type DepartmentService struct {
	*base
	logger zerolog.Logger
}

// newDepartmentService creates a new department service instance
func newDepartmentService(b *base) *DepartmentService {
	return &DepartmentService{
		base:   b,
		logger: b.logger.With().Str("component", "departments").Logger(),
	}
}

// AddDepartment creates a department. Names are unique.
func (s *DepartmentService) AddDepartment(ctx context.Context, name string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if err := validation.Name("department name", name); err != nil {
		return nil, err
	}

	department := &models.Department{ID: s.newID(), Name: name}
	err := s.write(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		taken, err := repos.DepartmentRepository.NameExists(ctx, name)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConstraintError(apperrors.ConstraintDepartmentName, apperrors.ErrDuplicateName,
				fmt.Sprintf("department %q already exists", name))
		}
		return repos.DepartmentRepository.Create(ctx, department)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("departmentID", department.ID).Str("name", name).Msg("Department created")
	return department, nil
}

// ListDepartments retrieves all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.read.DepartmentRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// DepartmentDetail gathers a department's stats, courses and instructors
func (s *DepartmentService) DepartmentDetail(ctx context.Context, id string) (*models.DepartmentDetail, error) {
	department, err := s.read.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.read.ReportRepository.DepartmentStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, apperrors.ErrUnknownDepartment
	}

	courses, err := s.read.CourseRepository.GetByDepartmentID(ctx, id)
	if err != nil {
		return nil, err
	}

	instructors, err := s.read.InstructorRepository.GetInstructorsByDepartmentID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.DepartmentDetail{
		Department:  *department,
		Stats:       stats[0],
		Courses:     courses,
		Instructors: instructors,
	}, nil
}
