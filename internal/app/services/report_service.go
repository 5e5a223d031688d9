package services

import (
	"context"
	"fmt"

	"github.com/yigit/uniadmin/internal/app/models"
)

// ReportService defines the read-only aggregate queries behind the dashboard
type ReportService interface {
	DashboardCounts(ctx context.Context) (*models.DashboardCounts, error)
	DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error)
	TopCourses(ctx context.Context, n int) ([]models.CourseEnrollmentCount, error)
	GradeDistribution(ctx context.Context) ([]models.GradeCount, error)
	SalaryByPosition(ctx context.Context) ([]models.SalaryMean, error)
	SalaryByDepartment(ctx context.Context) ([]models.SalaryMean, error)
	EnrollmentsByDepartment(ctx context.Context) ([]models.Bucket, error)
	StudentDemographics(ctx context.Context) (*models.Demographics, error)
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	*base
}

func newReportService(b *base) ReportService {
	return &reportServiceImpl{base: b}
}

// DashboardCounts returns the headline totals
func (s *reportServiceImpl) DashboardCounts(ctx context.Context) (*models.DashboardCounts, error) {
	var counts models.DashboardCounts
	var err error

	if counts.Students, err = s.read.PersonRepository.CountByType(ctx, models.PersonStudent); err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}
	if counts.Instructors, err = s.read.PersonRepository.CountByType(ctx, models.PersonInstructor); err != nil {
		return nil, fmt.Errorf("error counting instructors: %w", err)
	}
	if counts.Courses, err = s.read.CourseRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error counting courses: %w", err)
	}
	if counts.Departments, err = s.read.DepartmentRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error counting departments: %w", err)
	}
	return &counts, nil
}

// DepartmentStats aggregates instructors, courses and enrolled students per department
func (s *reportServiceImpl) DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error) {
	return s.read.ReportRepository.DepartmentStats(ctx, "")
}

// TopCourses ranks courses by enrollment; n <= 0 means no limit
func (s *reportServiceImpl) TopCourses(ctx context.Context, n int) ([]models.CourseEnrollmentCount, error) {
	return s.read.ReportRepository.TopCourses(ctx, n)
}

// GradeDistribution counts enrollments per assigned grade
func (s *reportServiceImpl) GradeDistribution(ctx context.Context) ([]models.GradeCount, error) {
	return s.read.ReportRepository.GradeDistribution(ctx)
}

// SalaryByPosition averages salary per position
func (s *reportServiceImpl) SalaryByPosition(ctx context.Context) ([]models.SalaryMean, error) {
	return s.read.ReportRepository.SalaryByPosition(ctx)
}

// SalaryByDepartment averages salary per department
func (s *reportServiceImpl) SalaryByDepartment(ctx context.Context) ([]models.SalaryMean, error) {
	return s.read.ReportRepository.SalaryByDepartment(ctx)
}

// EnrollmentsByDepartment sums enrollments per owning department
func (s *reportServiceImpl) EnrollmentsByDepartment(ctx context.Context) ([]models.Bucket, error) {
	return s.read.ReportRepository.EnrollmentsByDepartment(ctx)
}

// StudentDemographics returns age, program and entry year distributions
func (s *reportServiceImpl) StudentDemographics(ctx context.Context) (*models.Demographics, error) {
	var demographics models.Demographics
	var err error

	if demographics.Ages, err = s.read.ReportRepository.AgeDistribution(ctx); err != nil {
		return nil, err
	}
	if demographics.Programs, err = s.read.ReportRepository.ProgramDistribution(ctx); err != nil {
		return nil, err
	}
	if demographics.EntryYears, err = s.read.ReportRepository.EntryYearDistribution(ctx); err != nil {
		return nil, err
	}
	return &demographics, nil
}
