package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/db/dbtest"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, createDefaultData(ctx, store, logger.Nop(), today))

	svc := services.New(store, logger.Nop())
	counts, err := svc.Reports.DashboardCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(students), counts.Students)
	assert.Equal(t, len(instructors), counts.Instructors)
	assert.Equal(t, len(courses), counts.Courses)
	assert.Equal(t, len(departments), counts.Departments)

	rows, err := svc.Enrollments.ListEnrollments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, len(enrollments))
	for i, row := range rows {
		assert.Equal(t, enrollments[i].roll, row.RollNumber)
		assert.Equal(t, enrollments[i].course, row.CourseName)
		assert.Nil(t, row.Grade)
		assert.True(t, row.EnrollmentDate.Equal(today))
	}

	stats, err := svc.Reports.DepartmentStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	for _, s := range stats {
		assert.Equal(t, 1, s.InstructorCount, s.Name)
		assert.Equal(t, 1, s.CourseCount, s.Name)
	}
	// Calculus I has two students
	assert.Equal(t, "Mathematics", stats[1].Name)
	assert.Equal(t, 2, stats[1].StudentCount)
}

func TestCreateDefaultData_SkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)

	require.NoError(t, CreateDefaultData(ctx, store, logger.Nop()))
	require.NoError(t, CreateDefaultData(ctx, store, logger.Nop()))

	svc := services.New(store, logger.Nop())
	counts, err := svc.Reports.DashboardCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(departments), counts.Departments)
	assert.Equal(t, len(students), counts.Students)
}

func TestCreateDefaultData_SkipsWhenDepartmentsExist(t *testing.T) {
	ctx := context.Background()
	store := dbtest.Open(t)

	svc := services.New(store, logger.Nop())
	_, err := svc.Departments.AddDepartment(ctx, "Chemistry")
	require.NoError(t, err)

	require.NoError(t, CreateDefaultData(ctx, store, logger.Nop()))

	counts, err := svc.Reports.DashboardCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Departments)
	assert.Zero(t, counts.Students)
}
