package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/dashboard"
	"github.com/yigit/uniadmin/internal/db/dbtest"
	"github.com/yigit/uniadmin/internal/export"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/logger"
	"github.com/yigit/uniadmin/internal/seed"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newDashboard(t *testing.T) (*dashboard.Dashboard, *services.Services) {
	t.Helper()
	store := dbtest.Open(t)
	require.NoError(t, seed.CreateDefaultData(context.Background(), store, logger.Nop()))
	svc := services.New(store, logger.Nop())
	return dashboard.New(svc), svc
}

func requireValid(t *testing.T, tables ...*export.Table) {
	t.Helper()
	for _, table := range tables {
		require.NoError(t, table.Validate(), table.Name)
	}
}

func TestParseSection(t *testing.T) {
	for _, s := range dashboard.Sections() {
		got, err := dashboard.ParseSection(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := dashboard.ParseSection("Students")
	require.NoError(t, err)
	assert.Equal(t, dashboard.SectionStudents, got)

	_, err = dashboard.ParseSection("settings")
	assert.Error(t, err)
}

func TestParseReport(t *testing.T) {
	for _, r := range dashboard.Reports() {
		got, err := dashboard.ParseReport(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := dashboard.ParseReport("payroll")
	assert.Error(t, err)
}

func TestSection(t *testing.T) {
	d, _ := newDashboard(t)
	ctx := context.Background()

	tests := []struct {
		section dashboard.Section
		tables  int
		rows    int
	}{
		{dashboard.SectionStudents, 1, 3},
		{dashboard.SectionInstructors, 1, 3},
		{dashboard.SectionCourses, 1, 3},
		{dashboard.SectionDepartments, 1, 3},
		{dashboard.SectionEnrollments, 1, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			tables, err := d.Section(ctx, tt.section)
			require.NoError(t, err)
			require.Len(t, tables, tt.tables)
			requireValid(t, tables...)
			assert.Len(t, tables[0].Rows, tt.rows)
		})
	}

	_, err := d.Section(ctx, dashboard.Section("settings"))
	assert.Error(t, err)
}

func TestSection_ColumnKinds(t *testing.T) {
	d, _ := newDashboard(t)

	tables, err := d.Section(context.Background(), dashboard.SectionStudents)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	numeric := map[string]bool{}
	for i, h := range tables[0].Headers {
		numeric[h] = tables[0].IsNumeric(i)
	}
	assert.Equal(t, map[string]bool{
		"ID": false, "Name": false, "Age": true, "Email": false,
		"Roll Number": false, "Entry Year": true, "Program": false,
	}, numeric)

	table, err := d.Report(context.Background(), dashboard.ReportEntryYears)
	require.NoError(t, err)
	assert.False(t, table.IsNumeric(0))
	assert.True(t, table.IsNumeric(1))
}

func TestSection_Dashboard(t *testing.T) {
	d, _ := newDashboard(t)

	tables, err := d.Section(context.Background(), dashboard.SectionDashboard)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	requireValid(t, tables...)

	assert.Equal(t, [][]string{{"3", "3", "3", "3"}}, tables[0].Rows)
	// Calculus I leads the ranking
	require.NotEmpty(t, tables[1].Rows)
	assert.Equal(t, []string{"Calculus I", "Mathematics", "2"}, tables[1].Rows[0])
	assert.Len(t, tables[2].Rows, 3)
}

func TestSection_Reports(t *testing.T) {
	d, _ := newDashboard(t)

	tables, err := d.Section(context.Background(), dashboard.SectionReports)
	require.NoError(t, err)
	require.Len(t, tables, len(dashboard.Reports()))
	requireValid(t, tables...)
}

func TestReport_TopN(t *testing.T) {
	d, _ := newDashboard(t)
	ctx := context.Background()

	d.TopN = 1
	table, err := d.Report(ctx, dashboard.ReportTopCourses)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)

	d.TopN = 0
	table, err = d.Report(ctx, dashboard.ReportTopCourses)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
}

func TestReport_SalaryByPosition(t *testing.T) {
	d, _ := newDashboard(t)

	table, err := d.Report(context.Background(), dashboard.ReportSalaryByPosition)
	require.NoError(t, err)
	assert.Equal(t, []string{"Position", "Mean Salary", "Instructors"}, table.Headers)
	assert.Equal(t, [][]string{
		{"Professor", "95000.00", "1"},
		{"Associate Professor", "85000.00", "1"},
		{"Assistant Professor", "78000.00", "1"},
	}, table.Rows)
}

func TestEnrollments_Filter(t *testing.T) {
	d, svc := newDashboard(t)
	ctx := context.Background()

	table, err := d.Enrollments(ctx, models.EnrollmentFilter{CourseName: "Calculus I"})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	rows, err := svc.Enrollments.FilterEnrollments(ctx, models.EnrollmentFilter{CourseName: "Calculus I"})
	require.NoError(t, err)
	g := models.GradeBPlus
	require.NoError(t, svc.Enrollments.UpdateGrade(ctx, rows[0].StudentID, rows[0].CourseID, &g))

	table, err = d.Enrollments(ctx, models.EnrollmentFilter{Grade: models.GradeFilterGraded})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "B+", table.Rows[0][4])

	_, err = d.Enrollments(ctx, models.EnrollmentFilter{Grade: "Q"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidGrade)
}

func TestDetailViews(t *testing.T) {
	d, svc := newDashboard(t)
	ctx := context.Background()

	students, err := svc.Students.ListStudents(ctx)
	require.NoError(t, err)
	table, err := d.StudentCourses(ctx, students[0].ID)
	require.NoError(t, err)
	requireValid(t, table)
	assert.Len(t, table.Rows, 2)

	instructors, err := svc.Instructors.ListInstructors(ctx)
	require.NoError(t, err)
	table, err = d.InstructorCourses(ctx, instructors[1].ID)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Calculus I", "Mathematics", "4", "2"}, table.Rows[0])

	courses, err := svc.Courses.ListCourses(ctx)
	require.NoError(t, err)
	table, err = d.CourseRoster(ctx, courses[1].ID)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	departments, err := svc.Departments.ListDepartments(ctx)
	require.NoError(t, err)
	tables, err := d.DepartmentDetail(ctx, departments[0].ID)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	requireValid(t, tables...)
	assert.Equal(t, "Computer Science", tables[0].Name)
	assert.Equal(t, [][]string{{"1", "1", "1"}}, tables[0].Rows)

	_, err = d.DepartmentDetail(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUnknownDepartment)
}
