// Package dashboard maps menu sections and report kinds onto core
// operations and returns their results as export tables. It owns no storage
// logic and makes no rendering decisions.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/export"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
)

// Section is a menu entry
type Section string

const (
	SectionDashboard   Section = "dashboard"
	SectionStudents    Section = "students"
	SectionInstructors Section = "instructors"
	SectionCourses     Section = "courses"
	SectionDepartments Section = "departments"
	SectionEnrollments Section = "enrollments"
	SectionReports     Section = "reports"
)

// Sections lists the menu in display order
func Sections() []Section {
	return []Section{
		SectionDashboard, SectionStudents, SectionInstructors, SectionCourses,
		SectionDepartments, SectionEnrollments, SectionReports,
	}
}

// ParseSection resolves a section name case-insensitively
func ParseSection(s string) (Section, error) {
	for _, section := range Sections() {
		if strings.EqualFold(s, string(section)) {
			return section, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Dashboard dispatches menu choices to the services
type Dashboard struct {
	svc *services.Services
	// TopN bounds the course ranking shown on the overview; <= 0 is unbounded.
	TopN int
}

// New creates a dashboard over svc
func New(svc *services.Services) *Dashboard {
	return &Dashboard{svc: svc, TopN: 10}
}

// Section returns the tables a menu section shows
func (d *Dashboard) Section(ctx context.Context, section Section) ([]*export.Table, error) {
	switch section {
	case SectionDashboard:
		counts, err := d.Counts(ctx)
		if err != nil {
			return nil, err
		}
		top, err := d.Report(ctx, ReportTopCourses)
		if err != nil {
			return nil, err
		}
		stats, err := d.Report(ctx, ReportDepartmentStats)
		if err != nil {
			return nil, err
		}
		return []*export.Table{counts, top, stats}, nil
	case SectionStudents:
		return single(d.Students(ctx))
	case SectionInstructors:
		return single(d.Instructors(ctx))
	case SectionCourses:
		return single(d.Courses(ctx))
	case SectionDepartments:
		return single(d.Departments(ctx))
	case SectionEnrollments:
		return single(d.Enrollments(ctx, models.EnrollmentFilter{}))
	case SectionReports:
		tables := make([]*export.Table, 0, len(Reports()))
		for _, kind := range Reports() {
			t, err := d.Report(ctx, kind)
			if err != nil {
				return nil, err
			}
			tables = append(tables, t)
		}
		return tables, nil
	default:
		return nil, fmt.Errorf("unknown section %q", section)
	}
}

func single(t *export.Table, err error) ([]*export.Table, error) {
	if err != nil {
		return nil, err
	}
	return []*export.Table{t}, nil
}

// Counts renders the headline totals
func (d *Dashboard) Counts(ctx context.Context) (*export.Table, error) {
	counts, err := d.svc.Reports.DashboardCounts(ctx)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Overview", "Students", "Instructors", "Courses", "Departments").
		Numeric("Students", "Instructors", "Courses", "Departments")
	t.Append(itoa(counts.Students), itoa(counts.Instructors), itoa(counts.Courses), itoa(counts.Departments))
	return t, nil
}

// Departments renders the department listing
func (d *Dashboard) Departments(ctx context.Context) (*export.Table, error) {
	departments, err := d.svc.Departments.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Departments", "ID", "Name")
	for _, dept := range departments {
		t.Append(dept.ID, dept.Name)
	}
	return t, nil
}

// Students renders the student listing
func (d *Dashboard) Students(ctx context.Context) (*export.Table, error) {
	students, err := d.svc.Students.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Students", "ID", "Name", "Age", "Email", "Roll Number", "Entry Year", "Program").
		Numeric("Age", "Entry Year")
	for _, s := range students {
		t.Append(s.ID, s.Name, itoa(s.Age), s.Email, s.RollNumber, itoa(s.EntryYear), s.Program)
	}
	return t, nil
}

// Instructors renders the instructor listing
func (d *Dashboard) Instructors(ctx context.Context) (*export.Table, error) {
	instructors, err := d.svc.Instructors.ListInstructors(ctx)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Instructors", "ID", "Name", "Age", "Email", "Department", "Position", "Salary").
		Numeric("Age", "Salary")
	for _, i := range instructors {
		t.Append(i.ID, i.Name, itoa(i.Age), i.Email, opt(i.DepartmentName), i.Position, money(i.Salary))
	}
	return t, nil
}

// Courses renders the course listing
func (d *Dashboard) Courses(ctx context.Context) (*export.Table, error) {
	courses, err := d.svc.Courses.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Courses", "ID", "Name", "Department", "Instructor", "Credits", "Description").
		Numeric("Credits")
	for _, c := range courses {
		t.Append(c.ID, c.Name, opt(c.DepartmentName), opt(c.InstructorName), itoa(c.Credits), c.Description)
	}
	return t, nil
}

// Enrollments renders the enrollment listing narrowed by filter
func (d *Dashboard) Enrollments(ctx context.Context, filter models.EnrollmentFilter) (*export.Table, error) {
	rows, err := d.svc.Enrollments.FilterEnrollments(ctx, filter)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Enrollments", "Student", "Roll Number", "Course", "Enrollment Date", "Grade")
	for _, e := range rows {
		t.Append(e.StudentName, e.RollNumber, e.CourseName, helpers.FormatDate(e.EnrollmentDate), grade(e.Grade))
	}
	return t, nil
}

// StudentCourses renders one student's courses
func (d *Dashboard) StudentCourses(ctx context.Context, studentID string) (*export.Table, error) {
	courses, err := d.svc.Students.StudentCourses(ctx, studentID)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Student Courses", "Course", "Department", "Instructor", "Credits", "Enrollment Date", "Grade").
		Numeric("Credits")
	for _, c := range courses {
		t.Append(c.CourseName, opt(c.DepartmentName), opt(c.InstructorName), itoa(c.Credits),
			helpers.FormatDate(c.EnrollmentDate), grade(c.Grade))
	}
	return t, nil
}

// InstructorCourses renders the courses an instructor teaches
func (d *Dashboard) InstructorCourses(ctx context.Context, instructorID string) (*export.Table, error) {
	courses, err := d.svc.Instructors.InstructorCourses(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Instructor Courses", "Course", "Department", "Credits", "Enrolled Students").
		Numeric("Credits", "Enrolled Students")
	for _, c := range courses {
		t.Append(c.Name, opt(c.DepartmentName), itoa(c.Credits), itoa(c.EnrolledStudentCount))
	}
	return t, nil
}

// CourseRoster renders the students of a course
func (d *Dashboard) CourseRoster(ctx context.Context, courseID string) (*export.Table, error) {
	roster, err := d.svc.Courses.CourseRoster(ctx, courseID)
	if err != nil {
		return nil, err
	}
	t := export.NewTable("Roster", "Student", "Roll Number", "Enrollment Date", "Grade")
	for _, r := range roster {
		t.Append(r.StudentName, r.RollNumber, helpers.FormatDate(r.EnrollmentDate), grade(r.Grade))
	}
	return t, nil
}

// DepartmentDetail renders a department's stats, courses and instructors
func (d *Dashboard) DepartmentDetail(ctx context.Context, departmentID string) ([]*export.Table, error) {
	detail, err := d.svc.Departments.DepartmentDetail(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	stats := export.NewTable(detail.Department.Name, "Instructors", "Courses", "Students").
		Numeric("Instructors", "Courses", "Students")
	stats.Append(itoa(detail.Stats.InstructorCount), itoa(detail.Stats.CourseCount), itoa(detail.Stats.StudentCount))

	courses := export.NewTable(detail.Department.Name+" Courses", "Course", "Instructor", "Credits").
		Numeric("Credits")
	for _, c := range detail.Courses {
		courses.Append(c.Name, opt(c.InstructorName), itoa(c.Credits))
	}

	instructors := export.NewTable(detail.Department.Name+" Instructors", "Name", "Position", "Salary").
		Numeric("Salary")
	for _, i := range detail.Instructors {
		instructors.Append(i.Name, i.Position, money(i.Salary))
	}

	return []*export.Table{stats, courses, instructors}, nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func money(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func opt(s *string) string { return helpers.Deref(s, "") }

func grade(g *models.Grade) string {
	if g == nil {
		return ""
	}
	return string(*g)
}
