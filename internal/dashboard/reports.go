package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/export"
)

// Report is a report kind shown under the reports section
type Report string

const (
	ReportDepartmentStats         Report = "department-stats"
	ReportTopCourses              Report = "top-courses"
	ReportGradeDistribution       Report = "grades"
	ReportSalaryByPosition        Report = "salary-by-position"
	ReportSalaryByDepartment      Report = "salary-by-department"
	ReportEnrollmentsByDepartment Report = "enrollments-by-department"
	ReportAges                    Report = "ages"
	ReportPrograms                Report = "programs"
	ReportEntryYears              Report = "entry-years"
)

// Reports lists every report kind
func Reports() []Report {
	return []Report{
		ReportDepartmentStats, ReportTopCourses, ReportGradeDistribution,
		ReportSalaryByPosition, ReportSalaryByDepartment, ReportEnrollmentsByDepartment,
		ReportAges, ReportPrograms, ReportEntryYears,
	}
}

// ParseReport resolves a report name case-insensitively
func ParseReport(s string) (Report, error) {
	for _, r := range Reports() {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown report %q", s)
}

// Report runs one report
func (d *Dashboard) Report(ctx context.Context, kind Report) (*export.Table, error) {
	reports := d.svc.Reports

	switch kind {
	case ReportDepartmentStats:
		stats, err := reports.DepartmentStats(ctx)
		if err != nil {
			return nil, err
		}
		t := export.NewTable("Department Statistics", "Department", "Instructors", "Courses", "Students").
			Numeric("Instructors", "Courses", "Students")
		for _, s := range stats {
			t.Append(s.Name, itoa(s.InstructorCount), itoa(s.CourseCount), itoa(s.StudentCount))
		}
		return t, nil

	case ReportTopCourses:
		courses, err := reports.TopCourses(ctx, d.TopN)
		if err != nil {
			return nil, err
		}
		t := export.NewTable("Top Courses", "Course", "Department", "Enrollments").Numeric("Enrollments")
		for _, c := range courses {
			t.Append(c.CourseName, opt(c.DepartmentName), itoa(c.Enrollments))
		}
		return t, nil

	case ReportGradeDistribution:
		grades, err := reports.GradeDistribution(ctx)
		if err != nil {
			return nil, err
		}
		t := export.NewTable("Grade Distribution", "Grade", "Count").Numeric("Count")
		for _, g := range grades {
			t.Append(string(g.Grade), itoa(g.Count))
		}
		return t, nil

	case ReportSalaryByPosition:
		return salaryTable("Salary by Position", "Position")(reports.SalaryByPosition(ctx))

	case ReportSalaryByDepartment:
		return salaryTable("Salary by Department", "Department")(reports.SalaryByDepartment(ctx))

	case ReportEnrollmentsByDepartment:
		return bucketTable("Enrollments by Department", "Department", "Enrollments")(reports.EnrollmentsByDepartment(ctx))

	case ReportAges, ReportPrograms, ReportEntryYears:
		demographics, err := reports.StudentDemographics(ctx)
		if err != nil {
			return nil, err
		}
		switch kind {
		case ReportAges:
			return bucketTable("Age Distribution", "Age", "Students")(demographics.Ages, nil)
		case ReportPrograms:
			return bucketTable("Program Distribution", "Program", "Students")(demographics.Programs, nil)
		default:
			return bucketTable("Entry Year Distribution", "Entry Year", "Students")(demographics.EntryYears, nil)
		}

	default:
		return nil, fmt.Errorf("unknown report %q", kind)
	}
}

func salaryTable(name, group string) func([]models.SalaryMean, error) (*export.Table, error) {
	return func(means []models.SalaryMean, err error) (*export.Table, error) {
		if err != nil {
			return nil, err
		}
		t := export.NewTable(name, group, "Mean Salary", "Instructors").Numeric("Mean Salary", "Instructors")
		for _, m := range means {
			t.Append(m.Group, money(m.MeanSalary), itoa(m.Instructors))
		}
		return t, nil
	}
}

func bucketTable(name, label, count string) func([]models.Bucket, error) (*export.Table, error) {
	return func(buckets []models.Bucket, err error) (*export.Table, error) {
		if err != nil {
			return nil, err
		}
		t := export.NewTable(name, label, count).Numeric(count)
		for _, b := range buckets {
			t.Append(b.Label, itoa(b.Count))
		}
		return t, nil
	}
}
