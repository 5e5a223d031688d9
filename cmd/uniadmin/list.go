package main

import (
	"github.com/spf13/cobra"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/dashboard"
	"github.com/yigit/uniadmin/internal/export"
)

var (
	filterCourse  string
	filterStudent string
	filterGrade   string
)

// listCmd shows one menu section
var listCmd = &cobra.Command{
	Use:   "list <section>",
	Short: "Show a section: dashboard, students, instructors, courses, departments, enrollments or reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

// showCmd shows the detail view of one record
var showCmd = &cobra.Command{
	Use:   "show <student|instructor|course|department> <id>",
	Short: "Show a student's courses, an instructor's courses, a course roster or a department",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func init() {
	listCmd.Flags().StringVar(&filterCourse, "course", "", "enrollments: only this course name")
	listCmd.Flags().StringVar(&filterStudent, "student", "", "enrollments: only this student name")
	listCmd.Flags().StringVar(&filterGrade, "grade", string(models.GradeFilterAll), "enrollments: All, Graded, Ungraded or a grade")
}

func runList(cmd *cobra.Command, args []string) error {
	tables, err := sectionTables(cmd, args[0])
	if err != nil {
		return err
	}
	renderTables(cmd.OutOrStdout(), tables...)
	return nil
}

// sectionTables resolves a section name, applying the enrollment filter flags
func sectionTables(cmd *cobra.Command, name string) ([]*export.Table, error) {
	section, err := dashboard.ParseSection(name)
	if err != nil {
		return nil, err
	}

	if section == dashboard.SectionEnrollments {
		t, err := deps.Dashboard.Enrollments(cmd.Context(), models.EnrollmentFilter{
			CourseName:  filterCourse,
			StudentName: filterStudent,
			Grade:       models.GradeFilter(filterGrade),
		})
		if err != nil {
			return nil, err
		}
		return []*export.Table{t}, nil
	}
	return deps.Dashboard.Section(cmd.Context(), section)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[1]

	var tables []*export.Table
	switch args[0] {
	case "student":
		t, err := deps.Dashboard.StudentCourses(ctx, id)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	case "instructor":
		t, err := deps.Dashboard.InstructorCourses(ctx, id)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	case "course":
		t, err := deps.Dashboard.CourseRoster(ctx, id)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	case "department":
		detail, err := deps.Dashboard.DepartmentDetail(ctx, id)
		if err != nil {
			return err
		}
		tables = detail
	default:
		return cmd.Usage()
	}

	renderTables(cmd.OutOrStdout(), tables...)
	return nil
}
