package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/helpers"
)

var (
	personName   string
	personAge    int
	personEmail  string
	rollNumber   string
	entryYear    int
	program      string
	position     string
	salary       float64
	courseName   string
	instructorID string
	credits      int
	description  string

	instructorDepartment string
	courseDepartment     string
)

// addCmd is the parent of the record creation commands
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a department, student, instructor or course",
}

var addDepartmentCmd = &cobra.Command{
	Use:   "department <name>",
	Short: "Add a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		department, err := deps.Services.Departments.AddDepartment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Added department %s (%s)", department.Name, department.ID)
		return nil
	},
}

var addStudentCmd = &cobra.Command{
	Use:   "student",
	Short: "Add a student",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		student, err := deps.Services.Students.AddStudent(cmd.Context(), models.NewStudent{
			Name:       personName,
			Age:        personAge,
			Email:      personEmail,
			RollNumber: rollNumber,
			EntryYear:  entryYear,
			Program:    program,
		})
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Added student %s (%s)", student.Name, student.ID)
		return nil
	},
}

var addInstructorCmd = &cobra.Command{
	Use:   "instructor",
	Short: "Add an instructor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		instructor, err := deps.Services.Instructors.AddInstructor(cmd.Context(), models.NewInstructor{
			Name:         personName,
			Age:          personAge,
			Email:        personEmail,
			DepartmentID: instructorDepartment,
			Position:     position,
			Salary:       salary,
		})
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Added instructor %s (%s)", instructor.Name, instructor.ID)
		return nil
	},
}

var addCourseCmd = &cobra.Command{
	Use:   "course",
	Short: "Add a course",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		course, err := deps.Services.Courses.AddCourse(cmd.Context(), models.NewCourse{
			Name:         courseName,
			DepartmentID: helpers.OptionalString(courseDepartment),
			InstructorID: helpers.OptionalString(instructorID),
			Credits:      credits,
			Description:  description,
		})
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Added course %s (%s)", course.Name, course.ID)
		return nil
	},
}

var enrollCmd = &cobra.Command{
	Use:   "enroll <student-id> <course-id>",
	Short: "Enroll a student in a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enrollment, err := deps.Services.Enrollments.Enroll(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Enrolled on %s", helpers.FormatDate(enrollment.EnrollmentDate))
		return nil
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <student-id> <course-id>",
	Short: "Drop a student from a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deps.Services.Enrollments.Drop(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Dropped")
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <course-id> <instructor-id>",
	Short: "Assign an instructor to a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deps.Services.Courses.AssignInstructor(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Assigned")
		return nil
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade <student-id> <course-id> <grade|none>",
	Short: "Set or clear a grade",
	Long:  "Grades: " + gradeLabels() + ". Use none to clear the grade.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, err := parseGradeArg(args[2])
		if err != nil {
			return err
		}
		if err := deps.Services.Enrollments.UpdateGrade(cmd.Context(), args[0], args[1], grade); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Grade updated")
		return nil
	},
}

var memberCmd = &cobra.Command{
	Use:   "member <person-id>",
	Short: "Show the student or instructor behind a person id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		member, err := deps.Services.Members.FindMember(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		base := member.Base()
		switch m := member.(type) {
		case *models.Student:
			fmt.Fprintf(out, "Student %s, %d, %s\nRoll number %s, entry year %d, %s\n",
				base.Name, base.Age, base.Email, m.RollNumber, m.EntryYear, m.Program)
		case *models.Instructor:
			fmt.Fprintf(out, "Instructor %s, %d, %s\n%s, salary %.2f\n",
				base.Name, base.Age, base.Email, m.Position, m.Salary)
		}
		return nil
	},
}

func gradeLabels() string {
	labels := make([]string, len(models.Grades))
	for i, g := range models.Grades {
		labels[i] = string(g)
	}
	return strings.Join(labels, ", ")
}

func parseGradeArg(s string) (*models.Grade, error) {
	if strings.EqualFold(s, "none") {
		return nil, nil
	}
	grade, err := models.ParseGrade(strings.ToUpper(s))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidGrade, err.Error())
	}
	if grade == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidGrade, "grade is required, use none to clear it")
	}
	return grade, nil
}

func init() {
	for _, c := range []*cobra.Command{addStudentCmd, addInstructorCmd} {
		c.Flags().StringVar(&personName, "name", "", "full name")
		c.Flags().IntVar(&personAge, "age", 0, "age")
		c.Flags().StringVar(&personEmail, "email", "", "email address")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("email")
	}

	addStudentCmd.Flags().StringVar(&rollNumber, "roll", "", "roll number")
	addStudentCmd.Flags().IntVar(&entryYear, "entry-year", 0, "entry year")
	addStudentCmd.Flags().StringVar(&program, "program", "", "program of study")
	_ = addStudentCmd.MarkFlagRequired("roll")

	addInstructorCmd.Flags().StringVar(&instructorDepartment, "department", "", "department id")
	addInstructorCmd.Flags().StringVar(&position, "position", "", "position title")
	addInstructorCmd.Flags().Float64Var(&salary, "salary", 0, "annual salary")
	_ = addInstructorCmd.MarkFlagRequired("department")

	addCourseCmd.Flags().StringVar(&courseName, "name", "", "course name")
	addCourseCmd.Flags().StringVar(&courseDepartment, "department", "", "owning department id (optional)")
	addCourseCmd.Flags().StringVar(&instructorID, "instructor", "", "instructor id (optional)")
	addCourseCmd.Flags().IntVar(&credits, "credits", 3, "credits")
	addCourseCmd.Flags().StringVar(&description, "description", "", "description")
	_ = addCourseCmd.MarkFlagRequired("name")

	addCmd.AddCommand(addDepartmentCmd, addStudentCmd, addInstructorCmd, addCourseCmd)
}
