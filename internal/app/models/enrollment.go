package models

import (
	"fmt"
	"time"
)

// Grade is a letter grade; a nil *Grade means ungraded.
type Grade string

const (
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// Grades lists every assignable grade, best first.
var Grades = []Grade{
	GradeA, GradeAMinus,
	GradeBPlus, GradeB, GradeBMinus,
	GradeCPlus, GradeC, GradeCMinus,
	GradeDPlus, GradeD,
	GradeF,
}

// Valid reports whether g is one of Grades.
func (g Grade) Valid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// ParseGrade parses a grade label. The empty string parses to nil (ungraded).
func ParseGrade(s string) (*Grade, error) {
	if s == "" {
		return nil, nil
	}
	g := Grade(s)
	if !g.Valid() {
		return nil, fmt.Errorf("unknown grade %q", s)
	}
	return &g, nil
}

// Enrollment links one student to one course.
type Enrollment struct {
	StudentID      string    `json:"studentId" db:"student_id"`
	CourseID       string    `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	Grade          *Grade    `json:"grade,omitempty" db:"grade"`
}

// EnrollmentRow is an enrollment joined with student and course names.
type EnrollmentRow struct {
	StudentID      string    `json:"studentId"`
	StudentName    string    `json:"studentName"`
	RollNumber     string    `json:"rollNumber"`
	CourseID       string    `json:"courseId"`
	CourseName     string    `json:"courseName"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Grade          *Grade    `json:"grade,omitempty"`
}

// StudentCourse is one course a student is enrolled in, with its owning
// department and instructor names left-joined.
type StudentCourse struct {
	CourseID       string    `json:"id"`
	CourseName     string    `json:"name"`
	DepartmentName *string   `json:"department,omitempty"`
	InstructorName *string   `json:"instructor,omitempty"`
	Credits        int       `json:"credits"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Grade          *Grade    `json:"grade,omitempty"`
}

// RosterEntry is one enrolled student of a course.
type RosterEntry struct {
	StudentID      string    `json:"studentId"`
	StudentName    string    `json:"studentName"`
	RollNumber     string    `json:"rollNumber"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Grade          *Grade    `json:"grade,omitempty"`
}

// GradeFilter selects enrollments by grading state.
type GradeFilter string

const (
	GradeFilterAll      GradeFilter = "All"
	GradeFilterGraded   GradeFilter = "Graded"
	GradeFilterUngraded GradeFilter = "Ungraded"
)

// EnrollmentFilter narrows the enrollment listing. Empty fields match everything.
type EnrollmentFilter struct {
	CourseName  string
	StudentName string
	// Grade is All, Graded, Ungraded or a concrete grade label.
	Grade GradeFilter
}
