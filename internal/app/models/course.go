package models

// Course belongs to at most one department and is taught by at most one instructor.
type Course struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	DepartmentID *string `json:"departmentId,omitempty" db:"department_id"`
	InstructorID *string `json:"instructorId,omitempty" db:"instructor_id"`
	Credits      int     `json:"credits" db:"credits"`
	Description  string  `json:"description" db:"description"`
}

// NewCourse is the input of an add-course operation; nil references are allowed.
type NewCourse struct {
	Name         string
	DepartmentID *string
	InstructorID *string
	Credits      int
	Description  string
}

// CourseRow is a course listing row with department and instructor names left-joined.
type CourseRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DepartmentName *string `json:"department,omitempty"`
	InstructorName *string `json:"instructor,omitempty"`
	Credits        int     `json:"credits"`
	Description    string  `json:"description"`
}

// InstructorCourse is a course taught by an instructor with its live enrollment count.
type InstructorCourse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	DepartmentName       *string `json:"department,omitempty"`
	Credits              int     `json:"credits"`
	Description          string  `json:"description"`
	EnrolledStudentCount int     `json:"enrolledStudents"`
}

// CourseRef is the minimal id/name pair used for pick lists.
type CourseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
