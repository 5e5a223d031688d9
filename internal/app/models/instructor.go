package models

// Instructor extends Person with employment details.
type Instructor struct {
	Person
	Salary       float64 `json:"salary" db:"salary"`
	DepartmentID *string `json:"departmentId,omitempty" db:"department_id"`
	Position     string  `json:"position" db:"position"`
}

func (*Instructor) member() {}

// InstructorRow is an instructor listing row with its department name left-joined.
type InstructorRow struct {
	Instructor
	DepartmentName *string `json:"department,omitempty"`
}

// NewInstructor is the input of an add-instructor operation.
type NewInstructor struct {
	Name         string
	Age          int
	Email        string
	DepartmentID string
	Position     string
	Salary       float64
}
