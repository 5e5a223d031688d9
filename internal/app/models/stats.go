package models

// DashboardCounts are the headline totals of the overview screen.
type DashboardCounts struct {
	Students    int `json:"students"`
	Instructors int `json:"instructors"`
	Courses     int `json:"courses"`
	Departments int `json:"departments"`
}

// DepartmentStats aggregates a department. StudentCount counts distinct
// students enrolled in courses owned by the department, not students of the
// department's instructors.
type DepartmentStats struct {
	DepartmentID    string `json:"departmentId"`
	Name            string `json:"department"`
	InstructorCount int    `json:"instructors"`
	CourseCount     int    `json:"courses"`
	StudentCount    int    `json:"students"`
}

// CourseEnrollmentCount is one row of the course popularity ranking.
type CourseEnrollmentCount struct {
	CourseID       string  `json:"courseId"`
	CourseName     string  `json:"course"`
	DepartmentName *string `json:"department,omitempty"`
	Enrollments    int     `json:"enrollments"`
}

// GradeCount is one bucket of the grade distribution.
type GradeCount struct {
	Grade Grade `json:"grade"`
	Count int   `json:"count"`
}

// SalaryMean is the mean salary of one group of instructors.
type SalaryMean struct {
	Group       string  `json:"group"`
	MeanSalary  float64 `json:"meanSalary"`
	Instructors int     `json:"instructors"`
}

// Bucket is a labelled count used by distributions.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Demographics summarises the student body.
type Demographics struct {
	Ages       []Bucket `json:"ages"`
	Programs   []Bucket `json:"programs"`
	EntryYears []Bucket `json:"entryYears"`
}

// DepartmentCourse is a course listed on a department's detail page.
type DepartmentCourse struct {
	CourseID       string  `json:"courseId"`
	Name           string  `json:"name"`
	InstructorName *string `json:"instructor,omitempty"`
	Credits        int     `json:"credits"`
}

// DepartmentInstructor is an instructor listed on a department's detail page.
type DepartmentInstructor struct {
	InstructorID string  `json:"instructorId"`
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	Salary       float64 `json:"salary"`
}

// DepartmentDetail is everything the department detail view shows.
type DepartmentDetail struct {
	Department  Department             `json:"department"`
	Stats       DepartmentStats        `json:"stats"`
	Courses     []DepartmentCourse     `json:"courses"`
	Instructors []DepartmentInstructor `json:"instructors"`
}
