package repositories

import (
	"github.com/yigit/uniadmin/internal/app/repositories/user"
	"github.com/yigit/uniadmin/internal/db"
)

// Repositories holds all the repository instances bound to one connection
// or transaction.
type Repositories struct {
	DepartmentRepository *DepartmentRepository
	PersonRepository     *user.Repository
	StudentRepository    *user.StudentRepository
	InstructorRepository *user.InstructorRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	ReportRepository     *ReportRepository
}

// NewRepositories initializes all repositories over conn, which may be a *sql.DB or *sql.Tx
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(conn),
		PersonRepository:     user.NewRepository(conn),
		StudentRepository:    user.NewStudentRepository(conn),
		InstructorRepository: user.NewInstructorRepository(conn),
		CourseRepository:     NewCourseRepository(conn),
		EnrollmentRepository: NewEnrollmentRepository(conn),
		ReportRepository:     NewReportRepository(conn),
	}
}
