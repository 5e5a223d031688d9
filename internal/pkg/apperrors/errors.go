package apperrors

import (
	"errors"
	"fmt"
)

// Constraint errors. Each is reported wrapped in a ConstraintError that also
// matches ErrConstraintViolation.
var (
	ErrConstraintViolation = errors.New("constraint violation")

	ErrDuplicateName       = errors.New("department name already exists")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateRollNumber = errors.New("roll number already exists")
	ErrAlreadyEnrolled     = errors.New("student already enrolled in course")
	ErrUnknownDepartment   = errors.New("department not found")
	ErrUnknownReference    = errors.New("referenced record not found")
)

// Enrollment errors
var (
	ErrNotEnrolled = errors.New("student not enrolled in course")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidGrade     = errors.New("invalid grade")
)

// Lookup errors
var (
	ErrResourceNotFound = errors.New("resource not found")
)

// Constraint names as they appear in the store schema
const (
	ConstraintDepartmentName   = "departments.name"
	ConstraintPersonEmail      = "persons.email"
	ConstraintStudentRoll      = "students.roll_number"
	ConstraintEnrollmentKey    = "enrollments.student_id_course_id"
	ConstraintCourseDepartment = "courses.department_id"
	ConstraintCourseInstructor = "courses.instructor_id"
	ConstraintInstructorDept   = "instructors.department_id"
	ConstraintPersonType       = "persons.type"
	ConstraintForeignKey       = "foreign_key"
)

// ConstraintError identifies the store constraint a write breached.
type ConstraintError struct {
	Constraint string
	Err        error
	Message    string
	Details    map[string]interface{}
}

// NewConstraintError builds a ConstraintError for a known sentinel.
func NewConstraintError(constraint string, err error, message string) *ConstraintError {
	return &ConstraintError{
		Constraint: constraint,
		Err:        err,
		Message:    message,
	}
}

// Error implements error interface
func (e *ConstraintError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = ErrConstraintViolation.Error()
	}
	if e.Constraint == "" {
		return msg
	}
	return fmt.Sprintf("%s (constraint %s)", msg, e.Constraint)
}

// Unwrap exposes both the specific sentinel and ErrConstraintViolation to errors.Is.
func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrConstraintViolation {
		return []error{ErrConstraintViolation}
	}
	return []error{e.Err, ErrConstraintViolation}
}

// WithDetails adds context details to the error
func (e *ConstraintError) WithDetails(details map[string]interface{}) *ConstraintError {
	e.Details = details
	return e
}

// CustomError represents non-constraint application errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Validation returns an ErrValidationFailed error with a field-specific message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// ConstraintOf returns the breached constraint name, or "" if err is not a ConstraintError.
func ConstraintOf(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// DetailsOf returns the details attached to a ConstraintError or CustomError in err's chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *ConstraintError
	if errors.As(err, &ce) && ce.Details != nil {
		return ce.Details
	}
	var cu *CustomError
	if errors.As(err, &cu) {
		return cu.Details
	}
	return nil
}
