// Package services implements the mutation operations and the query layer on
// top of the repositories.
//
// Services defined in this package:
// - DepartmentService: departments and the department detail view
// - StudentService: students and their enrollments
// - InstructorService: instructors and the courses they teach
// - CourseService: courses, instructor assignment and rosters
// - EnrollmentService: enroll, drop, grading and enrollment listings
// - MemberService: person lookup returning a Student or an Instructor
// - ReportService: dashboard counts and aggregate statistics
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/db"
)

// Services bundles every service over one store
type Services struct {
	Departments *DepartmentService
	Students    *StudentService
	Instructors *InstructorService
	Courses     *CourseService
	Enrollments *EnrollmentService
	Members     *MemberService
	Reports     ReportService
}

// Option customises New
type Option func(*base)

// WithClock replaces time.Now, used for enrollment dates and entry year limits
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// WithIDGenerator replaces uuid.NewString for new record ids
func WithIDGenerator(newID func() string) Option {
	return func(b *base) {
		b.newID = newID
	}
}

// New creates all services over store
func New(store *db.SQLiteDB, lgr zerolog.Logger, opts ...Option) *Services {
	b := &base{
		store:  store,
		read:   repositories.NewRepositories(store.DB),
		logger: lgr,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	return &Services{
		Departments: newDepartmentService(b),
		Students:    newStudentService(b),
		Instructors: newInstructorService(b),
		Courses:     newCourseService(b),
		Enrollments: newEnrollmentService(b),
		Members:     newMemberService(b),
		Reports:     newReportService(b),
	}
}

// base carries what every service shares. Reads use read; writes get
// repositories bound to their own transaction.
type base struct {
	store  *db.SQLiteDB
	read   *repositories.Repositories
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// write runs fn in one serialized transaction. fn must only use the
// repositories it is given.
func (b *base) write(ctx context.Context, fn func(ctx context.Context, repos *repositories.Repositories) error) error {
	return b.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, repositories.NewRepositories(tx))
	})
}
