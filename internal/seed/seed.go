package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appModels "github.com/yigit/uniadmin/internal/app/models"
	appRepos "github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/db"
)

type instructorSeed struct {
	name, email, department, position string
	age                               int
	salary                            float64
}

type courseSeed struct {
	name, department, instructor, description string
	credits                                   int
}

type studentSeed struct {
	name, email, roll, program string
	age, entryYear             int
}

var (
	departments = []string{"Computer Science", "Mathematics", "Physics"}

	instructors = []instructorSeed{
		{name: "Dr. John Smith", age: 45, email: "john.smith@university.edu", salary: 85000, department: "Computer Science", position: "Associate Professor"},
		{name: "Dr. Jane Doe", age: 38, email: "jane.doe@university.edu", salary: 78000, department: "Mathematics", position: "Assistant Professor"},
		{name: "Prof. Robert Johnson", age: 55, email: "robert.johnson@university.edu", salary: 95000, department: "Physics", position: "Professor"},
	}

	courses = []courseSeed{
		{name: "Introduction to Programming", department: "Computer Science", instructor: "john.smith@university.edu", credits: 3, description: "Basic programming concepts using Python"},
		{name: "Calculus I", department: "Mathematics", instructor: "jane.doe@university.edu", credits: 4, description: "Limits, derivatives, and integrals"},
		{name: "Classical Mechanics", department: "Physics", instructor: "robert.johnson@university.edu", credits: 4, description: "Newton's laws and classical physics principles"},
	}

	students = []studentSeed{
		{name: "Alice Johnson", age: 20, email: "alice.johnson@university.edu", roll: "CS2023001", entryYear: 2023, program: "BS Computer Science"},
		{name: "Bob Williams", age: 21, email: "bob.williams@university.edu", roll: "MA2023002", entryYear: 2023, program: "BS Mathematics"},
		{name: "Charlie Brown", age: 19, email: "charlie.brown@university.edu", roll: "PH2023003", entryYear: 2023, program: "BS Physics"},
	}

	// roll number -> course names
	enrollments = []struct{ roll, course string }{
		{"CS2023001", "Introduction to Programming"},
		{"CS2023001", "Calculus I"},
		{"MA2023002", "Calculus I"},
		{"PH2023003", "Classical Mechanics"},
	}
)

// CreateDefaultData loads the sample records when the store has no
// departments yet. Everything is written in one transaction, so a failure
// leaves the store empty and a second call is a no-op.
func CreateDefaultData(ctx context.Context, store *db.SQLiteDB, lgr zerolog.Logger) error {
	return createDefaultData(ctx, store, lgr, time.Now())
}

func createDefaultData(ctx context.Context, store *db.SQLiteDB, lgr zerolog.Logger, today time.Time) error {
	lgr.Info().Msg("Checking/Creating default data...")

	seeded := false
	err := store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		repos := appRepos.NewRepositories(tx)

		n, err := repos.DepartmentRepository.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		departmentIDs := make(map[string]string, len(departments))
		for _, name := range departments {
			department := &appModels.Department{ID: uuid.NewString(), Name: name}
			if err := repos.DepartmentRepository.Create(ctx, department); err != nil {
				return fmt.Errorf("department %q: %w", name, err)
			}
			departmentIDs[name] = department.ID
		}

		instructorIDs := make(map[string]string, len(instructors))
		for _, in := range instructors {
			departmentID := departmentIDs[in.department]
			instructor := &appModels.Instructor{
				Person: appModels.Person{
					ID:    uuid.NewString(),
					Name:  in.name,
					Age:   in.age,
					Email: in.email,
					Type:  appModels.PersonInstructor,
				},
				Salary:       in.salary,
				DepartmentID: &departmentID,
				Position:     in.position,
			}
			if err := repos.PersonRepository.CreatePerson(ctx, &instructor.Person); err != nil {
				return fmt.Errorf("instructor %q: %w", in.name, err)
			}
			if err := repos.InstructorRepository.CreateInstructor(ctx, instructor); err != nil {
				return fmt.Errorf("instructor %q: %w", in.name, err)
			}
			instructorIDs[in.email] = instructor.ID
		}

		courseIDs := make(map[string]string, len(courses))
		for _, c := range courses {
			departmentID := departmentIDs[c.department]
			instructorID := instructorIDs[c.instructor]
			course := &appModels.Course{
				ID:           uuid.NewString(),
				Name:         c.name,
				DepartmentID: &departmentID,
				InstructorID: &instructorID,
				Credits:      c.credits,
				Description:  c.description,
			}
			if err := repos.CourseRepository.Create(ctx, course); err != nil {
				return fmt.Errorf("course %q: %w", c.name, err)
			}
			courseIDs[c.name] = course.ID
		}

		studentIDs := make(map[string]string, len(students))
		for _, st := range students {
			student := &appModels.Student{
				Person: appModels.Person{
					ID:    uuid.NewString(),
					Name:  st.name,
					Age:   st.age,
					Email: st.email,
					Type:  appModels.PersonStudent,
				},
				RollNumber: st.roll,
				EntryYear:  st.entryYear,
				Program:    st.program,
			}
			if err := repos.PersonRepository.CreatePerson(ctx, &student.Person); err != nil {
				return fmt.Errorf("student %q: %w", st.name, err)
			}
			if err := repos.StudentRepository.CreateStudent(ctx, student); err != nil {
				return fmt.Errorf("student %q: %w", st.name, err)
			}
			studentIDs[st.roll] = student.ID
		}

		for _, e := range enrollments {
			enrollment := &appModels.Enrollment{
				StudentID:      studentIDs[e.roll],
				CourseID:       courseIDs[e.course],
				EnrollmentDate: today,
			}
			if err := repos.EnrollmentRepository.Create(ctx, enrollment); err != nil {
				return fmt.Errorf("enrollment %s/%s: %w", e.roll, e.course, err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default data")
		return fmt.Errorf("failed to create default data: %w", err)
	}

	if seeded {
		lgr.Info().
			Int("departments", len(departments)).
			Int("instructors", len(instructors)).
			Int("courses", len(courses)).
			Int("students", len(students)).
			Int("enrollments", len(enrollments)).
			Msg("Default data created")
	} else {
		lgr.Info().Msg("Default data already present, skipping")
	}
	return nil
}
