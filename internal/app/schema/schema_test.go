package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/schema"
	"github.com/yigit/uniadmin/internal/db/dbtest"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

func TestEnsure_CreatesTablesOnce(t *testing.T) {
	store := dbtest.Open(t)
	ctx := context.Background()

	// second run is a no-op
	require.NoError(t, schema.Ensure(ctx, store.DB, logger.Nop()))

	for _, table := range schema.Tables() {
		var name string
		err := store.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var version int
	require.NoError(t, store.DB.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, schema.Version, version)
}

func TestEnsure_RejectsMismatchedPersonType(t *testing.T) {
	store := dbtest.Open(t)

	_, err := store.DB.Exec(`INSERT INTO persons (id, name, age, email, type) VALUES ('p1', 'Ada', 30, 'ada@u.edu', 'instructor')`)
	require.NoError(t, err)

	_, err = store.DB.Exec(`INSERT INTO students (id, roll_number, entry_year, program) VALUES ('p1', 'R1', 2020, 'BS')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person type mismatch")

	_, err = store.DB.Exec(`INSERT INTO instructors (id, salary, position) VALUES ('p1', 1000, 'Lecturer')`)
	require.NoError(t, err)
}

func TestEnsure_GradeCheck(t *testing.T) {
	store := dbtest.Open(t)

	stmts := []string{
		`INSERT INTO persons (id, name, age, email, type) VALUES ('s1', 'Sam', 20, 'sam@u.edu', 'student')`,
		`INSERT INTO students (id, roll_number, entry_year, program) VALUES ('s1', 'R1', 2020, 'BS')`,
		`INSERT INTO courses (id, name, credits) VALUES ('c1', 'Logic', 3)`,
		`INSERT INTO enrollments (student_id, course_id, enrollment_date) VALUES ('s1', 'c1', '2024-01-01')`,
	}
	for _, stmt := range stmts {
		_, err := store.DB.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	_, err := store.DB.Exec(`UPDATE enrollments SET grade = 'E' WHERE student_id = 's1'`)
	require.Error(t, err)

	_, err = store.DB.Exec(`UPDATE enrollments SET grade = 'B+' WHERE student_id = 's1'`)
	require.NoError(t, err)
}
