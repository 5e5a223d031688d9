package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// resetFlags puts every flag of cmd and its subcommands back to its default,
// since cobra keeps parsed values between Execute calls
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), f.Name)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(t, c)
	}
}

// run executes the CLI against dbFile and returns its output
func run(t *testing.T, dbFile string, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", dbFile, "--log-level", "disabled"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	closeDeps()
	return out.String(), err
}

func TestListSeededStore(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "university.db")

	out, err := run(t, dbFile, "list", "departments")
	require.NoError(t, err)
	assert.Contains(t, out, "Computer Science")
	assert.Contains(t, out, "Mathematics")

	out, err = run(t, dbFile, "list", "enrollments", "--course", "Calculus I")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Johnson")
	assert.Contains(t, out, "Bob Williams")
	assert.NotContains(t, out, "Charlie Brown")

	_, err = run(t, dbFile, "list", "settings")
	assert.Error(t, err)
}

func TestAddDepartmentTwice(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "university.db")

	out, err := run(t, dbFile, "--no-seed", "add", "department", "Biology")
	require.NoError(t, err)
	assert.Contains(t, out, "Added department Biology")

	_, err = run(t, dbFile, "--no-seed", "add", "department", "Biology")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)

	out, err = run(t, dbFile, "--no-seed", "list", "departments")
	require.NoError(t, err)
	assert.Contains(t, out, "Biology")
	assert.NotContains(t, out, "Physics")
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "university.db")
	target := filepath.Join(dir, "out", "students.csv")

	out, err := run(t, dbFile, "export", "students", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"ID", "Name", "Age", "Email", "Roll Number", "Entry Year", "Program"}, records[0])
	assert.Equal(t, "CS2023001", records[1][4])
}

func TestAddCourse_DoesNotInheritInstructorDepartment(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "university.db")

	out, err := run(t, dbFile, "--no-seed", "add", "department", "Biology")
	require.NoError(t, err)
	departmentID := addedID(t, out)

	_, err = run(t, dbFile, "--no-seed", "add", "instructor",
		"--name", "Dr. X", "--age", "50", "--email", "x@university.edu",
		"--department", departmentID, "--position", "Professor", "--salary", "70000")
	require.NoError(t, err)

	_, err = run(t, dbFile, "--no-seed", "add", "course", "--name", "Seminar")
	require.NoError(t, err)
	assert.Empty(t, addCourseCmd.Flags().Lookup("department").Value.String())

	target := filepath.Join(dir, "courses.csv")
	_, err = run(t, dbFile, "--no-seed", "export", "courses", "--out", target)
	require.NoError(t, err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Department", records[0][2])
	assert.Equal(t, "Seminar", records[1][1])
	assert.Empty(t, records[1][2])
}

// addedID extracts the id from an "Added ... (<id>)" line
func addedID(t *testing.T, out string) string {
	t.Helper()
	open := strings.LastIndex(out, "(")
	end := strings.LastIndex(out, ")")
	require.True(t, open >= 0 && end > open, out)
	return out[open+1 : end]
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "university.db")

	_, err := run(t, dbFile, "export", "students", "--format", "pdf")
	assert.Error(t, err)
}

func TestParseGradeArg(t *testing.T) {
	g, err := parseGradeArg("none")
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = parseGradeArg("b+")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, models.GradeBPlus, *g)

	_, err = parseGradeArg("E")
	assert.ErrorIs(t, err, apperrors.ErrInvalidGrade)

	_, err = parseGradeArg("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidGrade)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "top-courses", slug(" Top Courses "))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(apperrors.Validation("bad age")))
	assert.Equal(t, 2, exitCode(apperrors.NewConstraintError(apperrors.ConstraintDepartmentName, apperrors.ErrDuplicateName, "")))
	assert.Equal(t, 1, exitCode(os.ErrPermission))
}

func TestPrintError(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrNotEnrolled, "not enrolled").
		WithDetails(map[string]interface{}{"studentID": "s1", "courseID": "c1"})

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Equal(t, "Error: not enrolled\n  courseID: c1\n  studentID: s1\n", buf.String())
}
