package dberrors

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// sqliteCode extracts the extended SQLite result code from err.
func sqliteCode(err error) (int, string, bool) {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return 0, "", false
	}
	return sqliteErr.Code(), sqliteErr.Error(), true
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY violation
// on the given "table.column" target. SQLite names composite keys as
// "table.col1, table.col2"; pass any one of the columns.
func IsUniqueViolation(err error, target string) bool {
	code, msg, ok := sqliteCode(err)
	if !ok {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended result codes disabled; fall back to the message.
		if !strings.Contains(msg, "UNIQUE constraint failed") {
			return false
		}
	default:
		return false
	}
	return strings.Contains(msg, target)
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY violation.
func IsForeignKeyViolation(err error) bool {
	code, msg, ok := sqliteCode(err)
	if !ok {
		return false
	}
	return code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
		(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "FOREIGN KEY constraint failed"))
}

// IsConstraintViolation reports whether err is any SQLite constraint failure.
func IsConstraintViolation(err error) bool {
	code, _, ok := sqliteCode(err)
	// Extended codes keep the primary SQLITE_CONSTRAINT code in the low byte.
	return ok && code&0xff == sqlite3.SQLITE_CONSTRAINT
}

// Translate maps a store error onto the application's constraint taxonomy.
// Errors that are not constraint failures are returned unchanged.
func Translate(err error) error {
	if err == nil || !IsConstraintViolation(err) {
		return err
	}

	switch {
	case IsUniqueViolation(err, apperrors.ConstraintPersonEmail):
		return apperrors.NewConstraintError(apperrors.ConstraintPersonEmail, apperrors.ErrDuplicateEmail, "")
	case IsUniqueViolation(err, apperrors.ConstraintStudentRoll):
		return apperrors.NewConstraintError(apperrors.ConstraintStudentRoll, apperrors.ErrDuplicateRollNumber, "")
	case IsUniqueViolation(err, apperrors.ConstraintDepartmentName):
		return apperrors.NewConstraintError(apperrors.ConstraintDepartmentName, apperrors.ErrDuplicateName, "")
	case IsUniqueViolation(err, "enrollments.student_id"):
		return apperrors.NewConstraintError(apperrors.ConstraintEnrollmentKey, apperrors.ErrAlreadyEnrolled, "")
	case IsForeignKeyViolation(err):
		return apperrors.NewConstraintError(apperrors.ConstraintForeignKey, apperrors.ErrUnknownReference, "")
	}

	_, msg, _ := sqliteCode(err)
	return apperrors.NewConstraintError("", apperrors.ErrConstraintViolation, msg)
}
