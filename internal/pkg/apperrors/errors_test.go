package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintError(t *testing.T) {
	err := NewConstraintError(ConstraintPersonEmail, ErrDuplicateEmail, "email taken")

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NotErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, "email taken (constraint persons.email)", err.Error())

	wrapped := fmt.Errorf("add student: %w", err)
	assert.Equal(t, ConstraintPersonEmail, ConstraintOf(wrapped))
	assert.ErrorIs(t, wrapped, ErrDuplicateEmail)
}

func TestConstraintError_Generic(t *testing.T) {
	err := NewConstraintError("", nil, "")
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.Equal(t, ErrConstraintViolation.Error(), err.Error())
	assert.Empty(t, ConstraintOf(errors.New("plain")))
}

func TestCustomError(t *testing.T) {
	err := NewCustomError(ErrNotEnrolled, "")
	assert.ErrorIs(t, err, ErrNotEnrolled)
	assert.Equal(t, ErrNotEnrolled.Error(), err.Error())

	err = NewCustomError(ErrInvalidGrade, "invalid grade \"E\"")
	assert.Equal(t, "invalid grade \"E\"", err.Error())
}

func TestDetailsOf(t *testing.T) {
	details := map[string]interface{}{"studentID": "s1"}

	assert.Equal(t, details, DetailsOf(fmt.Errorf("drop: %w", NewCustomError(ErrNotEnrolled, "").WithDetails(details))))
	assert.Equal(t, details, DetailsOf(NewConstraintError(ConstraintEnrollmentKey, ErrAlreadyEnrolled, "").WithDetails(details)))
	assert.Nil(t, DetailsOf(errors.New("plain")))
}

func TestIs(t *testing.T) {
	err := Validation("age must be between %d and %d", 16, 100)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "age must be between 16 and 100")

	assert.True(t, Is(err, ErrInvalidGrade, ErrValidationFailed))
	assert.False(t, Is(err, ErrInvalidGrade, ErrNotEnrolled))
}
