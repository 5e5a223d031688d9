package validation

import (
	"strings"

	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// Name checks a required display name.
func Name(field, value string) error {
	if !NewStringValidation(value).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate() {
		return apperrors.Validation("%s must be between %d and %d characters", field, NameMinLength, NameMaxLength)
	}
	return nil
}

// Email checks a required email address.
func Email(value string) error {
	if !NewStringValidation(value).WithPattern(CompiledPatterns.Email).Validate() {
		return apperrors.Validation("email %q is not a valid address", strings.TrimSpace(value))
	}
	return nil
}

// RollNumber checks a required student roll number.
func RollNumber(value string) error {
	if !NewStringValidation(value).WithMaxLength(32).WithPattern(CompiledPatterns.RollNumber).Validate() {
		return apperrors.Validation("roll number %q must be letters and digits", strings.TrimSpace(value))
	}
	return nil
}

// Age checks a person's age against the form limits.
func Age(age int) error {
	if !NewNumericValidation(age).WithMin(float64(AgeMin)).WithMax(float64(AgeMax)).Validate() {
		return apperrors.Validation("age must be between %d and %d", AgeMin, AgeMax)
	}
	return nil
}

// EntryYear checks an entry year lies between EntryYearMin and currentYear.
func EntryYear(year, currentYear int) error {
	if !NewNumericValidation(year).WithMin(float64(EntryYearMin)).WithMax(float64(currentYear)).Validate() {
		return apperrors.Validation("entry year must be between %d and %d", EntryYearMin, currentYear)
	}
	return nil
}

// NonNegative checks a numeric field is zero or more.
func NonNegative[T ~int | ~float64](field string, value T) error {
	if !NewNumericValidation(value).WithMin(0).Validate() {
		return apperrors.Validation("%s cannot be negative", field)
	}
	return nil
}
