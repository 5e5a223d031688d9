package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern, matched case-insensitively
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Roll numbers are letters and digits, e.g. CS2023001
	RollNumberPattern = `^[A-Za-z0-9\-]+$`

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100

	// Form limits for persons
	AgeMin = 16
	AgeMax = 100

	// Earliest accepted entry year
	EntryYearMin = 2000
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	RollNumber *regexp.Regexp
}{
	Email:      regexp.MustCompile("(?i)" + EmailPattern),
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation over the trimmed value
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	// Check if required
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	// Check min length
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	// Check max length
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	// Check pattern
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation. Bounds are inclusive and only checked once set.
type NumericValidation struct {
	Value  float64
	Min    float64
	Max    float64
	hasMin bool
	hasMax bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation[T ~int | ~int64 | ~float64](value T) *NumericValidation {
	return &NumericValidation{Value: float64(value)}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min float64) *NumericValidation {
	v.Min = min
	v.hasMin = true
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max float64) *NumericValidation {
	v.Max = max
	v.hasMax = true
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	// Check min value
	if v.hasMin && v.Value < v.Min {
		return false
	}

	// Check max value
	if v.hasMax && v.Value > v.Max {
		return false
	}
	return true
}
