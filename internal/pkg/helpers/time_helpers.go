package helpers

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format dates are stored in.
const DateLayout = "2006-01-02"

// FormatDate renders t as a storage date in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a stored date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, nil
}
