package models

// PersonType discriminates the extension record a person row carries
type PersonType string

const (
	PersonStudent    PersonType = "student"
	PersonInstructor PersonType = "instructor"
)

// Valid reports whether t is one of the known person types.
func (t PersonType) Valid() bool {
	return t == PersonStudent || t == PersonInstructor
}
