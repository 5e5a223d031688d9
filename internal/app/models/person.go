package models

// Person is the identity record shared by students and instructors.
// The extension row lives in its own table under the same id.
type Person struct {
	ID    string     `json:"id" db:"id"`
	Name  string     `json:"name" db:"name"`
	Age   int        `json:"age" db:"age"`
	Email string     `json:"email" db:"email"`
	Type  PersonType `json:"type" db:"type"`
}

// Member is either a *Student or an *Instructor.
type Member interface {
	Base() *Person
	member()
}

// Base returns the shared person record.
func (p *Person) Base() *Person { return p }
