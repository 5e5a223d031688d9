package models

// Student extends Person with enrollment identity.
type Student struct {
	Person
	RollNumber string `json:"rollNumber" db:"roll_number"`
	EntryYear  int    `json:"entryYear" db:"entry_year"`
	Program    string `json:"program" db:"program"`
}

func (*Student) member() {}

// NewStudent is the input of an add-student operation.
type NewStudent struct {
	Name       string
	Age        int
	Email      string
	RollNumber string
	EntryYear  int
	Program    string
}
