package models

// Department is a top-level organisational unit; names are unique.
type Department struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
