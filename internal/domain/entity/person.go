package entity

import (
	"strings"
	"time"
)

// Person is a row of the people table. Articles and comments reference it as their author.
type Person struct {
	ID        int64
	FirstName string
	LastName  string
	Twitter   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntityType returns TypePeople.
func (p Person) EntityType() Type { return TypePeople }

// Columns returns the insertable columns of the people table.
func (p Person) Columns() []string { return []string{"first_name", "last_name", "twitter"} }

// Values returns the insertable values aligned with Columns.
func (p Person) Values() []any { return []any{p.FirstName, p.LastName, p.Twitter} }

// Validate checks the attributes a freshly generated person must carry.
func (p Person) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(p.LastName) == "" {
		return &ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if strings.TrimSpace(p.Twitter) == "" {
		return &ValidationError{Field: "twitter", Message: "twitter is required"}
	}
	return nil
}
