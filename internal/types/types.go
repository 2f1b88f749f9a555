// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, the API client and the UI can all import types
// without depending on each other.
package types

import "time"

// Role is the position an applicant is applying for.
type Role string

const (
	RoleIntern    Role = "Intern"
	RoleVolunteer Role = "Volunteer"
)

// Roles lists every accepted role in display order.
var Roles = []Role{RoleIntern, RoleVolunteer}

// Valid reports whether r is one of the accepted roles.
func (r Role) Valid() bool {
	switch r {
	case RoleIntern, RoleVolunteer:
		return true
	}
	return false
}

// Applicant represents a stored registration record.
//
// ID and SubmittedAt are assigned by the store at creation time and
// never change afterwards. SubmittedAt is always UTC, so it encodes to
// JSON as an ISO-8601 / RFC 3339 timestamp ending in "Z".
type Applicant struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Reason      string    `json:"reason"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ApplicantInput is the payload accepted by the create endpoint.
//
// validate:"required" is checked by go-playground/validator; any
// missing field makes the whole request fail with a single
// "All fields are required." message. The role check runs after the
// required check, so a missing role is reported as missing, not invalid.
type ApplicantInput struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required"`
	Role   Role   `json:"role"   validate:"required,role"`
	Reason string `json:"reason" validate:"required"`
}

// SeedApplicants returns the records a fresh store starts with when
// seeding is enabled. A new slice is returned on every call.
func SeedApplicants() []Applicant {
	return []Applicant{
		{
			ID:          1,
			Name:        "Jane Doe",
			Email:       "jane.doe@example.com",
			Role:        RoleIntern,
			Reason:      "Passionate about web development and eager to learn from experienced professionals.",
			SubmittedAt: time.Date(2025, time.July, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Name:        "John Smith",
			Email:       "john.smith@example.com",
			Role:        RoleVolunteer,
			Reason:      "I want to contribute my project management skills to a good cause and help the community.",
			SubmittedAt: time.Date(2025, time.July, 16, 14, 0, 0, 0, time.UTC),
		},
	}
}
