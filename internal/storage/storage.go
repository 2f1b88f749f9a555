// Package storage defines the Storage interface, the contract every
// applicant backend must satisfy.
//
// Handlers depend only on this interface, so the in-memory store used
// by default and the optional SQLite store are interchangeable, and
// tests can pass either (or a fake) without touching handler code.
package storage

import "github.com/aanand-mishra/orgconnect/internal/types"

// Storage is the applicant store contract.
//
// Records are append-only: there is no update or delete. Implementations
// must assign ids that are unique and strictly increasing in creation
// order, and stamp SubmittedAt exactly once.
type Storage interface {
	// CreateApplicant appends a new record built from input and returns
	// it with its assigned id and timestamp. The input is assumed to be
	// validated already.
	CreateApplicant(input types.ApplicantInput) (types.Applicant, error)

	// GetApplicants returns every record in insertion order.
	// Returns an empty slice (not nil) when the store is empty.
	GetApplicants() ([]types.Applicant, error)
}
