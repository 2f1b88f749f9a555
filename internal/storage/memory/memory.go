// Package memory provides the default, process-local implementation of
// storage.Storage. Records live for as long as the process does.
package memory

import (
	"sync"
	"time"

	"github.com/aanand-mishra/orgconnect/internal/types"
)

// Option configures a Memory store.
type Option func(*Memory)

// WithSeed preloads the store with records. The next assigned id is one
// past the highest seeded id.
func WithSeed(seed []types.Applicant) Option {
	return func(m *Memory) {
		for _, a := range seed {
			m.applicants = append(m.applicants, a)
			if a.ID >= m.nextID {
				m.nextID = a.ID + 1
			}
		}
	}
}

// WithClock replaces time.Now as the source of submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

// Memory is an append-only applicant list.
//
// net/http serves each request on its own goroutine, so append and
// snapshot share one mutex. append is the only mutation, which keeps
// the strictly-increasing id invariant local to CreateApplicant.
type Memory struct {
	mu         sync.Mutex
	applicants []types.Applicant
	nextID     int64
	now        func() time.Time
}

// New returns an empty store whose first id is 1, unless seeded.
func New(opts ...Option) *Memory {
	m := &Memory{
		applicants: make([]types.Applicant, 0),
		nextID:     1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateApplicant assigns the next id, stamps the current time and
// appends the record.
func (m *Memory) CreateApplicant(input types.ApplicantInput) (types.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	applicant := types.Applicant{
		ID:          m.nextID,
		Name:        input.Name,
		Email:       input.Email,
		Role:        input.Role,
		Reason:      input.Reason,
		SubmittedAt: m.now().UTC(),
	}
	m.nextID++
	m.applicants = append(m.applicants, applicant)

	return applicant, nil
}

// GetApplicants returns a copy of the stored records so callers can sort
// or modify the result without touching the store.
func (m *Memory) GetApplicants() ([]types.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Applicant, len(m.applicants))
	copy(out, m.applicants)
	return out, nil
}
