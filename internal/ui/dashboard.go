package ui

import (
	"fmt"
	"sort"

	"github.com/aanand-mishra/orgconnect/internal/types"
)

// Stats are the dashboard's headline counts.
type Stats struct {
	Total      int
	Interns    int
	Volunteers int
}

// ComputeStats counts applicants overall and per role.
func ComputeStats(applicants []types.Applicant) Stats {
	s := Stats{Total: len(applicants)}
	for _, a := range applicants {
		switch a.Role {
		case types.RoleIntern:
			s.Interns++
		case types.RoleVolunteer:
			s.Volunteers++
		}
	}
	return s
}

// SortByRecency returns a copy of applicants ordered newest first.
// The input is left untouched.
func SortByRecency(applicants []types.Applicant) []types.Applicant {
	out := make([]types.Applicant, len(applicants))
	copy(out, applicants)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

// CachePolicy decides whether a dashboard visit refetches the list.
type CachePolicy string

const (
	// CacheOnce fetches on the first visit and reuses the list afterwards.
	CacheOnce CachePolicy = "once"
	// CacheAlways fetches on every visit.
	CacheAlways CachePolicy = "always"
)

// ParseCachePolicy validates a policy name from config.
func ParseCachePolicy(s string) (CachePolicy, error) {
	switch p := CachePolicy(s); p {
	case CacheOnce, CacheAlways:
		return p, nil
	}
	return "", fmt.Errorf("unknown cache policy %q", s)
}
