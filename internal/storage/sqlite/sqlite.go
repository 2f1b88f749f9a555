// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It is optional (storage: sqlite in the config). The default backend
// is the in-memory store; this one exists for running the service
// against a file that survives restarts during local development.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aanand-mishra/orgconnect/internal/config"
	"github.com/aanand-mishra/orgconnect/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is how submitted_at is stored. TEXT in a fixed layout keeps
// the column readable from the sqlite3 shell and sortable as a string.
const timeLayout = time.RFC3339Nano

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, which is a connection pool safe for concurrent use.
type SQLite struct {
	Db  *sql.DB
	now func() time.Time
}

// New opens the SQLite database at cfg.StoragePath, creates the
// applicants table if needed, seeds it when cfg.Seed is set and the
// table is empty, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	s, err := FromDB(db, cfg.Seed)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// FromDB prepares an already opened database.
//
// AUTOINCREMENT (rather than a plain INTEGER PRIMARY KEY) guarantees
// SQLite never reuses an id, so ids stay strictly increasing.
func FromDB(db *sql.DB, seed bool) (*SQLite, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS applicants (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			role         TEXT NOT NULL,
			reason       TEXT NOT NULL,
			submitted_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	s := &SQLite{Db: db, now: time.Now}

	if seed {
		if err := s.seed(types.SeedApplicants()); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// seed inserts records with their fixed ids, but only into an empty
// table so restarting against an existing file does not duplicate them.
func (s *SQLite) seed(records []types.Applicant) error {
	var count int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM applicants").Scan(&count); err != nil {
		return fmt.Errorf("sqlite.seed: count: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmt, err := s.Db.Prepare(
		"INSERT INTO applicants (id, name, email, role, reason, submitted_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("sqlite.seed: prepare: %w", err)
	}
	defer stmt.Close()

	for _, a := range records {
		_, err := stmt.Exec(a.ID, a.Name, a.Email, string(a.Role), a.Reason,
			a.SubmittedAt.UTC().Format(timeLayout))
		if err != nil {
			return fmt.Errorf("sqlite.seed: insert %d: %w", a.ID, err)
		}
	}

	return nil
}

// CreateApplicant inserts a new row and returns it with the id SQLite
// assigned. Placeholders keep user input out of the SQL text.
func (s *SQLite) CreateApplicant(input types.ApplicantInput) (types.Applicant, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO applicants (name, email, role, reason, submitted_at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Applicant{}, fmt.Errorf("CreateApplicant: prepare: %w", err)
	}
	defer stmt.Close()

	submittedAt := s.now().UTC()

	result, err := stmt.Exec(input.Name, input.Email, string(input.Role), input.Reason,
		submittedAt.Format(timeLayout))
	if err != nil {
		return types.Applicant{}, fmt.Errorf("CreateApplicant: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Applicant{}, fmt.Errorf("CreateApplicant: last insert id: %w", err)
	}

	return types.Applicant{
		ID:          lastID,
		Name:        input.Name,
		Email:       input.Email,
		Role:        input.Role,
		Reason:      input.Reason,
		SubmittedAt: submittedAt,
	}, nil
}

// GetApplicants returns all rows ordered by id, which is insertion order.
func (s *SQLite) GetApplicants() ([]types.Applicant, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, role, reason, submitted_at FROM applicants ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetApplicants: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetApplicants: query: %w", err)
	}
	defer rows.Close()

	applicants := make([]types.Applicant, 0)

	for rows.Next() {
		var (
			a           types.Applicant
			role        string
			submittedAt string
		)

		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &role, &a.Reason, &submittedAt); err != nil {
			return nil, fmt.Errorf("GetApplicants: scan row: %w", err)
		}

		a.Role = types.Role(role)
		a.SubmittedAt, err = time.Parse(timeLayout, submittedAt)
		if err != nil {
			return nil, fmt.Errorf("GetApplicants: parse submitted_at of %d: %w", a.ID, err)
		}

		applicants = append(applicants, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetApplicants: rows iteration: %w", err)
	}

	return applicants, nil
}
