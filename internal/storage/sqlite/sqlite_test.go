package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/orgconnect/internal/config"
	"github.com/aanand-mishra/orgconnect/internal/storage"
	"github.com/aanand-mishra/orgconnect/internal/types"
)

var _ storage.Storage = (*SQLite)(nil)

func newTestDB(t *testing.T, seed bool) *SQLite {
	t.Helper()

	cfg := &config.Config{
		StoragePath: filepath.Join(t.TempDir(), "applicants.db"),
		Seed:        seed,
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Db.Close() })
	return s
}

func testInput() types.ApplicantInput {
	return types.ApplicantInput{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Role:   types.RoleVolunteer,
		Reason: "Happy to help with anything involving numbers.",
	}
}

func TestNew_EmptyWithoutSeed(t *testing.T) {
	s := newTestDB(t, false)

	got, err := s.GetApplicants()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNew_SeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applicants.db")
	cfg := &config.Config{StoragePath: path, Seed: true}

	first, err := New(cfg)
	require.NoError(t, err)
	first.Db.Close()

	second, err := New(cfg)
	require.NoError(t, err)
	defer second.Db.Close()

	got, err := second.GetApplicants()
	require.NoError(t, err)

	want := types.SeedApplicants()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Role, got[i].Role)
		assert.True(t, want[i].SubmittedAt.Equal(got[i].SubmittedAt))
	}
}

func TestCreateApplicant_ContinuesAfterSeed(t *testing.T) {
	s := newTestDB(t, true)
	now := time.Date(2025, time.September, 2, 8, 15, 30, 0, time.UTC)
	s.now = func() time.Time { return now }

	first, err := s.CreateApplicant(testInput())
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.ID)
	assert.True(t, first.SubmittedAt.Equal(now))

	second, err := s.CreateApplicant(testInput())
	require.NoError(t, err)
	assert.Equal(t, int64(4), second.ID)

	all, err := s.GetApplicants()
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, first.ID, all[2].ID)
	assert.Equal(t, types.RoleVolunteer, all[2].Role)
	assert.True(t, all[2].SubmittedAt.Equal(now))
}

func TestCreateApplicant_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applicants`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(`INSERT INTO applicants`).
		ExpectExec().
		WillReturnError(errors.New("disk I/O error"))

	s, err := FromDB(db, false)
	require.NoError(t, err)

	_, err = s.CreateApplicant(testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CreateApplicant: exec")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetApplicants_BadTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applicants`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(`SELECT id, name, email, role, reason, submitted_at FROM applicants`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "reason", "submitted_at"}).
			AddRow(1, "Jane Doe", "jane.doe@example.com", "Intern", "reason", "yesterday"))

	s, err := FromDB(db, false)
	require.NoError(t, err)

	_, err = s.GetApplicants()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse submitted_at")
}

func TestFromDB_CreateTableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applicants`).
		WillReturnError(errors.New("read-only database"))

	_, err = FromDB(db, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create table")
}
