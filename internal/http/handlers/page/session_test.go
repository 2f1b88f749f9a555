package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/ui"
)

type stubAPI struct{}

func (stubAPI) ListApplicants(context.Context) ([]types.Applicant, error) {
	return types.SeedApplicants(), nil
}

func (stubAPI) CreateApplicant(_ context.Context, in types.ApplicantInput) (types.Applicant, error) {
	return types.Applicant{ID: 3, Name: in.Name, Email: in.Email, Role: in.Role, Reason: in.Reason, SubmittedAt: time.Now().UTC()}, nil
}

func newTestSessions(ttl time.Duration, sched *ui.ManualScheduler) *Sessions {
	return NewSessions(ttl, func() *ui.App {
		return ui.NewApp(stubAPI{}, ui.Options{Scheduler: sched})
	})
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestSessions_NewBrowserGetsCookie(t *testing.T) {
	s := newTestSessions(time.Hour, &ui.ManualScheduler{})

	rec := httptest.NewRecorder()
	app := s.App(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, app)

	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Len(t, c.Value, 36)
	assert.Equal(t, 1, s.Len())
}

func TestSessions_CookieSelectsSameApp(t *testing.T) {
	s := newTestSessions(time.Hour, &ui.ManualScheduler{})

	rec := httptest.NewRecorder()
	first := s.App(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	second := s.App(rec, req)

	assert.Same(t, first, second)
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessions_UnknownCookieStartsFresh(t *testing.T) {
	s := newTestSessions(time.Hour, &ui.ManualScheduler{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	s.App(rec, req)

	assert.NotEqual(t, "forged", sessionCookie(t, rec).Value)
}

func TestSessions_ExpireAfterTTL(t *testing.T) {
	sched := &ui.ManualScheduler{}
	s := newTestSessions(time.Minute, sched)
	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	rec := httptest.NewRecorder()
	app := s.App(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c := sessionCookie(t, rec)

	app.Navigate(ui.PageRegister)
	require.NoError(t, app.Submit(context.Background(), ui.Form{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Role:   types.RoleIntern,
		Reason: "I would like to help with the analytical engine.",
	}))
	require.Equal(t, 1, sched.Pending())

	now = now.Add(2 * time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	fresh := s.App(rec, req)

	assert.NotSame(t, app, fresh)
	assert.Equal(t, 1, s.Len())
	assert.Zero(t, sched.Pending(), "expired session's redirect is cancelled")
}

func TestSessions_Close(t *testing.T) {
	s := newTestSessions(time.Hour, &ui.ManualScheduler{})
	s.App(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	s.App(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, 2, s.Len())

	s.Close()
	assert.Zero(t, s.Len())
}
