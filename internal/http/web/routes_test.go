package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/orgconnect/internal/client"
	"github.com/aanand-mishra/orgconnect/internal/config"
	"github.com/aanand-mishra/orgconnect/internal/http/api"
	"github.com/aanand-mishra/orgconnect/internal/http/handlers/page"
	"github.com/aanand-mishra/orgconnect/internal/storage/memory"
	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/ui"
)

// newStack starts the API and the web client against it, and returns a
// browser-like HTTP client with a cookie jar.
func newStack(t *testing.T) (*httptest.Server, *http.Client, *ui.ManualScheduler) {
	t.Helper()

	apiSrv := httptest.NewServer(api.NewRouter(
		memory.New(memory.WithSeed(types.SeedApplicants())),
		config.CORS{AllowedOrigins: []string{"*"}},
	))
	t.Cleanup(apiSrv.Close)

	sched := &ui.ManualScheduler{}
	apiClient := client.New(apiSrv.URL+"/api", apiSrv.Client())
	sessions := page.NewSessions(time.Hour, func() *ui.App {
		return ui.NewApp(apiClient, ui.Options{
			RedirectDelay: 3 * time.Second,
			Scheduler:     sched,
		})
	})
	t.Cleanup(sessions.Close)

	webSrv := httptest.NewServer(NewRouter(sessions))
	t.Cleanup(webSrv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return webSrv, &http.Client{Jar: jar}, sched
}

func get(t *testing.T, c *http.Client, u string) (int, string) {
	t.Helper()

	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postForm(t *testing.T, c *http.Client, u string, form url.Values) (int, string) {
	t.Helper()

	resp, err := c.PostForm(u, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestWeb_RegisterThenDashboard(t *testing.T) {
	srv, browser, sched := newStack(t)

	status, body := get(t, browser, srv.URL+"/register")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Become a Part of Our Team")

	status, body = postForm(t, browser, srv.URL+"/register", url.Values{
		"name":   {"Ada Lovelace"},
		"email":  {"ada@example.com"},
		"role":   {"Volunteer"},
		"reason": {"I would like to help with the analytical engine."},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Application Sent!")
	assert.Contains(t, body, `content="3;url=/"`)

	sched.Advance(3 * time.Second)

	status, body = get(t, browser, srv.URL+"/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Applicant Dashboard")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Jane Doe")
}

func TestWeb_RegisterFieldErrors(t *testing.T) {
	srv, browser, sched := newStack(t)

	status, body := postForm(t, browser, srv.URL+"/register", url.Values{
		"name":   {"Ada"},
		"email":  {"ada"},
		"role":   {"Intern"},
		"reason": {"short"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Email is not valid.")
	assert.Contains(t, body, "Please elaborate a bit more (at least 20 characters).")
	assert.Contains(t, body, `value="Ada"`)
	assert.Zero(t, sched.Pending())
}

func TestWeb_UnknownPage(t *testing.T) {
	srv, browser, _ := newStack(t)

	status, _ := get(t, browser, srv.URL+"/settings")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWeb_SessionsAreIsolated(t *testing.T) {
	srv, first, _ := newStack(t)

	_, _ = get(t, first, srv.URL+"/admin")

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	second := &http.Client{Jar: jar}

	_, body := get(t, second, srv.URL+"/")
	assert.Contains(t, body, "Make an")

	_, body = get(t, first, srv.URL+"/")
	assert.Contains(t, body, "Applicant Dashboard")
}

func TestWeb_DashboardLoadFailureAndDismiss(t *testing.T) {
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer apiSrv.Close()

	sessions := page.NewSessions(0, func() *ui.App {
		return ui.NewApp(client.New(apiSrv.URL, nil), ui.Options{Scheduler: &ui.ManualScheduler{}})
	})
	srv := httptest.NewServer(NewRouter(sessions))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	browser := &http.Client{Jar: jar}

	_, body := get(t, browser, srv.URL+"/admin")
	assert.Contains(t, body, "Could not load applicant data.")
	assert.Contains(t, body, `role="alert"`)

	status, body := postForm(t, browser, srv.URL+"/alert/dismiss", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, `role="alert"`)
}

func TestWeb_SubmitAPIFailure(t *testing.T) {
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer apiSrv.Close()

	sessions := page.NewSessions(0, func() *ui.App {
		return ui.NewApp(client.New(apiSrv.URL, nil), ui.Options{Scheduler: &ui.ManualScheduler{}})
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.PostForm = url.Values{
		"name":   {"Ada Lovelace"},
		"email":  {"ada@example.com"},
		"role":   {"Intern"},
		"reason": {"I would like to help with the analytical engine."},
	}

	NewRouter(sessions).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ui.MsgSubmitFailed)
	assert.Contains(t, rec.Body.String(), `value="Ada Lovelace"`)
	assert.NotEmpty(t, rec.Result().Cookies())
}
