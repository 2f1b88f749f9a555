// Package page contains the HTTP handlers of the web client. Each
// handler looks up the browser's ui.App, applies one transition and
// renders the resulting view:
//
//	r.Get("/{page}", page.Navigate(sessions))
//
// Successful form posts answer 303 See Other so a reload never resubmits.
package page

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/ui"
)

// Current handles GET /: it shows whichever page the session is on.
// This is where the confirmation view's refresh lands once the redirect
// timer has moved the session to the dashboard.
func Current(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app := sessions.App(w, r)
		show(w, r, app)
	}
}

// Navigate handles GET /{page} for home, register and admin.
func Navigate(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ui.ParsePage(chi.URLParam(r, "page"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		app := sessions.App(w, r)
		app.Navigate(p)
		show(w, r, app)
	}
}

// Submit handles POST /register.
//
// A valid form that the API accepts redirects to / which shows the
// confirmation. A post that arrives while the confirmation is up (the
// browser's back button, a double click) is dropped with the same
// redirect. Field errors and API failures render the form again with
// what the user typed.
func Submit(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}

		app := sessions.App(w, r)
		f := ui.Form{
			Name:   r.PostFormValue("name"),
			Email:  r.PostFormValue("email"),
			Role:   types.Role(r.PostFormValue("role")),
			Reason: r.PostFormValue("reason"),
		}

		err := app.Submit(r.Context(), f)
		switch {
		case err == nil, errors.Is(err, ui.ErrSubmitInProgress), errors.Is(err, ui.ErrAlreadySubmitted):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			render(w, app.View())
		}
	}
}

// DismissAlert handles POST /alert/dismiss.
func DismissAlert(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.App(w, r).DismissAlert()
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func show(w http.ResponseWriter, r *http.Request, app *ui.App) {
	if app.Page() == ui.PageAdmin {
		// A failure is part of the view (LoadFailed plus an alert).
		_ = app.LoadDashboard(r.Context())
	}
	render(w, app.View())
}

func render(w http.ResponseWriter, v ui.View) {
	var buf bytes.Buffer
	if err := ui.Render(&buf, v); err != nil {
		slog.Error("failed to render page", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
