// Package web assembles the web client's router.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/orgconnect/internal/http/handlers/page"
	"github.com/aanand-mishra/orgconnect/internal/http/middleware"
)

// NewRouter returns the browser-facing routes:
//
//	GET  /               the session's current page
//	GET  /{page}         switch to home, register or admin
//	POST /register       submit the registration form
//	POST /alert/dismiss  clear the alert banner
func NewRouter(sessions *page.Sessions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observe("web"))
	r.Use(chimw.Recoverer)

	r.Get("/", page.Current(sessions))
	r.Get("/{page}", page.Navigate(sessions))
	r.Post("/register", page.Submit(sessions))
	r.Post("/alert/dismiss", page.DismissAlert(sessions))

	return r
}
