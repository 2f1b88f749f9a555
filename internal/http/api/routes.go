// Package api assembles the API service's routers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aanand-mishra/orgconnect/internal/config"
	"github.com/aanand-mishra/orgconnect/internal/http/handlers/applicant"
	"github.com/aanand-mishra/orgconnect/internal/http/middleware"
	"github.com/aanand-mishra/orgconnect/internal/storage"
)

const (
	apiBasePath        = "/api"
	applicantsBasePath = "/applicants"
)

// NewRouter returns the public API:
//
//	GET  /api/applicants → list all applicants
//	POST /api/applicants → create an applicant
//
// Recoverer turns a panic in one request into a 500 instead of taking
// the process down.
func NewRouter(store storage.Storage, corsCfg config.CORS) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observe("api"))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route(apiBasePath, func(r chi.Router) {
		r.Get(applicantsBasePath, applicant.GetList(store))
		r.Post(applicantsBasePath, applicant.New(store))
	})

	return r
}
