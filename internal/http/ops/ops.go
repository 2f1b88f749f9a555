// Package ops serves the operational endpoints of both binaries. They
// run on their own listener so they never mix with the public routes.
package ops

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter returns:
//
//	GET /metrics  Prometheus exposition of the default registry
//	GET /healthz  plain "OK"
func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
