// Package middleware holds the HTTP middleware shared by the API service
// and the web client: structured request logging and request metrics.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/orgconnect/internal/metrics"
)

// Observe logs every request through slog and records its duration in
// metrics.RequestDuration under the given service label.
//
// The route label is chi's matched pattern (e.g. "/api/applicants"), not
// the raw path, so label cardinality stays bounded. Unmatched requests
// are labelled "unmatched".
func Observe(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			metrics.RequestDuration.
				WithLabelValues(service, r.Method, route, strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			slog.Info("request handled",
				slog.String("service", service),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", elapsed),
				slog.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}
