// Package metrics declares the Prometheus collectors shared by both
// services. Collectors register on the default registry at init, so
// promhttp.Handler() exposes them without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicantsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgconnect",
			Name:      "applicants_created_total",
			Help:      "Total number of applicants stored, by role",
		},
		[]string{"role"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orgconnect",
			Name:      "applicant_validation_failures_total",
			Help:      "Total number of rejected create requests, by reason",
		},
		[]string{"reason"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orgconnect",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "route", "status"},
	)
)
