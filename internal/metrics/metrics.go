package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Identity
	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "User registrations by outcome",
		},
		[]string{"result"}, // ok|email_taken|username_taken|error
	)
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"}, // ok|unknown_email|bad_password|error
	)

	// ONGs
	ResourceOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_operations_total",
			Help: "Mutating ONG operations by outcome",
		},
		[]string{"op", "result"}, // create|update|delete
	)

	// Hash worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current password hashing queue depth",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RegistrationsTotal)
		prometheus.MustRegister(LoginsTotal)
		prometheus.MustRegister(ResourceOpsTotal)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}
