// Package metrics defines the Prometheus metrics exported by the portal on
// /metrics. Counters are registered with the default registry on import.
package metrics

import (
	"database/sql"
	"time"

	"github.com/consultoria/portal/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// Login results.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginError   = "error"
)

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern, "unmatched" for 404s
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" (bad credentials) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ClientsCreatedTotal counts client accounts, by how they were created.
// Label:
//   - source: "register" or "admin"
var ClientsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of client accounts created.",
	},
	[]string{"source"},
)

// ProjectsCreatedTotal counts projects, by initial status.
// Label:
//   - status: one of models.ProjectStatuses, or "other"
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by initial status.",
	},
	[]string{"status"},
)

// ProjectStatusLabel folds free-text statuses into a bounded label set.
func ProjectStatusLabel(status string) string {
	for _, known := range models.ProjectStatuses {
		if status == known {
			return status
		}
	}
	return "other"
}

var startTime = time.Now()

var uptime = promauto.NewGaugeFunc(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "uptime_seconds",
		Help:      "Time since server start in seconds.",
	},
	func() float64 { return time.Since(startTime).Seconds() },
)

// RegisterDBStats exports connection pool gauges for db on reg.
func RegisterDBStats(reg prometheus.Registerer, db *sql.DB) error {
	gauges := []struct {
		name, help string
		value      func(sql.DBStats) float64
	}{
		{"db_open_connections", "Number of open DB connections.", func(s sql.DBStats) float64 { return float64(s.OpenConnections) }},
		{"db_in_use_connections", "Number of in-use DB connections.", func(s sql.DBStats) float64 { return float64(s.InUse) }},
		{"db_idle_connections", "Number of idle DB connections.", func(s sql.DBStats) float64 { return float64(s.Idle) }},
	}

	for _, g := range gauges {
		value := g.value
		collector := prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Namespace: namespace, Name: g.name, Help: g.help},
			func() float64 { return value(db.Stats()) },
		)
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
