// Package metrics holds the Prometheus collectors for the community server.
// All collectors register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// HTTPRequestsTotal counts served requests by route pattern, method and status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration measures handler latency by route pattern.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// SessionValidationsTotal counts validator outcomes.
// Label:
//   - result: "valid", "invalid" or "error"
var SessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_validations_total",
		Help:      "Total number of session validations, by result.",
	},
	[]string{"result"},
)

var SessionRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of session refresh attempts, by result.",
	},
	[]string{"result"},
)

// PostsAutoHiddenTotal counts posts hidden by the report threshold.
var PostsAutoHiddenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_auto_hidden_total",
		Help:      "Total number of posts hidden after reaching the report threshold.",
	},
)

// CommentsAutoFlaggedTotal counts comments reported by the blocked word check.
var CommentsAutoFlaggedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_auto_flagged_total",
		Help:      "Total number of comments flagged for blocked words.",
	},
)

// AccountsDeletedTotal counts purged accounts.
// Label:
//   - mode: "scheduled", "immediate" or "direct"
var AccountsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of purged accounts, by deletion mode.",
	},
	[]string{"mode"},
)

var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// SSEClients tracks connected event stream clients.
var SSEClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sse_clients",
		Help:      "Current number of connected event stream clients.",
	},
)

// BackgroundJobRuns counts job executions by job name and result.
var BackgroundJobRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "background_job_runs_total",
		Help:      "Total number of background job runs, by job and result.",
	},
	[]string{"job", "result"},
)
