// Package metrics exposes Prometheus counters for the requisition lifecycle.
// The /metrics endpoint is wired in the router via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequisitionsCreated counts created requisitions, labelled draft/submitted.
	RequisitionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procurement_requisitions_created_total",
		Help: "Requisitions created, by initial status.",
	}, []string{"status"})

	// StatusTransitions counts successful lifecycle transitions.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procurement_status_transitions_total",
		Help: "Successful requisition status transitions.",
	}, []string{"from", "to"})

	// VersionConflicts counts optimistic-lock rejections.
	VersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "procurement_version_conflicts_total",
		Help: "Mutations rejected by the optimistic-concurrency guard.",
	})

	// NotificationFailures counts delivery attempts that failed (after commit,
	// never surfaced to callers).
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procurement_notification_failures_total",
		Help: "Notification delivery failures, by channel.",
	}, []string{"channel"})
)
