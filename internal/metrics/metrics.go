// Package metrics provides Prometheus observability metrics for the desk
// simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// RunsStarted counts simulation runs accepted for execution.
var RunsStarted = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "desksim",
	Name:      "runs_started_total",
	Help:      "Number of simulation runs started",
})

// RunsCompleted counts runs that reached a terminal summary.
var RunsCompleted = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "desksim",
	Name:      "runs_completed_total",
	Help:      "Number of simulation runs completed successfully",
})

// RunsFailed counts runs that aborted before producing a summary.
var RunsFailed = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "desksim",
	Name:      "runs_failed_total",
	Help:      "Number of simulation runs that failed",
})

// TicketsResolved counts tickets resolved across all runs.
var TicketsResolved = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "desksim",
	Name:      "tickets_resolved_total",
	Help:      "Tickets resolved across all simulation runs",
})

// TicketsUnresolved counts tickets left queued or in service at the horizon.
// High values indicate the roster cannot absorb the arrival plan.
var TicketsUnresolved = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "desksim",
	Name:      "tickets_unresolved_total",
	Help:      "Tickets left unresolved at the run horizon across all runs",
})

// LastRunExpenses exposes the final expenses of the most recent run.
var LastRunExpenses = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "desksim",
	Name:      "last_run_expenses",
	Help:      "Total expenses of the most recently completed run",
})

// LastRunWorkingHours exposes the final working hours of the most recent run.
var LastRunWorkingHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "desksim",
	Name:      "last_run_working_hours",
	Help:      "Total working hours of the most recently completed run",
})

// RunDuration observes wall-clock execution time per run.
var RunDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "desksim",
	Name:      "run_duration_seconds",
	Help:      "Wall-clock time spent executing a simulation run",
	Buckets:   prometheus.DefBuckets,
})
