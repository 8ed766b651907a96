// Package metrics holds the Prometheus metrics of scheduling runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every shiftplan metric. It is separate from the default
// registry so textfile exports contain only scheduling data.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// RunsTotal tracks scheduling runs by outcome.
var RunsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shiftplan_runs_total",
		Help: "Total scheduling runs",
	},
	[]string{"outcome"},
)

// SlotsRequired tracks the positions required in the last run.
var SlotsRequired = factory.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "shiftplan_slots_required",
		Help: "Positions required in the last run",
	},
	[]string{"week", "shift"},
)

// SlotsFilled tracks the positions filled in the last run.
var SlotsFilled = factory.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "shiftplan_slots_filled",
		Help: "Positions filled in the last run",
	},
	[]string{"week", "shift"},
)

// TeamsDisbandedTotal tracks teams released as not viable.
var TeamsDisbandedTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shiftplan_teams_disbanded_total",
		Help: "Total teams disbanded during stabilization",
	},
	[]string{"shift"},
)

// SlotsBackfilledTotal tracks positions filled by the backfill pass.
var SlotsBackfilledTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shiftplan_slots_backfilled_total",
		Help: "Total positions filled by backfill",
	},
	[]string{"shift"},
)

// UnplacedWorkers tracks candidates left without a shift in the last run.
var UnplacedWorkers = factory.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "shiftplan_unplaced_workers",
		Help: "Candidates without a shift in the last run",
	},
	[]string{"week"},
)

// RunDuration tracks how long a scheduling run takes.
var RunDuration = factory.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "shiftplan_run_duration_seconds",
		Help:    "Duration of scheduling runs",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	},
)
