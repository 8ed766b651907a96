package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/shiftplan/internal/ports/secondary"
)

// Collector records run statistics and optionally exports them to a
// node_exporter textfile.
type Collector struct {
	textfile string
}

var _ secondary.MetricsRecorder = (*Collector)(nil)

// NewCollector creates a Collector. An empty textfile path disables export.
func NewCollector(textfile string) *Collector {
	return &Collector{textfile: textfile}
}

// ObserveRun records one run.
func (c *Collector) ObserveRun(stats secondary.RunStats) {
	RunsTotal.WithLabelValues(stats.Outcome).Inc()
	RunDuration.Observe(stats.Duration.Seconds())
	if stats.Outcome != "ok" {
		return
	}

	week := strconv.Itoa(stats.Week)
	UnplacedWorkers.WithLabelValues(week).Set(float64(stats.Unplaced))
	for _, s := range stats.Shifts {
		SlotsRequired.WithLabelValues(week, s.Shift).Set(float64(s.Required))
		SlotsFilled.WithLabelValues(week, s.Shift).Set(float64(s.Filled))
		TeamsDisbandedTotal.WithLabelValues(s.Shift).Add(float64(s.Disbanded))
		SlotsBackfilledTotal.WithLabelValues(s.Shift).Add(float64(s.Backfilled))
	}
}

// Flush writes the registry to the textfile, if one is configured.
func (c *Collector) Flush() error {
	if c.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.textfile, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
