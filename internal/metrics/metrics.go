// package metrics exports the outcome of a reconciliation run as a Prometheus textfile.
//
// The process is short-lived, so nothing is scraped; a node_exporter textfile collector picks the file up instead.
package metrics

import (
	"fmt"
	"time"

	"github.com/desertthunder/stationer/internal/tasks"
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "stationer_"

// Recorder holds the gauges of one run in a private registry.
type Recorder struct {
	registry *prometheus.Registry

	commands  *prometheus.GaugeVec
	duration  prometheus.Gauge
	timestamp prometheus.Gauge
	success   prometheus.Gauge
	reference prometheus.Gauge
	local     prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "last_sync_commands",
				Help: "Store commands issued by the last sync, by phase",
			},
			[]string{"phase"},
		),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_sync_duration_seconds",
			Help: "Wall time of the last sync",
		}),
		timestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_sync_timestamp_seconds",
			Help: "Unix time the last sync finished",
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_sync_success",
			Help: "1 if the last sync completed, 0 if it stopped on an error",
		}),
		reference: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "reference_stations",
			Help: "In-band stations in the reference snapshot",
		}),
		local: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "local_stations",
			Help: "Stations held by the local store",
		}),
	}

	r.registry.MustRegister(r.commands, r.duration, r.timestamp, r.success, r.reference, r.local)
	return r
}

// ObserveSync records a finished sync. result may be nil when the run failed before planning.
func (r *Recorder) ObserveSync(result *tasks.SyncResult, elapsed time.Duration, err error, finished time.Time) {
	var updated, deleted, inserted int
	if result != nil {
		updated, deleted, inserted = result.Updated, result.Deleted, result.Inserted
	}
	r.commands.WithLabelValues(tasks.ApplyUpdate.String()).Set(float64(updated))
	r.commands.WithLabelValues(tasks.ApplyDelete.String()).Set(float64(deleted))
	r.commands.WithLabelValues(tasks.ApplyInsert.String()).Set(float64(inserted))

	r.duration.Set(elapsed.Seconds())
	r.timestamp.Set(float64(finished.Unix()))
	if err != nil {
		r.success.Set(0)
	} else {
		r.success.Set(1)
	}
}

// ObserveSnapshots records the sizes of the reference and local snapshots.
func (r *Recorder) ObserveSnapshots(reference, local int) {
	r.reference.Set(float64(reference))
	r.local.Set(float64(local))
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically replaces path with the current values in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
