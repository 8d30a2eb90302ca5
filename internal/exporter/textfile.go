package exporter

import (
	"fmt"

	"check-elasticsearch-snapshots/pkg/check/aggregates"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the check result as Prometheus gauges for a
// node_exporter textfile collector. The age gauge is emitted only when a
// snapshot was found.
func WriteTextfile(path string, report aggregates.Report) error {
	registry := prometheus.NewRegistry()
	status := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "elasticsearch_snapshot_check_status",
		Help: "Check status (0=OK, 1=WARNING, 2=CRITICAL, 3=UNKNOWN).",
	})
	repositories := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "elasticsearch_snapshot_repositories_evaluated",
		Help: "Number of snapshot repositories evaluated by the check.",
	})
	age := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "elasticsearch_snapshot_newest_age_seconds",
		Help: "Age of the most recent successful snapshot across evaluated repositories.",
	}, []string{"repository", "snapshot"})
	if err := registry.Register(status); err != nil {
		return err
	}
	if err := registry.Register(repositories); err != nil {
		return err
	}
	if err := registry.Register(age); err != nil {
		return err
	}
	status.Set(float64(report.Status.ExitCode()))
	repositories.Set(float64(report.Repositories))
	if report.Snapshot != nil {
		age.With(prometheus.Labels{
			"repository": report.Repository,
			"snapshot":   report.Snapshot.Name,
		}).Set(float64(report.AgeMillis) / 1000)
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("fail to write metrics textfile %s: %w", path, err)
	}
	return nil
}
