package check

import (
	"fmt"

	"check-elasticsearch-snapshots/pkg/check/aggregates"
)

const millisPerDay = 86400000

// FormatReport renders the single summary line read by the monitoring
// supervisor. The perfdata suffix is emitted only when a snapshot was
// found; absent fields render as "-".
func FormatReport(report aggregates.Report) string {
	repository := "-"
	name := "-"
	completed := "-"
	if report.Snapshot != nil {
		repository = report.Repository
		name = report.Snapshot.Name
		completed = report.Snapshot.EndTime
	}
	line := fmt.Sprintf("%s - Most current Repository/Snapshot: %s/%s %s",
		report.Status, repository, name, completed)
	if report.Snapshot != nil {
		line += fmt.Sprintf(" | newest_age_seconds=%d,newest_age_days=%d",
			report.AgeMillis/1000, report.AgeMillis/millisPerDay)
	}
	return line
}
