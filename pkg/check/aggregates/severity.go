package aggregates

// Severity is the plugin's output classification. Its numeric value is the
// process exit code expected by the monitoring supervisor.
type Severity int

const (
	SeverityOK       Severity = 0
	SeverityWarning  Severity = 1
	SeverityCritical Severity = 2
	SeverityUnknown  Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	case SeverityUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the supervisor exit code for this severity.
func (s Severity) ExitCode() int {
	return int(s)
}

// rank orders severities for aggregation. Exit codes put UNKNOWN above
// CRITICAL numerically, but when folding per-repository results a missing
// snapshot must never mask a WARNING or CRITICAL determination, so UNKNOWN
// escalates only over OK.
func (s Severity) rank() int {
	switch s {
	case SeverityUnknown:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// Worse returns the more urgent of the two severities.
func (s Severity) Worse(other Severity) Severity {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// ClassifyAge maps a snapshot age to a severity. Comparisons are
// inclusive: an age exactly equal to a threshold triggers that tier.
func ClassifyAge(ageMillis int64, thresholds Thresholds) Severity {
	if ageMillis >= thresholds.CriticalMillis {
		return SeverityCritical
	}
	if ageMillis >= thresholds.WarningMillis {
		return SeverityWarning
	}
	return SeverityOK
}
