package aggregates

// Thresholds are the configured age boundaries, in milliseconds.
type Thresholds struct {
	WarningMillis  int64
	CriticalMillis int64
}

// RepositoryResult is the outcome of evaluating one repository.
// Snapshot is nil when the repository holds no successful snapshot.
type RepositoryResult struct {
	Repository string
	Status     Severity
	Snapshot   *Snapshot
}

// Report is the aggregate outcome of a full run. Snapshot is the globally
// most recent successful snapshot across every evaluated repository, nil
// when none was found.
type Report struct {
	Status       Severity
	Repository   string
	Snapshot     *Snapshot
	AgeMillis    int64
	Repositories int
}
