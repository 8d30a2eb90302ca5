package aggregates

// SnapshotStateSuccess is the only state eligible for age evaluation.
const SnapshotStateSuccess = "SUCCESS"

// Snapshot is one entry of a repository's snapshot listing, as returned by
// GET /_snapshot/{repository}/_all.
type Snapshot struct {
	Name            string `json:"snapshot"`
	State           string `json:"state"`
	EndTimeInMillis int64  `json:"end_time_in_millis"`
	EndTime         string `json:"end_time"`
}

// SnapshotList is the body of the per-repository listing endpoint.
type SnapshotList struct {
	Snapshots []Snapshot `json:"snapshots"`
}
