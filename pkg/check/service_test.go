package check_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"check-elasticsearch-snapshots/pkg/check"
	"check-elasticsearch-snapshots/pkg/check/aggregates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	repositories []string
	listErr      error
	snapshots    map[string][]aggregates.Snapshot
	snapshotsErr map[string]error
	calls        []string
}

func (f *fakeGateway) ListRepositories(ctx context.Context) ([]string, error) {
	f.calls = append(f.calls, "_all")
	return f.repositories, f.listErr
}

func (f *fakeGateway) ListSnapshots(ctx context.Context, repository string) ([]aggregates.Snapshot, error) {
	f.calls = append(f.calls, repository)
	if err := f.snapshotsErr[repository]; err != nil {
		return nil, err
	}
	return f.snapshots[repository], nil
}

var testThresholds = aggregates.Thresholds{WarningMillis: 500, CriticalMillis: 2000}

func TestEvaluateRepository(t *testing.T) {
	gateway := &fakeGateway{
		snapshots: map[string][]aggregates.Snapshot{
			"daily": {
				{Name: "snap-1", State: "SUCCESS", EndTimeInMillis: 1000},
				{Name: "snap-2", State: "FAILED", EndTimeInMillis: 5000},
				{Name: "snap-3", State: "SUCCESS", EndTimeInMillis: 3000},
			},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	result, err := service.EvaluateRepository(context.Background(), "daily", 4000)
	require.NoError(t, err)
	// the failed snapshot at 5000 is excluded entirely: newest is 3000,
	// age 1000, within [500, 2000)
	assert.Equal(t, aggregates.SeverityWarning, result.Status)
	require.NotNil(t, result.Snapshot)
	assert.Equal(t, "snap-3", result.Snapshot.Name)
	assert.Equal(t, int64(3000), result.Snapshot.EndTimeInMillis)
}

func TestEvaluateRepositoryNoSuccessfulSnapshot(t *testing.T) {
	gateway := &fakeGateway{
		snapshots: map[string][]aggregates.Snapshot{
			"empty": {},
			"failing": {
				{Name: "snap-1", State: "FAILED", EndTimeInMillis: 1000},
				{Name: "snap-2", State: "IN_PROGRESS", EndTimeInMillis: 2000},
				{Name: "snap-3", State: "PARTIAL", EndTimeInMillis: 3000},
			},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	for _, repository := range []string{"empty", "failing"} {
		result, err := service.EvaluateRepository(context.Background(), repository, 4000)
		require.NoError(t, err)
		assert.Equal(t, aggregates.SeverityUnknown, result.Status)
		assert.Nil(t, result.Snapshot)
	}
}

func TestEvaluateRepositoryTieFirstWins(t *testing.T) {
	gateway := &fakeGateway{
		snapshots: map[string][]aggregates.Snapshot{
			"daily": {
				{Name: "first", State: "SUCCESS", EndTimeInMillis: 3000},
				{Name: "second", State: "SUCCESS", EndTimeInMillis: 3000},
			},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	result, err := service.EvaluateRepository(context.Background(), "daily", 3100)
	require.NoError(t, err)
	require.NotNil(t, result.Snapshot)
	assert.Equal(t, "first", result.Snapshot.Name)
}

func TestRunAllRepositories(t *testing.T) {
	now := int64(100000)
	gateway := &fakeGateway{
		repositories: []string{"a", "b"},
		snapshots: map[string][]aggregates.Snapshot{
			"a": {{Name: "fresh", State: "SUCCESS", EndTimeInMillis: now - 10}},
			"b": {{Name: "stale", State: "SUCCESS", EndTimeInMillis: now - 99999}},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	report, err := service.Run(context.Background(), "", now)
	require.NoError(t, err)
	// worst severity and globally newest snapshot are independent
	// reductions: b drives the status, a holds the newest snapshot
	assert.Equal(t, aggregates.SeverityCritical, report.Status)
	require.NotNil(t, report.Snapshot)
	assert.Equal(t, "a", report.Repository)
	assert.Equal(t, "fresh", report.Snapshot.Name)
	assert.Equal(t, int64(10), report.AgeMillis)
	assert.Equal(t, 2, report.Repositories)
	assert.Equal(t, []string{"_all", "a", "b"}, gateway.calls)
}

func TestRunUnknownDoesNotMaskCritical(t *testing.T) {
	now := int64(100000)
	gateway := &fakeGateway{
		repositories: []string{"a", "b"},
		snapshots: map[string][]aggregates.Snapshot{
			"a": {{Name: "stale", State: "SUCCESS", EndTimeInMillis: now - 5000}},
			"b": {{Name: "broken", State: "FAILED", EndTimeInMillis: now - 10}},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	report, err := service.Run(context.Background(), "", now)
	require.NoError(t, err)
	assert.Equal(t, aggregates.SeverityCritical, report.Status)
}

func TestRunOnlyUnknown(t *testing.T) {
	gateway := &fakeGateway{
		repositories: []string{"a"},
		snapshots: map[string][]aggregates.Snapshot{
			"a": {{Name: "broken", State: "FAILED", EndTimeInMillis: 1000}},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	report, err := service.Run(context.Background(), "", 2000)
	require.NoError(t, err)
	assert.Equal(t, aggregates.SeverityUnknown, report.Status)
	assert.Nil(t, report.Snapshot)
}

func TestRunSingleRepositorySkipsListing(t *testing.T) {
	now := int64(100000)
	gateway := &fakeGateway{
		listErr: errors.New("listing must not be called"),
		snapshots: map[string][]aggregates.Snapshot{
			"daily": {{Name: "snap", State: "SUCCESS", EndTimeInMillis: now - 100}},
		},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	report, err := service.Run(context.Background(), "daily", now)
	require.NoError(t, err)
	assert.Equal(t, aggregates.SeverityOK, report.Status)
	assert.Equal(t, []string{"daily"}, gateway.calls)
}

func TestRunEmptyCluster(t *testing.T) {
	gateway := &fakeGateway{repositories: []string{}}
	service := check.New(slog.Default(), gateway, testThresholds)

	report, err := service.Run(context.Background(), "", 1000)
	require.NoError(t, err)
	assert.Equal(t, aggregates.SeverityOK, report.Status)
	assert.Nil(t, report.Snapshot)
	assert.Equal(t, 0, report.Repositories)
}

func TestRunQueryErrorAborts(t *testing.T) {
	gateway := &fakeGateway{
		repositories: []string{"a", "b"},
		snapshots: map[string][]aggregates.Snapshot{
			"a": {{Name: "snap", State: "SUCCESS", EndTimeInMillis: 900}},
		},
		snapshotsErr: map[string]error{"b": errors.New("connection refused")},
	}
	service := check.New(slog.Default(), gateway, testThresholds)

	_, err := service.Run(context.Background(), "", 1000)
	require.Error(t, err)
	assert.ErrorContains(t, err, "repository b")
	assert.ErrorContains(t, err, "connection refused")
}
