package check

import (
	"context"
	"fmt"
	"log/slog"

	"check-elasticsearch-snapshots/pkg/check/aggregates"
)

// Gateway queries the cluster snapshot API. Exactly one HTTP call per
// method invocation, no retries.
type Gateway interface {
	ListRepositories(ctx context.Context) ([]string, error)
	ListSnapshots(ctx context.Context, repository string) ([]aggregates.Snapshot, error)
}

type Service struct {
	logger     *slog.Logger
	gateway    Gateway
	thresholds aggregates.Thresholds
}

func New(logger *slog.Logger, gateway Gateway, thresholds aggregates.Thresholds) *Service {
	return &Service{
		logger:     logger,
		gateway:    gateway,
		thresholds: thresholds,
	}
}

// EvaluateRepository fetches one repository's snapshots and classifies the
// age of its most recent successful one. Repositories without any
// successful snapshot yield UNKNOWN and no snapshot.
func (s *Service) EvaluateRepository(ctx context.Context, repository string, nowMillis int64) (aggregates.RepositoryResult, error) {
	result := aggregates.RepositoryResult{
		Repository: repository,
		Status:     aggregates.SeverityUnknown,
	}
	snapshots, err := s.gateway.ListSnapshots(ctx, repository)
	if err != nil {
		return result, fmt.Errorf("fail to list snapshots for repository %s: %w", repository, err)
	}
	var newest *aggregates.Snapshot
	var newestEnd int64
	for i := range snapshots {
		snapshot := snapshots[i]
		if snapshot.State != aggregates.SnapshotStateSuccess {
			continue
		}
		// strict comparison: the first snapshot seen wins a tie
		if snapshot.EndTimeInMillis > newestEnd {
			newestEnd = snapshot.EndTimeInMillis
			newest = &snapshots[i]
		}
	}
	if newest == nil {
		s.logger.Info(fmt.Sprintf("no successful snapshot found in repository %s", repository))
		return result, nil
	}
	result.Status = aggregates.ClassifyAge(nowMillis-newest.EndTimeInMillis, s.thresholds)
	result.Snapshot = newest
	return result, nil
}

// Run evaluates the given repository, or every repository reported by the
// cluster when repository is empty, and folds the per-repository results
// into a single report: the worst severity seen, and the globally most
// recent successful snapshot.
func (s *Service) Run(ctx context.Context, repository string, nowMillis int64) (aggregates.Report, error) {
	report := aggregates.Report{Status: aggregates.SeverityOK}
	repositories := []string{repository}
	if repository == "" {
		var err error
		repositories, err = s.gateway.ListRepositories(ctx)
		if err != nil {
			return report, fmt.Errorf("fail to list snapshot repositories: %w", err)
		}
	}
	report.Repositories = len(repositories)
	var newestEnd int64
	for _, repo := range repositories {
		result, err := s.EvaluateRepository(ctx, repo, nowMillis)
		if err != nil {
			return report, err
		}
		report.Status = report.Status.Worse(result.Status)
		if result.Snapshot != nil && result.Snapshot.EndTimeInMillis > newestEnd {
			newestEnd = result.Snapshot.EndTimeInMillis
			report.Repository = result.Repository
			report.Snapshot = result.Snapshot
			report.AgeMillis = nowMillis - result.Snapshot.EndTimeInMillis
		}
	}
	return report, nil
}
