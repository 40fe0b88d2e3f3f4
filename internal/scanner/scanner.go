// internal/scanner/scanner.go
package scanner

import (
	"context"
	"log/slog"
	"strings"

	"github-release-stats/internal/analyzer"
	custom_errors "github-release-stats/internal/errors"
	"github-release-stats/internal/model"
)

// ReleaseSource lists repositories and releases for an owner. Implemented by
// the GitHub client; tests substitute a mock. Both methods embed the
// keep-partial-results contract: fetch failures are reported on the source's
// own logger and whatever was accumulated before the failure is returned.
type ReleaseSource interface {
	ListRepositories(ctx context.Context, owner string) []model.Repository
	ListReleases(ctx context.Context, owner, repo string) []model.Release
}

// Result is the outcome of one full scan. Reports are in scan order; callers
// sort them for display with analyzer.SortReports.
type Result struct {
	ReposFound int                `json:"repos_found"`
	Stats      model.OverallStats `json:"overall_stats"`
	Reports    []model.RepoReport `json:"repositories"`
}

// Scanner orchestrates the per-repository fetch and aggregation cycle.
type Scanner struct {
	source ReleaseSource
	logger *slog.Logger
}

// NewScanner creates a new Scanner instance.
func NewScanner(source ReleaseSource, logger *slog.Logger) *Scanner {
	return &Scanner{
		source: source,
		logger: logger,
	}
}

// Scan enumerates the owner's repositories and, strictly sequentially,
// fetches and aggregates the releases of each. Repositories without releases
// are skipped entirely: they appear neither in the reports nor in the
// ReposWithReleases counter. The running totals are owned by this loop alone.
func (s *Scanner) Scan(ctx context.Context, owner string) (*Result, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	repos := s.source.ListRepositories(ctx, owner)
	s.logger.Info("Fetched repository list", "owner", owner, "count", len(repos))

	result := &Result{ReposFound: len(repos)}

	for _, repo := range repos {
		// An interrupt aborts the whole run between repositories.
		if err := ctx.Err(); err != nil {
			return result, err
		}

		logger := s.logger.With("owner", owner, "repo", repo.Name)
		logger.Debug("Analyzing repository")

		releases := s.source.ListReleases(ctx, owner, repo.Name)
		if len(releases) == 0 {
			logger.Debug("No releases found, skipping")
			continue
		}

		analysis := analyzer.Analyze(releases)
		result.Stats.TotalDownloads += analysis.TotalDownloads
		result.Stats.TotalAssets += analysis.TotalAssets
		result.Stats.ReleasesWithDownloads += analysis.ReleasesWithDownloads
		result.Stats.TotalReleases += analysis.TotalReleases
		result.Stats.ReposWithReleases++
		result.Reports = append(result.Reports, model.RepoReport{Name: repo.Name, Analysis: analysis})

		logger.Info("Analyzed repository",
			"releases", analysis.TotalReleases,
			"assets", analysis.TotalAssets,
			"downloads", analysis.TotalDownloads)
	}

	return result, nil
}

func validateOwner(owner string) error {
	if owner == "" || strings.Contains(owner, "/") {
		return &custom_errors.ErrInvalidOwner{Owner: owner}
	}
	return nil
}
