// internal/analyzer/analyzer.go

// Package analyzer computes download statistics from already-fetched release
// metadata. It is pure: no I/O, no clock, just arithmetic over the records.
package analyzer

import (
	"sort"

	"github-release-stats/internal/model"
)

// Analyze folds a batch of releases into a ReleaseAnalysis. Asset details keep
// encounter order; sorting for display happens at render time. A release
// counts toward ReleasesWithDownloads only when its summed downloads are
// strictly positive. An empty batch yields an all-zero result.
func Analyze(releases []model.Release) model.ReleaseAnalysis {
	analysis := model.ReleaseAnalysis{
		TotalReleases: len(releases),
		AssetDetails:  []model.AssetDetail{},
	}

	for _, release := range releases {
		releaseDownloads := 0
		for _, asset := range release.Assets {
			releaseDownloads += asset.DownloadCount
			analysis.TotalDownloads += asset.DownloadCount
			analysis.AssetDetails = append(analysis.AssetDetails, model.AssetDetail{
				ReleaseName: release.DisplayName(),
				AssetName:   asset.Name,
				Downloads:   asset.DownloadCount,
				Size:        asset.Size,
				ContentType: asset.ContentType,
			})
		}
		analysis.TotalAssets += len(release.Assets)
		if releaseDownloads > 0 {
			analysis.ReleasesWithDownloads++
		}
	}

	return analysis
}

// SortReports orders repository reports by total downloads, highest first.
// The sort is stable: repositories with equal totals keep their scan order.
func SortReports(reports []model.RepoReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Analysis.TotalDownloads > reports[j].Analysis.TotalDownloads
	})
}

// SortAssetsByDownloads returns a copy of the details ordered by download
// count, highest first. The input keeps its encounter order.
func SortAssetsByDownloads(details []model.AssetDetail) []model.AssetDetail {
	sorted := make([]model.AssetDetail, len(details))
	copy(sorted, details)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Downloads > sorted[j].Downloads
	})
	return sorted
}
