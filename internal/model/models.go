// internal/model/models.go
package model

// Unknown is the display fallback for fields the API did not populate.
const Unknown = "Unknown"

// Repository represents the metadata of a GitHub repository. Only the name is
// needed to drive the per-repository release scan.
type Repository struct {
	Name string `json:"name"`
}

// Release is one published release of a repository.
type Release struct {
	Name    string  `json:"name"`
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name          string `json:"name"`
	DownloadCount int    `json:"download_count"`
	Size          int64  `json:"size"`
	ContentType   string `json:"content_type"`
}

// AssetDetail is one row of the per-asset breakdown, stamped with the resolved
// display name of the release it belongs to.
type AssetDetail struct {
	ReleaseName string `json:"release_name"`
	AssetName   string `json:"asset_name"`
	Downloads   int    `json:"downloads"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// ReleaseAnalysis holds the aggregated download statistics for one repository.
// AssetDetails always has exactly TotalAssets entries, in encounter order.
type ReleaseAnalysis struct {
	TotalDownloads        int           `json:"total_downloads"`
	TotalAssets           int           `json:"total_assets"`
	ReleasesWithDownloads int           `json:"releases_with_downloads"`
	TotalReleases         int           `json:"total_releases"`
	AssetDetails          []AssetDetail `json:"asset_details"`
}

// OverallStats accumulates analysis counters across every scanned repository.
type OverallStats struct {
	TotalDownloads        int `json:"total_downloads"`
	TotalAssets           int `json:"total_assets"`
	ReleasesWithDownloads int `json:"releases_with_downloads"`
	TotalReleases         int `json:"total_releases"`
	ReposWithReleases     int `json:"repos_with_releases"`
}

// RepoReport pairs a repository name with its analysis.
type RepoReport struct {
	Name     string          `json:"name"`
	Analysis ReleaseAnalysis `json:"analysis"`
}

// FirstNonEmpty resolves a value from an ordered chain of optional sources:
// the first non-empty candidate wins, otherwise Unknown.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return Unknown
}

// DisplayName resolves the release's display name: name, then tag, then
// Unknown.
func (r Release) DisplayName() string {
	return FirstNonEmpty(r.Name, r.TagName)
}
