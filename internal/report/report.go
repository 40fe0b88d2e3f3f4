// internal/report/report.go

// Package report renders aggregated release statistics to a terminal. It
// receives already-analyzed structures and only formats them; all counting
// happens in the analyzer.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github-release-stats/internal/analyzer"
	"github-release-stats/internal/model"
)

var (
	headerColor  = color.New(color.FgGreen, color.Bold)
	repoColor    = color.New(color.FgBlue, color.Bold)
	statsColor   = color.New(color.FgCyan)
	totalColor   = color.New(color.FgMagenta, color.Bold)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Renderer writes the console report. The writer is injected so tests can
// capture output and so serve mode never touches it.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// RenderHeader prints the scan banner before any network activity starts.
func (r *Renderer) RenderHeader(owner string) {
	headerColor.Fprintf(r.w, "Analyzing GitHub releases for user: %s\n\n", owner)
}

// RenderNoRepos reports that the repository listing came back empty, which
// covers both an unknown user and a fetch failure on the first page.
func (r *Renderer) RenderNoRepos() {
	errorColor.Fprintln(r.w, "Failed to fetch repositories or user not found")
}

// RenderResults prints the overall statistics followed by the per-repository
// breakdown. Reports are expected to be pre-sorted by total downloads.
func (r *Renderer) RenderResults(stats model.OverallStats, reports []model.RepoReport, reposFound int) {
	fmt.Fprintf(r.w, "Found %d repositories\n\n", reposFound)

	fmt.Fprintln(r.w, strings.Repeat("=", 60))
	headerColor.Fprintln(r.w, "ANALYSIS RESULTS")
	fmt.Fprintln(r.w, strings.Repeat("=", 60))

	statsColor.Fprintf(r.w, "Repositories with releases: %d\n", stats.ReposWithReleases)
	statsColor.Fprintf(r.w, "Total releases:             %d\n", stats.TotalReleases)
	statsColor.Fprintf(r.w, "Releases with downloads:    %d\n", stats.ReleasesWithDownloads)
	statsColor.Fprintf(r.w, "Total files:                %d\n", stats.TotalAssets)
	totalColor.Fprintf(r.w, "Total downloads:            %s\n\n", humanize.Comma(int64(stats.TotalDownloads)))

	for _, report := range reports {
		r.renderRepo(report)
	}

	if stats.TotalDownloads == 0 {
		warningColor.Fprintln(r.w, "No downloads found in any release")
	}
}

// renderRepo prints the stat block and the asset table for one repository.
// The asset table is sorted by downloads at display time only.
func (r *Renderer) renderRepo(report model.RepoReport) {
	analysis := report.Analysis
	if analysis.TotalReleases == 0 {
		return
	}

	repoColor.Fprintln(r.w, report.Name)
	fmt.Fprintf(r.w, "  Total releases:          %d\n", analysis.TotalReleases)
	fmt.Fprintf(r.w, "  Releases with downloads: %d\n", analysis.ReleasesWithDownloads)
	fmt.Fprintf(r.w, "  Total files:             %d\n", analysis.TotalAssets)
	fmt.Fprintf(r.w, "  Total downloads:         %s\n", humanize.Comma(int64(analysis.TotalDownloads)))

	if len(analysis.AssetDetails) > 0 {
		tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  RELEASE\tFILE\tDOWNLOADS\tSIZE\tTYPE")
		for _, asset := range analyzer.SortAssetsByDownloads(analysis.AssetDetails) {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				asset.ReleaseName,
				asset.AssetName,
				humanize.Comma(int64(asset.Downloads)),
				formatSize(asset.Size),
				asset.ContentType,
			)
		}
		tw.Flush()
	}
	fmt.Fprintln(r.w)
}

func formatSize(size int64) string {
	if size <= 0 {
		return "N/A"
	}
	return humanize.Bytes(uint64(size))
}
