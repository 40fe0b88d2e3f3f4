// internal/github/client.go
package github

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github-release-stats/internal/model"
)

// Client is a wrapper around the go-github client that drains the paginated
// list endpoints this tool depends on.
type Client struct {
	gh       *github.Client
	logger   *slog.Logger
	pageSize int
}

// NewClient creates and configures a new Client instance. An empty token
// yields an unauthenticated client, which is subject to the lower API rate
// limit but otherwise behaves the same. A zero timeout disables the request
// deadline entirely.
func NewClient(token string, pageSize int, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = timeout

	return &Client{
		gh:       github.NewClient(httpClient),
		logger:   logger,
		pageSize: pageSize,
	}
}

// WithBaseURL points the client at a non-github.com API root, such as a
// GitHub Enterprise instance or a test server.
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	gh, err := c.gh.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, err
	}
	c.gh = gh
	return c, nil
}

// ListRepositories returns every repository owned by the given user, in API
// order. These list endpoints expose no total count, so the loop requests
// successive pages until one comes back empty; a page shorter than the page
// size does not end the loop. On a failing page the repositories fetched so
// far are returned and the error is logged rather than propagated, so a
// partial listing still produces a report.
func (c *Client) ListRepositories(ctx context.Context, owner string) []model.Repository {
	var allRepos []model.Repository

	opts := &github.RepositoryListByUserOptions{
		Type: "owner",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: c.pageSize,
		},
	}

	for {
		c.logger.Debug("Fetching repositories page", "owner", owner, "page", opts.Page)

		repos, _, err := c.gh.Repositories.ListByUser(ctx, owner, opts)
		if err != nil {
			c.logger.Error("Failed to fetch repositories page", "owner", owner, "page", opts.Page, "error", err)
			return allRepos
		}
		if len(repos) == 0 {
			return allRepos
		}

		for _, repo := range repos {
			allRepos = append(allRepos, toInternalRepository(repo))
		}
		opts.Page++
	}
}

// ListReleases returns every release of the given repository, paginated the
// same way as ListRepositories: drain pages until an empty one, keep partial
// results when a page fails.
func (c *Client) ListReleases(ctx context.Context, owner, repo string) []model.Release {
	var allReleases []model.Release

	opts := &github.ListOptions{
		Page:    1,
		PerPage: c.pageSize,
	}

	for {
		c.logger.Debug("Fetching releases page", "owner", owner, "repo", repo, "page", opts.Page)

		releases, _, err := c.gh.Repositories.ListReleases(ctx, owner, repo, opts)
		if err != nil {
			c.logger.Error("Failed to fetch releases page", "owner", owner, "repo", repo, "page", opts.Page, "error", err)
			return allReleases
		}
		if len(releases) == 0 {
			return allReleases
		}

		for _, release := range releases {
			allReleases = append(allReleases, toInternalRelease(release))
		}
		opts.Page++
	}
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	return model.Repository{
		Name: r.GetName(),
	}
}

// toInternalRelease translates a github.RepositoryRelease object to our internal model.Release.
func toInternalRelease(r *github.RepositoryRelease) model.Release {
	release := model.Release{
		Name:    r.GetName(),
		TagName: r.GetTagName(),
	}
	for _, asset := range r.Assets {
		release.Assets = append(release.Assets, toInternalAsset(asset))
	}
	return release
}

// toInternalAsset translates a github.ReleaseAsset, applying the leniency
// defaults: fields the API left out become 0 or Unknown rather than errors.
func toInternalAsset(a *github.ReleaseAsset) model.Asset {
	return model.Asset{
		Name:          model.FirstNonEmpty(a.GetName()),
		DownloadCount: a.GetDownloadCount(),
		Size:          int64(a.GetSize()),
		ContentType:   model.FirstNonEmpty(a.GetContentType()),
	}
}
