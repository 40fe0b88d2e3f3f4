// internal/scanner/scanner_test.go
package scanner

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "github-release-stats/internal/errors"
	"github-release-stats/internal/model"
)

// MockSource is a mock of the ReleaseSource interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListRepositories(ctx context.Context, owner string) []model.Repository {
	args := m.Called(ctx, owner)
	return args.Get(0).([]model.Repository)
}

func (m *MockSource) ListReleases(ctx context.Context, owner, repo string) []model.Release {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).([]model.Release)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScanner_Scan(t *testing.T) {
	ctx := context.Background()

	releasesWith := func(downloads ...int) []model.Release {
		assets := make([]model.Asset, len(downloads))
		for i, d := range downloads {
			assets[i] = model.Asset{Name: "asset", DownloadCount: d}
		}
		return []model.Release{{Name: "v1", Assets: assets}}
	}

	t.Run("folds per-repository analyses into overall stats", func(t *testing.T) {
		mockSrc := new(MockSource)
		mockSrc.On("ListRepositories", ctx, "testowner").Return([]model.Repository{{Name: "alpha"}, {Name: "beta"}}).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "alpha").Return(releasesWith(10, 5)).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "beta").Return(releasesWith(20)).Once()

		s := NewScanner(mockSrc, testLogger())
		result, err := s.Scan(ctx, "testowner")

		require.NoError(t, err)
		assert.Equal(t, 2, result.ReposFound)
		assert.Equal(t, 35, result.Stats.TotalDownloads)
		assert.Equal(t, 3, result.Stats.TotalAssets)
		assert.Equal(t, 2, result.Stats.TotalReleases)
		assert.Equal(t, 2, result.Stats.ReleasesWithDownloads)
		assert.Equal(t, 2, result.Stats.ReposWithReleases)
		require.Len(t, result.Reports, 2)
		// Reports come back in scan order; sorting is the caller's concern.
		assert.Equal(t, "alpha", result.Reports[0].Name)
		assert.Equal(t, "beta", result.Reports[1].Name)
		mockSrc.AssertExpectations(t)
	})

	t.Run("overall total equals the sum of per-repo totals", func(t *testing.T) {
		mockSrc := new(MockSource)
		mockSrc.On("ListRepositories", ctx, "testowner").Return([]model.Repository{{Name: "a"}, {Name: "b"}, {Name: "c"}}).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "a").Return(releasesWith(1, 2, 3)).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "b").Return(releasesWith(0)).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "c").Return(releasesWith(100)).Once()

		s := NewScanner(mockSrc, testLogger())
		result, err := s.Scan(ctx, "testowner")

		require.NoError(t, err)
		sum := 0
		for _, report := range result.Reports {
			sum += report.Analysis.TotalDownloads
		}
		assert.Equal(t, sum, result.Stats.TotalDownloads)
	})

	t.Run("skips repositories without releases entirely", func(t *testing.T) {
		mockSrc := new(MockSource)
		mockSrc.On("ListRepositories", ctx, "testowner").Return([]model.Repository{{Name: "empty"}, {Name: "full"}}).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "empty").Return([]model.Release{}).Once()
		mockSrc.On("ListReleases", ctx, "testowner", "full").Return(releasesWith(7)).Once()

		s := NewScanner(mockSrc, testLogger())
		result, err := s.Scan(ctx, "testowner")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Stats.ReposWithReleases)
		require.Len(t, result.Reports, 1)
		assert.Equal(t, "full", result.Reports[0].Name)
		mockSrc.AssertExpectations(t)
	})

	t.Run("returns an empty result when the owner has no repositories", func(t *testing.T) {
		mockSrc := new(MockSource)
		mockSrc.On("ListRepositories", ctx, "testowner").Return([]model.Repository{}).Once()

		s := NewScanner(mockSrc, testLogger())
		result, err := s.Scan(ctx, "testowner")

		require.NoError(t, err)
		assert.Zero(t, result.ReposFound)
		assert.Empty(t, result.Reports)
		assert.Zero(t, result.Stats)
		mockSrc.AssertNotCalled(t, "ListReleases")
	})

	t.Run("rejects an invalid owner before any network activity", func(t *testing.T) {
		for _, owner := range []string{"", "owner/repo"} {
			mockSrc := new(MockSource)
			s := NewScanner(mockSrc, testLogger())

			_, err := s.Scan(ctx, owner)

			var invalidOwner *custom_errors.ErrInvalidOwner
			require.ErrorAs(t, err, &invalidOwner)
			assert.Equal(t, owner, invalidOwner.Owner)
			mockSrc.AssertNotCalled(t, "ListRepositories")
		}
	})

	t.Run("a canceled context stops the scan between repositories", func(t *testing.T) {
		canceledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		mockSrc := new(MockSource)
		mockSrc.On("ListRepositories", canceledCtx, "testowner").Return([]model.Repository{{Name: "a"}, {Name: "b"}}).Once()

		s := NewScanner(mockSrc, testLogger())
		result, err := s.Scan(canceledCtx, "testowner")

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, result.ReposFound)
		mockSrc.AssertNotCalled(t, "ListReleases")
	})
}
