// cmd/ghstats/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github-release-stats/internal/analyzer"
	"github-release-stats/internal/api"
	"github-release-stats/internal/config"
	"github-release-stats/internal/github"
	"github-release-stats/internal/report"
	"github-release-stats/internal/scanner"
)

const exitCodeInterrupt = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Initialize structured logger. Logs go to stderr so stdout stays a
	// clean report stream.
	logLevel := new(slog.LevelVar)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Setup context so an interrupt aborts the run between requests.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 3. Run the CLI; all recoverable errors are handled below this boundary.
	root := newRootCmd(logger, logLevel)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nScan interrupted by user")
			return exitCodeInterrupt
		}
		logger.Error("ghstats failed", "error", err)
		return 1
	}
	return 0
}

func newRootCmd(logger *slog.Logger, logLevel *slog.LevelVar) *cobra.Command {
	var levelOverride string

	root := &cobra.Command{
		Use:     "ghstats <owner>",
		Short:   "Aggregate release download statistics across a GitHub user's repositories",
		Example: "  ghstats octocat",
		Args:    cobra.ExactArgs(1),
		// Errors are logged once at the top-level boundary.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runScan(cmd.Context(), logger, logLevel, levelOverride, args[0])
		},
	}
	root.PersistentFlags().StringVar(&levelOverride, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	root.AddCommand(newServeCmd(logLevel, &levelOverride))
	return root
}

func newServeCmd(logLevel *slog.LevelVar, levelOverride *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve scan results over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runServe(cmd.Context(), logLevel, *levelOverride)
		},
	}
}

// runScan performs a single scan-and-report invocation.
func runScan(ctx context.Context, logger *slog.Logger, logLevel *slog.LevelVar, levelOverride, owner string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(pickLevel(cfg.LogLevel, levelOverride), logLevel)

	if cfg.GithubToken == "" {
		logger.Warn("GITHUB_TOKEN is not set; unauthenticated requests are limited to 60 per hour")
	}

	gh, err := newGitHubClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	s := scanner.NewScanner(gh, logger)
	renderer := report.NewRenderer(os.Stdout)

	renderer.RenderHeader(owner)
	result, err := s.Scan(ctx, owner)
	if err != nil {
		return err
	}

	if result.ReposFound == 0 {
		renderer.RenderNoRepos()
		return nil
	}

	analyzer.SortReports(result.Reports)
	renderer.RenderResults(result.Stats, result.Reports, result.ReposFound)
	return nil
}

// runServe exposes the scanner behind the HTTP API until the context is done.
func runServe(ctx context.Context, logLevel *slog.LevelVar, levelOverride string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(pickLevel(cfg.LogLevel, levelOverride), logLevel)

	// Serve mode logs JSON to stdout; there is no report stream to protect.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if cfg.GithubToken == "" {
		logger.Warn("GITHUB_TOKEN is not set; unauthenticated requests are limited to 60 per hour")
	}

	gh, err := newGitHubClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(scanner.NewScanner(gh, logger), logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("HTTP server listening", "addr", cfg.ListenAddr)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func newGitHubClient(cfg *config.Config, logger *slog.Logger) (*github.Client, error) {
	gh := github.NewClient(cfg.GithubToken, cfg.PageSize, cfg.HTTPTimeout, logger)
	if cfg.APIBaseURL != config.DefaultAPIBaseURL {
		return gh.WithBaseURL(cfg.APIBaseURL)
	}
	return gh, nil
}

func pickLevel(configured, override string) string {
	if override != "" {
		return override
	}
	return configured
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
