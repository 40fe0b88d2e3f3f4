// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github-release-stats/internal/analyzer"
	custom_errors "github-release-stats/internal/errors"
	"github-release-stats/internal/scanner"
)

// ScanRunner runs a full scan for one owner. Implemented by scanner.Scanner.
type ScanRunner interface {
	Scan(ctx context.Context, owner string) (*scanner.Result, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	scanner ScanRunner
	logger  *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(sc ScanRunner, logger *slog.Logger) http.Handler {
	h := &Handler{
		scanner: sc,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	// A scan issues one upstream request per page per repository, sequentially.
	r.Use(middleware.Timeout(5 * time.Minute))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/users/{owner}/stats", h.getOwnerStats)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statsResponse struct {
	Owner string `json:"owner"`
	scanner.Result
}

// getOwnerStats runs a scan for the owner and returns the sorted reports plus
// overall statistics.
// GET /v1/users/{owner}/stats
func (h *Handler) getOwnerStats(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	result, err := h.scanner.Scan(r.Context(), owner)
	if err != nil {
		var invalidOwner *custom_errors.ErrInvalidOwner
		if errors.As(err, &invalidOwner) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away or the request timed out mid-scan.
			respondWithError(w, http.StatusGatewayTimeout, "Scan aborted")
			return
		}
		h.logger.Error("Scan failed", "owner", owner, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	analyzer.SortReports(result.Reports)
	respondWithJSON(w, http.StatusOK, statsResponse{Owner: owner, Result: *result})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
