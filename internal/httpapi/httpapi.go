// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi exposes author resolution over HTTP. The handlers
// stay thin: decode the query, call the resolver, translate the outcome
// into a status code. All consolidation logic lives in internal/resolve.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/scholar-resolve/internal/resolve"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

// Resolver is the resolution engine the handlers delegate to.
type Resolver interface {
	Resolve(ctx context.Context, q types.AuthorQuery) (types.AuthorProfile, error)
}

// Handler wires the author resolution endpoints to a Resolver.
type Handler struct {
	resolver Resolver
	logger   *slog.Logger
	metrics  *Metrics
}

// New constructs the HTTP handler. A nil logger falls back to
// slog.Default; a nil metrics registers on the default registry.
func New(resolver Resolver, logger *slog.Logger, metrics *Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Handler{resolver: resolver, logger: logger, metrics: metrics}
}

// Router builds the full route tree, health and metrics endpoints
// included.
func Router(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/authors", func(r chi.Router) {
		r.Post("/search", h.HandleSearch)
		r.Get("/search/{name}", h.HandleSearchByName)
	})
	return r
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSearch handles POST /api/v1/authors/search with a JSON query
// body.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var q types.AuthorQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.resolveAndRespond(w, r, q)
}

// HandleSearchByName handles GET /api/v1/authors/search/{name}.
func (h *Handler) HandleSearchByName(w http.ResponseWriter, r *http.Request) {
	h.resolveAndRespond(w, r, types.AuthorQuery{Name: chi.URLParam(r, "name")})
}

func (h *Handler) resolveAndRespond(w http.ResponseWriter, r *http.Request, q types.AuthorQuery) {
	start := time.Now()

	profile, err := h.resolver.Resolve(r.Context(), q)
	switch {
	case errors.Is(err, resolve.ErrEmptyName):
		h.metrics.ObserveResolve("bad_request", start)
		writeError(w, http.StatusBadRequest, "author name must not be empty")
		return
	case err != nil:
		h.logger.Error("author resolution failed", "name", q.Name, "error", err)
		h.metrics.ObserveResolve("error", start)
		writeError(w, http.StatusInternalServerError, "author resolution failed")
		return
	}

	// Nothing found anywhere: no papers, no citations, no registry iD.
	if profile.PaperCount == 0 && profile.CitationCount == 0 && profile.ORCID == "" {
		h.logger.Info("author not found", "name", q.Name)
		h.metrics.ObserveResolve("not_found", start)
		writeError(w, http.StatusNotFound, "author not found")
		return
	}

	h.logger.Info("author resolved",
		"name", q.Name,
		"sources", len(profile.Sources),
		"confidence", profile.ConfidenceScore,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.ObserveResolve("ok", start)
	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
