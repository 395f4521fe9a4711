// Package api exposes the HTTP interface for querying scraped fighters.
// Notable routes:
//   - GET /healthz and /readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - GET /v1/fighters for listing with optional weight_class and limit filters.
//   - GET /v1/fighters/{fighter_id} and /v1/fighters/search/{name} for lookups.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	queryTimeout     = 3 * time.Second
)

// Server wires HTTP handlers to the fighter store.
type Server struct {
	router chi.Router
	store  database.Provider
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(store database.Provider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/fighters", func(r chi.Router) {
			r.Get("/", s.listFighters)
			r.Get("/{fighter_id}", s.getFighter)
			r.Get("/search/{name}", s.searchFighters)
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()
	if _, err := s.store.CountFighters(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// listFighters handles GET /v1/fighters?weight_class=&limit=. It returns
// {"fighters": [...], "count": n} on success or 400 for invalid filters.
func (s *Server) listFighters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	limit := defaultListLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("limit must be an integer between 1 and %d", maxListLimit))
			return
		}
		limit = parsed
	}
	filter := database.Filter{
		WeightClass: strings.TrimSpace(r.URL.Query().Get("weight_class")),
		Limit:       limit,
	}

	fighters, err := s.store.ListFighters(ctx, filter)
	if err != nil {
		s.logger.Error("list fighters failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list fighters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fighters": fighters,
		"count":    len(fighters),
	})
}

// getFighter handles GET /v1/fighters/{fighter_id}. It returns
// {"fighter": {...}}, 400 for malformed IDs, or 404 when the row is missing.
func (s *Server) getFighter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "fighter_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "fighter_id must be an integer")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	f, err := s.store.GetFighter(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "fighter not found")
			return
		}
		s.logger.Error("get fighter failed", zap.Int64("fighter_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load fighter")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fighter": f})
}

// searchFighters handles GET /v1/fighters/search/{name} with a
// case-insensitive substring match.
func (s *Server) searchFighters(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	fighters, err := s.store.SearchFighters(ctx, name)
	if err != nil {
		s.logger.Error("search fighters failed", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to search fighters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fighters": fighters,
		"count":    len(fighters),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
