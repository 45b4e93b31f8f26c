// Package api serves a read-only HTTP view of the last batch result.
package api

import (
	"context"
	"net/http"

	"github.com/okian/scout/internal/domain/types"
)

// Entry mirrors the read shape returned by shortlist queries.
type Entry = types.Entry

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ShortlistDependencies
	RankDependencies
	PolicyProvider
}

// Server wires HTTP routes for the shortlist API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	shortlistHandler *ShortlistHandler
	rankHandler      *RankHandler
	policyHandler    *PolicyHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		shortlistHandler: NewShortlistHandler(deps, maxLimit),
		rankHandler:      NewRankHandler(deps),
		policyHandler:    NewPolicyHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/policy", MetricsMiddleware(s.policyHandler.HandleGetPolicy, "policy"))
	mux.HandleFunc("/shortlist", MetricsMiddleware(s.shortlistHandler.HandleGetShortlist, "shortlist"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}
