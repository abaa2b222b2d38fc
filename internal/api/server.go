// Package api provides HTTP handlers for the Strength Grid query surface.
//
// @title Strength Grid API
// @description.markdown
// @version 1.0
// @BasePath /v1
//
// @contact.name API Support
// @contact.url https://github.com/strengthgrid/strength
//
// @license.name MPL-2.0
// @license.url https://opensource.org/license/mpl-2-0
//
// @tag.name teams
// @tag.description Team directory and strength lookups
//
// @tag.name competitions
// @tag.description Competition directory and coverage reports
//
// @tag.name odds
// @tag.description On-demand betting odds computation
package api

import (
	_ "expvar"
	"net/http"

	"github.com/charmbracelet/log"
	httpSwagger "github.com/swaggo/http-swagger"

	"strengthgrid.dev/strength/internal/cache"
	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/store"
)

type Server struct {
	mux *http.ServeMux
}

// NewServer wires the Postgres-backed repositories into the route
// registrars and assembles the public mux. cacheClient may be nil, in
// which case every repository falls back to uncached reads.
func NewServer(database *db.DB, cacheClient *cache.Client, cfg *config.Config) *Server {
	log.Info("initializing repositories")

	teamRepo := store.NewTeamStore(database)
	competitionRepo := store.NewCompetitionStore(database)
	ticRepo := store.NewTeamInCompetitionStore(database)
	matchRepo := store.NewMatchStore(database)
	_ = matchRepo // consumed by the Orchestrator's collectors, not the query surface

	var coverageRepo core.CoverageRepository = ticRepo

	log.Info("registering routes")

	return newServer(
		NewTeamRoutes(teamRepo, ticRepo),
		NewCompetitionRoutes(competitionRepo),
		NewOddsRoutes(ticRepo, cfg.Odds, cfg.Aggregation.PartialCoveragePolicy, cacheClient),
		NewCoverageRoutes(coverageRepo, cacheClient),
		NewSearchRoutes(teamRepo),
	)
}

// newServer wires all registrars into one mux.
func newServer(registrars ...Registrar) *Server {
	mux := http.NewServeMux()

	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	// Health check endpoint
	// @Summary Health check
	// @Description Check if the API server is running
	// @Tags health
	// @Accept json
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})

	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})

	mux.Handle("GET /debug/vars", http.DefaultServeMux)
	return &Server{mux: mux}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
