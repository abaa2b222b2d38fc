package api

import (
	"context"
	"net/http"

	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/search"
)

// SearchRoutes exposes a free-text convenience lookup on top of the team
// directory: a query like "Arsenal vs Chelsea 2025-26" or "champions
// league liverpool" resolves to team names, a season, and a competition ID
// a client can feed straight into the odds or strength endpoints.
type SearchRoutes struct {
	teams core.TeamRepository
}

func NewSearchRoutes(teams core.TeamRepository) *SearchRoutes {
	return &SearchRoutes{teams: teams}
}

func (sr *SearchRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/search", sr.handleSearch)
}

type teamAliasResolver struct {
	ctx   context.Context
	teams core.TeamRepository
}

func (r teamAliasResolver) ResolveTeamAlias(alias string, _ *string) (core.TeamID, bool) {
	team, err := r.teams.GetByName(r.ctx, alias)
	if err != nil || team == nil {
		return "", false
	}
	return team.ID, true
}

// handleSearch godoc
// @Summary Free-text query parsing
// @Description Parse a free-text query ("Arsenal vs Chelsea 2025-26") into a season, competition ID, and team names
// @Tags teams
// @Accept json
// @Produce json
// @Param q query string true "Free-text query"
// @Success 200 {object} search.MatchQuery
// @Failure 400 {object} ErrorResponse
// @Router /search [get]
func (sr *SearchRoutes) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeBadRequest(w, "q is required")
		return
	}

	query := search.ParseMatchQuery(q)
	query.EnrichWithTeamAliases(teamAliasResolver{ctx: r.Context(), teams: sr.teams})

	writeJSON(w, http.StatusOK, query)
}
