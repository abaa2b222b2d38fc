package api

import (
	"net/http"

	"strengthgrid.dev/strength/internal/core"
)

// TeamRoutes exposes the team directory and strength lookup operations of
// the Query API's read-only surface (§4.7). It never writes to the Data
// Store — refreshes are the Orchestrator's job.
type TeamRoutes struct {
	teams core.TeamRepository
	tics  core.TeamInCompetitionRepository
}

func NewTeamRoutes(teams core.TeamRepository, tics core.TeamInCompetitionRepository) *TeamRoutes {
	return &TeamRoutes{teams: teams, tics: tics}
}

func (tr *TeamRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/teams", tr.handleListTeams)
	mux.HandleFunc("GET /v1/teams/{name}", tr.handleGetTeam)
	mux.HandleFunc("GET /v1/teams/{name}/strength", tr.handleTeamStrength)
}

// handleListTeams godoc
// @Summary List teams
// @Description Browse the team directory with optional name and confederation filters
// @Tags teams
// @Accept json
// @Produce json
// @Param name query string false "Team name search query"
// @Param confederation query string false "Filter by confederation"
// @Param competition_id query string false "Filter to teams in one competition"
// @Param page query integer false "Page number" default(1)
// @Param per_page query integer false "Results per page" default(50)
// @Success 200 {object} PaginatedResponse
// @Failure 500 {object} ErrorResponse
// @Router /teams [get]
func (tr *TeamRoutes) handleListTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := core.TeamFilter{
		NameQuery: r.URL.Query().Get("name"),
		Pagination: core.NewPagination(
			getIntQuery(r, "page", 1),
			getIntQuery(r, "per_page", 50),
		),
	}
	if confederation := r.URL.Query().Get("confederation"); confederation != "" {
		filter.Confederation = &confederation
	}
	if competitionID := r.URL.Query().Get("competition_id"); competitionID != "" {
		id := core.CompetitionID(competitionID)
		filter.CompetitionID = &id
	}

	teams, err := tr.teams.List(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := tr.teams.Count(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PaginatedResponse{
		Data:    teams,
		Page:    filter.Pagination.Page,
		PerPage: filter.Pagination.PerPage,
		Total:   total,
	})
}

// handleGetTeam godoc
// @Summary Get team by name
// @Description Resolve a team's canonical directory entry by name
// @Tags teams
// @Accept json
// @Produce json
// @Param name path string true "Team name"
// @Success 200 {object} core.Team
// @Failure 404 {object} ErrorResponse
// @Router /teams/{name} [get]
func (tr *TeamRoutes) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := tr.teams.GetByName(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// handleTeamStrength godoc
// @Summary Strength lookup
// @Description Return overall_strength, local_league_strength, european_strength, per-parameter normalized values, and last_updated for a team, one record per competition the team has in the given season; there is no competition filter
// @Tags teams
// @Accept json
// @Produce json
// @Param name path string true "Team name"
// @Param season query string true "Season tag; a request without it gets 400"
// @Success 200 {object} []core.TeamInCompetition
// @Failure 404 {object} ErrorResponse
// @Router /teams/{name}/strength [get]
func (tr *TeamRoutes) handleTeamStrength(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		writeBadRequest(w, "season is required")
		return
	}

	records, err := tr.tics.GetByTeamName(r.Context(), r.PathValue("name"), season)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(records) == 0 {
		writeNotFound(w, "team-in-competition record")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
