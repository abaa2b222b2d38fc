package api

import (
	"net/http"

	"strengthgrid.dev/strength/internal/core"
)

// CompetitionRoutes exposes the competition directory, the other half of
// the Query API's browsing surface alongside TeamRoutes.
type CompetitionRoutes struct {
	competitions core.CompetitionRepository
}

func NewCompetitionRoutes(competitions core.CompetitionRepository) *CompetitionRoutes {
	return &CompetitionRoutes{competitions: competitions}
}

func (cr *CompetitionRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/competitions", cr.handleListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{id}", cr.handleGetCompetition)
}

// handleListCompetitions godoc
// @Summary List competitions
// @Description Browse competitions with optional season, country, and type filters
// @Tags competitions
// @Accept json
// @Produce json
// @Param season query string false "Season tag"
// @Param country query string false "Country, or \"international\""
// @Param type query string false "domestic-league or international"
// @Param page query integer false "Page number" default(1)
// @Param per_page query integer false "Results per page" default(50)
// @Success 200 {object} PaginatedResponse
// @Failure 500 {object} ErrorResponse
// @Router /competitions [get]
func (cr *CompetitionRoutes) handleListCompetitions(w http.ResponseWriter, r *http.Request) {
	filter := core.CompetitionFilter{
		Pagination: core.NewPagination(
			getIntQuery(r, "page", 1),
			getIntQuery(r, "per_page", 50),
		),
	}
	if season := r.URL.Query().Get("season"); season != "" {
		filter.Season = &season
	}
	if country := r.URL.Query().Get("country"); country != "" {
		filter.Country = &country
	}
	if t := r.URL.Query().Get("type"); t != "" {
		ct := core.CompetitionType(t)
		filter.Type = &ct
	}

	competitions, err := cr.competitions.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PaginatedResponse{
		Data:    competitions,
		Page:    filter.Pagination.Page,
		PerPage: filter.Pagination.PerPage,
		Total:   len(competitions),
	})
}

// handleGetCompetition godoc
// @Summary Get competition by ID
// @Tags competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} core.Competition
// @Failure 404 {object} ErrorResponse
// @Router /competitions/{id} [get]
func (cr *CompetitionRoutes) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	competition, err := cr.competitions.GetByID(r.Context(), core.CompetitionID(r.PathValue("id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, competition)
}
