package api

import (
	"net/http"

	"strengthgrid.dev/strength/internal/cache"
	"strengthgrid.dev/strength/internal/core"
)

// CoverageRoutes exposes the coverage/freshness report of §4.7: per
// competition+season, how many teams carry a non-null value for each
// parameter, and the oldest/newest last_updated timestamp in scope.
type CoverageRoutes struct {
	coverage core.CoverageRepository
	cache    *cache.CoverageCacheHelper
}

func NewCoverageRoutes(coverage core.CoverageRepository, cacheClient *cache.Client) *CoverageRoutes {
	return &CoverageRoutes{coverage: coverage, cache: cache.NewCoverageCacheHelper(cacheClient)}
}

func (cr *CoverageRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/competitions/{id}/coverage", cr.handleCoverage)
}

// handleCoverage godoc
// @Summary Coverage and freshness report
// @Description Report per-parameter data completeness and last_updated bounds for one competition+season
// @Tags competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Param season query string true "Season tag"
// @Success 200 {object} core.CoverageReport
// @Failure 404 {object} ErrorResponse
// @Router /competitions/{id}/coverage [get]
func (cr *CoverageRoutes) handleCoverage(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		writeBadRequest(w, "season is required")
		return
	}
	competitionID := r.PathValue("id")

	result, err := cr.cache.GetOrCompute(r.Context(), competitionID, season, func() (any, error) {
		return cr.coverage.Coverage(r.Context(), core.CompetitionID(competitionID), season)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
