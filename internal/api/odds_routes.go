package api

import (
	"net/http"

	"strengthgrid.dev/strength/internal/cache"
	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/odds"
)

// OddsRoutes exposes the Odds Engine's on-demand query operation (§4.5):
// given two team names it resolves both sides to a TeamInCompetition,
// selects the strength variant per the deterministic rule, and computes
// the 1X2/Over-Under/BTTS payload. Quotes are cache-aside: the Odds Engine
// itself is pure, but resolving both sides' TeamInCompetition records is
// not free, so identical (home, away, season) lookups within the TTL skip
// the Data Store entirely.
type OddsRoutes struct {
	tics   core.TeamInCompetitionRepository
	cfg    config.OddsConfig
	policy config.PartialCoveragePolicy
	cache  *cache.OddsCacheHelper
}

func NewOddsRoutes(tics core.TeamInCompetitionRepository, cfg config.OddsConfig, policy config.PartialCoveragePolicy, cacheClient *cache.Client) *OddsRoutes {
	return &OddsRoutes{tics: tics, cfg: cfg, policy: policy, cache: cache.NewOddsCacheHelper(cacheClient)}
}

func (or *OddsRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/odds", or.handleOdds)
}

// handleOdds godoc
// @Summary Odds lookup
// @Description Compute 1X2, Over/Under 2.5, and BTTS markets for a (home, away) pair
// @Tags odds
// @Accept json
// @Produce json
// @Param home query string true "Home team name"
// @Param away query string true "Away team name"
// @Param season query string true "Season tag"
// @Success 200 {object} odds.Quote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /odds [get]
func (or *OddsRoutes) handleOdds(w http.ResponseWriter, r *http.Request) {
	homeName := r.URL.Query().Get("home")
	awayName := r.URL.Query().Get("away")
	season := r.URL.Query().Get("season")
	if homeName == "" || awayName == "" || season == "" {
		writeBadRequest(w, "home, away, and season are all required")
		return
	}

	ctx := r.Context()
	params := map[string]string{"home": homeName, "away": awayName, "season": season}

	result, err := or.cache.GetOrCompute(ctx, params, func() (any, error) {
		homeRecords, err := or.tics.GetByTeamName(ctx, homeName, season)
		if err != nil {
			return nil, err
		}
		awayRecords, err := or.tics.GetByTeamName(ctx, awayName, season)
		if err != nil {
			return nil, err
		}
		if len(homeRecords) == 0 {
			return nil, core.NewNotFoundError("team-in-competition", homeName)
		}
		if len(awayRecords) == 0 {
			return nil, core.NewNotFoundError("team-in-competition", awayName)
		}

		home, away, context := selectRecordsAndContext(homeRecords, awayRecords)
		if or.policy == config.PolicyStrictNull {
			if missing, ok := selectedStrength(home, context); !ok {
				return nil, core.NewMissingStrengthError(homeName, missing)
			}
			if missing, ok := selectedStrength(away, context); !ok {
				return nil, core.NewMissingStrengthError(awayName, missing)
			}
		}
		sA, sB := strengthsForContext(home, away, context)
		attackA, defenseA := attackDefenseOrFallback(home, sA)
		attackB, defenseB := attackDefenseOrFallback(away, sB)

		return odds.ComputeQuote(sA, sB, attackA, defenseA, attackB, defenseB, context, or.cfg), nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// selectRecordsAndContext picks the pairing of (home, away) records that
// share a competition when one exists — same-competition context — else
// falls back to each side's first active competition — cross-competition
// context. Venue neutrality is a caller concern the query API does not
// currently expose.
func selectRecordsAndContext(homeRecords, awayRecords []core.TeamInCompetition) (core.TeamInCompetition, core.TeamInCompetition, odds.Context) {
	for _, h := range homeRecords {
		for _, a := range awayRecords {
			if h.CompetitionID == a.CompetitionID {
				return h, a, odds.ContextSameCompetition
			}
		}
	}
	return homeRecords[0], awayRecords[0], odds.ContextCrossCompetition
}

// strengthsForContext applies §4.5's selection rule: same-competition uses
// local_league_strength; otherwise european_strength.
func strengthsForContext(home, away core.TeamInCompetition, context odds.Context) (float64, float64) {
	if context == odds.ContextSameCompetition {
		return orZero(home.LocalLeagueStrength), orZero(away.LocalLeagueStrength)
	}
	return orZero(home.EuropeanStrength), orZero(away.EuropeanStrength)
}

// selectedStrength reports whether the strength variant §4.5's selection
// rule picks for context is present. Under strict-null policy a nil
// variant is a refusal rather than a silent zero, naming the parameters
// that kept overall_strength from being computed.
func selectedStrength(tic core.TeamInCompetition, context odds.Context) ([]core.Parameter, bool) {
	variant := tic.EuropeanStrength
	if context == odds.ContextSameCompetition {
		variant = tic.LocalLeagueStrength
	}
	if variant != nil {
		return nil, true
	}
	return tic.MissingParameters, false
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// attackDefenseOrFallback returns offensive_rating/defensive_rating's
// normalized values when both are present, else falls back to the
// selected overall strength for both arguments per §4.5's fallback rule.
func attackDefenseOrFallback(tic core.TeamInCompetition, fallbackStrength float64) (attack, defense float64) {
	off, offOK := tic.Normalized.Get(core.ParameterOffensiveRating)
	def, defOK := tic.Normalized.Get(core.ParameterDefensiveRating)
	if offOK && defOK {
		return off, def
	}
	return fallbackStrength, fallbackStrength
}
