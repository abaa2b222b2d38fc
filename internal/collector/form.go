package collector

import (
	"context"

	"strengthgrid.dev/strength/internal/core"
)

// MatchSource exposes recently completed matches and the rolling elo/points
// table a handful of collectors need, so they never call the Data Store
// directly — the Orchestrator owns storage access.
type MatchSource interface {
	Name() string
	RecentCompleted(ctx context.Context, teamID core.TeamID, competitionID core.CompetitionID, n int) ([]core.Match, error)
	OpponentElo(ctx context.Context, teamID core.TeamID) (float64, error)
}

// FormCollector computes a recency-weighted points total over the last N
// completed matches (N=5). Opponent strength is not taken into account.
type FormCollector struct {
	source MatchSource
	n      int
	decay  float64
}

const (
	formWindowSize  = 5
	formDecayFactor = 0.9
)

// NewFormCollector builds a FormCollector with the standard N=5, decay=0.9 window.
func NewFormCollector(source MatchSource) *FormCollector {
	return &FormCollector{source: source, n: formWindowSize, decay: formDecayFactor}
}

func (c *FormCollector) Parameter() core.Parameter { return core.ParameterForm }
func (c *FormCollector) Provider() string          { return c.source.Name() }

func (c *FormCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	matches, err := c.source.RecentCompleted(ctx, scope.TeamID, scope.CompetitionID, c.n)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, core.NewUnavailableTransientError(c.Provider(), "no completed matches in window")
	}

	var weighted float64
	weight := 1.0
	for _, m := range matches {
		points := pointsForTeam(&m, scope.TeamID)
		weighted += weight * float64(points)
		weight *= c.decay
	}
	return weighted, nil
}

func pointsForTeam(m *core.Match, teamID core.TeamID) int {
	home, away := m.Result()
	if m.HomeTeamID == teamID {
		return home
	}
	return away
}

// H2HCollector reduces a team's head-to-head record against competition
// peers to a single rolling-average outcome score. The Odds Engine does not
// refine it pairwise at query time.
type H2HCollector struct {
	source MatchSource
	window int
}

const h2hRollingWindow = 10

// NewH2HCollector builds an H2HCollector using a rolling window of recent
// peer fixtures (any peer, not just a single opponent).
func NewH2HCollector(source MatchSource) *H2HCollector {
	return &H2HCollector{source: source, window: h2hRollingWindow}
}

func (c *H2HCollector) Parameter() core.Parameter { return core.ParameterH2HPerformance }
func (c *H2HCollector) Provider() string          { return c.source.Name() }

func (c *H2HCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	matches, err := c.source.RecentCompleted(ctx, scope.TeamID, scope.CompetitionID, c.window)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, core.NewUnavailableTransientError(c.Provider(), "no completed matches for h2h window")
	}

	var totalPoints int
	for _, m := range matches {
		totalPoints += pointsForTeam(&m, scope.TeamID)
	}
	// average points per match, on the 0-3 scale the Normalizer then rescales.
	return float64(totalPoints) / float64(len(matches)), nil
}
