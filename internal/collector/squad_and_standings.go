package collector

import (
	"context"

	"strengthgrid.dev/strength/internal/core"
)

// SquadAvailabilityProvider reports how many of a team's key players
// (quality-weighted) are fit to play.
type SquadAvailabilityProvider interface {
	Name() string
	KeyPlayerFitness(ctx context.Context, teamName string) (fitQualityWeight, totalQualityWeight float64, err error)
}

// KeyPlayerAvailabilityCollector computes the quality-weighted fraction of
// key players fit to play.
type KeyPlayerAvailabilityCollector struct {
	provider SquadAvailabilityProvider
}

// NewKeyPlayerAvailabilityCollector builds a KeyPlayerAvailabilityCollector.
func NewKeyPlayerAvailabilityCollector(provider SquadAvailabilityProvider) *KeyPlayerAvailabilityCollector {
	return &KeyPlayerAvailabilityCollector{provider: provider}
}

func (c *KeyPlayerAvailabilityCollector) Parameter() core.Parameter {
	return core.ParameterKeyPlayerAvailability
}
func (c *KeyPlayerAvailabilityCollector) Provider() string { return c.provider.Name() }

func (c *KeyPlayerAvailabilityCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	fit, total, err := c.provider.KeyPlayerFitness(ctx, scope.TeamName)
	if err != nil {
		return 0, err
	}
	if total <= 0 {
		return 0, core.NewInvalidValueError(core.ParameterKeyPlayerAvailability, total, "total quality weight must be positive")
	}
	fraction := fit / total
	if fraction < 0 || fraction > 1 {
		return 0, core.NewInvalidValueError(core.ParameterKeyPlayerAvailability, fraction, "fraction must be within [0,1]")
	}
	return fraction, nil
}

// StandingsProvider exposes a team's current league position and the
// competition's table size, used by the motivation collector.
type StandingsProvider interface {
	Name() string
	LeaguePosition(ctx context.Context, teamName string, competitionID core.CompetitionID) (position, tableSize int, err error)
}

// MotivationCollector maps league-position percentile onto an elevated or
// baseline score: top-quartile title contenders and bottom-15% relegation
// candidates score higher than mid-table sides, per a deterministic
// mapping computed from the standings snapshot at collection time.
type MotivationCollector struct {
	provider StandingsProvider
}

// NewMotivationCollector builds a MotivationCollector.
func NewMotivationCollector(provider StandingsProvider) *MotivationCollector {
	return &MotivationCollector{provider: provider}
}

func (c *MotivationCollector) Parameter() core.Parameter { return core.ParameterMotivation }
func (c *MotivationCollector) Provider() string          { return c.provider.Name() }

func (c *MotivationCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	position, tableSize, err := c.provider.LeaguePosition(ctx, scope.TeamName, scope.CompetitionID)
	if err != nil {
		return 0, err
	}
	if tableSize <= 0 || position < 1 || position > tableSize {
		return 0, core.NewInvalidValueError(core.ParameterMotivation, float64(position), "position must be within the table")
	}
	return motivationScore(position, tableSize), nil
}

// motivationScore is the deterministic percentile mapping: top quartile
// (title contention) and bottom 15% (relegation battle) score above
// baseline; mid-table sits at baseline 0.5.
func motivationScore(position, tableSize int) float64 {
	percentileFromTop := float64(position-1) / float64(tableSize-1)
	if tableSize == 1 {
		percentileFromTop = 0
	}

	switch {
	case percentileFromTop <= 0.25:
		// Linear ramp: 1st place scores 1.0, the 25th percentile boundary scores 0.75.
		return 1.0 - percentileFromTop*(0.25/0.25)
	case percentileFromTop >= 0.85:
		// Linear ramp: last place scores 0.9, the 85th percentile boundary scores 0.6.
		span := (percentileFromTop - 0.85) / 0.15
		return 0.6 + span*0.3
	default:
		return 0.5
	}
}

// StyleProvider reports a team's tactical style profile score, reduced to
// a per-team scalar in this storage model. The Odds Engine does not combine
// both teams' values at query time.
type StyleProvider interface {
	Name() string
	TacticalProfile(ctx context.Context, teamName string) (float64, error)
}

// TacticalMatchupCollector wraps a StyleProvider's per-team style score.
type TacticalMatchupCollector struct {
	provider StyleProvider
}

// NewTacticalMatchupCollector builds a TacticalMatchupCollector.
func NewTacticalMatchupCollector(provider StyleProvider) *TacticalMatchupCollector {
	return &TacticalMatchupCollector{provider: provider}
}

func (c *TacticalMatchupCollector) Parameter() core.Parameter { return core.ParameterTacticalMatchup }
func (c *TacticalMatchupCollector) Provider() string          { return c.provider.Name() }

func (c *TacticalMatchupCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	profile, err := c.provider.TacticalProfile(ctx, scope.TeamName)
	if err != nil {
		return 0, err
	}
	if profile < 0 || profile > 1 {
		return 0, core.NewInvalidValueError(core.ParameterTacticalMatchup, profile, "style profile must be within [0,1]")
	}
	return profile, nil
}

// GoalRatingsProvider exposes opponent-strength-adjusted scoring and
// conceding rates.
type GoalRatingsProvider interface {
	Name() string
	GoalsScoredPerMatch(ctx context.Context, teamName string, competitionID core.CompetitionID) (float64, error)
	GoalsConcededPerMatch(ctx context.Context, teamName string, competitionID core.CompetitionID) (float64, error)
}

// OffensiveRatingCollector wraps the opponent-adjusted goals-scored rate.
type OffensiveRatingCollector struct {
	provider GoalRatingsProvider
}

// NewOffensiveRatingCollector builds an OffensiveRatingCollector.
func NewOffensiveRatingCollector(provider GoalRatingsProvider) *OffensiveRatingCollector {
	return &OffensiveRatingCollector{provider: provider}
}

func (c *OffensiveRatingCollector) Parameter() core.Parameter { return core.ParameterOffensiveRating }
func (c *OffensiveRatingCollector) Provider() string          { return c.provider.Name() }

func (c *OffensiveRatingCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	rate, err := c.provider.GoalsScoredPerMatch(ctx, scope.TeamName, scope.CompetitionID)
	if err != nil {
		return 0, err
	}
	if rate < 0 {
		return 0, core.NewInvalidValueError(core.ParameterOffensiveRating, rate, "goals per match must be non-negative")
	}
	return rate, nil
}

// DefensiveRatingCollector wraps the inverse of the opponent-adjusted
// goals-conceded rate, so "higher is better" holds like every other parameter.
type DefensiveRatingCollector struct {
	provider GoalRatingsProvider
}

// NewDefensiveRatingCollector builds a DefensiveRatingCollector.
func NewDefensiveRatingCollector(provider GoalRatingsProvider) *DefensiveRatingCollector {
	return &DefensiveRatingCollector{provider: provider}
}

func (c *DefensiveRatingCollector) Parameter() core.Parameter { return core.ParameterDefensiveRating }
func (c *DefensiveRatingCollector) Provider() string          { return c.provider.Name() }

func (c *DefensiveRatingCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	conceded, err := c.provider.GoalsConcededPerMatch(ctx, scope.TeamName, scope.CompetitionID)
	if err != nil {
		return 0, err
	}
	if conceded < 0 {
		return 0, core.NewInvalidValueError(core.ParameterDefensiveRating, conceded, "goals conceded per match must be non-negative")
	}
	// 1/(1+x) keeps the raw value finite, positive, and monotonically
	// decreasing in goals conceded, without dividing by zero at conceded=0.
	return 1 / (1 + conceded), nil
}
