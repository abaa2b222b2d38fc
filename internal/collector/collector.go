// Package collector implements the fixed parameter set's pluggable
// adapters. Each collector takes an injected Provider and returns either a
// non-null raw value or a typed unavailable result; collectors never write
// normalized or aggregate values, and are idempotent per
// (team, competition, season, parameter).
package collector

import (
	"context"
	"math"

	"strengthgrid.dev/strength/internal/core"
)

// Scope identifies the (team, competition, season) triple a collector
// call targets.
type Scope struct {
	TeamID        core.TeamID
	TeamName      string
	CompetitionID core.CompetitionID
	Season        string
}

// Collector fetches one parameter for one Scope. Implementations must not
// write to the Data Store themselves — the Orchestrator persists the
// returned value via core.TeamInCompetitionRepository.UpsertRaw.
type Collector interface {
	Parameter() core.Parameter
	Provider() string
	Collect(ctx context.Context, scope Scope) (float64, error)
}

// EloProvider fetches match-based team ratings from an external rating
// source. The core never encodes this provider's URL or credentials.
type EloProvider interface {
	Name() string
	TeamRating(ctx context.Context, teamName string) (float64, error)
}

// EloCollector wraps an EloProvider as a Collector.
type EloCollector struct {
	provider EloProvider
}

// NewEloCollector builds an EloCollector.
func NewEloCollector(provider EloProvider) *EloCollector {
	return &EloCollector{provider: provider}
}

func (c *EloCollector) Parameter() core.Parameter { return core.ParameterElo }
func (c *EloCollector) Provider() string          { return c.provider.Name() }

func (c *EloCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	rating, err := c.provider.TeamRating(ctx, scope.TeamName)
	if err != nil {
		return 0, err
	}
	if rating < 0 {
		return 0, core.NewInvalidValueError(core.ParameterElo, rating, "rating must be non-negative")
	}
	return rating, nil
}

// ValuationProvider fetches aggregate squad market value.
type ValuationProvider interface {
	Name() string
	SquadValue(ctx context.Context, teamName string) (float64, error)
	SquadSize(ctx context.Context, teamName string) (int, error)
}

// SquadValueCollector wraps a ValuationProvider's market-value read.
type SquadValueCollector struct {
	provider ValuationProvider
}

// NewSquadValueCollector builds a SquadValueCollector.
func NewSquadValueCollector(provider ValuationProvider) *SquadValueCollector {
	return &SquadValueCollector{provider: provider}
}

func (c *SquadValueCollector) Parameter() core.Parameter { return core.ParameterSquadValue }
func (c *SquadValueCollector) Provider() string          { return c.provider.Name() }

func (c *SquadValueCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	value, err := c.provider.SquadValue(ctx, scope.TeamName)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, core.NewInvalidValueError(core.ParameterSquadValue, value, "squad value must be non-negative")
	}
	return value, nil
}

// SquadDepthCollector combines squad size with a quality factor from squad
// value, so two equally-sized squads of very different value differ
// materially in depth.
type SquadDepthCollector struct {
	provider ValuationProvider
}

// NewSquadDepthCollector builds a SquadDepthCollector.
func NewSquadDepthCollector(provider ValuationProvider) *SquadDepthCollector {
	return &SquadDepthCollector{provider: provider}
}

func (c *SquadDepthCollector) Parameter() core.Parameter { return core.ParameterSquadDepth }
func (c *SquadDepthCollector) Provider() string          { return c.provider.Name() }

func (c *SquadDepthCollector) Collect(ctx context.Context, scope Scope) (float64, error) {
	size, err := c.provider.SquadSize(ctx, scope.TeamName)
	if err != nil {
		return 0, err
	}
	value, err := c.provider.SquadValue(ctx, scope.TeamName)
	if err != nil {
		return 0, err
	}
	if size <= 0 {
		return 0, core.NewInvalidValueError(core.ParameterSquadDepth, float64(size), "squad size must be positive")
	}
	// quality factor grows logarithmically with per-player value so a 10x
	// value gap at equal size produces a materially different depth score.
	perPlayerValue := value / float64(size)
	qualityFactor := 1.0
	if perPlayerValue > 0 {
		qualityFactor = math.Log10(perPlayerValue + 1)
	}
	return float64(size) * qualityFactor, nil
}
