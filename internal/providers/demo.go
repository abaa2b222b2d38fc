// Package providers implements the collector package's Provider interfaces
// against a deterministic, locally computed data source. It exists so the
// Orchestrator has something runnable end-to-end without first wiring a
// live rating feed, valuation service, or fixture database — swapping in a
// real HTTP-backed provider (api-football, Transfermarkt, a bookmaker's own
// odds feed) means implementing the same interfaces and injecting them in
// place of this package at startup.
package providers

import (
	"context"
	"hash/fnv"

	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/store"
)

// Demo implements every collector Provider interface with values derived
// deterministically from the team name, so repeated runs are stable.
type Demo struct {
	name    string
	matches *store.MatchStore
}

// NewDemo builds a Demo provider. matches may be nil, in which case the
// MatchSource methods (Form, H2H) report unavailable.
func NewDemo(name string, matches *store.MatchStore) *Demo {
	return &Demo{name: name, matches: matches}
}

func (d *Demo) Name() string { return d.name }

// hashUnit maps a string to a stable float64 in [0, 1).
func hashUnit(s string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return float64(h.Sum32()%10000) / 10000
}

// TeamRating implements collector.EloProvider.
func (d *Demo) TeamRating(_ context.Context, teamName string) (float64, error) {
	return 1450 + hashUnit(teamName)*550, nil
}

// SquadValue implements collector.ValuationProvider.
func (d *Demo) SquadValue(_ context.Context, teamName string) (float64, error) {
	return 40_000_000 + hashUnit(teamName+"value")*700_000_000, nil
}

// SquadSize implements collector.ValuationProvider.
func (d *Demo) SquadSize(_ context.Context, teamName string) (int, error) {
	return 18 + int(hashUnit(teamName+"size")*14), nil
}

// KeyPlayerFitness implements collector.SquadAvailabilityProvider.
func (d *Demo) KeyPlayerFitness(_ context.Context, teamName string) (fit, total float64, err error) {
	total = 10
	fit = total * (0.5 + hashUnit(teamName+"fitness")*0.5)
	return fit, total, nil
}

// LeaguePosition implements collector.StandingsProvider.
func (d *Demo) LeaguePosition(_ context.Context, teamName string, competitionID core.CompetitionID) (position, tableSize int, err error) {
	tableSize = 20
	position = 1 + int(hashUnit(teamName+string(competitionID))*float64(tableSize-1))
	return position, tableSize, nil
}

// TacticalProfile implements collector.StyleProvider.
func (d *Demo) TacticalProfile(_ context.Context, teamName string) (float64, error) {
	return hashUnit(teamName + "style"), nil
}

// GoalsScoredPerMatch implements collector.GoalRatingsProvider.
func (d *Demo) GoalsScoredPerMatch(_ context.Context, teamName string, competitionID core.CompetitionID) (float64, error) {
	return hashUnit(teamName+string(competitionID)+"scored") * 3, nil
}

// GoalsConcededPerMatch implements collector.GoalRatingsProvider.
func (d *Demo) GoalsConcededPerMatch(_ context.Context, teamName string, competitionID core.CompetitionID) (float64, error) {
	return hashUnit(teamName+string(competitionID)+"conceded") * 3, nil
}

// RecentCompleted implements collector.MatchSource by delegating to the
// Data Store's match history. Returns an empty slice, not an error, when no
// match repository was configured — callers treat that as "unavailable".
func (d *Demo) RecentCompleted(ctx context.Context, teamID core.TeamID, competitionID core.CompetitionID, n int) ([]core.Match, error) {
	if d.matches == nil {
		return nil, nil
	}
	return d.matches.RecentCompleted(ctx, teamID, competitionID, n)
}

// OpponentElo implements collector.MatchSource.
func (d *Demo) OpponentElo(_ context.Context, teamID core.TeamID) (float64, error) {
	return 1450 + hashUnit(string(teamID)+"opponent")*550, nil
}
