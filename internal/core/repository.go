package core

import (
	"context"
	"time"
)

// TeamRepository handles team directory access. Teams exist independent of
// competitions and are never auto-deleted.
type TeamRepository interface {
	GetByID(ctx context.Context, id TeamID) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	List(ctx context.Context, filter TeamFilter) ([]Team, error)
	Count(ctx context.Context, filter TeamFilter) (int, error)

	// Upsert creates the team on first observation or returns the existing one.
	Upsert(ctx context.Context, team *Team) (*Team, error)
}

// CompetitionRepository handles competition+season scopes.
type CompetitionRepository interface {
	GetByID(ctx context.Context, id CompetitionID) (*Competition, error)
	List(ctx context.Context, filter CompetitionFilter) ([]Competition, error)

	// ListDomesticLeaguesBySeason returns every domestic-league competition for a season,
	// the scope used by the european_strength cross-competition variant.
	ListDomesticLeaguesBySeason(ctx context.Context, season string) ([]Competition, error)

	Upsert(ctx context.Context, competition *Competition) (*Competition, error)
}

// RawParameterRow is one (team, parameter) raw value within a
// (competition, season) scope, the unit the Normalizer reads in bulk.
type RawParameterRow struct {
	TeamID TeamID
	Value  *float64
}

// NormalizedWrite is one (team, parameter) normalized value to persist.
type NormalizedWrite struct {
	TeamID TeamID
	Value  *float64
}

// AggregateWrite is the result of aggregating one TeamInCompetition.
type AggregateWrite struct {
	TeamID              TeamID
	OverallStrength      *float64
	LocalLeagueStrength  *float64
	EuropeanStrength     *float64
	Confidence           float64
	MissingParameters    []Parameter
}

// TeamInCompetitionRepository is the Data Store contract of §4.1: durable,
// concurrent-safe storage of raw, normalized, and aggregate values. Writes
// are serializable at the row level; readers see either pre- or post-write
// consistent state.
type TeamInCompetitionRepository interface {
	// Get returns one record by (team, competition, season).
	Get(ctx context.Context, teamID TeamID, competitionID CompetitionID, season string) (*TeamInCompetition, error)

	// GetByTeamName resolves team name across every active competition in season.
	GetByTeamName(ctx context.Context, teamName string, season string) ([]TeamInCompetition, error)

	List(ctx context.Context, filter TeamInCompetitionFilter) ([]TeamInCompetition, error)

	// UpsertRaw atomically writes a single raw parameter value and bumps
	// last_updated, creating the TeamInCompetition record if this is the
	// first observation for the triple. A raw value is either written
	// atomically or not at all.
	UpsertRaw(ctx context.Context, teamID TeamID, competitionID CompetitionID, season string, parameter Parameter, value float64) error

	// BulkReadRaw returns every team's raw value for one
	// (competition, season, parameter) — the Normalizer's input.
	BulkReadRaw(ctx context.Context, competitionID CompetitionID, season string, parameter Parameter) ([]RawParameterRow, error)

	// BulkReadRawAcrossCompetitions is the european_strength variant's
	// input: every team's raw value for one parameter across the given
	// set of competitions, all sharing the same season.
	BulkReadRawAcrossCompetitions(ctx context.Context, competitionIDs []CompetitionID, season string, parameter Parameter) (map[CompetitionID][]RawParameterRow, error)

	// BulkWriteNormalized persists the Normalizer's output for one
	// (competition, season, parameter).
	BulkWriteNormalized(ctx context.Context, competitionID CompetitionID, season string, parameter Parameter, writes []NormalizedWrite) error

	// BulkWriteAggregate persists the Aggregator's output for one
	// (competition, season).
	BulkWriteAggregate(ctx context.Context, competitionID CompetitionID, season string, writes []AggregateWrite) error
}

// CoverageReport summarizes data completeness for one competition+season,
// the Query API's coverage/freshness operation (§4.7).
type CoverageReport struct {
	CompetitionID   CompetitionID
	Season          string
	TeamCount       int
	NonNullByParam  map[Parameter]int
	OldestUpdated   time.Time
	NewestUpdated   time.Time
}

// MatchRepository stores fixtures consumed by the form and h2h collectors.
type MatchRepository interface {
	Upsert(ctx context.Context, match *Match) error
	List(ctx context.Context, filter MatchFilter) ([]Match, error)

	// RecentCompleted returns the n most recent finished matches for a
	// team within a competition, ordered most-recent-first.
	RecentCompleted(ctx context.Context, teamID TeamID, competitionID CompetitionID, n int) ([]Match, error)

	// HeadToHead returns finished matches between the two teams, most-recent-first.
	HeadToHead(ctx context.Context, teamA, teamB TeamID, limit int) ([]Match, error)
}

// CoverageRepository answers the Query API's coverage/freshness operation.
type CoverageRepository interface {
	Coverage(ctx context.Context, competitionID CompetitionID, season string) (*CoverageReport, error)
}
