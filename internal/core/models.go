// Package core holds the domain types, repository contracts, and error
// taxonomy shared by every other package: collectors, normalizer,
// aggregator, odds engine, orchestrator, and the query API all depend on
// core and never on each other's concrete packages.
package core

import "time"

// TeamID is the stable identifier for a Team, independent of any competition.
// @Description Stable team identifier
type TeamID string

// CompetitionID is the stable identifier for a Competition+season scope.
// @Description Stable competition identifier
type CompetitionID string

// CompetitionType distinguishes domestic leagues from international competitions.
type CompetitionType string

const (
	CompetitionDomesticLeague CompetitionType = "domestic-league"
	CompetitionInternational  CompetitionType = "international"
)

// Parameter is one of the fixed, enumerated raw signals collected per
// TeamInCompetition. The order here is the frozen order referenced by
// weight vectors, normalized maps, and aggregation everywhere else in the
// module — never iterate parameters via a map range where order matters.
type Parameter string

const (
	ParameterElo                   Parameter = "elo"
	ParameterSquadValue            Parameter = "squad_value"
	ParameterForm                  Parameter = "form"
	ParameterSquadDepth            Parameter = "squad_depth"
	ParameterKeyPlayerAvailability Parameter = "key_player_availability"
	ParameterMotivation            Parameter = "motivation"
	ParameterTacticalMatchup       Parameter = "tactical_matchup"
	ParameterOffensiveRating       Parameter = "offensive_rating"
	ParameterDefensiveRating       Parameter = "defensive_rating"
	ParameterH2HPerformance        Parameter = "h2h_performance"
)

// Parameters is the frozen, ordered set of every collected parameter.
var Parameters = []Parameter{
	ParameterElo,
	ParameterSquadValue,
	ParameterForm,
	ParameterSquadDepth,
	ParameterKeyPlayerAvailability,
	ParameterMotivation,
	ParameterTacticalMatchup,
	ParameterOffensiveRating,
	ParameterDefensiveRating,
	ParameterH2HPerformance,
}

// LowerIsBetter reports whether a parameter's raw values should be inverted
// (1 - normalized) after min-max rescaling. None of the current parameters
// require inversion, but the Normalizer honors this hook for any future one.
func (p Parameter) LowerIsBetter() bool {
	return false
}

// DefaultWeights is the weight vector from the parameter table, summing to 1.0.
var DefaultWeights = map[Parameter]float64{
	ParameterElo:                   0.18,
	ParameterSquadValue:            0.15,
	ParameterForm:                  0.05,
	ParameterSquadDepth:            0.02,
	ParameterKeyPlayerAvailability: 0.10,
	ParameterMotivation:            0.10,
	ParameterTacticalMatchup:       0.10,
	ParameterOffensiveRating:       0.10,
	ParameterDefensiveRating:       0.10,
	ParameterH2HPerformance:        0.10,
}

// Team is a club or national side, independent of any competition.
// @Description A football club or national side
type Team struct {
	ID            TeamID            `json:"id" swaggertype:"string"`
	Name          string            `json:"name"`
	Nationality   *string           `json:"nationality,omitempty"`
	Confederation *string           `json:"confederation,omitempty"`
	ExternalRefs  map[string]string `json:"external_refs,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Competition is a league or international tournament scope within a season.
// @Description A league or tournament within a single season
type Competition struct {
	ID               CompetitionID   `json:"id" swaggertype:"string"`
	Name             string          `json:"name"`
	Country          string          `json:"country"` // "international" for cross-border competitions
	Type             CompetitionType `json:"type"`
	Season           string          `json:"season"`
	Tier             int             `json:"tier"`
	Confederation    *string         `json:"confederation,omitempty"`
	ExternalLeagueID *string         `json:"external_league_id,omitempty"`
}

// ParameterValues maps a Parameter to a value; a missing key or a nil pointer
// both mean "no value" — callers should prefer the Get helper to avoid the
// distinction leaking.
type ParameterValues map[Parameter]*float64

// Get returns the value for p and whether it is present and non-null.
func (pv ParameterValues) Get(p Parameter) (float64, bool) {
	v, ok := pv[p]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Set stores a non-null value for p.
func (pv ParameterValues) Set(p Parameter, v float64) {
	val := v
	pv[p] = &val
}

// TeamInCompetition is the central record: a team's (team, competition,
// season) triple, carrying raw and normalized parameter values plus derived
// strength variants. Normalized and aggregate fields are never written by
// collectors — only by the Normalizer and Aggregator.
// @Description A team's record within one competition and season
type TeamInCompetition struct {
	TeamID        TeamID        `json:"team_id" swaggertype:"string"`
	CompetitionID CompetitionID `json:"competition_id" swaggertype:"string"`
	Season        string        `json:"season"`

	Raw        ParameterValues `json:"raw"`
	Normalized ParameterValues `json:"normalized"`

	OverallStrength     *float64 `json:"overall_strength,omitempty"`
	LocalLeagueStrength *float64 `json:"local_league_strength,omitempty"`
	EuropeanStrength    *float64 `json:"european_strength,omitempty"`

	// Confidence is 1.0 when every positively-weighted parameter was
	// present at aggregation time, and less than 1.0 when the
	// skip-and-renormalize partial-coverage policy applied.
	Confidence        float64     `json:"confidence"`
	MissingParameters []Parameter `json:"missing_parameters,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
}

// StrengthPercentage returns OverallStrength as a 0-100 presentation value.
// It is never persisted; the canonical value is the 0-1 OverallStrength.
func (t *TeamInCompetition) StrengthPercentage() *float64 {
	if t.OverallStrength == nil {
		return nil
	}
	pct := *t.OverallStrength * 100
	return &pct
}

// MatchStatus is the lifecycle state of a Match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchFinished  MatchStatus = "finished"
	MatchPostponed MatchStatus = "postponed"
)

// Match is an optional fixture record consumed by the form and h2h
// collectors. Uniqueness is by ExternalFixtureID.
// @Description A single fixture between two teams
type Match struct {
	ExternalFixtureID string        `json:"external_fixture_id"`
	HomeTeamID        TeamID        `json:"home_team_id" swaggertype:"string"`
	AwayTeamID        TeamID        `json:"away_team_id" swaggertype:"string"`
	CompetitionID     CompetitionID `json:"competition_id" swaggertype:"string"`
	Kickoff           time.Time     `json:"kickoff"`
	HomeScore         *int          `json:"home_score,omitempty"`
	AwayScore         *int          `json:"away_score,omitempty"`
	Status            MatchStatus   `json:"status"`
	// Leg distinguishes first/second legs of a two-legged tie (0 otherwise).
	// It is stored with the fixture only; the H2H collector counts each leg
	// as a separate result.
	Leg int `json:"leg,omitempty"`
}

// Result returns the points awarded to the home and away side under a
// standard 3/1/0 scoring convention. Only meaningful when Status is
// MatchFinished; otherwise both scores are nil and it returns 0, 0.
func (m *Match) Result() (homePoints, awayPoints int) {
	if m.HomeScore == nil || m.AwayScore == nil {
		return 0, 0
	}
	switch {
	case *m.HomeScore > *m.AwayScore:
		return 3, 0
	case *m.HomeScore < *m.AwayScore:
		return 0, 3
	default:
		return 1, 1
	}
}
