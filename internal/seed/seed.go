// Package seed populates a fresh database with a small, plausible set of
// competitions, teams, and raw parameter values so the Query API and Odds
// Engine have something to serve without first standing up live
// Parameter Collector providers.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/echo"
	"strengthgrid.dev/strength/internal/store"
)

// DemoOptions controls demo data generation.
type DemoOptions struct {
	Season string
	// Seed fixes the PRNG so repeated runs produce the same raw values.
	Seed int64
}

type demoTeam struct {
	id   string
	name string
	nat  string
}

type demoCompetition struct {
	id            string
	name          string
	country       string
	kind          core.CompetitionType
	tier          int
	confederation *string
	teams         []demoTeam
}

func ptr(s string) *string { return &s }

func demoCompetitions() []demoCompetition {
	return []demoCompetition{
		{
			id: "eng-prem", name: "Premier League", country: "England",
			kind: core.CompetitionDomesticLeague, tier: 1,
			teams: []demoTeam{
				{"arsenal", "Arsenal", "England"},
				{"man-city", "Manchester City", "England"},
				{"liverpool", "Liverpool", "England"},
				{"chelsea", "Chelsea", "England"},
				{"tottenham", "Tottenham Hotspur", "England"},
				{"newcastle", "Newcastle United", "England"},
			},
		},
		{
			id: "esp-laliga", name: "La Liga", country: "Spain",
			kind: core.CompetitionDomesticLeague, tier: 1,
			teams: []demoTeam{
				{"real-madrid", "Real Madrid", "Spain"},
				{"barcelona", "Barcelona", "Spain"},
				{"atletico", "Atletico Madrid", "Spain"},
				{"sevilla", "Sevilla", "Spain"},
				{"villarreal", "Villarreal", "Spain"},
				{"real-sociedad", "Real Sociedad", "Spain"},
			},
		},
		{
			id: "ger-bundesliga", name: "Bundesliga", country: "Germany",
			kind: core.CompetitionDomesticLeague, tier: 1,
			teams: []demoTeam{
				{"bayern", "Bayern Munich", "Germany"},
				{"dortmund", "Borussia Dortmund", "Germany"},
				{"leverkusen", "Bayer Leverkusen", "Germany"},
				{"leipzig", "RB Leipzig", "Germany"},
			},
		},
		{
			id: "uefa-ucl", name: "UEFA Champions League", country: "international",
			kind: core.CompetitionInternational, tier: 1, confederation: ptr("UEFA"),
			teams: []demoTeam{
				{"arsenal", "Arsenal", "England"},
				{"man-city", "Manchester City", "England"},
				{"liverpool", "Liverpool", "England"},
				{"real-madrid", "Real Madrid", "Spain"},
				{"barcelona", "Barcelona", "Spain"},
				{"bayern", "Bayern Munich", "Germany"},
				{"dortmund", "Borussia Dortmund", "Germany"},
				{"leverkusen", "Bayer Leverkusen", "Germany"},
			},
		},
	}
}

// LoadDemo seeds competitions, teams, and a raw parameter value for every
// team+competition+parameter triple. Existing rows with the same IDs are
// upserted in place, so LoadDemo is safe to run repeatedly.
func LoadDemo(ctx context.Context, database *db.DB, opts DemoOptions) (int, error) {
	season := opts.Season
	if season == "" {
		season = "2025-26"
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	teams := store.NewTeamStore(database)
	competitions := store.NewCompetitionStore(database)
	tics := store.NewTeamInCompetitionStore(database)

	seenTeams := map[string]bool{}
	rows := 0

	for _, comp := range demoCompetitions() {
		echo.Infof("Seeding %s (%s, %s)...", comp.name, comp.country, season)

		competition := &core.Competition{
			ID:            core.CompetitionID(comp.id),
			Name:          comp.name,
			Country:       comp.country,
			Type:          comp.kind,
			Season:        season,
			Tier:          comp.tier,
			Confederation: comp.confederation,
		}
		if _, err := competitions.Upsert(ctx, competition); err != nil {
			return rows, fmt.Errorf("seed competition %s: %w", comp.id, err)
		}

		for _, dt := range comp.teams {
			if !seenTeams[dt.id] {
				team := &core.Team{
					ID:          core.TeamID(dt.id),
					Name:        dt.name,
					Nationality: ptr(dt.nat),
				}
				if _, err := teams.Upsert(ctx, team); err != nil {
					return rows, fmt.Errorf("seed team %s: %w", dt.id, err)
				}
				seenTeams[dt.id] = true
			}

			for _, param := range core.Parameters {
				value := plausibleValue(rng, param)
				if err := tics.UpsertRaw(ctx, core.TeamID(dt.id), core.CompetitionID(comp.id), season, param, value); err != nil {
					return rows, fmt.Errorf("seed %s/%s/%s: %w", dt.id, comp.id, param, err)
				}
				rows++
			}
		}

		echo.Successf("✓ Seeded %s (%d teams)", comp.name, len(comp.teams))
	}

	return rows, nil
}

// plausibleValue returns a value in a parameter's natural raw range so the
// Normalizer has a realistic, non-degenerate population to rescale.
func plausibleValue(rng *rand.Rand, param core.Parameter) float64 {
	switch param {
	case core.ParameterElo:
		return 1500 + rng.Float64()*500 // 1500-2000
	case core.ParameterSquadValue:
		return 50_000_000 + rng.Float64()*600_000_000 // EUR
	case core.ParameterForm:
		return rng.Float64() * 3 // recency-weighted points per match, 0-3
	case core.ParameterSquadDepth:
		return 15 + rng.Float64()*15 // eligible first-team-quality players
	case core.ParameterKeyPlayerAvailability:
		return 0.5 + rng.Float64()*0.5 // fraction of key players available
	case core.ParameterMotivation:
		return rng.Float64() // percentile, 0-1
	case core.ParameterTacticalMatchup:
		return rng.Float64()*2 - 1 // -1..1 matchup edge
	case core.ParameterOffensiveRating:
		return rng.Float64() * 3 // goals scored per match
	case core.ParameterDefensiveRating:
		return 1 / (1 + rng.Float64()*3) // 1/(1 + goals conceded per match), as the defensive collector reports it
	case core.ParameterH2HPerformance:
		return rng.Float64() * 3 // head-to-head points per match
	default:
		return rng.Float64()
	}
}
