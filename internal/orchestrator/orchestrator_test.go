package orchestrator_test

import (
	"context"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"strengthgrid.dev/strength/internal/collector"
	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/orchestrator"
	"strengthgrid.dev/strength/internal/providers"
	"strengthgrid.dev/strength/internal/store"
	"strengthgrid.dev/strength/internal/testutils"
)

// TestOrchestratorRun drives one full refresh cycle against a real Postgres
// instance seeded with the package's fixtures and the deterministic Demo
// provider, then checks that every team in scope picked up an
// overall_strength value.
func TestOrchestratorRun(t *testing.T) {
	ctx := context.Background()

	projectRoot, err := testutils.GetProjectRoot()
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to change to project root: %v", err)
	}
	defer os.Chdir(originalDir)

	container, err := testutils.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to create postgres container: %v", err)
	}
	defer container.Terminate(ctx)

	database, err := db.Connect(container.ConnStr)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := container.LoadFixtures(ctx); err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}

	teamRepo := store.NewTeamStore(database)
	competitionRepo := store.NewCompetitionStore(database)
	ticRepo := store.NewTeamInCompetitionStore(database)
	matchRepo := store.NewMatchStore(database)

	demo := providers.NewDemo("demo", matchRepo)

	collectors := map[core.Parameter]collector.Collector{
		core.ParameterElo:                   collector.NewEloCollector(demo),
		core.ParameterSquadValue:            collector.NewSquadValueCollector(demo),
		core.ParameterForm:                  collector.NewFormCollector(demo),
		core.ParameterSquadDepth:            collector.NewSquadDepthCollector(demo),
		core.ParameterKeyPlayerAvailability: collector.NewKeyPlayerAvailabilityCollector(demo),
		core.ParameterMotivation:            collector.NewMotivationCollector(demo),
		core.ParameterTacticalMatchup:       collector.NewTacticalMatchupCollector(demo),
		core.ParameterOffensiveRating:       collector.NewOffensiveRatingCollector(demo),
		core.ParameterDefensiveRating:       collector.NewDefensiveRatingCollector(demo),
		core.ParameterH2HPerformance:        collector.NewH2HCollector(demo),
	}

	orch := &orchestrator.Orchestrator{
		Teams:        teamRepo,
		Competitions: competitionRepo,
		TICs:         ticRepo,
		Collectors:   collectors,
		Weights:      core.DefaultWeights,
		Policy:       config.PolicySkipAndRenormalize,
		CollectorCfg: config.CollectorConfig{
			ConcurrencyPerProvider: 4,
			Retry: config.RetryConfig{
				InitialInterval: 0.01,
				Factor:          2,
				MaxInterval:     0.1,
				MaxAttempts:     2,
			},
		},
	}

	summary, err := orch.Run(ctx, orchestrator.Scope{
		Season:       "2025-26",
		Competitions: []core.CompetitionID{"premier-league"},
	})
	if err != nil {
		t.Fatalf("orchestrator run failed: %v", err)
	}

	if len(summary.ByParam) != len(core.Parameters) {
		t.Errorf("expected %d parameter outcomes, got %d", len(core.Parameters), len(summary.ByParam))
	}
	for _, outcome := range summary.ByParam {
		if outcome.Succeeded == 0 {
			t.Errorf("parameter %s had zero successful collections", outcome.Parameter)
		}
	}

	arsenal, err := teamRepo.GetByName(ctx, "Arsenal")
	if err != nil {
		t.Fatalf("failed to look up Arsenal: %v", err)
	}

	tic, err := ticRepo.Get(ctx, arsenal.ID, "premier-league", "2025-26")
	if err != nil {
		t.Fatalf("failed to load team_in_competition row: %v", err)
	}
	if tic.OverallStrength == nil {
		t.Error("expected overall_strength to be populated after a collection cycle")
	}
	if tic.LocalLeagueStrength == nil {
		t.Error("expected local_league_strength to be populated after a collection cycle")
	}
}
