package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"strengthgrid.dev/strength/internal/collector"
	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/echo"
	"strengthgrid.dev/strength/internal/orchestrator"
	"strengthgrid.dev/strength/internal/providers"
	"strengthgrid.dev/strength/internal/store"
)

// CollectCmd creates the collect command, which runs one Orchestrator
// refresh cycle against the configured collectors.
func CollectCmd() *cobra.Command {
	var season string
	var competitionIDs []string
	var parameterNames []string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run a collection cycle: gather parameters, normalize, aggregate",
		Long:  "Drives one Orchestrator refresh cycle: collects every parameter from the configured providers, normalizes per competition, aggregates per team, and reports coverage.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, season, competitionIDs, parameterNames)
		},
	}

	cmd.Flags().StringVar(&season, "season", "", "Season to collect (defaults to config's season)")
	cmd.Flags().StringSliceVar(&competitionIDs, "competition", nil, "Limit the cycle to these competition IDs (repeatable, defaults to every domestic league)")
	cmd.Flags().StringSliceVar(&parameterNames, "parameter", nil, "Limit the cycle to these parameters (repeatable, defaults to all)")
	return cmd
}

func runCollect(cmd *cobra.Command, season string, competitionIDs, parameterNames []string) error {
	echo.Header("Collection Cycle")
	echo.Info("Loading configuration...")

	cfg, err := loadConfigForCmd(cmd)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}

	if season == "" {
		season = cfg.Season
	}

	echo.Info("Connecting to database...")
	database, err := db.Connect("")
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()
	echo.Success("✓ Connected to database")

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

	scope := orchestrator.Scope{Season: season}
	for _, id := range competitionIDs {
		scope.Competitions = append(scope.Competitions, core.CompetitionID(id))
	}
	for _, name := range parameterNames {
		scope.Parameters = append(scope.Parameters, core.Parameter(name))
	}

	orch := &orchestrator.Orchestrator{
		Teams:        teamRepo,
		Competitions: competitionRepo,
		TICs:         ticRepo,
		Collectors:   collectors,
		Weights:      cfg.Weights,
		Policy:       cfg.Aggregation.PartialCoveragePolicy,
		CollectorCfg: cfg.Collector,
		Logger:       log.NewWithOptions(cmd.OutOrStdout(), log.Options{Prefix: "collect"}),
	}

	echo.Infof("Collecting season %s...", season)
	started := time.Now()

	summary, err := orch.Run(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	echo.Success(fmt.Sprintf("✓ Cycle finished in %s", time.Since(started).Round(time.Millisecond)))
	echo.Info("")
	echo.Info("Collection by parameter:")
	for _, outcome := range summary.ByParam {
		echo.Infof("  %-24s attempted=%-4d succeeded=%-4d failed=%-4d", outcome.Parameter, outcome.Attempted, outcome.Succeeded, outcome.Failed)
	}

	echo.Info("")
	echo.Info("Coverage by competition:")
	for _, coverage := range summary.Coverage {
		echo.Infof("  %-16s %s  teams=%-4d coverage=%.1f%%", coverage.CompetitionID, coverage.Season, coverage.TeamCount, coverage.CoveragePct*100)
	}

	return nil
}
