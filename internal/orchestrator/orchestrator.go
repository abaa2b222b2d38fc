// Package orchestrator sequences one refresh cycle: bounded-concurrency
// parameter collection, per-(competition, season, parameter) normalization,
// and per-team aggregation, reporting a structured summary at the end.
package orchestrator

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"strengthgrid.dev/strength/internal/aggregator"
	"strengthgrid.dev/strength/internal/collector"
	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/normalizer"
)

// Scope names what a refresh cycle covers: specific competitions+season, or
// every domestic league in a season when Competitions is empty.
type Scope struct {
	Season       string
	Competitions []core.CompetitionID
	Parameters   []core.Parameter // empty means every parameter
}

// Orchestrator wires the Data Store repositories and the pluggable
// collectors together to drive refresh cycles. It never implements
// collection, normalization, or aggregation itself — it only sequences them
// and persists their outputs.
type Orchestrator struct {
	Teams        core.TeamRepository
	Competitions core.CompetitionRepository
	TICs         core.TeamInCompetitionRepository

	Collectors map[core.Parameter]collector.Collector
	Weights    map[core.Parameter]float64
	Policy     config.PartialCoveragePolicy

	CollectorCfg config.CollectorConfig

	Logger *log.Logger
}

// Run executes one full refresh cycle for scope and returns a structured
// summary. A cancelled ctx aborts in-flight collector work with no
// partial-row writes; remaining scopes are simply not attempted.
func (o *Orchestrator) Run(ctx context.Context, scope Scope) (*Summary, error) {
	started := time.Now()
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}

	competitionIDs, err := o.resolveCompetitions(ctx, scope)
	if err != nil {
		return nil, err
	}
	parameters := scope.Parameters
	if len(parameters) == 0 {
		parameters = core.Parameters
	}

	outcomes := make(map[core.Parameter]*ParameterOutcome, len(parameters))
	for _, p := range parameters {
		outcomes[p] = &ParameterOutcome{Parameter: p}
	}

	pools := make(map[string]*providerPool)
	poolFor := func(provider string) *providerPool {
		if p, ok := pools[provider]; ok {
			return p
		}
		p := newProviderPool(o.CollectorCfg.ConcurrencyPerProvider, o.CollectorCfg.Retry)
		pools[provider] = p
		return p
	}

	teamsByCompetition := make(map[core.CompetitionID][]core.Team, len(competitionIDs))
	for _, competitionID := range competitionIDs {
		teams, err := o.Teams.List(ctx, core.TeamFilter{
			CompetitionID: &competitionID,
			Pagination:    core.NewPagination(1, 500),
		})
		if err != nil {
			return nil, core.NewStorageError("orchestrator.list_teams", err)
		}
		teamsByCompetition[competitionID] = teams

		if err := o.collectScope(ctx, competitionID, scope.Season, teams, parameters, outcomes, poolFor, logger); err != nil {
			return nil, err
		}

		for _, parameter := range parameters {
			if err := o.normalizeOne(ctx, competitionID, scope.Season, parameter); err != nil {
				logger.Error("normalize failed", "competition", competitionID, "parameter", parameter, "err", err)
			}
		}
	}

	// european_strength renormalizes each parameter over the union of every
	// domestic-league competition in the season, so it must wait until
	// within-competition normalization has finished writing everywhere.
	europeanNormalized, err := o.computeEuropeanNormalized(ctx, competitionIDs, scope.Season, parameters)
	if err != nil {
		logger.Error("european normalization failed", "err", err)
		europeanNormalized = nil
	}

	for _, competitionID := range competitionIDs {
		if err := o.aggregateOne(ctx, competitionID, scope.Season, teamsByCompetition[competitionID], europeanNormalized[competitionID]); err != nil {
			logger.Error("aggregate failed", "competition", competitionID, "err", err)
		}
	}

	coverage := o.buildCoverageReport(ctx, competitionIDs, scope.Season)

	summary := &Summary{
		StartedAt:  started,
		FinishedAt: time.Now(),
		ByParam:    sortedOutcomes(outcomes, parameters),
		Coverage:   coverage,
	}
	summary.WallTime = summary.FinishedAt.Sub(summary.StartedAt)
	return summary, nil
}

func (o *Orchestrator) resolveCompetitions(ctx context.Context, scope Scope) ([]core.CompetitionID, error) {
	if len(scope.Competitions) > 0 {
		return scope.Competitions, nil
	}
	competitions, err := o.Competitions.ListDomesticLeaguesBySeason(ctx, scope.Season)
	if err != nil {
		return nil, core.NewStorageError("orchestrator.list_competitions", err)
	}
	ids := make([]core.CompetitionID, 0, len(competitions))
	for _, c := range competitions {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (o *Orchestrator) collectScope(
	ctx context.Context,
	competitionID core.CompetitionID,
	season string,
	teams []core.Team,
	parameters []core.Parameter,
	outcomes map[core.Parameter]*ParameterOutcome,
	poolFor func(string) *providerPool,
	logger *log.Logger,
) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, parameter := range parameters {
		coll, ok := o.Collectors[parameter]
		if !ok {
			continue
		}
		parameter := parameter
		coll := coll
		pool := poolFor(coll.Provider())

		for _, team := range teams {
			team := team
			outcome := outcomes[parameter]
			g.Go(func() error {
				scope := collector.Scope{
					TeamID:        team.ID,
					TeamName:      team.Name,
					CompetitionID: competitionID,
					Season:        season,
				}
				atomic.AddInt64(&outcome.Attempted, 1)
				value, err := pool.run(gctx, func(ctx context.Context) (float64, error) {
					return coll.Collect(ctx, scope)
				})
				if err != nil {
					atomic.AddInt64(&outcome.Failed, 1)
					if core.IsPermanent(err) || core.IsTransient(err) || core.IsInvalidValue(err) {
						logger.Warn("collector unavailable", "parameter", parameter, "team", team.Name, "err", err)
						return nil
					}
					return err
				}
				if err := o.TICs.UpsertRaw(gctx, team.ID, competitionID, season, parameter, value); err != nil {
					atomic.AddInt64(&outcome.Failed, 1)
					return core.NewStorageError("orchestrator.upsert_raw", err)
				}
				atomic.AddInt64(&outcome.Succeeded, 1)
				return nil
			})
		}
	}

	return g.Wait()
}

func (o *Orchestrator) normalizeOne(ctx context.Context, competitionID core.CompetitionID, season string, parameter core.Parameter) error {
	rows, err := o.TICs.BulkReadRaw(ctx, competitionID, season, parameter)
	if err != nil {
		return core.NewStorageError("orchestrator.bulk_read_raw", err)
	}

	inputs := make([]normalizer.Input, 0, len(rows))
	for _, r := range rows {
		inputs = append(inputs, normalizer.Input{TeamID: r.TeamID, Value: r.Value})
	}

	outputs := normalizer.Normalize(inputs, parameter)
	writes := make([]core.NormalizedWrite, 0, len(outputs))
	for _, out := range outputs {
		writes = append(writes, core.NormalizedWrite{TeamID: out.TeamID, Value: out.Value})
	}

	if err := o.TICs.BulkWriteNormalized(ctx, competitionID, season, parameter, writes); err != nil {
		return core.NewStorageError("orchestrator.bulk_write_normalized", err)
	}
	return nil
}

func (o *Orchestrator) aggregateOne(ctx context.Context, competitionID core.CompetitionID, season string, teams []core.Team, europeanNormalized map[core.TeamID]core.ParameterValues) error {
	writes := make([]core.AggregateWrite, 0, len(teams))
	strengths := make(map[core.TeamID]*float64, len(teams))

	for _, team := range teams {
		tic, err := o.TICs.Get(ctx, team.ID, competitionID, season)
		if err != nil && !core.IsNotFound(err) {
			return core.NewStorageError("orchestrator.get_tic", err)
		}
		var normalized core.ParameterValues
		if tic != nil {
			normalized = tic.Normalized
		}

		result := aggregator.Aggregate(normalized, o.Weights, o.Policy)
		write := core.AggregateWrite{
			TeamID:            team.ID,
			OverallStrength:   result.OverallStrength,
			Confidence:        result.Confidence,
			MissingParameters: result.MissingParameters,
		}

		if euro, ok := europeanNormalized[team.ID]; ok {
			euroResult := aggregator.Aggregate(euro, o.Weights, o.Policy)
			write.EuropeanStrength = euroResult.OverallStrength
		}

		writes = append(writes, write)
		strengths[team.ID] = result.OverallStrength
	}

	rescaled := aggregator.RescaleToLocalLeague(strengths)
	for i := range writes {
		writes[i].LocalLeagueStrength = rescaled[writes[i].TeamID]
	}

	if err := o.TICs.BulkWriteAggregate(ctx, competitionID, season, writes); err != nil {
		return core.NewStorageError("orchestrator.bulk_write_aggregate", err)
	}
	return nil
}

// computeEuropeanNormalized renormalizes every parameter across the union
// of all given competitions, then groups the result by (competition, team)
// so aggregateOne can aggregate it with the same weight vector used for
// overall_strength.
func (o *Orchestrator) computeEuropeanNormalized(ctx context.Context, competitionIDs []core.CompetitionID, season string, parameters []core.Parameter) (map[core.CompetitionID]map[core.TeamID]core.ParameterValues, error) {
	result := make(map[core.CompetitionID]map[core.TeamID]core.ParameterValues)

	for _, parameter := range parameters {
		byCompetition, err := o.TICs.BulkReadRawAcrossCompetitions(ctx, competitionIDs, season, parameter)
		if err != nil {
			return nil, core.NewStorageError("orchestrator.bulk_read_raw_across_competitions", err)
		}

		inputsByCompetition := make(map[core.CompetitionID][]normalizer.Input, len(byCompetition))
		for competitionID, rows := range byCompetition {
			inputs := make([]normalizer.Input, 0, len(rows))
			for _, r := range rows {
				inputs = append(inputs, normalizer.Input{TeamID: r.TeamID, Value: r.Value})
			}
			inputsByCompetition[competitionID] = inputs
		}

		outputsByCompetition := normalizer.NormalizeAcrossCompetitions(inputsByCompetition, parameter)
		for competitionID, outputs := range outputsByCompetition {
			teamValues, ok := result[competitionID]
			if !ok {
				teamValues = make(map[core.TeamID]core.ParameterValues)
				result[competitionID] = teamValues
			}
			for _, out := range outputs {
				values, ok := teamValues[out.TeamID]
				if !ok {
					values = core.ParameterValues{}
					teamValues[out.TeamID] = values
				}
				if out.Value != nil {
					values.Set(parameter, *out.Value)
				}
			}
		}
	}

	return result, nil
}

func (o *Orchestrator) buildCoverageReport(ctx context.Context, competitionIDs []core.CompetitionID, season string) []CompetitionCoverage {
	coverageRepo, ok := o.TICs.(core.CoverageRepository)
	if !ok {
		return nil
	}

	result := make([]CompetitionCoverage, 0, len(competitionIDs))
	for _, competitionID := range competitionIDs {
		report, err := coverageRepo.Coverage(ctx, competitionID, season)
		if err != nil || report == nil || report.TeamCount == 0 {
			continue
		}
		var nonNull, total int
		for _, count := range report.NonNullByParam {
			nonNull += count
			total += report.TeamCount
		}
		pct := 0.0
		if total > 0 {
			pct = float64(nonNull) / float64(total)
		}
		result = append(result, CompetitionCoverage{
			CompetitionID: competitionID,
			Season:        season,
			TeamCount:     report.TeamCount,
			CoveragePct:   pct,
		})
	}
	return result
}

func sortedOutcomes(outcomes map[core.Parameter]*ParameterOutcome, parameters []core.Parameter) []ParameterOutcome {
	keys := make([]core.Parameter, len(parameters))
	copy(keys, parameters)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	result := make([]ParameterOutcome, 0, len(keys))
	for _, k := range keys {
		if o, ok := outcomes[k]; ok {
			result = append(result, *o)
		}
	}
	return result
}
