// Package aggregator combines a team's normalized parameter values with the
// active weight vector into a single overall_strength in [0,1].
package aggregator

import (
	"sort"

	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
)

// Result is the Aggregator's output for one TeamInCompetition.
type Result struct {
	OverallStrength   *float64
	Confidence        float64
	MissingParameters []core.Parameter
}

// Aggregate computes overall_strength = Σ w_i · n_i over parameters with
// w_i > 0, applying the configured partial-coverage policy when some
// positively-weighted parameter is null. The Aggregator never reads raw
// values — only the normalized map and the frozen weight vector.
func Aggregate(normalized core.ParameterValues, weights map[core.Parameter]float64, policy config.PartialCoveragePolicy) Result {
	var (
		weightedSum   float64
		presentWeight float64
		missing       []core.Parameter
	)

	// core.Parameters gives a frozen order so MissingParameters is deterministic.
	for _, param := range core.Parameters {
		w, active := weights[param]
		if !active || w <= 0 {
			continue
		}

		n, ok := normalized.Get(param)
		if !ok {
			missing = append(missing, param)
			continue
		}

		weightedSum += w * n
		presentWeight += w
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	if len(missing) == 0 {
		v := weightedSum
		return Result{OverallStrength: &v, Confidence: 1.0}
	}

	if policy == config.PolicyStrictNull {
		return Result{OverallStrength: nil, Confidence: 0, MissingParameters: missing}
	}

	// skip-and-renormalize: divide by the sum of weights actually present.
	if presentWeight <= 0 {
		return Result{OverallStrength: nil, Confidence: 0, MissingParameters: missing}
	}
	v := weightedSum / presentWeight
	confidence := presentWeight / totalActiveWeight(weights)
	return Result{OverallStrength: &v, Confidence: confidence, MissingParameters: missing}
}

func totalActiveWeight(weights map[core.Parameter]float64) float64 {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	return total
}

// RescaleToLocalLeague re-normalizes an already-computed overall_strength
// linearly against the min/max overall_strength observed within its own
// competition, so the top team in each league reads 1.0. Input strengths
// must all belong to the same (competition, season) scope.
func RescaleToLocalLeague(strengths map[core.TeamID]*float64) map[core.TeamID]*float64 {
	var population []float64
	for _, v := range strengths {
		if v != nil {
			population = append(population, *v)
		}
	}

	result := make(map[core.TeamID]*float64, len(strengths))
	if len(population) < 2 {
		for teamID, v := range strengths {
			if v == nil {
				result[teamID] = nil
				continue
			}
			half := 0.5
			result[teamID] = &half
		}
		return result
	}

	min, max := population[0], population[0]
	for _, v := range population {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	for teamID, v := range strengths {
		if v == nil {
			result[teamID] = nil
			continue
		}
		if max == min {
			half := 0.5
			result[teamID] = &half
			continue
		}
		rescaled := (*v - min) / (max - min)
		result[teamID] = &rescaled
	}
	return result
}
