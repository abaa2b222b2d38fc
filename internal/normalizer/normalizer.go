// Package normalizer rescales raw per-parameter values into [0,1] within a
// (competition, season, parameter) peer group, per the min-max algorithm.
package normalizer

import (
	"gonum.org/v1/gonum/floats"

	"strengthgrid.dev/strength/internal/core"
)

// Input is one team's raw value (or absence of one) feeding a single
// normalization run.
type Input struct {
	TeamID core.TeamID
	Value  *float64
}

// Output is the normalized counterpart of an Input.
type Output struct {
	TeamID core.TeamID
	Value  *float64
}

// Normalize implements the five-step algorithm: collect non-null raw
// values, handle the degenerate range case, else min-max rescale, then
// invert for lower-is-better parameters. The mapping depends only on the
// multiset of raw values, never on team order, and is a pure function of
// its inputs — running it twice on the same snapshot is bit-for-bit
// identical.
func Normalize(inputs []Input, parameter core.Parameter) []Output {
	outputs := make([]Output, len(inputs))

	var population []float64
	for _, in := range inputs {
		if in.Value != nil {
			population = append(population, *in.Value)
		}
	}

	lowerIsBetter := parameter.LowerIsBetter()

	for i, in := range inputs {
		outputs[i].TeamID = in.TeamID
		if in.Value == nil {
			outputs[i].Value = nil
			continue
		}
		outputs[i].Value = normalizedValue(*in.Value, population, lowerIsBetter)
	}
	return outputs
}

// normalizedValue computes one value's normalized counterpart against the
// full population of non-null raw values in its peer group.
func normalizedValue(raw float64, population []float64, lowerIsBetter bool) *float64 {
	if len(population) < 2 {
		v := 0.5
		return &v
	}

	min := floats.Min(population)
	max := floats.Max(population)

	if max == min {
		v := 0.5
		return &v
	}

	n := (raw - min) / (max - min)
	if lowerIsBetter {
		n = 1 - n
	}
	return &n
}

// LocalLeagueScope narrows normalization to a single competition, the
// default scope used for overall_strength and local_league_strength.
type LocalLeagueScope struct {
	CompetitionID core.CompetitionID
	Season        string
}

// EuropeanScope spans the union of every domestic-league competition
// sharing a season, the scope used for european_strength.
type EuropeanScope struct {
	CompetitionIDs []core.CompetitionID
	Season         string
}

// NormalizeAcrossCompetitions flattens a per-competition raw-value map into
// a single population before applying the same min-max algorithm, used by
// the european_strength cross-competition variant.
func NormalizeAcrossCompetitions(byCompetition map[core.CompetitionID][]Input, parameter core.Parameter) map[core.CompetitionID][]Output {
	var flattened []Input
	for _, inputs := range byCompetition {
		flattened = append(flattened, inputs...)
	}

	flatOutputs := Normalize(flattened, parameter)
	byTeam := make(map[core.TeamID]*float64, len(flatOutputs))
	for _, out := range flatOutputs {
		byTeam[out.TeamID] = out.Value
	}

	result := make(map[core.CompetitionID][]Output, len(byCompetition))
	for competitionID, inputs := range byCompetition {
		outputs := make([]Output, len(inputs))
		for i, in := range inputs {
			outputs[i] = Output{TeamID: in.TeamID, Value: byTeam[in.TeamID]}
		}
		result[competitionID] = outputs
	}
	return result
}
