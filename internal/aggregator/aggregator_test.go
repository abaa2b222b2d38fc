package aggregator

import (
	"math"
	"testing"

	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
)

func fullWeights() map[core.Parameter]float64 {
	return core.DefaultWeights
}

func ptr(v float64) *float64 { return &v }

func TestAggregate_FullCoverageYieldsConfidenceOne(t *testing.T) {
	normalized := core.ParameterValues{}
	for param := range fullWeights() {
		normalized.Set(param, 0.6)
	}

	result := Aggregate(normalized, fullWeights(), config.PolicySkipAndRenormalize)

	if result.OverallStrength == nil {
		t.Fatal("expected a non-nil overall strength")
	}
	if math.Abs(*result.OverallStrength-0.6) > 1e-9 {
		t.Fatalf("expected overall_strength 0.6 when every parameter is 0.6, got %v", *result.OverallStrength)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0 with full coverage, got %v", result.Confidence)
	}
	if len(result.MissingParameters) != 0 {
		t.Fatalf("expected no missing parameters, got %v", result.MissingParameters)
	}
}

func TestAggregate_SkipAndRenormalizeEqualWeightsFullCoverage(t *testing.T) {
	normalized := core.ParameterValues{
		core.ParameterElo:        ptr(1.0),
		core.ParameterSquadValue: ptr(0.0),
	}
	weights := map[core.Parameter]float64{
		core.ParameterElo:        0.5,
		core.ParameterSquadValue: 0.5,
	}

	result := Aggregate(normalized, weights, config.PolicySkipAndRenormalize)
	if result.OverallStrength == nil {
		t.Fatal("expected a non-nil overall strength")
	}
	if math.Abs(*result.OverallStrength-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 (equal weighted average), got %v", *result.OverallStrength)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0 when every weighted parameter is present, got %v", result.Confidence)
	}
}

func TestAggregate_MissingParameterRenormalizesRemainingWeight(t *testing.T) {
	normalized := core.ParameterValues{
		core.ParameterElo: ptr(0.8),
	}
	weights := map[core.Parameter]float64{
		core.ParameterElo:        0.5,
		core.ParameterSquadValue: 0.5,
	}

	result := Aggregate(normalized, weights, config.PolicySkipAndRenormalize)
	if result.OverallStrength == nil {
		t.Fatal("expected a non-nil overall strength under skip-and-renormalize")
	}
	if math.Abs(*result.OverallStrength-0.8) > 1e-9 {
		t.Fatalf("expected the single present parameter's value after renormalizing, got %v", *result.OverallStrength)
	}
	if math.Abs(result.Confidence-0.5) > 1e-9 {
		t.Fatalf("expected confidence 0.5 (half the weight missing), got %v", result.Confidence)
	}
	if len(result.MissingParameters) != 1 || result.MissingParameters[0] != core.ParameterSquadValue {
		t.Fatalf("expected squad_value reported missing, got %v", result.MissingParameters)
	}
}

func TestAggregate_StrictNullPolicyNullsOnAnyMissing(t *testing.T) {
	normalized := core.ParameterValues{
		core.ParameterElo: ptr(0.8),
	}
	weights := map[core.Parameter]float64{
		core.ParameterElo:        0.5,
		core.ParameterSquadValue: 0.5,
	}

	result := Aggregate(normalized, weights, config.PolicyStrictNull)
	if result.OverallStrength != nil {
		t.Fatalf("expected nil overall_strength under strict-null with a missing parameter, got %v", *result.OverallStrength)
	}
	if result.Confidence != 0 {
		t.Fatalf("expected confidence 0 when strict-null nulls the result, got %v", result.Confidence)
	}
}

func TestAggregate_MissingParametersAreSortedDeterministically(t *testing.T) {
	weights := fullWeights()
	normalized := core.ParameterValues{}

	result := Aggregate(normalized, weights, config.PolicySkipAndRenormalize)
	for i := 1; i < len(result.MissingParameters); i++ {
		if result.MissingParameters[i-1] >= result.MissingParameters[i] {
			t.Fatalf("expected missing parameters sorted ascending, got %v", result.MissingParameters)
		}
	}
}

func TestRescaleToLocalLeague_TopTeamReachesOne(t *testing.T) {
	strengths := map[core.TeamID]*float64{
		"a": ptr(0.9),
		"b": ptr(0.6),
		"c": ptr(0.3),
	}

	rescaled := RescaleToLocalLeague(strengths)
	if math.Abs(*rescaled["a"]-1.0) > 1e-9 {
		t.Fatalf("expected the top team to rescale to 1.0, got %v", *rescaled["a"])
	}
	if math.Abs(*rescaled["c"]-0.0) > 1e-9 {
		t.Fatalf("expected the bottom team to rescale to 0.0, got %v", *rescaled["c"])
	}
}

func TestRescaleToLocalLeague_PreservesNils(t *testing.T) {
	strengths := map[core.TeamID]*float64{
		"a": ptr(0.9),
		"b": nil,
	}
	rescaled := RescaleToLocalLeague(strengths)
	if rescaled["b"] != nil {
		t.Fatalf("expected a nil strength to remain nil, got %v", rescaled["b"])
	}
}

func TestRescaleToLocalLeague_DegenerateRangeYieldsHalf(t *testing.T) {
	strengths := map[core.TeamID]*float64{
		"a": ptr(0.5),
		"b": ptr(0.5),
	}
	rescaled := RescaleToLocalLeague(strengths)
	if math.Abs(*rescaled["a"]-0.5) > 1e-9 || math.Abs(*rescaled["b"]-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 for every team when all strengths are equal, got a=%v b=%v", *rescaled["a"], *rescaled["b"])
	}
}
