package normalizer

import (
	"math"
	"testing"

	"strengthgrid.dev/strength/internal/core"
)

func f(v float64) *float64 { return &v }

func TestNormalize_MinMaxRescale(t *testing.T) {
	inputs := []Input{
		{TeamID: "a", Value: f(10)},
		{TeamID: "b", Value: f(20)},
		{TeamID: "c", Value: f(30)},
	}
	outputs := Normalize(inputs, core.ParameterElo)

	want := map[core.TeamID]float64{"a": 0, "b": 0.5, "c": 1.0}
	for _, out := range outputs {
		if out.Value == nil {
			t.Fatalf("expected a non-nil value for team %s", out.TeamID)
		}
		if math.Abs(*out.Value-want[out.TeamID]) > 1e-9 {
			t.Fatalf("team %s: expected %v, got %v", out.TeamID, want[out.TeamID], *out.Value)
		}
	}
}

func TestNormalize_PreservesNulls(t *testing.T) {
	inputs := []Input{
		{TeamID: "a", Value: f(10)},
		{TeamID: "b", Value: nil},
	}
	outputs := Normalize(inputs, core.ParameterElo)

	for _, out := range outputs {
		if out.TeamID == "b" && out.Value != nil {
			t.Fatalf("expected team b's null raw value to remain null")
		}
	}
}

func TestNormalize_DegeneratePopulationYieldsHalf(t *testing.T) {
	inputs := []Input{
		{TeamID: "a", Value: f(42)},
		{TeamID: "b", Value: f(42)},
	}
	outputs := Normalize(inputs, core.ParameterElo)
	for _, out := range outputs {
		if math.Abs(*out.Value-0.5) > 1e-9 {
			t.Fatalf("expected 0.5 when min==max, got %v", *out.Value)
		}
	}
}

func TestNormalize_SingleValuePopulationYieldsHalf(t *testing.T) {
	inputs := []Input{{TeamID: "a", Value: f(100)}}
	outputs := Normalize(inputs, core.ParameterElo)
	if math.Abs(*outputs[0].Value-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 for a single-member population, got %v", *outputs[0].Value)
	}
}

func TestNormalize_EqualRawValuesMapToEqualNormalizedValues(t *testing.T) {
	inputs := []Input{
		{TeamID: "a", Value: f(15)},
		{TeamID: "b", Value: f(15)},
		{TeamID: "c", Value: f(30)},
	}
	outputs := Normalize(inputs, core.ParameterElo)

	byTeam := make(map[core.TeamID]float64, len(outputs))
	for _, out := range outputs {
		byTeam[out.TeamID] = *out.Value
	}
	if math.Abs(byTeam["a"]-byTeam["b"]) > 1e-9 {
		t.Fatalf("equal raw values must map to equal normalized values, got a=%v b=%v", byTeam["a"], byTeam["b"])
	}
}

func TestNormalize_IndependentOfInputOrder(t *testing.T) {
	forward := []Input{
		{TeamID: "a", Value: f(10)},
		{TeamID: "b", Value: f(20)},
		{TeamID: "c", Value: f(30)},
	}
	reversed := []Input{forward[2], forward[1], forward[0]}

	outA := Normalize(forward, core.ParameterElo)
	outB := Normalize(reversed, core.ParameterElo)

	byTeamA := make(map[core.TeamID]float64, len(outA))
	for _, out := range outA {
		byTeamA[out.TeamID] = *out.Value
	}
	for _, out := range outB {
		if math.Abs(byTeamA[out.TeamID]-*out.Value) > 1e-9 {
			t.Fatalf("normalization must not depend on input order: team %s mismatched", out.TeamID)
		}
	}
}

func TestNormalizeAcrossCompetitions_SharesOnePopulation(t *testing.T) {
	byCompetition := map[core.CompetitionID][]Input{
		"league-a": {{TeamID: "a1", Value: f(10)}, {TeamID: "a2", Value: f(20)}},
		"league-b": {{TeamID: "b1", Value: f(30)}},
	}

	result := NormalizeAcrossCompetitions(byCompetition, core.ParameterElo)

	var a1 *float64
	for _, out := range result["league-a"] {
		if out.TeamID == "a1" {
			a1 = out.Value
		}
	}
	if a1 == nil {
		t.Fatal("expected a value for a1")
	}
	// against the flattened population {10,20,30}, a1=10 normalizes to 0.
	if math.Abs(*a1-0.0) > 1e-9 {
		t.Fatalf("expected a1 normalized against the full cross-competition population, got %v", *a1)
	}
}
