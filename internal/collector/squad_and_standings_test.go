package collector

import (
	"context"
	"testing"

	"strengthgrid.dev/strength/internal/core"
)

type fakeAvailabilityProvider struct {
	fit, total float64
}

func (f *fakeAvailabilityProvider) Name() string { return "fake-availability" }
func (f *fakeAvailabilityProvider) KeyPlayerFitness(ctx context.Context, teamName string) (float64, float64, error) {
	return f.fit, f.total, nil
}

func TestKeyPlayerAvailabilityCollector_ComputesFraction(t *testing.T) {
	c := NewKeyPlayerAvailabilityCollector(&fakeAvailabilityProvider{fit: 6, total: 8})
	value, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 0.75 {
		t.Fatalf("expected 0.75, got %v", value)
	}
}

func TestKeyPlayerAvailabilityCollector_RejectsZeroTotal(t *testing.T) {
	c := NewKeyPlayerAvailabilityCollector(&fakeAvailabilityProvider{fit: 0, total: 0})
	_, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if !core.IsInvalidValue(err) {
		t.Fatalf("expected an invalid-value error, got %v", err)
	}
}

type fakeStandingsProvider struct {
	position, tableSize int
}

func (f *fakeStandingsProvider) Name() string { return "fake-standings" }
func (f *fakeStandingsProvider) LeaguePosition(ctx context.Context, teamName string, competitionID core.CompetitionID) (int, int, error) {
	return f.position, f.tableSize, nil
}

func TestMotivationCollector_TitleContenderScoresAboveBaseline(t *testing.T) {
	c := NewMotivationCollector(&fakeStandingsProvider{position: 1, tableSize: 20})
	value, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(value > 0.5) {
		t.Fatalf("expected above-baseline motivation for 1st place, got %v", value)
	}
}

func TestMotivationCollector_RejectsOutOfRangePosition(t *testing.T) {
	c := NewMotivationCollector(&fakeStandingsProvider{position: 25, tableSize: 20})
	_, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if !core.IsInvalidValue(err) {
		t.Fatalf("expected an invalid-value error for an out-of-range position, got %v", err)
	}
}

type fakeStyleProvider struct {
	profile float64
}

func (f *fakeStyleProvider) Name() string { return "fake-style" }
func (f *fakeStyleProvider) TacticalProfile(ctx context.Context, teamName string) (float64, error) {
	return f.profile, nil
}

func TestTacticalMatchupCollector_ReturnsProfile(t *testing.T) {
	c := NewTacticalMatchupCollector(&fakeStyleProvider{profile: 0.4})
	value, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 0.4 {
		t.Fatalf("expected 0.4, got %v", value)
	}
}

type fakeGoalRatingsProvider struct {
	scored, conceded float64
}

func (f *fakeGoalRatingsProvider) Name() string { return "fake-goals" }
func (f *fakeGoalRatingsProvider) GoalsScoredPerMatch(ctx context.Context, teamName string, competitionID core.CompetitionID) (float64, error) {
	return f.scored, nil
}
func (f *fakeGoalRatingsProvider) GoalsConcededPerMatch(ctx context.Context, teamName string, competitionID core.CompetitionID) (float64, error) {
	return f.conceded, nil
}

func TestOffensiveRatingCollector_ReturnsScoredRate(t *testing.T) {
	c := NewOffensiveRatingCollector(&fakeGoalRatingsProvider{scored: 2.1})
	value, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 2.1 {
		t.Fatalf("expected 2.1, got %v", value)
	}
}

func TestDefensiveRatingCollector_InvertsConcededRate(t *testing.T) {
	tight := NewDefensiveRatingCollector(&fakeGoalRatingsProvider{conceded: 0.5})
	leaky := NewDefensiveRatingCollector(&fakeGoalRatingsProvider{conceded: 2.5})

	tightScore, err := tight.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	leakyScore, err := leaky.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(tightScore > leakyScore) {
		t.Fatalf("conceding fewer goals should score higher: tight=%v leaky=%v", tightScore, leakyScore)
	}
}
