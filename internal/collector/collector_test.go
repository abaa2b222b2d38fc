package collector

import (
	"context"
	"testing"

	"strengthgrid.dev/strength/internal/core"
)

type fakeEloProvider struct {
	rating float64
	err    error
}

func (f *fakeEloProvider) Name() string { return "fake-elo" }
func (f *fakeEloProvider) TeamRating(ctx context.Context, teamName string) (float64, error) {
	return f.rating, f.err
}

func TestEloCollector_ReturnsProviderRating(t *testing.T) {
	c := NewEloCollector(&fakeEloProvider{rating: 1850})
	value, err := c.Collect(context.Background(), Scope{TeamName: "Real Madrid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 1850 {
		t.Fatalf("expected 1850, got %v", value)
	}
	if c.Parameter() != core.ParameterElo {
		t.Fatalf("expected elo parameter, got %v", c.Parameter())
	}
}

func TestEloCollector_RejectsNegativeRating(t *testing.T) {
	c := NewEloCollector(&fakeEloProvider{rating: -5})
	_, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if !core.IsInvalidValue(err) {
		t.Fatalf("expected an invalid-value error, got %v", err)
	}
}

type fakeValuationProvider struct {
	value float64
	size  int
}

func (f *fakeValuationProvider) Name() string { return "fake-valuation" }
func (f *fakeValuationProvider) SquadValue(ctx context.Context, teamName string) (float64, error) {
	return f.value, nil
}
func (f *fakeValuationProvider) SquadSize(ctx context.Context, teamName string) (int, error) {
	return f.size, nil
}

func TestSquadDepthCollector_HigherValueYieldsHigherDepthAtEqualSize(t *testing.T) {
	low := NewSquadDepthCollector(&fakeValuationProvider{value: 25_000_000, size: 25})
	high := NewSquadDepthCollector(&fakeValuationProvider{value: 250_000_000, size: 25})

	lowDepth, err := low.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	highDepth, err := high.Collect(context.Background(), Scope{TeamName: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(highDepth > lowDepth) {
		t.Fatalf("a 10x squad value gap at equal size should raise depth: low=%v high=%v", lowDepth, highDepth)
	}
}

func TestSquadDepthCollector_RejectsZeroSize(t *testing.T) {
	c := NewSquadDepthCollector(&fakeValuationProvider{value: 1_000_000, size: 0})
	_, err := c.Collect(context.Background(), Scope{TeamName: "x"})
	if !core.IsInvalidValue(err) {
		t.Fatalf("expected an invalid-value error for zero squad size, got %v", err)
	}
}

type fakeMatchSource struct {
	matches []core.Match
}

func (f *fakeMatchSource) Name() string { return "fake-matches" }
func (f *fakeMatchSource) RecentCompleted(ctx context.Context, teamID core.TeamID, competitionID core.CompetitionID, n int) ([]core.Match, error) {
	if len(f.matches) > n {
		return f.matches[:n], nil
	}
	return f.matches, nil
}
func (f *fakeMatchSource) OpponentElo(ctx context.Context, teamID core.TeamID) (float64, error) {
	return 1500, nil
}

func finishedMatch(homeID, awayID core.TeamID, homeScore, awayScore int) core.Match {
	return core.Match{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
		Status:     core.MatchFinished,
	}
}

func TestFormCollector_RecencyWeightsRecentWinsMoreHeavily(t *testing.T) {
	teamID := core.TeamID("team-a")
	opponent := core.TeamID("team-b")

	winFirst := []core.Match{
		finishedMatch(teamID, opponent, 3, 0), // most recent: win
		finishedMatch(opponent, teamID, 0, 0), // older: draw
	}
	winLast := []core.Match{
		finishedMatch(opponent, teamID, 0, 0), // most recent: draw
		finishedMatch(teamID, opponent, 3, 0), // older: win
	}

	a := NewFormCollector(&fakeMatchSource{matches: winFirst})
	b := NewFormCollector(&fakeMatchSource{matches: winLast})

	scoreA, err := a.Collect(context.Background(), Scope{TeamID: teamID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scoreB, err := b.Collect(context.Background(), Scope{TeamID: teamID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(scoreA > scoreB) {
		t.Fatalf("a more recent win should score higher than the same win further back: recent=%v older=%v", scoreA, scoreB)
	}
}

func TestFormCollector_NoMatchesIsTransientUnavailable(t *testing.T) {
	c := NewFormCollector(&fakeMatchSource{})
	_, err := c.Collect(context.Background(), Scope{TeamID: "team-a"})
	if !core.IsTransient(err) {
		t.Fatalf("expected a transient-unavailable error with no completed matches, got %v", err)
	}
}

func TestH2HCollector_AveragesPointsOverWindow(t *testing.T) {
	teamID := core.TeamID("team-a")
	opponent := core.TeamID("team-b")
	matches := []core.Match{
		finishedMatch(teamID, opponent, 2, 1), // win: 3 points
		finishedMatch(opponent, teamID, 1, 1), // draw: 1 point
	}
	c := NewH2HCollector(&fakeMatchSource{matches: matches})
	value, err := c.Collect(context.Background(), Scope{TeamID: teamID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 2.0 {
		t.Fatalf("expected average of 3 and 1 points = 2.0, got %v", value)
	}
}

func TestMotivationScore_TopAndBottomExceedMidTable(t *testing.T) {
	top := motivationScore(1, 20)
	mid := motivationScore(10, 20)
	bottom := motivationScore(20, 20)

	if !(top > mid) {
		t.Fatalf("expected title-contention position to exceed mid-table: top=%v mid=%v", top, mid)
	}
	if !(bottom > mid) {
		t.Fatalf("expected relegation-zone position to exceed mid-table: bottom=%v mid=%v", bottom, mid)
	}
}
