package odds

import (
	"math"
	"testing"

	"strengthgrid.dev/strength/internal/config"
)

func testCfg() config.OddsConfig {
	return config.OddsConfig{
		HomeBoostAlpha: 0.10,
		DrawBeta:       0.20,
		DrawK:          2.0,
		DrawMin:        0.22,
		DrawMax:        0.33,
		Margin:         0.05,
	}
}

func sumProbability(m Market1X2) float64 {
	return m.Home.Probability + m.Draw.Probability + m.Away.Probability
}

func TestCompute1X2_EqualStrengthsNeutralVenue(t *testing.T) {
	cfg := testCfg()
	market := Compute1X2(0.6, 0.6, ContextNeutralVenue, cfg)

	if math.Abs(market.Home.Probability-market.Away.Probability) > 1e-9 {
		t.Fatalf("expected symmetric home/away probabilities, got home=%v away=%v", market.Home.Probability, market.Away.Probability)
	}
	if math.Abs(market.Draw.Probability-cfg.DrawMax) > 1e-9 {
		t.Fatalf("expected max draw probability at zero strength gap, got %v", market.Draw.Probability)
	}
	if got := sumProbability(market); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("probabilities must sum to 1, got %v", got)
	}
}

func TestCompute1X2_HomeBoostFavorsHomeSide(t *testing.T) {
	cfg := testCfg()
	neutral := Compute1X2(0.6, 0.6, ContextNeutralVenue, cfg)
	home := Compute1X2(0.6, 0.6, ContextSameCompetition, cfg)

	if !(home.Home.Probability > neutral.Home.Probability) {
		t.Fatalf("home boost should raise home win probability: neutral=%v boosted=%v", neutral.Home.Probability, home.Home.Probability)
	}
	if !(home.Away.Probability < neutral.Away.Probability) {
		t.Fatalf("home boost should lower away win probability: neutral=%v boosted=%v", neutral.Away.Probability, home.Away.Probability)
	}
	if got := sumProbability(home); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("probabilities must sum to 1 after renormalization, got %v", got)
	}
}

func TestCompute1X2_ZeroStrengthsSplitEvenly(t *testing.T) {
	cfg := testCfg()
	market := Compute1X2(0, 0, ContextNeutralVenue, cfg)
	if math.Abs(market.Home.Probability-market.Away.Probability) > 1e-9 {
		t.Fatalf("zero-zero strengths must split evenly, got home=%v away=%v", market.Home.Probability, market.Away.Probability)
	}
}

func TestCompute1X2_DrawProbabilityShrinksWithGap(t *testing.T) {
	cfg := testCfg()
	close := Compute1X2(0.55, 0.50, ContextNeutralVenue, cfg)
	wide := Compute1X2(0.90, 0.10, ContextNeutralVenue, cfg)

	if !(wide.Draw.Probability < close.Draw.Probability) {
		t.Fatalf("draw probability should shrink as the strength gap widens: close=%v wide=%v", close.Draw.Probability, wide.Draw.Probability)
	}
	if wide.Draw.Probability < cfg.DrawMin-1e-9 {
		t.Fatalf("draw probability must never fall below the configured floor, got %v", wide.Draw.Probability)
	}
}

func TestCompute1X2_DecimalOddsReflectMargin(t *testing.T) {
	cfg := testCfg()
	market := Compute1X2(0.6, 0.6, ContextNeutralVenue, cfg)

	inverseSum := 1/market.Home.DecimalOdds + 1/market.Draw.DecimalOdds + 1/market.Away.DecimalOdds
	if inverseSum <= 1.0 {
		t.Fatalf("overround should exceed 1.0 once margin is applied, got %v", inverseSum)
	}
}

func TestExpectedGoals_MonotonicInAttackQuality(t *testing.T) {
	low := ExpectedGoals(0.2, 0.5, 0.2, 0.5)
	high := ExpectedGoals(0.9, 0.5, 0.9, 0.5)
	if !(high > low) {
		t.Fatalf("expected goals should increase with attacking quality: low=%v high=%v", low, high)
	}
	if low < 1.5-1e-9 || high > 3.5+1e-9 {
		t.Fatalf("expected goals must stay within [1.5, 3.5], got low=%v high=%v", low, high)
	}
}

func TestComputeOverUnder_BoundedAndMonotonic(t *testing.T) {
	cfg := testCfg()
	low := ComputeOverUnder(1.5, cfg)
	high := ComputeOverUnder(3.5, cfg)

	if !(high.First.Probability > low.First.Probability) {
		t.Fatalf("over probability should increase with expected goals: low=%v high=%v", low.First.Probability, high.First.Probability)
	}
	if low.First.Probability < overUnderProbFloor-1e-9 || high.First.Probability > overUnderProbCeiling+1e-9 {
		t.Fatalf("over probability must stay within [%v, %v], got low=%v high=%v", overUnderProbFloor, overUnderProbCeiling, low.First.Probability, high.First.Probability)
	}
}

func TestComputeBTTS_BoundedByWeakerSide(t *testing.T) {
	cfg := testCfg()
	weak := ComputeBTTS(0.1, 0.9, cfg)
	strong := ComputeBTTS(0.9, 0.9, cfg)

	if !(strong.First.Probability > weak.First.Probability) {
		t.Fatalf("BTTS should rise when the weaker side's attack improves: weak=%v strong=%v", weak.First.Probability, strong.First.Probability)
	}
	if weak.First.Probability < bttsProbFloor-1e-9 || strong.First.Probability > bttsProbCeiling+1e-9 {
		t.Fatalf("BTTS probability must stay within [%v, %v]", bttsProbFloor, bttsProbCeiling)
	}
}

func TestMostLikelyScore_IsDeterministic(t *testing.T) {
	cfg := testCfg()
	market := Compute1X2(0.8, 0.3, ContextSameCompetition, cfg)
	eg := ExpectedGoals(0.8, 0.3, 0.3, 0.8)

	first := MostLikelyScore(market, eg)
	second := MostLikelyScore(market, eg)
	if first != second {
		t.Fatalf("most likely score must be deterministic for identical inputs, got %q then %q", first, second)
	}
}

func TestComputeQuote_AssemblesAllMarkets(t *testing.T) {
	cfg := testCfg()
	quote := ComputeQuote(0.7, 0.5, 0.7, 0.4, 0.5, 0.6, ContextSameCompetition, cfg)

	if got := sumProbability(quote.OneXTwo); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("1X2 probabilities must sum to 1, got %v", got)
	}
	if quote.MostLikelyScore == "" {
		t.Fatal("expected a non-empty most likely score")
	}
	if quote.Context != ContextSameCompetition {
		t.Fatalf("expected context to be echoed back, got %v", quote.Context)
	}
}
